package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/sakurakids/nursery-api/internal/constants"
	"github.com/sakurakids/nursery-api/internal/database"
	"github.com/sakurakids/nursery-api/internal/models"
	"github.com/sakurakids/nursery-api/internal/repository"
	"github.com/sakurakids/nursery-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ClassHandlerTestSuite defines the test suite for ClassHandler
type ClassHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *ClassHandler
}

// SetupTest runs before each test
func (suite *ClassHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
		&models.Nursery{},
		&models.Class{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	classRepo := repository.NewClassRepository(suite.db)
	nurseryRepo := repository.NewNurseryRepository(suite.db)
	classService := services.NewClassService(classRepo, nurseryRepo)
	suite.handler = NewClassHandler(classService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ClassHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ClassHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *ClassHandlerTestSuite) createTestOrganization(name string) *models.Organization {
	org := &models.Organization{Name: name}
	suite.db.Create(org)
	return org
}

func (suite *ClassHandlerTestSuite) createTestNursery(name string, orgID, createdBy uint64) *models.Nursery {
	nursery := &models.Nursery{
		OrganizationID: orgID,
		CreatedBy:      createdBy,
		Name:           name,
	}
	suite.db.Create(nursery)
	return nursery
}

func (suite *ClassHandlerTestSuite) createTestClass(name string, nurseryID uint64) *models.Class {
	class := &models.Class{
		NurseryID: nurseryID,
		Name:      name,
	}
	suite.db.Create(class)
	return class
}

// newRouter builds a router whose auth middleware is replaced by a stub that
// injects the given user and active organization.
func (suite *ClassHandlerTestSuite) newRouter(userID, orgID uint64) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyActiveOrgID, orgID)
		c.Next()
	})
	r.GET("/api/classes", suite.handler.ListClasses)
	r.POST("/api/classes", suite.handler.CreateClass)
	r.GET("/api/classes/:id", suite.handler.GetClass)
	r.PATCH("/api/classes/:id", suite.handler.UpdateClass)
	r.DELETE("/api/classes/:id", suite.handler.DeleteClass)
	return r
}

func (suite *ClassHandlerTestSuite) doJSON(r *gin.Engine, method, url string, payload any) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (suite *ClassHandlerTestSuite) TestCreateClass_ExplicitNursery() {
	user := suite.createTestUser("owner@example.com")
	org := suite.createTestOrganization("Org")
	nursery := suite.createTestNursery("Sakura", org.ID, user.ID)
	r := suite.newRouter(user.ID, org.ID)

	w := suite.doJSON(r, "POST", "/api/classes", map[string]any{
		"nursery_id": nursery.ID,
		"name":       "Tulip",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Tulip", response["name"])
	assert.Equal(suite.T(), float64(nursery.ID), response["nursery_id"])
}

func (suite *ClassHandlerTestSuite) TestCreateClass_AutoPicksSingleNursery() {
	user := suite.createTestUser("owner@example.com")
	org := suite.createTestOrganization("Org")
	nursery := suite.createTestNursery("Sakura", org.ID, user.ID)
	r := suite.newRouter(user.ID, org.ID)

	// nursery_id omitted; the only owned nursery is picked
	w := suite.doJSON(r, "POST", "/api/classes", map[string]any{
		"name": "Tulip",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), float64(nursery.ID), response["nursery_id"])
}

func (suite *ClassHandlerTestSuite) TestCreateClass_NoNurseries() {
	user := suite.createTestUser("owner@example.com")
	org := suite.createTestOrganization("Org")
	r := suite.newRouter(user.ID, org.ID)

	w := suite.doJSON(r, "POST", "/api/classes", map[string]any{
		"name": "Tulip",
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ClassHandlerTestSuite) TestCreateClass_AmbiguousNursery() {
	user := suite.createTestUser("owner@example.com")
	org := suite.createTestOrganization("Org")
	suite.createTestNursery("Sakura", org.ID, user.ID)
	suite.createTestNursery("Momiji", org.ID, user.ID)
	r := suite.newRouter(user.ID, org.ID)

	w := suite.doJSON(r, "POST", "/api/classes", map[string]any{
		"name": "Tulip",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ClassHandlerTestSuite) TestCreateClass_ForeignNursery() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	org := suite.createTestOrganization("Org")
	otherOrg := suite.createTestOrganization("Other Org")
	foreign := suite.createTestNursery("Foreign", otherOrg.ID, other.ID)
	r := suite.newRouter(owner.ID, org.ID)

	// Addressing another owner's nursery answers 404, not 403
	w := suite.doJSON(r, "POST", "/api/classes", map[string]any{
		"nursery_id": foreign.ID,
		"name":       "Tulip",
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ClassHandlerTestSuite) TestGetClass_NotOwned() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	org := suite.createTestOrganization("Org")
	otherOrg := suite.createTestOrganization("Other Org")
	foreign := suite.createTestNursery("Foreign", otherOrg.ID, other.ID)
	class := suite.createTestClass("Hidden", foreign.ID)
	r := suite.newRouter(owner.ID, org.ID)

	w := suite.doJSON(r, "GET", fmt.Sprintf("/api/classes/%d", class.ID), nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ClassHandlerTestSuite) TestUpdateClass_ReparentToForeignNursery() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	org := suite.createTestOrganization("Org")
	otherOrg := suite.createTestOrganization("Other Org")
	nursery := suite.createTestNursery("Sakura", org.ID, owner.ID)
	foreign := suite.createTestNursery("Foreign", otherOrg.ID, other.ID)
	class := suite.createTestClass("Tulip", nursery.ID)
	r := suite.newRouter(owner.ID, org.ID)

	w := suite.doJSON(r, "PATCH", fmt.Sprintf("/api/classes/%d", class.ID), map[string]any{
		"nursery_id": foreign.ID,
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	// The class stays where it was
	var reloaded models.Class
	suite.Require().NoError(suite.db.First(&reloaded, class.ID).Error)
	assert.Equal(suite.T(), nursery.ID, reloaded.NurseryID)
}

func (suite *ClassHandlerTestSuite) TestUpdateClass_Rename() {
	owner := suite.createTestUser("owner@example.com")
	org := suite.createTestOrganization("Org")
	nursery := suite.createTestNursery("Sakura", org.ID, owner.ID)
	class := suite.createTestClass("Tulip", nursery.ID)
	r := suite.newRouter(owner.ID, org.ID)

	w := suite.doJSON(r, "PATCH", fmt.Sprintf("/api/classes/%d", class.ID), map[string]any{
		"name": "Rose",
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Rose", response["name"])
}

func (suite *ClassHandlerTestSuite) TestUpdateClass_WrongFieldTypes() {
	owner := suite.createTestUser("owner@example.com")
	org := suite.createTestOrganization("Org")
	nursery := suite.createTestNursery("Sakura", org.ID, owner.ID)
	class := suite.createTestClass("Tulip", nursery.ID)
	r := suite.newRouter(owner.ID, org.ID)

	// A string nursery_id and a numeric name are rejected, not ignored
	w := suite.doJSON(r, "PATCH", fmt.Sprintf("/api/classes/%d", class.ID), map[string]any{
		"nursery_id": "2",
		"name":       123,
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var reloaded models.Class
	suite.Require().NoError(suite.db.First(&reloaded, class.ID).Error)
	assert.Equal(suite.T(), "Tulip", reloaded.Name)
	assert.Equal(suite.T(), nursery.ID, reloaded.NurseryID)
}

func (suite *ClassHandlerTestSuite) TestUpdateClass_FractionalNurseryID() {
	owner := suite.createTestUser("owner@example.com")
	org := suite.createTestOrganization("Org")
	nursery := suite.createTestNursery("Sakura", org.ID, owner.ID)
	class := suite.createTestClass("Tulip", nursery.ID)
	r := suite.newRouter(owner.ID, org.ID)

	w := suite.doJSON(r, "PATCH", fmt.Sprintf("/api/classes/%d", class.ID), map[string]any{
		"nursery_id": 5.5,
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var reloaded models.Class
	suite.Require().NoError(suite.db.First(&reloaded, class.ID).Error)
	assert.Equal(suite.T(), nursery.ID, reloaded.NurseryID)
}

func (suite *ClassHandlerTestSuite) TestDeleteClass_Twice() {
	owner := suite.createTestUser("owner@example.com")
	org := suite.createTestOrganization("Org")
	nursery := suite.createTestNursery("Sakura", org.ID, owner.ID)
	class := suite.createTestClass("Tulip", nursery.ID)
	r := suite.newRouter(owner.ID, org.ID)

	w := suite.doJSON(r, "DELETE", fmt.Sprintf("/api/classes/%d", class.ID), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.doJSON(r, "DELETE", fmt.Sprintf("/api/classes/%d", class.ID), nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ClassHandlerTestSuite) TestListClasses_OnlyOwned() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	org := suite.createTestOrganization("Org")
	otherOrg := suite.createTestOrganization("Other Org")
	nursery := suite.createTestNursery("Sakura", org.ID, owner.ID)
	foreign := suite.createTestNursery("Foreign", otherOrg.ID, other.ID)
	suite.createTestClass("Mine", nursery.ID)
	suite.createTestClass("Theirs", foreign.ID)
	r := suite.newRouter(owner.ID, org.ID)

	w := suite.doJSON(r, "GET", "/api/classes", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Data []map[string]any `json:"data"`
		Meta map[string]any   `json:"meta"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Data, 1)
	assert.Equal(suite.T(), "Mine", response.Data[0]["name"])
	assert.Equal(suite.T(), float64(1), response.Meta["total_count"])
}

func TestClassHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ClassHandlerTestSuite))
}
