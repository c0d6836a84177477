package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/sakurakids/nursery-api/internal/constants"
	"github.com/sakurakids/nursery-api/internal/database"
	"github.com/sakurakids/nursery-api/internal/middleware"
	"github.com/sakurakids/nursery-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OrganizationHandlerTestSuite defines the test suite for OrganizationHandler
type OrganizationHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *OrganizationHandler
}

// SetupTest runs before each test
func (suite *OrganizationHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	suite.handler = NewOrganizationHandler()

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *OrganizationHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *OrganizationHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *OrganizationHandlerTestSuite) createTestOrganization(name string) *models.Organization {
	org := &models.Organization{Name: name}
	suite.db.Create(org)
	return org
}

func (suite *OrganizationHandlerTestSuite) addMember(orgID, userID uint64, role models.OrganizationRole) {
	suite.db.Create(&models.OrganizationMember{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
		JoinedAt:       time.Now(),
	})
}

// newRouter wires the real organization middleware behind a stub auth layer
// with a cookie session store for the activate flow.
func (suite *OrganizationHandlerTestSuite) newRouter(userID uint64) *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	})

	orgs := r.Group("/api/organizations")
	{
		orgs.POST("", suite.handler.CreateOrganization)
		orgs.GET("", suite.handler.ListOrganizations)
		orgs.GET("/:id", middleware.RequireOrganizationAccess(), suite.handler.GetOrganization)
		orgs.PUT("/:id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), suite.handler.UpdateOrganization)
		orgs.DELETE("/:id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), suite.handler.DeleteOrganization)
		orgs.POST("/:id/activate", middleware.RequireOrganizationAccess(), suite.handler.ActivateOrganization)
		orgs.DELETE("/:id/members/:user_id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), suite.handler.RemoveMember)
	}
	return r
}

func (suite *OrganizationHandlerTestSuite) doJSON(r *gin.Engine, method, url string, payload any) *httptest.ResponseRecorder {
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

func (suite *OrganizationHandlerTestSuite) TestCreateOrganization() {
	user := suite.createTestUser("owner@example.com")
	r := suite.newRouter(user.ID)

	w := suite.doJSON(r, "POST", "/api/organizations", map[string]any{
		"name":     "Sakura Kids",
		"metadata": map[string]any{"city": "Jakarta"},
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var member models.OrganizationMember
	suite.Require().NoError(suite.db.Where("user_id = ?", user.ID).First(&member).Error)
	assert.Equal(suite.T(), models.RoleOwner, member.Role)
}

func (suite *OrganizationHandlerTestSuite) TestGetOrganization_NonMember() {
	owner := suite.createTestUser("owner@example.com")
	outsider := suite.createTestUser("outsider@example.com")
	org := suite.createTestOrganization("Sakura Kids")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)

	r := suite.newRouter(outsider.ID)
	w := suite.doJSON(r, "GET", fmt.Sprintf("/api/organizations/%d", org.ID), nil)

	// Non-members get 404, not 403
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *OrganizationHandlerTestSuite) TestUpdateOrganization_NotOwner() {
	owner := suite.createTestUser("owner@example.com")
	teacher := suite.createTestUser("teacher@example.com")
	org := suite.createTestOrganization("Sakura Kids")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, teacher.ID, models.RoleTeacher)

	r := suite.newRouter(teacher.ID)
	w := suite.doJSON(r, "PUT", fmt.Sprintf("/api/organizations/%d", org.ID), map[string]any{
		"name": "Taken Over",
	})

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *OrganizationHandlerTestSuite) TestActivateOrganization() {
	owner := suite.createTestUser("owner@example.com")
	org := suite.createTestOrganization("Sakura Kids")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)

	r := suite.newRouter(owner.ID)
	w := suite.doJSON(r, "POST", fmt.Sprintf("/api/organizations/%d/activate", org.ID), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.NotEmpty(suite.T(), w.Header().Get("Set-Cookie"))
}

func (suite *OrganizationHandlerTestSuite) TestRemoveMember() {
	owner := suite.createTestUser("owner@example.com")
	teacher := suite.createTestUser("teacher@example.com")
	org := suite.createTestOrganization("Sakura Kids")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, teacher.ID, models.RoleTeacher)

	r := suite.newRouter(owner.ID)
	w := suite.doJSON(r, "DELETE", fmt.Sprintf("/api/organizations/%d/members/%d", org.ID, teacher.ID), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.OrganizationMember{}).
		Where("organization_id = ? AND user_id = ?", org.ID, teacher.ID).
		Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *OrganizationHandlerTestSuite) TestRemoveMember_Self() {
	owner := suite.createTestUser("owner@example.com")
	org := suite.createTestOrganization("Sakura Kids")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)

	r := suite.newRouter(owner.ID)
	w := suite.doJSON(r, "DELETE", fmt.Sprintf("/api/organizations/%d/members/%d", org.ID, owner.ID), nil)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func TestOrganizationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationHandlerTestSuite))
}
