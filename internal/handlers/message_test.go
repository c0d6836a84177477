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
	"github.com/sakurakids/nursery-api/internal/middleware"
	"github.com/sakurakids/nursery-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MessageHandlerTestSuite covers messages and read receipts inside one
// conversation, behind the real membership middleware.
type MessageHandlerTestSuite struct {
	suite.Suite
	db             *gorm.DB
	messageHandler *MessageHandler
	receiptHandler *ReceiptHandler
	memberHandler  *ChatMemberHandler
}

// SetupTest runs before each test
func (suite *MessageHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Conversation{},
		&models.ChatMember{},
		&models.Message{},
		&models.Receipt{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	suite.messageHandler = NewMessageHandler()
	suite.receiptHandler = NewReceiptHandler()
	suite.memberHandler = NewChatMemberHandler()

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *MessageHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *MessageHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *MessageHandlerTestSuite) createTestConversation(orgID, createdBy uint64, memberIDs ...uint64) *models.Conversation {
	conv := &models.Conversation{
		OrganizationID: orgID,
		Title:          "Classroom chat",
		CreatedBy:      createdBy,
	}
	suite.db.Create(conv)
	for _, id := range memberIDs {
		suite.db.Create(&models.ChatMember{ConversationID: conv.ID, UserID: id})
	}
	return conv
}

func (suite *MessageHandlerTestSuite) createTestMessage(convID, senderID uint64, body string) *models.Message {
	message := &models.Message{
		ConversationID: convID,
		SenderID:       senderID,
		Body:           body,
	}
	suite.db.Create(message)
	return message
}

// newRouter wires the real conversation middleware behind a stub auth layer.
func (suite *MessageHandlerTestSuite) newRouter(userID uint64) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	})

	conv := r.Group("/api/conversations/:conversation_id")
	conv.Use(middleware.RequireConversationAccess("conversation_id"))
	{
		conv.GET("/messages", suite.messageHandler.ListMessages)
		conv.POST("/messages", suite.messageHandler.CreateMessage)
		conv.PATCH("/messages/:message_id", suite.messageHandler.UpdateMessage)
		conv.DELETE("/messages/:message_id", suite.messageHandler.DeleteMessage)
		conv.PUT("/messages/:message_id/receipts", suite.receiptHandler.MarkRead)
		conv.GET("/messages/:message_id/receipts", suite.receiptHandler.ListReceipts)
		conv.POST("/members", suite.memberHandler.AddMember)
	}
	return r
}

func (suite *MessageHandlerTestSuite) doJSON(r *gin.Engine, method, url string, payload any) *httptest.ResponseRecorder {
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

func (suite *MessageHandlerTestSuite) TestCreateMessage() {
	sender := suite.createTestUser("sender@example.com")
	conv := suite.createTestConversation(1, sender.ID, sender.ID)
	r := suite.newRouter(sender.ID)

	w := suite.doJSON(r, "POST", fmt.Sprintf("/api/conversations/%d/messages", conv.ID), map[string]any{
		"body": "Pickup is at 4pm today",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response models.Message
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), sender.ID, response.SenderID)
	assert.Equal(suite.T(), "Pickup is at 4pm today", response.Body)
}

func (suite *MessageHandlerTestSuite) TestCreateMessage_NonMember() {
	sender := suite.createTestUser("sender@example.com")
	outsider := suite.createTestUser("outsider@example.com")
	conv := suite.createTestConversation(1, sender.ID, sender.ID)
	r := suite.newRouter(outsider.ID)

	// Non-members get 404, not 403
	w := suite.doJSON(r, "POST", fmt.Sprintf("/api/conversations/%d/messages", conv.ID), map[string]any{
		"body": "Should not land",
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *MessageHandlerTestSuite) TestUpdateMessage_NotSender() {
	sender := suite.createTestUser("sender@example.com")
	member := suite.createTestUser("member@example.com")
	conv := suite.createTestConversation(1, sender.ID, sender.ID, member.ID)
	message := suite.createTestMessage(conv.ID, sender.ID, "original")
	r := suite.newRouter(member.ID)

	w := suite.doJSON(r, "PATCH", fmt.Sprintf("/api/conversations/%d/messages/%d", conv.ID, message.ID), map[string]any{
		"body": "hijacked",
	})

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *MessageHandlerTestSuite) TestMarkRead_Upsert() {
	sender := suite.createTestUser("sender@example.com")
	reader := suite.createTestUser("reader@example.com")
	conv := suite.createTestConversation(1, sender.ID, sender.ID, reader.ID)
	message := suite.createTestMessage(conv.ID, sender.ID, "hello")
	r := suite.newRouter(reader.ID)

	url := fmt.Sprintf("/api/conversations/%d/messages/%d/receipts", conv.ID, message.ID)

	w := suite.doJSON(r, "PUT", url, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Reading again updates the row instead of inserting a duplicate
	w = suite.doJSON(r, "PUT", url, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Receipt{}).
		Where("message_id = ? AND user_id = ?", message.ID, reader.ID).
		Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *MessageHandlerTestSuite) TestAddMember_Duplicate() {
	sender := suite.createTestUser("sender@example.com")
	joiner := suite.createTestUser("joiner@example.com")
	conv := suite.createTestConversation(1, sender.ID, sender.ID)
	r := suite.newRouter(sender.ID)

	url := fmt.Sprintf("/api/conversations/%d/members", conv.ID)

	w := suite.doJSON(r, "POST", url, map[string]any{"user_id": joiner.ID})
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	// Adding the same user again answers 409, not a second row
	w = suite.doJSON(r, "POST", url, map[string]any{"user_id": joiner.ID})
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	var count int64
	suite.db.Model(&models.ChatMember{}).
		Where("conversation_id = ? AND user_id = ?", conv.ID, joiner.ID).
		Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *MessageHandlerTestSuite) TestListReceipts() {
	sender := suite.createTestUser("sender@example.com")
	reader := suite.createTestUser("reader@example.com")
	conv := suite.createTestConversation(1, sender.ID, sender.ID, reader.ID)
	message := suite.createTestMessage(conv.ID, sender.ID, "hello")

	readerRouter := suite.newRouter(reader.ID)
	url := fmt.Sprintf("/api/conversations/%d/messages/%d/receipts", conv.ID, message.ID)
	w := suite.doJSON(readerRouter, "PUT", url, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	senderRouter := suite.newRouter(sender.ID)
	w = suite.doJSON(senderRouter, "GET", url, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Receipts []models.Receipt `json:"receipts"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Receipts, 1)
	assert.Equal(suite.T(), reader.ID, response.Receipts[0].UserID)
}

func TestMessageHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(MessageHandlerTestSuite))
}
