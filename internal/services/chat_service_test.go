// internal/services/chat_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/resalex/backend/internal/apperrors"
	"github.com/resalex/backend/internal/models"
)

type ChatServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ChatService

	seller *models.User
	buyer  *models.User
	order  *models.Order
}

func (suite *ChatServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewChatService(suite.db)

	suite.seller = createTestUser(suite.T(), suite.db, "seller1", models.RoleSeller)
	suite.buyer = createTestUser(suite.T(), suite.db, "buyer1", models.RoleUser)

	product := createTestProduct(suite.T(), suite.db, suite.seller, models.ProductStatusSold, 100)
	suite.order = &models.Order{
		BuyerID:     suite.buyer.ID,
		ProductID:   product.ID,
		TotalAmount: product.Price,
		Status:      models.OrderStatusPaid,
	}
	suite.Require().NoError(suite.db.Create(suite.order).Error)
}

func (suite *ChatServiceTestSuite) TestBuyerMessageGoesToSeller() {
	message, err := suite.service.SendMessage(suite.buyer.ID, suite.order.ID, "When will it ship?")

	suite.NoError(err)
	suite.Equal(suite.buyer.ID, message.SenderID)
	suite.Equal(suite.seller.ID, message.ReceiverID)
	suite.False(message.IsRead)
}

func (suite *ChatServiceTestSuite) TestSellerMessageGoesToBuyer() {
	message, err := suite.service.SendMessage(suite.seller.ID, suite.order.ID, "Shipping tomorrow.")

	suite.NoError(err)
	suite.Equal(suite.buyer.ID, message.ReceiverID)
}

func (suite *ChatServiceTestSuite) TestStaffMessageAddressesBuyer() {
	admin := createTestUser(suite.T(), suite.db, "admin1", models.RoleAdmin)

	message, err := suite.service.SendMessage(admin.ID, suite.order.ID, "We are looking into your dispute.")

	suite.NoError(err)
	suite.Equal(suite.buyer.ID, message.ReceiverID)
}

func (suite *ChatServiceTestSuite) TestBlankMessageRejected() {
	_, err := suite.service.SendMessage(suite.buyer.ID, suite.order.ID, "   ")

	suite.Error(err)
	suite.Equal(apperrors.KindValidation, apperrors.KindOf(err))
}

func (suite *ChatServiceTestSuite) TestOutsiderCannotAccessChat() {
	outsider := createTestUser(suite.T(), suite.db, "outsider", models.RoleUser)

	_, err := suite.service.SendMessage(outsider.ID, suite.order.ID, "hello")
	suite.Error(err)
	suite.Equal(apperrors.KindPermission, apperrors.KindOf(err))

	_, err = suite.service.ListMessages(outsider.ID, suite.order.ID)
	suite.Error(err)
	suite.Equal(apperrors.KindPermission, apperrors.KindOf(err))
}

func (suite *ChatServiceTestSuite) TestListMarksReceivedAsRead() {
	_, err := suite.service.SendMessage(suite.buyer.ID, suite.order.ID, "first")
	suite.NoError(err)
	_, err = suite.service.SendMessage(suite.buyer.ID, suite.order.ID, "second")
	suite.NoError(err)

	unread, err := suite.service.CountUnread(suite.seller.ID)
	suite.NoError(err)
	suite.Equal(int64(2), unread)

	messages, err := suite.service.ListMessages(suite.seller.ID, suite.order.ID)
	suite.NoError(err)
	suite.Len(messages, 2)
	for _, m := range messages {
		suite.True(m.IsRead)
	}

	unread, err = suite.service.CountUnread(suite.seller.ID)
	suite.NoError(err)
	suite.Equal(int64(0), unread)
}

func (suite *ChatServiceTestSuite) TestListDoesNotMarkSentMessages() {
	_, err := suite.service.SendMessage(suite.buyer.ID, suite.order.ID, "question")
	suite.NoError(err)

	// The sender listing the conversation leaves the seller's unread intact.
	_, err = suite.service.ListMessages(suite.buyer.ID, suite.order.ID)
	suite.NoError(err)

	unread, err := suite.service.CountUnread(suite.seller.ID)
	suite.NoError(err)
	suite.Equal(int64(1), unread)
}

func (suite *ChatServiceTestSuite) TestMessagesOrderedOldestFirst() {
	_, err := suite.service.SendMessage(suite.buyer.ID, suite.order.ID, "one")
	suite.NoError(err)
	_, err = suite.service.SendMessage(suite.seller.ID, suite.order.ID, "two")
	suite.NoError(err)

	messages, err := suite.service.ListMessages(suite.buyer.ID, suite.order.ID)
	suite.NoError(err)
	suite.Require().Len(messages, 2)
	suite.Equal("one", messages[0].Body)
	suite.Equal("two", messages[1].Body)
}

func TestChatServiceSuite(t *testing.T) {
	suite.Run(t, new(ChatServiceTestSuite))
}
