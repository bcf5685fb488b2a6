// internal/services/user_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/resalex/backend/internal/apperrors"
	"github.com/resalex/backend/internal/models"
)

type UserServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	store   *fakeImageStore
	service *UserService

	root  *models.User
	admin *models.User
	user  *models.User
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.store = newFakeImageStore()
	suite.service = NewUserService(suite.db, suite.store)

	suite.root = createTestUser(suite.T(), suite.db, "root", models.RoleRoot)
	suite.admin = createTestUser(suite.T(), suite.db, "admin1", models.RoleAdmin)
	suite.user = createTestUser(suite.T(), suite.db, "buyer1", models.RoleUser)
}

func (suite *UserServiceTestSuite) TestCreateStaffUserByAdmin() {
	created, err := suite.service.CreateStaffUser(suite.admin.ID, &CreateStaffUserRequest{
		Username: "moderator1",
		Email:    "moderator@example.com",
		Password: "password123",
		Role:     models.RoleModerator,
	})

	suite.NoError(err)
	suite.Equal(models.RoleModerator, created.Role)
}

func (suite *UserServiceTestSuite) TestCreateStaffUserModeratorForbidden() {
	moderator := createTestUser(suite.T(), suite.db, "moderator1", models.RoleModerator)

	_, err := suite.service.CreateStaffUser(moderator.ID, &CreateStaffUserRequest{
		Username: "another",
		Email:    "another@example.com",
		Password: "password123",
		Role:     models.RoleSeller,
	})

	suite.Error(err)
	suite.Equal(apperrors.KindPermission, apperrors.KindOf(err))
}

func (suite *UserServiceTestSuite) TestCreateStaffUserRejectsUnknownRole() {
	_, err := suite.service.CreateStaffUser(suite.admin.ID, &CreateStaffUserRequest{
		Username: "weird",
		Email:    "weird@example.com",
		Password: "password123",
		Role:     "superhero",
	})

	suite.Error(err)
	suite.Equal(apperrors.KindValidation, apperrors.KindOf(err))
}

func (suite *UserServiceTestSuite) TestDeleteUserRootProtected() {
	err := suite.service.DeleteUser(suite.admin.ID, suite.root.ID)

	suite.Error(err)
	suite.Equal(apperrors.KindPermission, apperrors.KindOf(err))
}

func (suite *UserServiceTestSuite) TestDeleteUserSelfProtected() {
	err := suite.service.DeleteUser(suite.admin.ID, suite.admin.ID)

	suite.Error(err)
	suite.Equal(apperrors.KindPermission, apperrors.KindOf(err))
}

func (suite *UserServiceTestSuite) TestDeleteUserByStaff() {
	suite.NoError(suite.service.DeleteUser(suite.admin.ID, suite.user.ID))

	_, err := suite.service.GetUser(suite.user.ID)
	suite.Error(err)
	suite.Equal(apperrors.KindNotFound, apperrors.KindOf(err))
}

func (suite *UserServiceTestSuite) TestDeleteUserNonStaffForbidden() {
	other := createTestUser(suite.T(), suite.db, "buyer2", models.RoleUser)

	err := suite.service.DeleteUser(suite.user.ID, other.ID)
	suite.Error(err)
	suite.Equal(apperrors.KindPermission, apperrors.KindOf(err))
}

func (suite *UserServiceTestSuite) TestToggleActiveBlocksAndUnblocks() {
	blocked, err := suite.service.ToggleActive(suite.admin.ID, suite.user.ID)
	suite.NoError(err)
	suite.False(blocked.IsActive)

	// A blocked account cannot act.
	_, err = suite.service.UpdateProfile(suite.user.ID, &UpdateProfileRequest{Username: "renamed"})
	suite.Error(err)
	suite.Equal(apperrors.KindPermission, apperrors.KindOf(err))

	unblocked, err := suite.service.ToggleActive(suite.admin.ID, suite.user.ID)
	suite.NoError(err)
	suite.True(unblocked.IsActive)
}

func (suite *UserServiceTestSuite) TestUpdateProfileDuplicateUsername() {
	_, err := suite.service.UpdateProfile(suite.user.ID, &UpdateProfileRequest{
		Username: "admin1",
	})

	suite.Error(err)
	suite.Equal(apperrors.KindDuplicate, apperrors.KindOf(err))
}

func (suite *UserServiceTestSuite) TestUpdateProfileChangesPassword() {
	updated, err := suite.service.UpdateProfile(suite.user.ID, &UpdateProfileRequest{
		Password: "newpassword",
	})

	suite.NoError(err)
	suite.NoError(updated.CheckPassword("newpassword"))
	suite.Error(updated.CheckPassword("password123"))
}

func (suite *UserServiceTestSuite) TestSetAvatarStoresImage() {
	updated, err := suite.service.SetAvatar(suite.user.ID, []byte("fake-png"), "avatar.png", "image/png")

	suite.NoError(err)
	suite.NotEmpty(updated.AvatarURL)
	suite.Len(suite.store.stored, 1)
}

func (suite *UserServiceTestSuite) TestProfileStats() {
	seller := createTestUser(suite.T(), suite.db, "seller1", models.RoleSeller)
	product := createTestProduct(suite.T(), suite.db, seller, models.ProductStatusApproved, 250)

	order := &models.Order{
		BuyerID:     suite.user.ID,
		ProductID:   product.ID,
		TotalAmount: product.Price,
		Status:      models.OrderStatusDelivered,
	}
	suite.NoError(suite.db.Create(order).Error)

	buyerStats, err := suite.service.GetProfileStats(suite.user.ID)
	suite.NoError(err)
	suite.Equal(int64(1), buyerStats.OrderCount)
	suite.Equal(250.0, buyerStats.TotalSpent)
	suite.Equal(int64(0), buyerStats.ListingCount)

	sellerStats, err := suite.service.GetProfileStats(seller.ID)
	suite.NoError(err)
	suite.Equal(int64(1), sellerStats.ListingCount)
	suite.Equal(250.0, sellerStats.TotalEarned)
}

func (suite *UserServiceTestSuite) TestListUsersStaffOnly() {
	users, total, err := suite.service.ListUsers(suite.admin.ID, testPagination())
	suite.NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(users, 3)

	_, _, err = suite.service.ListUsers(suite.user.ID, testPagination())
	suite.Error(err)
	suite.Equal(apperrors.KindPermission, apperrors.KindOf(err))
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
