// internal/services/user_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/resalex/backend/internal/apperrors"
	"github.com/resalex/backend/internal/models"
	"github.com/resalex/backend/internal/utils"
)

type UserService struct {
	db    *gorm.DB
	store ImageStore
}

type CreateStaffUserRequest struct {
	Username string          `json:"username" validate:"required,username"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Role     models.UserRole `json:"role" validate:"required"`
}

type UpdateProfileRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,username"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
}

type ProfileStats struct {
	TotalSpent  float64 `json:"total_spent"`
	TotalEarned float64 `json:"total_earned"`
	OrderCount  int64   `json:"order_count"`
	ListingCount int64  `json:"listing_count"`
}

func NewUserService(db *gorm.DB, store ImageStore) *UserService {
	return &UserService{
		db:    db,
		store: store,
	}
}

// CreateStaffUser creates an account with a caller-chosen role. Only admin
// and root may use it; everyone else registers through AuthService with the
// role forced to `user`.
func (s *UserService) CreateStaffUser(actorID uuid.UUID, req *CreateStaffUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "validation failed", err)
	}

	actor, err := loadActor(s.db, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.HasAnyRole(models.RoleAdmin, models.RoleRoot) {
		return nil, apperrors.Permission("only admins can create users")
	}

	if !models.ValidRole(req.Role) {
		return nil, apperrors.Validation("invalid role")
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperrors.Internal(err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("username = ?", req.Username).First(&existing).Error; err == nil {
			return apperrors.Duplicate("username already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Internal(err)
		}

		if err := tx.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			return apperrors.Duplicate("email already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Internal(err)
		}

		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Duplicate("username or email already exists")
			}
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) GetUser(id uuid.UUID) (*models.User, error) {
	return loadUser(s.db, id)
}

// DeleteUser removes an account. The root account and the caller's own
// account are never deletable, regardless of role.
func (s *UserService) DeleteUser(actorID, targetID uuid.UUID) error {
	actor, err := loadActor(s.db, actorID)
	if err != nil {
		return err
	}
	if !actor.IsStaff() {
		return apperrors.Permission("only staff can delete users")
	}

	target, err := loadUser(s.db, targetID)
	if err != nil {
		return err
	}

	if target.Role == models.RoleRoot {
		return apperrors.Permission("the root user cannot be deleted")
	}
	if target.ID == actor.ID {
		return apperrors.Permission("you cannot delete your own account")
	}

	if err := s.db.Delete(target).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *UserService) ToggleActive(actorID, targetID uuid.UUID) (*models.User, error) {
	actor, err := loadActor(s.db, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() {
		return nil, apperrors.Permission("only staff can block users")
	}

	target, err := loadUser(s.db, targetID)
	if err != nil {
		return nil, err
	}

	target.IsActive = !target.IsActive
	if err := s.db.Model(target).Update("is_active", target.IsActive).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return target, nil
}

func (s *UserService) UpdateProfile(actorID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "validation failed", err)
	}

	user, err := loadActor(s.db, actorID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.Username != "" && req.Username != user.Username {
			var existing models.User
			if err := tx.Where("username = ? AND id != ?", req.Username, user.ID).First(&existing).Error; err == nil {
				return apperrors.Duplicate("username already exists")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Internal(err)
			}
			user.Username = req.Username
		}

		if req.Email != "" && req.Email != user.Email {
			var existing models.User
			if err := tx.Where("email = ? AND id != ?", req.Email, user.ID).First(&existing).Error; err == nil {
				return apperrors.Duplicate("email already exists")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Internal(err)
			}
			user.Email = req.Email
		}

		if req.Password != "" {
			if err := user.SetPassword(req.Password); err != nil {
				return apperrors.Internal(err)
			}
		}

		if err := tx.Save(user).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) SetAvatar(actorID uuid.UUID, data []byte, filename, contentType string) (*models.User, error) {
	user, err := loadActor(s.db, actorID)
	if err != nil {
		return nil, err
	}

	result, err := s.store.Store(data, filename, contentType)
	if err != nil {
		return nil, apperrors.External("avatar upload failed", err)
	}

	user.AvatarURL = result.URL
	if err := s.db.Model(user).Update("avatar_url", result.URL).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

// GetProfileStats aggregates purchase and sale totals for the profile page.
func (s *UserService) GetProfileStats(userID uuid.UUID) (*ProfileStats, error) {
	user, err := loadUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	stats := &ProfileStats{}

	if err := s.db.Model(&models.Order{}).
		Where("buyer_id = ?", user.ID).
		Count(&stats.OrderCount).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.db.Model(&models.Order{}).
		Where("buyer_id = ?", user.ID).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalSpent).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	if user.HasAnyRole(models.RoleSeller, models.RoleAdmin, models.RoleRoot) {
		if err := s.db.Model(&models.Product{}).
			Where("seller_id = ?", user.ID).
			Count(&stats.ListingCount).Error; err != nil {
			return nil, apperrors.Internal(err)
		}

		if err := s.db.Model(&models.Order{}).
			Joins("JOIN products ON products.id = orders.product_id").
			Where("products.seller_id = ?", user.ID).
			Select("COALESCE(SUM(orders.total_amount), 0)").
			Scan(&stats.TotalEarned).Error; err != nil {
			return nil, apperrors.Internal(err)
		}
	}

	return stats, nil
}

func (s *UserService) ListUsers(actorID uuid.UUID, params utils.PaginationParams) ([]models.User, int64, error) {
	actor, err := loadActor(s.db, actorID)
	if err != nil {
		return nil, 0, err
	}
	if !actor.IsStaff() {
		return nil, 0, apperrors.Permission("only staff can list users")
	}

	query := s.db.Model(&models.User{})
	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	allowedSortFields := []string{"created_at", "username", "role"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	return users, total, nil
}
