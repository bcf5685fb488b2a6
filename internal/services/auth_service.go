// internal/services/auth_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/resalex/backend/internal/apperrors"
	"github.com/resalex/backend/internal/config"
	"github.com/resalex/backend/internal/models"
	"github.com/resalex/backend/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // in seconds
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

// Register creates a buyer account. Self-registration always yields role
// `user`; staff roles are assigned through UserService.CreateStaffUser.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "validation failed", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     models.RoleUser,
		IsActive: true,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperrors.Internal(err)
	}

	// Duplicate check and insert run in one transaction; the unique indexes
	// on username/email back the check against concurrent registrations.
	err := s.db.Transaction(func(tx *gorm.DB) error {
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

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "validation failed", err)
	}

	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Permission("invalid username or password")
		}
		return nil, apperrors.Internal(err)
	}

	// Missing user, wrong password and blocked account all collapse into the
	// same error so the response leaks nothing.
	if err := user.CheckPassword(req.Password); err != nil {
		return nil, apperrors.Permission("invalid username or password")
	}
	if !user.IsActive {
		return nil, apperrors.Permission("invalid username or password")
	}

	return s.issueTokens(&user)
}

func (s *AuthService) RefreshToken(refreshToken string) (*AuthResponse, error) {
	userIDStr, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindPermission, "invalid refresh token", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindPermission, "invalid refresh token", err)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.Internal(err)
	}

	if !user.IsActive {
		return nil, apperrors.Permission("account is not active")
	}

	return s.issueTokens(&user)
}

func (s *AuthService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	return loadUser(s.db, userID)
}

func (s *AuthService) issueTokens(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(user.ID, user.Username, string(user.Role), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}
