// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User rows are soft-deleted, and the unique indexes on Username and Email
// cover deleted rows too. A removed account's identifiers therefore stay
// reserved and cannot be re-registered.
type User struct {
	BaseModel
	Username     string   `json:"username" gorm:"uniqueIndex;size:80;not null"`
	Email        string   `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"`
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	IsActive     bool     `json:"is_active" gorm:"default:true"`
	AvatarURL    string   `json:"avatar_url,omitempty" gorm:"size:255"`

	// Relationships
	Products []Product `json:"products,omitempty" gorm:"foreignKey:SellerID"`
	Orders   []Order   `json:"orders,omitempty" gorm:"foreignKey:BuyerID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// HasAnyRole is the single role-membership predicate. Every permission check
// in the service layer goes through it; individual services never compare
// role strings directly.
func (u *User) HasAnyRole(roles ...UserRole) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

func (u *User) IsStaff() bool {
	return u.HasAnyRole(StaffRoles...)
}
