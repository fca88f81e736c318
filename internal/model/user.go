package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleTechnician Role = "technician"
	RoleSuperAdmin Role = "superAdmin"
)

// CanAccess is the single authorization policy shared by route
// middleware and services. An empty role never matches.
func CanAccess(role Role, allowed ...Role) bool {
	if role == "" {
		return false
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	FullName     string    `gorm:"type:varchar(255);not null" json:"full_name"`
	PhoneNumber  string    `gorm:"type:varchar(50)" json:"phone_number"`
	Role         Role      `gorm:"type:varchar(32);not null;default:technician" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Principal is the authenticated identity attached to each request.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

func (p Principal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

func (p Principal) IsTechnician() bool {
	return p.Role == RoleTechnician
}
