package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user can hold.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account that connects to the system.
type User struct {
	Model
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `gorm:"unique;not null" json:"username"`
	// Bcrypt hash; never serialized.
	Password string `gorm:"not null" json:"-"`
	Picture  string `json:"picture"`
	Email    string `json:"email"`
	// Role is either "admin" or "user".
	Role string `json:"role"`
	// Optional weak reference to the paired monitoring device.
	DeviceID string `json:"device_id"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	u.stamp()
	return
}

// PublicUser is the externally safe projection of a User.
type PublicUser struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Picture   string `json:"picture"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	DeviceID  string `json:"device_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// PublicData returns the user without credential material.
func (u *User) PublicData() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Picture:   u.Picture,
		Email:     u.Email,
		Role:      u.Role,
		DeviceID:  u.DeviceID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
