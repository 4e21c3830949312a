package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID              int64      `json:"id" db:"id" example:"1"`
	Email           string     `json:"email" db:"email" example:"student@college.edu"`
	Password        string     `json:"-" db:"password"`
	FirstName       string     `json:"firstName" db:"first_name" example:"Asha"`
	LastName        string     `json:"lastName" db:"last_name" example:"Rao"`
	RoleType        RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`
	IsActive        bool       `json:"isActive" db:"is_active" example:"true"`
	IsEmailVerified bool       `json:"isEmailVerified" db:"is_email_verified" example:"true"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt       *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}

// FullName joins first and last name
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// CanLogin reports whether the account may start a session
func (u *User) CanLogin() bool {
	return u.IsActive && u.DeletedAt == nil
}

// SessionUser is the server-side view of an authenticated caller,
// reloaded on every request.
type SessionUser struct {
	ID              int64
	Email           string
	RoleType        RoleType
	IsActive        bool
	IsEmailVerified bool
}

// RefreshToken is a row of the refresh_tokens table
type RefreshToken struct {
	Token      string
	UserID     int64
	ExpiryDate time.Time
	IsRevoked  bool
}

// EmailOTP holds a hashed one-time code awaiting verification
type EmailOTP struct {
	UserID       int64
	CodeHash     string
	ExpiresAt    time.Time
	AttemptsLeft int
}

// Recipient is the contact of an entity affected by a status change
type Recipient struct {
	EntityID int64
	UserID   int64
	Email    string
	Name     string
}
