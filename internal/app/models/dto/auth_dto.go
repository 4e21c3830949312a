package dto

import (
	"time"

	"github.com/tpcell/portal/internal/app/models"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest optionally names the refresh token to revoke
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RegisterStudentRequest represents a student self registration
type RegisterStudentRequest struct {
	Email      string `json:"email" binding:"required,email" example:"asha.rao@college.edu"`
	Password   string `json:"password" binding:"required,min=8,max=72,strongpassword" example:"s3cretpass"`
	FirstName  string `json:"firstName" binding:"required,min=1,max=100" example:"Asha"`
	LastName   string `json:"lastName" binding:"max=100" example:"Rao"`
	RollNumber string `json:"rollNumber" binding:"required,rollnumber" example:"21CS1042"`
	Branch     string `json:"branch" binding:"required,max=100" example:"CSE"`
	Degree     string `json:"degree" binding:"required,max=20" example:"BTECH"`
	Batch      int    `json:"batch" binding:"required,gte=2000,lte=2100" example:"2025"`
	Phone      string `json:"phone" binding:"omitempty,max=20"`
}

// RegisterCompanyRequest represents a recruiter self registration
type RegisterCompanyRequest struct {
	Email       string `json:"email" binding:"required,email" example:"hr@acme.com"`
	Password    string `json:"password" binding:"required,min=8,max=72,strongpassword"`
	FirstName   string `json:"firstName" binding:"required,min=1,max=100" example:"Priya"`
	LastName    string `json:"lastName" binding:"max=100"`
	CompanyName string `json:"companyName" binding:"required,min=2,max=200" example:"Acme Systems"`
	Website     string `json:"website" binding:"omitempty,url"`
	Industry    string `json:"industry" binding:"omitempty,max=100"`
}

// VerifyOTPRequest confirms an email address
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric" example:"482913"`
}

// ResendOTPRequest asks for a fresh verification code
type ResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ContactRequest is a public contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}

// RegistrationResponse is returned after a successful sign up
type RegistrationResponse struct {
	UserID  int64  `json:"userId"`
	Email   string `json:"email"`
	Message string `json:"message" example:"Registration successful. Check your email for the verification code."`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID              int64           `json:"id"`
	Email           string          `json:"email"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	Role            models.RoleType `json:"role"`
	IsActive        bool            `json:"isActive"`
	IsEmailVerified bool            `json:"isEmailVerified"`
	LastLoginAt     *time.Time      `json:"lastLoginAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// NewUserResponse maps a user to its public representation
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Role:            u.RoleType,
		IsActive:        u.IsActive,
		IsEmailVerified: u.IsEmailVerified,
		LastLoginAt:     u.LastLoginAt,
		CreatedAt:       u.CreatedAt,
	}
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// MeResponse is the session user together with their role profile
type MeResponse struct {
	User    UserResponse    `json:"user"`
	Student *models.Student `json:"student,omitempty"`
	Company *models.Company `json:"company,omitempty"`
}
