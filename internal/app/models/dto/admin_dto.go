package dto

import "github.com/tpcell/portal/internal/app/models"

// VerifyRequest names the student or company to verify
type VerifyRequest struct {
	ID int64 `json:"id" binding:"required,gt=0" example:"12"`
}

// RejectRequest names the student or company to reject
type RejectRequest struct {
	ID      int64  `json:"id" binding:"required,gt=0" example:"12"`
	Remarks string `json:"remarks" binding:"max=2000" example:"Roll number does not match the college records"`
}

// BulkVerificationRequest verifies or rejects several accounts at once
type BulkVerificationRequest struct {
	IDs     []int64 `json:"ids" binding:"required,min=1,max=200,dive,gt=0"`
	Action  string  `json:"action" binding:"required,oneof=VERIFY REJECT"`
	Remarks string  `json:"remarks" binding:"max=2000"`
}

// Target returns the verification status the action moves to
func (r *BulkVerificationRequest) Target() models.VerificationStatus {
	if r.Action == "VERIFY" {
		return models.VerificationVerified
	}
	return models.VerificationRejected
}

// CreateAdminRequest creates a placement cell administrator
type CreateAdminRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=72,strongpassword"`
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
}

// UpdateAdminRequest edits an administrator
type UpdateAdminRequest struct {
	FirstName string  `json:"firstName" binding:"required,max=100"`
	LastName  string  `json:"lastName" binding:"max=100"`
	IsActive  *bool   `json:"isActive"`
	Password  *string `json:"password" binding:"omitempty,min=8,max=72,strongpassword"`
}

// StudentListItem is a row of the admin student listing
type StudentListItem struct {
	*models.Student
	FullName string   `json:"fullName"`
	Email    string   `json:"email"`
	CGPA     *float64 `json:"cgpa,omitempty"`
}
