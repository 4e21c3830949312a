package models

import "time"

// Company defines a recruiter organisation based on the 'companies' table
type Company struct {
	ID                 int64              `json:"id" db:"id" example:"3"`
	UserID             int64              `json:"userId" db:"user_id"`
	Name               string             `json:"name" db:"name" example:"Acme Systems"`
	Website            *string            `json:"website,omitempty" db:"website"`
	Industry           *string            `json:"industry,omitempty" db:"industry"`
	IsEmailVerified    bool               `json:"isEmailVerified" db:"is_email_verified"`
	IsVerifiedByAdmin  bool               `json:"isVerifiedByAdmin" db:"is_verified_by_admin"`
	VerificationStatus VerificationStatus `json:"verificationStatus" db:"verification_status"`
	RejectionReason    *string            `json:"rejectionReason,omitempty" db:"rejection_reason"`
	VerifiedBy         *int64             `json:"verifiedBy,omitempty" db:"verified_by"`
	VerifiedAt         *time.Time         `json:"verifiedAt,omitempty" db:"verified_at"`
	CreatedAt          time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time          `json:"updatedAt" db:"updated_at"`

	User    *User           `json:"user,omitempty"`
	Details *CompanyDetails `json:"details,omitempty"`
}

// CompanyType classifies a company
type CompanyType string

const (
	CompanyPSU        CompanyType = "PSU"
	CompanyMNC        CompanyType = "MNC"
	CompanyStartup    CompanyType = "STARTUP"
	CompanyGovernment CompanyType = "GOVERNMENT"
	CompanyPrivate    CompanyType = "PRIVATE"
	CompanyOther      CompanyType = "OTHER"
)

// CompanyDetails is the 1:1 profile of a company
type CompanyDetails struct {
	CompanyID        int64        `json:"companyId" db:"company_id"`
	CompanyType      *CompanyType `json:"companyType,omitempty" db:"company_type"`
	Sector           *string      `json:"sector,omitempty" db:"sector"`
	Description      *string      `json:"description,omitempty" db:"description"`
	Address          *string      `json:"address,omitempty" db:"address"`
	HRName           *string      `json:"hrName,omitempty" db:"hr_name"`
	HREmail          *string      `json:"hrEmail,omitempty" db:"hr_email"`
	HRPhone          *string      `json:"hrPhone,omitempty" db:"hr_phone"`
	AlternateHRName  *string      `json:"alternateHrName,omitempty" db:"alternate_hr_name"`
	AlternateHREmail *string      `json:"alternateHrEmail,omitempty" db:"alternate_hr_email"`
	AlternateHRPhone *string      `json:"alternateHrPhone,omitempty" db:"alternate_hr_phone"`
	LogoURL          *string      `json:"logoUrl,omitempty" db:"logo_url"`
	UpdatedAt        time.Time    `json:"updatedAt" db:"updated_at"`
}

// CompanyFilter narrows admin company listings
type CompanyFilter struct {
	Status *VerificationStatus
	Search string
	Offset uint64
	Limit  int
}
