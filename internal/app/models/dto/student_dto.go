package dto

import (
	"github.com/tpcell/portal/internal/app/models"
)

// UpdateStudentProfileRequest updates the editable student profile fields.
// The roll number is fixed at registration.
type UpdateStudentProfileRequest struct {
	FirstName string `json:"firstName" binding:"required,min=1,max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
	Phone     string `json:"phone" binding:"omitempty,max=20"`
	Branch    string `json:"branch" binding:"required,max=100"`
	Degree    string `json:"degree" binding:"required,max=20"`
	Batch     int    `json:"batch" binding:"required,gte=2000,lte=2100"`
}

// AcademicsRequest replaces the academic record of a student
type AcademicsRequest struct {
	TenthPercentage      *float64 `json:"tenthPercentage" binding:"omitempty,gte=0,lte=100" example:"91.4"`
	TenthBoard           *string  `json:"tenthBoard" binding:"omitempty,max=100"`
	TenthYear            *int     `json:"tenthYear" binding:"omitempty,gte=1980,lte=2100"`
	TwelfthPercentage    *float64 `json:"twelfthPercentage" binding:"omitempty,gte=0,lte=100"`
	TwelfthBoard         *string  `json:"twelfthBoard" binding:"omitempty,max=100"`
	TwelfthYear          *int     `json:"twelfthYear" binding:"omitempty,gte=1980,lte=2100"`
	DiplomaPercentage    *float64 `json:"diplomaPercentage" binding:"omitempty,gte=0,lte=100"`
	GraduationPercentage *float64 `json:"graduationPercentage" binding:"omitempty,gte=0,lte=100"`
	CGPA                 *float64 `json:"cgpa" binding:"omitempty,gte=0,lte=10" example:"8.2"`
	ActiveBacklogs       int      `json:"activeBacklogs" binding:"gte=0,ltefield=TotalBacklogs"`
	TotalBacklogs        int      `json:"totalBacklogs" binding:"gte=0"`
}

// ToModel copies the request onto an academics record
func (r *AcademicsRequest) ToModel(studentID int64) *models.StudentAcademics {
	return &models.StudentAcademics{
		StudentID:            studentID,
		TenthPercentage:      r.TenthPercentage,
		TenthBoard:           r.TenthBoard,
		TenthYear:            r.TenthYear,
		TwelfthPercentage:    r.TwelfthPercentage,
		TwelfthBoard:         r.TwelfthBoard,
		TwelfthYear:          r.TwelfthYear,
		DiplomaPercentage:    r.DiplomaPercentage,
		GraduationPercentage: r.GraduationPercentage,
		CGPA:                 r.CGPA,
		ActiveBacklogs:       r.ActiveBacklogs,
		TotalBacklogs:        r.TotalBacklogs,
	}
}

// PersonalDetailsRequest replaces the personal record of a student
type PersonalDetailsRequest struct {
	DateOfBirth      *string `json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02" example:"2003-07-14"`
	Gender           *string `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	Category         *string `json:"category" binding:"omitempty,oneof=GENERAL OBC SC ST EWS"`
	Nationality      *string `json:"nationality" binding:"omitempty,max=50"`
	FatherName       *string `json:"fatherName" binding:"omitempty,max=100"`
	MotherName       *string `json:"motherName" binding:"omitempty,max=100"`
	PermanentAddress *string `json:"permanentAddress" binding:"omitempty,max=1000"`
	CurrentAddress   *string `json:"currentAddress" binding:"omitempty,max=1000"`
	AlternatePhone   *string `json:"alternatePhone" binding:"omitempty,max=20"`
	LinkedInURL      *string `json:"linkedinUrl" binding:"omitempty,url"`
	GithubURL        *string `json:"githubUrl" binding:"omitempty,url"`
}

// ExperienceRequest creates or replaces an experience entry
type ExperienceRequest struct {
	CompanyName    string                `json:"companyName" binding:"required,max=200"`
	Role           string                `json:"role" binding:"required,max=200"`
	ExperienceType models.ExperienceType `json:"experienceType" binding:"required,oneof=INTERNSHIP FULL_TIME PROJECT"`
	StartDate      string                `json:"startDate" binding:"required,datetime=2006-01-02" example:"2024-05-15"`
	EndDate        *string               `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Description    *string               `json:"description" binding:"omitempty,max=2000"`
	CertificateURL *string               `json:"certificateUrl" binding:"omitempty,url"`
}

// DocumentRequest attaches an uploaded file to the student profile
type DocumentRequest struct {
	DocumentType string `json:"documentType" binding:"required,documenttype" example:"RESUME"`
	FileURL      string `json:"fileUrl" binding:"required,max=500"`
	FileName     string `json:"fileName" binding:"required,max=255"`
}

// DocumentRequirement is one entry of the degree specific document checklist
type DocumentRequirement struct {
	DocumentType string `json:"documentType"`
	Label        string `json:"label"`
	Required     bool   `json:"required"`
	Uploaded     bool   `json:"uploaded"`
}

// StudentProfileResponse is the complete record of a student
type StudentProfileResponse struct {
	Student         *models.Student                `json:"student"`
	Academics       *models.StudentAcademics       `json:"academics,omitempty"`
	PersonalDetails *models.StudentPersonalDetails `json:"personalDetails,omitempty"`
	Experience      []*models.StudentExperience    `json:"experience"`
	Documents       []*models.StudentDocument      `json:"documents"`
}

// JobResponse is a JAF as seen by a student
type JobResponse struct {
	*models.JAF
	Eligible          bool     `json:"eligible"`
	IneligibleReasons []string `json:"ineligibleReasons,omitempty"`
	HasApplied        bool     `json:"hasApplied"`
}
