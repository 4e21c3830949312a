package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID                 int64              `json:"id" db:"id" example:"1"`
	UserID             int64              `json:"userId" db:"user_id" example:"5"`
	RollNumber         string             `json:"rollNumber" db:"roll_number" example:"21CS1042"`
	Branch             string             `json:"branch" db:"branch" example:"CSE"`
	Degree             string             `json:"degree" db:"degree" example:"BTECH"`
	Batch              int                `json:"batch" db:"batch" example:"2025"`
	Phone              *string            `json:"phone,omitempty" db:"phone"`
	IsEmailVerified    bool               `json:"isEmailVerified" db:"is_email_verified"`
	IsVerifiedByAdmin  bool               `json:"isVerifiedByAdmin" db:"is_verified_by_admin"`
	VerificationStatus VerificationStatus `json:"verificationStatus" db:"verification_status" example:"PENDING"`
	RejectionReason    *string            `json:"rejectionReason,omitempty" db:"rejection_reason"`
	VerifiedBy         *int64             `json:"verifiedBy,omitempty" db:"verified_by"`
	VerifiedAt         *time.Time         `json:"verifiedAt,omitempty" db:"verified_at"`
	CreatedAt          time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time          `json:"updatedAt" db:"updated_at"`

	User *User `json:"user,omitempty"`
}

// StudentAcademics is the 1:1 academic record of a student
type StudentAcademics struct {
	StudentID            int64     `json:"studentId" db:"student_id"`
	TenthPercentage      *float64  `json:"tenthPercentage,omitempty" db:"tenth_percentage"`
	TenthBoard           *string   `json:"tenthBoard,omitempty" db:"tenth_board"`
	TenthYear            *int      `json:"tenthYear,omitempty" db:"tenth_year"`
	TwelfthPercentage    *float64  `json:"twelfthPercentage,omitempty" db:"twelfth_percentage"`
	TwelfthBoard         *string   `json:"twelfthBoard,omitempty" db:"twelfth_board"`
	TwelfthYear          *int      `json:"twelfthYear,omitempty" db:"twelfth_year"`
	DiplomaPercentage    *float64  `json:"diplomaPercentage,omitempty" db:"diploma_percentage"`
	GraduationPercentage *float64  `json:"graduationPercentage,omitempty" db:"graduation_percentage"`
	CGPA                 *float64  `json:"cgpa,omitempty" db:"cgpa"`
	ActiveBacklogs       int       `json:"activeBacklogs" db:"active_backlogs"`
	TotalBacklogs        int       `json:"totalBacklogs" db:"total_backlogs"`
	UpdatedAt            time.Time `json:"updatedAt" db:"updated_at"`
}

// StudentPersonalDetails is the 1:1 personal record of a student
type StudentPersonalDetails struct {
	StudentID        int64      `json:"studentId" db:"student_id"`
	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Gender           *string    `json:"gender,omitempty" db:"gender"`
	Category         *string    `json:"category,omitempty" db:"category"`
	Nationality      *string    `json:"nationality,omitempty" db:"nationality"`
	FatherName       *string    `json:"fatherName,omitempty" db:"father_name"`
	MotherName       *string    `json:"motherName,omitempty" db:"mother_name"`
	PermanentAddress *string    `json:"permanentAddress,omitempty" db:"permanent_address"`
	CurrentAddress   *string    `json:"currentAddress,omitempty" db:"current_address"`
	AlternatePhone   *string    `json:"alternatePhone,omitempty" db:"alternate_phone"`
	LinkedInURL      *string    `json:"linkedinUrl,omitempty" db:"linkedin_url"`
	GithubURL        *string    `json:"githubUrl,omitempty" db:"github_url"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}

// ExperienceType classifies a student experience entry
type ExperienceType string

const (
	ExperienceInternship ExperienceType = "INTERNSHIP"
	ExperienceFullTime   ExperienceType = "FULL_TIME"
	ExperienceProject    ExperienceType = "PROJECT"
)

// StudentExperience is one internship, job or project
type StudentExperience struct {
	ID             int64          `json:"id" db:"id"`
	StudentID      int64          `json:"studentId" db:"student_id"`
	CompanyName    string         `json:"companyName" db:"company_name"`
	Role           string         `json:"role" db:"role"`
	ExperienceType ExperienceType `json:"experienceType" db:"experience_type"`
	StartDate      time.Time      `json:"startDate" db:"start_date"`
	EndDate        *time.Time     `json:"endDate,omitempty" db:"end_date"`
	Description    *string        `json:"description,omitempty" db:"description"`
	CertificateURL *string        `json:"certificateUrl,omitempty" db:"certificate_url"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
}

// StudentDocument is an uploaded file of a given document type
type StudentDocument struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	DocumentType string    `json:"documentType" db:"document_type"`
	FileURL      string    `json:"fileUrl" db:"file_url"`
	FileName     string    `json:"fileName" db:"file_name"`
	UploadedAt   time.Time `json:"uploadedAt" db:"uploaded_at"`
}

// StudentFilter narrows admin student listings
type StudentFilter struct {
	Status *VerificationStatus
	Branch string
	Degree string
	Batch  int
	Search string
	Offset uint64
	Limit  int
}

// Document types a student can attach to their profile.
const (
	DocumentResume              = "RESUME"
	DocumentPhoto               = "PHOTO"
	DocumentTenthMarksheet      = "TENTH_MARKSHEET"
	DocumentTwelfthMarksheet    = "TWELFTH_MARKSHEET"
	DocumentDiplomaMarksheet    = "DIPLOMA_MARKSHEET"
	DocumentGraduationMarksheet = "GRADUATION_MARKSHEET"
	DocumentSemesterMarksheets  = "SEMESTER_MARKSHEETS"
	DocumentIDProof             = "ID_PROOF"
	DocumentOther               = "OTHER"
)

// DocumentTypes lists every accepted document type
var DocumentTypes = []string{
	DocumentResume,
	DocumentPhoto,
	DocumentTenthMarksheet,
	DocumentTwelfthMarksheet,
	DocumentDiplomaMarksheet,
	DocumentGraduationMarksheet,
	DocumentSemesterMarksheets,
	DocumentIDProof,
	DocumentOther,
}
