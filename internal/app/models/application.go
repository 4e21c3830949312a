package models

import "time"

// ApplicationStatus is the round a student application has reached
type ApplicationStatus string

const (
	ApplicationApplied            ApplicationStatus = "APPLIED"
	ApplicationResumeShortlisted  ApplicationStatus = "RESUME_SHORTLISTED"
	ApplicationAptitudeTest       ApplicationStatus = "APTITUDE_TEST"
	ApplicationGroupDiscussion    ApplicationStatus = "GROUP_DISCUSSION"
	ApplicationTechnicalInterview ApplicationStatus = "TECHNICAL_INTERVIEW"
	ApplicationHRInterview        ApplicationStatus = "HR_INTERVIEW"
	ApplicationSelected           ApplicationStatus = "SELECTED"
	ApplicationOfferGiven         ApplicationStatus = "OFFER_GIVEN"
	ApplicationRejected           ApplicationStatus = "REJECTED"
)

// Application links a student to a JAF
type Application struct {
	ID           int64             `json:"id" db:"id"`
	StudentID    int64             `json:"studentId" db:"student_id"`
	JAFID        int64             `json:"jafId" db:"jaf_id"`
	Status       ApplicationStatus `json:"status" db:"status"`
	CurrentRound int               `json:"currentRound" db:"current_round"`
	Remarks      *string           `json:"remarks,omitempty" db:"remarks"`
	AppliedAt    time.Time         `json:"appliedAt" db:"applied_at"`
	UpdatedAt    time.Time         `json:"updatedAt" db:"updated_at"`
}

// ApplicationView is an application joined with its job, company and student
type ApplicationView struct {
	Application
	JobTitle        string   `json:"jobTitle"`
	FormType        FormType `json:"formType"`
	CompanyID       int64    `json:"companyId"`
	CompanyName     string   `json:"companyName"`
	StudentUserID   int64    `json:"studentUserId"`
	StudentName     string   `json:"studentName"`
	StudentEmail    string   `json:"studentEmail"`
	RollNumber      string   `json:"rollNumber"`
	Branch          string   `json:"branch"`
	Degree          string   `json:"degree"`
	Batch           int      `json:"batch"`
	CGPA            *float64 `json:"cgpa,omitempty"`
	ActiveBacklogs  int      `json:"activeBacklogs"`
}
