package models

import "time"

// FormType distinguishes full-time (JNF) from internship (INF) announcements
type FormType string

const (
	FormJNF FormType = "JNF"
	FormINF FormType = "INF"
)

// JAFStatus is the placement cell review state of a JAF
type JAFStatus string

const (
	JAFPendingReview JAFStatus = "PENDING_REVIEW"
	JAFApproved      JAFStatus = "APPROVED"
	JAFRejected      JAFStatus = "REJECTED"
)

// JobStatus is the recruitment state of a JAF
type JobStatus string

const (
	JobOpen      JobStatus = "OPEN"
	JobClosed    JobStatus = "CLOSED"
	JobCancelled JobStatus = "CANCELLED"
)

// JAF is a job announcement form posted by a company
type JAF struct {
	ID                  int64      `json:"id" db:"id"`
	CompanyID           int64      `json:"companyId" db:"company_id"`
	FormType            FormType   `json:"formType" db:"form_type" example:"JNF"`
	Title               string     `json:"title" db:"title" example:"Software Engineer"`
	Description         string     `json:"description" db:"description"`
	Location            *string    `json:"location,omitempty" db:"location"`
	CTC                 *float64   `json:"ctc,omitempty" db:"ctc"`
	Stipend             *float64   `json:"stipend,omitempty" db:"stipend"`
	EligibleBatches     []int32    `json:"eligibleBatches" db:"eligible_batches"`
	EligibleBranches    []string   `json:"eligibleBranches" db:"eligible_branches"`
	EligibleDegrees     []string   `json:"eligibleDegrees" db:"eligible_degrees"`
	MinCGPA             float64    `json:"minCgpa" db:"min_cgpa"`
	MaxBacklogs         *int       `json:"maxBacklogs,omitempty" db:"max_backlogs"`
	SelectionProcess    []string   `json:"selectionProcess" db:"selection_process"`
	ApplicationDeadline time.Time  `json:"applicationDeadline" db:"application_deadline"`
	Status              JAFStatus  `json:"status" db:"status"`
	JobStatus           JobStatus  `json:"jobStatus" db:"job_status"`
	Remarks             *string    `json:"remarks,omitempty" db:"remarks"`
	ReviewedBy          *int64     `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt          *time.Time `json:"reviewedAt,omitempty" db:"reviewed_at"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time  `json:"updatedAt" db:"updated_at"`

	CompanyName string `json:"companyName,omitempty" db:"company_name"`
}

// IsAcceptingApplications reports whether students may apply at now
func (j *JAF) IsAcceptingApplications(now time.Time) bool {
	return j.Status == JAFApproved && j.JobStatus == JobOpen && now.Before(j.ApplicationDeadline)
}

// JAFFilter narrows JAF listings
type JAFFilter struct {
	CompanyID *int64
	Status    *JAFStatus
	JobStatus *JobStatus
	FormType  *FormType
	Search    string
	Offset    uint64
	Limit     int
}
