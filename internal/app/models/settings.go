package models

import "time"

// SystemSettings is the singleton configuration row edited by super admins
type SystemSettings struct {
	SMTPHost          string    `json:"smtpHost" db:"smtp_host"`
	SMTPPort          int       `json:"smtpPort" db:"smtp_port"`
	SMTPSecure        bool      `json:"smtpSecure" db:"smtp_secure"`
	SMTPUsername      string    `json:"smtpUsername" db:"smtp_username"`
	SMTPPassword      string    `json:"-" db:"smtp_password"`
	SMTPFromEmail     string    `json:"smtpFromEmail" db:"smtp_from_email"`
	SMTPFromName      string    `json:"smtpFromName" db:"smtp_from_name"`
	EmailProvider     string    `json:"emailProvider" db:"email_provider"`
	AdminContactEmail string    `json:"adminContactEmail" db:"admin_contact_email"`
	UpdatedBy         *int64    `json:"updatedBy,omitempty" db:"updated_by"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// DashboardStats aggregates counts shown on the admin dashboard
type DashboardStats struct {
	StudentsByStatus  map[VerificationStatus]int64 `json:"studentsByStatus"`
	CompaniesByStatus map[VerificationStatus]int64 `json:"companiesByStatus"`
	JAFsByStatus      map[JAFStatus]int64          `json:"jafsByStatus"`
	OpenJobs          int64                        `json:"openJobs"`
	TotalApplications int64                        `json:"totalApplications"`
	PlacedStudents    int64                        `json:"placedStudents"`
	GeneratedAt       time.Time                    `json:"generatedAt"`
}
