package dto

import (
	"time"

	"github.com/tpcell/portal/internal/app/models"
)

// UpdateSettingsRequest edits the system settings. An empty password keeps
// the stored one.
type UpdateSettingsRequest struct {
	SMTPHost          string  `json:"smtpHost" binding:"max=255" example:"smtp.gmail.com"`
	SMTPPort          int     `json:"smtpPort" binding:"required,gte=1,lte=65535" example:"587"`
	SMTPSecure        bool    `json:"smtpSecure"`
	SMTPUsername      string  `json:"smtpUsername" binding:"max=255"`
	SMTPPassword      *string `json:"smtpPassword" binding:"omitempty,max=255"`
	SMTPFromEmail     string  `json:"smtpFromEmail" binding:"omitempty,email"`
	SMTPFromName      string  `json:"smtpFromName" binding:"max=255"`
	EmailProvider     string  `json:"emailProvider" binding:"required,oneof=smtp sendgrid"`
	AdminContactEmail string  `json:"adminContactEmail" binding:"omitempty,email"`
}

// SettingsResponse is the settings row with the password masked
type SettingsResponse struct {
	SMTPHost          string    `json:"smtpHost"`
	SMTPPort          int       `json:"smtpPort"`
	SMTPSecure        bool      `json:"smtpSecure"`
	SMTPUsername      string    `json:"smtpUsername"`
	SMTPPasswordSet   bool      `json:"smtpPasswordSet"`
	SMTPFromEmail     string    `json:"smtpFromEmail"`
	SMTPFromName      string    `json:"smtpFromName"`
	EmailProvider     string    `json:"emailProvider"`
	AdminContactEmail string    `json:"adminContactEmail"`
	UpdatedBy         *int64    `json:"updatedBy,omitempty"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// NewSettingsResponse masks the stored SMTP password
func NewSettingsResponse(s *models.SystemSettings) SettingsResponse {
	return SettingsResponse{
		SMTPHost:          s.SMTPHost,
		SMTPPort:          s.SMTPPort,
		SMTPSecure:        s.SMTPSecure,
		SMTPUsername:      s.SMTPUsername,
		SMTPPasswordSet:   s.SMTPPassword != "",
		SMTPFromEmail:     s.SMTPFromEmail,
		SMTPFromName:      s.SMTPFromName,
		EmailProvider:     s.EmailProvider,
		AdminContactEmail: s.AdminContactEmail,
		UpdatedBy:         s.UpdatedBy,
		UpdatedAt:         s.UpdatedAt,
	}
}

// TestEmailRequest names the recipient of a test message
type TestEmailRequest struct {
	To string `json:"to" binding:"required,email"`
}
