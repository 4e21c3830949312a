package services

import (
	"context"

	"github.com/tpcell/portal/internal/app/repositories"
	"github.com/tpcell/portal/internal/pkg/email"
)

// EmailSettingsSource reads SMTP settings from the system_settings row on
// every send.
type EmailSettingsSource struct {
	repo *repositories.SettingsRepository
}

// NewEmailSettingsSource creates a settings source backed by repo
func NewEmailSettingsSource(repo *repositories.SettingsRepository) *EmailSettingsSource {
	return &EmailSettingsSource{repo: repo}
}

// EmailSettings implements email.SettingsSource
func (s *EmailSettingsSource) EmailSettings(ctx context.Context) (*email.Settings, error) {
	row, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &email.Settings{
		Provider:          row.EmailProvider,
		Host:              row.SMTPHost,
		Port:              row.SMTPPort,
		Secure:            row.SMTPSecure,
		Username:          row.SMTPUsername,
		Password:          row.SMTPPassword,
		FromEmail:         row.SMTPFromEmail,
		FromName:          row.SMTPFromName,
		AdminContactEmail: row.AdminContactEmail,
	}, nil
}
