package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/db"
	"github.com/tpcell/portal/internal/pkg/apperrors"
	"github.com/tpcell/portal/internal/pkg/logger"
)

const settingsRowID = 1

// SettingsRepository reads and writes the singleton system_settings row
type SettingsRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(conn db.DBTX) *SettingsRepository {
	return &SettingsRepository{db: conn, sb: newBuilder()}
}

// WithTx returns a copy bound to tx
func (r *SettingsRepository) WithTx(tx pgx.Tx) *SettingsRepository {
	return &SettingsRepository{db: tx, sb: r.sb}
}

// Get returns the current settings
func (r *SettingsRepository) Get(ctx context.Context) (*models.SystemSettings, error) {
	sql, args, err := r.sb.Select("smtp_host", "smtp_port", "smtp_secure", "smtp_username", "smtp_password",
		"smtp_from_email", "smtp_from_name", "email_provider", "admin_contact_email", "updated_by", "updated_at").
		From("system_settings").
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get settings query: %w", err)
	}

	s := &models.SystemSettings{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.SMTPHost, &s.SMTPPort, &s.SMTPSecure, &s.SMTPUsername,
		&s.SMTPPassword, &s.SMTPFromEmail, &s.SMTPFromName, &s.EmailProvider, &s.AdminContactEmail,
		&s.UpdatedBy, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("System settings are not initialised")
		}
		return nil, fmt.Errorf("error retrieving settings: %w", err)
	}
	return s, nil
}

// EnsureDefault creates the settings row when it does not exist yet
func (r *SettingsRepository) EnsureDefault(ctx context.Context, adminContactEmail string) (bool, error) {
	sql, args, err := r.sb.Insert("system_settings").
		Columns("id", "admin_contact_email").
		Values(settingsRowID, adminContactEmail).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build default settings query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error creating default settings: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Update replaces every setting. The caller resolves the password to keep.
func (r *SettingsRepository) Update(ctx context.Context, s *models.SystemSettings) error {
	sql, args, err := r.sb.Update("system_settings").
		Set("smtp_host", s.SMTPHost).
		Set("smtp_port", s.SMTPPort).
		Set("smtp_secure", s.SMTPSecure).
		Set("smtp_username", s.SMTPUsername).
		Set("smtp_password", s.SMTPPassword).
		Set("smtp_from_email", s.SMTPFromEmail).
		Set("smtp_from_name", s.SMTPFromName).
		Set("email_provider", s.EmailProvider).
		Set("admin_contact_email", s.AdminContactEmail).
		Set("updated_by", s.UpdatedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": settingsRowID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update settings query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewResourceNotFoundError("System settings are not initialised")
		}
		logger.Error().Err(err).Msg("Error updating settings")
		return fmt.Errorf("error updating settings: %w", err)
	}
	return nil
}
