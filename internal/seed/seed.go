// Package seed creates the data a fresh installation needs to be usable.
package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	appModels "github.com/tpcell/portal/internal/app/models"
	appRepos "github.com/tpcell/portal/internal/app/repositories"
	"github.com/tpcell/portal/internal/pkg/apperrors"
	"github.com/tpcell/portal/internal/pkg/auth"
)

// Options configures the default data
type Options struct {
	SuperAdminEmail    string
	SuperAdminPassword string
	AdminContactEmail  string
}

// CreateDefaultData creates the super administrator and the system settings
// row if they don't exist. Errors are collected so one failure does not skip
// the other step.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, opts Options, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (super admin/settings)...")
	var finalErr error

	contact := opts.AdminContactEmail
	if contact == "" {
		contact = opts.SuperAdminEmail
	}
	created, err := repos.SettingsRepository.EnsureDefault(ctx, contact)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default settings")
		finalErr = errors.Join(finalErr, err)
	} else if created {
		lgr.Info().Msg("Default system settings created")
	}

	email := strings.ToLower(strings.TrimSpace(opts.SuperAdminEmail))
	_, err = repos.UserRepository.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		lgr.Info().Msg("Super admin already exists, skipping creation")
	case !errors.Is(err, apperrors.ErrUserNotFound):
		lgr.Error().Err(err).Msg("Error checking if super admin exists")
		finalErr = errors.Join(finalErr, err)
	case opts.SuperAdminPassword == "":
		lgr.Warn().Str("email", email).Msg("No super admin password configured, skipping creation")
	default:
		finalErr = errors.Join(finalErr, createSuperAdmin(ctx, repos.UserRepository, email, opts.SuperAdminPassword, lgr))
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func createSuperAdmin(ctx context.Context, users *appRepos.UserRepository, email, password string, lgr zerolog.Logger) error {
	lgr.Info().Msg("Creating default super admin...")

	hashed, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing super admin password")
		return err
	}

	id, err := users.CreateUser(ctx, &appModels.User{
		Email:           email,
		Password:        hashed,
		FirstName:       "Placement",
		LastName:        "Cell",
		RoleType:        appModels.RoleSuperAdmin,
		IsActive:        true,
		IsEmailVerified: true,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating super admin")
		return err
	}
	lgr.Info().Int64("userID", id).Msg("Default super admin created successfully")
	return nil
}
