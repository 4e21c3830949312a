package services

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/app/repositories"
	"github.com/tpcell/portal/internal/db"
	"github.com/tpcell/portal/internal/pkg/apperrors"
	"github.com/tpcell/portal/internal/pkg/auth"
	"github.com/tpcell/portal/internal/pkg/email"
	"github.com/tpcell/portal/internal/pkg/metrics"
)

var adminRoles = []models.RoleType{models.RoleAdmin}

// SuperAdminService manages administrator accounts and system settings
type SuperAdminService struct {
	tx           db.Transactor
	userRepo     *repositories.UserRepository
	tokenRepo    *repositories.TokenRepository
	logRepo      *repositories.ActivityLogRepository
	settingsRepo *repositories.SettingsRepository
	emails       email.EmailService
	logger       zerolog.Logger
}

// NewSuperAdminService creates a new SuperAdminService
func NewSuperAdminService(tx db.Transactor, repos *repositories.Repositories, emails email.EmailService, logger zerolog.Logger) *SuperAdminService {
	return &SuperAdminService{
		tx:           tx,
		userRepo:     repos.UserRepository,
		tokenRepo:    repos.TokenRepository,
		logRepo:      repos.ActivityLogRepository,
		settingsRepo: repos.SettingsRepository,
		emails:       emails,
		logger:       logger,
	}
}

// ListAdmins returns a page of administrators, super admins included
func (s *SuperAdminService) ListAdmins(ctx context.Context, offset uint64, limit int) ([]dto.UserResponse, int64, error) {
	users, total, err := s.userRepo.ListByRoles(ctx, []models.RoleType{models.RoleAdmin, models.RoleSuperAdmin}, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserResponse(u))
	}
	return out, total, nil
}

// CreateAdmin adds an administrator. Accounts created here need no email
// verification.
func (s *SuperAdminService) CreateAdmin(ctx context.Context, actor models.Actor, req *dto.CreateAdminRequest) (*dto.UserResponse, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:           normalizeEmail(req.Email),
		Password:        hashed,
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		RoleType:        models.RoleAdmin,
		IsActive:        true,
		IsEmailVerified: true,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := s.userRepo.WithTx(tx).CreateUser(ctx, user); err != nil {
			return err
		}
		return s.logRepo.WithTx(tx).Insert(ctx, newLogEntry(actor, models.ActionAdminCreate, models.EntityUser, user.ID,
			map[string]interface{}{"email": user.Email}))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("adminID", user.ID).Int64("actorID", actor.UserID).Msg("Administrator created")
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateAdmin edits an administrator
func (s *SuperAdminService) UpdateAdmin(ctx context.Context, actor models.Actor, id int64, req *dto.UpdateAdminRequest) (*dto.UserResponse, error) {
	var hash *string
	if req.Password != nil && *req.Password != "" {
		h, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		hash = &h
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := s.userRepo.WithTx(tx).UpdateUser(ctx, id, adminRoles, strings.TrimSpace(req.FirstName),
			strings.TrimSpace(req.LastName), req.IsActive, hash)
		if err != nil {
			return err
		}
		if req.IsActive != nil && !*req.IsActive {
			if err := s.tokenRepo.WithTx(tx).RevokeAllUserTokens(ctx, id); err != nil {
				return err
			}
		}
		details := map[string]interface{}{"passwordChanged": hash != nil}
		if req.IsActive != nil {
			details["isActive"] = *req.IsActive
		}
		return s.logRepo.WithTx(tx).Insert(ctx, newLogEntry(actor, models.ActionAdminUpdate, models.EntityUser, id, details))
	})
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// DeleteAdmin soft deletes an administrator. The account change and its
// activity log entry commit together or not at all.
func (s *SuperAdminService) DeleteAdmin(ctx context.Context, actor models.Actor, id int64) error {
	if id == actor.UserID {
		return apperrors.NewBadRequestError("You cannot delete your own account")
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.userRepo.WithTx(tx).SoftDelete(ctx, id, adminRoles); err != nil {
			return err
		}
		if err := s.tokenRepo.WithTx(tx).RevokeAllUserTokens(ctx, id); err != nil {
			return err
		}
		return s.logRepo.WithTx(tx).Insert(ctx, newLogEntry(actor, models.ActionAdminDelete, models.EntityUser, id, nil))
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("adminID", id).Int64("actorID", actor.UserID).Msg("Administrator deleted")
	return nil
}

// GetSettings returns the settings with the SMTP password masked
func (s *SuperAdminService) GetSettings(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	resp := dto.NewSettingsResponse(settings)
	return &resp, nil
}

// UpdateSettings replaces the settings. An empty or missing password keeps
// the stored one.
func (s *SuperAdminService) UpdateSettings(ctx context.Context, actor models.Actor, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	var updated *models.SystemSettings
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repo := s.settingsRepo.WithTx(tx)
		current, err := repo.Get(ctx)
		if err != nil {
			return err
		}

		password := current.SMTPPassword
		if req.SMTPPassword != nil && *req.SMTPPassword != "" {
			password = *req.SMTPPassword
		}
		actorID := actor.UserID
		updated = &models.SystemSettings{
			SMTPHost:          strings.TrimSpace(req.SMTPHost),
			SMTPPort:          req.SMTPPort,
			SMTPSecure:        req.SMTPSecure,
			SMTPUsername:      strings.TrimSpace(req.SMTPUsername),
			SMTPPassword:      password,
			SMTPFromEmail:     strings.TrimSpace(req.SMTPFromEmail),
			SMTPFromName:      strings.TrimSpace(req.SMTPFromName),
			EmailProvider:     req.EmailProvider,
			AdminContactEmail: strings.TrimSpace(req.AdminContactEmail),
			UpdatedBy:         &actorID,
		}
		if err := repo.Update(ctx, updated); err != nil {
			return err
		}

		return s.logRepo.WithTx(tx).Insert(ctx, newLogEntry(actor, models.ActionSettingsUpdate, models.EntitySettings, 0,
			map[string]interface{}{
				"smtpHost":        updated.SMTPHost,
				"emailProvider":   updated.EmailProvider,
				"passwordChanged": password != current.SMTPPassword,
			}))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("actorID", actor.UserID).Msg("System settings updated")
	resp := dto.NewSettingsResponse(updated)
	return &resp, nil
}

// SendTestEmail sends a message with the current settings
func (s *SuperAdminService) SendTestEmail(ctx context.Context, to string) error {
	err := s.emails.SendTestEmail(ctx, to)
	metrics.RecordEmail("test", err)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrEmailDeliveryDisabled) {
			return err
		}
		s.logger.Warn().Err(err).Msg("Test email failed")
		return apperrors.NewCustomError(apperrors.ErrBadRequest, "Test email failed: "+err.Error())
	}
	return nil
}
