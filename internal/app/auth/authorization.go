package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/repositories"
	"github.com/tpcell/portal/internal/pkg/apperrors"
	"github.com/tpcell/portal/internal/pkg/logger"
)

// Ownership errors
var (
	ErrNotJAFOwner         = apperrors.NewForbiddenError("This job announcement belongs to another company")
	ErrNotApplicationOwner = apperrors.NewForbiddenError("This application belongs to another company's job")
)

// AuthorizationService resolves the profile behind a session and checks
// that callers only touch records they own.
type AuthorizationService struct {
	studentRepo *repositories.StudentRepository
	companyRepo *repositories.CompanyRepository
	jafRepo     *repositories.JAFRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(studentRepo *repositories.StudentRepository, companyRepo *repositories.CompanyRepository, jafRepo *repositories.JAFRepository) *AuthorizationService {
	return &AuthorizationService{
		studentRepo: studentRepo,
		companyRepo: companyRepo,
		jafRepo:     jafRepo,
	}
}

// StudentForUser returns the student profile of userID
func (s *AuthorizationService) StudentForUser(ctx context.Context, userID int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrStudentNotFound) {
			logger.Error().Err(err).Int64("userID", userID).Msg("Error loading student for user")
		}
		return nil, err
	}
	return student, nil
}

// CompanyForUser returns the company profile of userID
func (s *AuthorizationService) CompanyForUser(ctx context.Context, userID int64) (*models.Company, error) {
	company, err := s.companyRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCompanyNotFound) {
			logger.Error().Err(err).Int64("userID", userID).Msg("Error loading company for user")
		}
		return nil, err
	}
	return company, nil
}

// ValidateJAFOwnership loads a JAF and checks it belongs to the company of userID
func (s *AuthorizationService) ValidateJAFOwnership(ctx context.Context, jafID, userID int64) (*models.JAF, *models.Company, error) {
	company, err := s.CompanyForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	jaf, err := s.jafRepo.GetByID(ctx, jafID)
	if err != nil {
		if errors.Is(err, apperrors.ErrJAFNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("failed to check jaf ownership: %w", err)
	}

	if jaf.CompanyID != company.ID {
		logger.Warn().Int64("jafID", jafID).Int64("userID", userID).Msg("Company attempted to access another company's JAF")
		return nil, nil, ErrNotJAFOwner
	}
	return jaf, company, nil
}

// CanChangeApplication reports whether actor may move an application whose
// JAF belongs to companyID. Staff may change any application.
func (s *AuthorizationService) CanChangeApplication(ctx context.Context, actor models.Actor, companyID int64) error {
	if actor.Role.IsStaff() {
		return nil
	}
	if actor.Role != models.RoleCompany {
		return apperrors.ErrPermissionDenied
	}

	company, err := s.CompanyForUser(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if company.ID != companyID {
		return ErrNotApplicationOwner
	}
	return nil
}
