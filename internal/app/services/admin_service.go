package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/app/repositories"
	"github.com/tpcell/portal/internal/db"
	"github.com/tpcell/portal/internal/pkg/export"
	"github.com/tpcell/portal/internal/pkg/helpers"
)

const dashboardCacheKey = "dashboard"

// deactivatableRoles are the accounts admins may deactivate
var deactivatableRoles = []models.RoleType{models.RoleStudent, models.RoleCompany}

// AdminService serves the placement cell back office
type AdminService struct {
	tx          db.Transactor
	userRepo    *repositories.UserRepository
	tokenRepo   *repositories.TokenRepository
	studentRepo *repositories.StudentRepository
	companyRepo *repositories.CompanyRepository
	jafRepo     *repositories.JAFRepository
	logRepo     *repositories.ActivityLogRepository
	statsRepo   *repositories.StatsRepository
	cache       *cache.Cache
	logger      zerolog.Logger
}

// NewAdminService creates a new AdminService. Dashboard statistics are cached
// for dashboardTTL.
func NewAdminService(tx db.Transactor, repos *repositories.Repositories, dashboardTTL time.Duration, logger zerolog.Logger) *AdminService {
	return &AdminService{
		tx:          tx,
		userRepo:    repos.UserRepository,
		tokenRepo:   repos.TokenRepository,
		studentRepo: repos.StudentRepository,
		companyRepo: repos.CompanyRepository,
		jafRepo:     repos.JAFRepository,
		logRepo:     repos.ActivityLogRepository,
		statsRepo:   repos.StatsRepository,
		cache:       cache.New(dashboardTTL, 2*dashboardTTL),
		logger:      logger,
	}
}

// ListStudents returns a page of students
func (s *AdminService) ListStudents(ctx context.Context, filter models.StudentFilter) ([]*dto.StudentListItem, int64, error) {
	return s.studentRepo.List(ctx, filter)
}

// ExportStudents writes every student matching filter as an xlsx workbook
func (s *AdminService) ExportStudents(ctx context.Context, filter models.StudentFilter, w io.Writer) error {
	filter.Offset, filter.Limit = 0, 0
	items, _, err := s.studentRepo.List(ctx, filter)
	if err != nil {
		return err
	}

	t := &export.Table{
		Sheet: "Students",
		Headers: []string{"Student ID", "Roll Number", "Name", "Email", "Phone", "Branch", "Degree", "Batch",
			"CGPA", "Email Verified", "Verification Status", "Registered At"},
	}
	for _, it := range items {
		var cgpa interface{} = ""
		if it.CGPA != nil {
			cgpa = *it.CGPA
		}
		t.Rows = append(t.Rows, []interface{}{
			it.ID, it.RollNumber, it.FullName, it.Email, helpers.StringValue(it.Phone), it.Branch, it.Degree,
			it.Batch, cgpa, it.IsEmailVerified, string(it.VerificationStatus), it.CreatedAt.Format(time.RFC3339),
		})
	}
	return export.WriteXLSX(w, t)
}

// ListCompanies returns a page of companies
func (s *AdminService) ListCompanies(ctx context.Context, filter models.CompanyFilter) ([]*models.Company, int64, error) {
	return s.companyRepo.List(ctx, filter)
}

// ListJAFs returns a page of forms across companies
func (s *AdminService) ListJAFs(ctx context.Context, filter models.JAFFilter) ([]*models.JAF, int64, error) {
	return s.jafRepo.List(ctx, filter)
}

// GetJAF returns any form
func (s *AdminService) GetJAF(ctx context.Context, id int64) (*models.JAF, error) {
	return s.jafRepo.GetByID(ctx, id)
}

// DeactivateUser soft deletes a student or company account and ends its
// sessions. The account change and its activity log commit together.
func (s *AdminService) DeactivateUser(ctx context.Context, actor models.Actor, userID int64) error {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.userRepo.WithTx(tx).SoftDelete(ctx, userID, deactivatableRoles); err != nil {
			return err
		}
		if err := s.tokenRepo.WithTx(tx).RevokeAllUserTokens(ctx, userID); err != nil {
			return err
		}
		return s.logRepo.WithTx(tx).Insert(ctx, newLogEntry(actor, models.ActionUserDeactivation, models.EntityUser, userID, nil))
	})
	if err != nil {
		return err
	}

	s.cache.Delete(dashboardCacheKey)
	s.logger.Info().Int64("userID", userID).Int64("actorID", actor.UserID).Msg("User deactivated")
	return nil
}

// ListActivityLogs returns a page of the activity log, newest first
func (s *AdminService) ListActivityLogs(ctx context.Context, filter models.ActivityLogFilter) ([]*models.ActivityLog, int64, error) {
	return s.logRepo.List(ctx, filter)
}

// Dashboard returns the placement statistics, cached briefly
func (s *AdminService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	if cached, ok := s.cache.Get(dashboardCacheKey); ok {
		return cached.(*models.DashboardStats), nil
	}

	stats, err := s.statsRepo.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}
	s.cache.SetDefault(dashboardCacheKey, stats)
	return stats, nil
}
