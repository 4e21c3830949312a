package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/tpcell/portal/internal/app/auth"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/app/repositories"
	"github.com/tpcell/portal/internal/app/workflow"
	"github.com/tpcell/portal/internal/db"
	"github.com/tpcell/portal/internal/pkg/apperrors"
	"github.com/tpcell/portal/internal/pkg/export"
	"github.com/tpcell/portal/internal/pkg/helpers"
)

// CompanyService manages the company profile and its job announcement forms
type CompanyService struct {
	tx              db.Transactor
	companyRepo     *repositories.CompanyRepository
	jafRepo         *repositories.JAFRepository
	applicationRepo *repositories.ApplicationRepository
	authz           *auth.AuthorizationService
	logger          zerolog.Logger
	now             func() time.Time
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(tx db.Transactor, repos *repositories.Repositories, authz *auth.AuthorizationService, logger zerolog.Logger) *CompanyService {
	return &CompanyService{
		tx:              tx,
		companyRepo:     repos.CompanyRepository,
		jafRepo:         repos.JAFRepository,
		applicationRepo: repos.ApplicationRepository,
		authz:           authz,
		logger:          logger,
		now:             time.Now,
	}
}

// GetProfile returns the company of userID with its details
func (s *CompanyService) GetProfile(ctx context.Context, userID int64) (*models.Company, error) {
	company, err := s.authz.CompanyForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withDetails(ctx, company)
}

// GetCompany returns a company with its details for staff
func (s *CompanyService) GetCompany(ctx context.Context, companyID int64) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return s.withDetails(ctx, company)
}

func (s *CompanyService) withDetails(ctx context.Context, company *models.Company) (*models.Company, error) {
	details, err := s.companyRepo.GetDetails(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	if details == nil {
		details = &models.CompanyDetails{CompanyID: company.ID}
	}
	company.Details = details
	return company, nil
}

// UpdateProfile replaces the company columns and details in one transaction
func (s *CompanyService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateCompanyProfileRequest) (*models.Company, error) {
	company, err := s.authz.CompanyForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	company.Name = strings.TrimSpace(req.Name)
	company.Website = req.Website
	company.Industry = req.Industry
	details := req.Details(company.ID)

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repo := s.companyRepo.WithTx(tx)
		if err := repo.UpdateProfile(ctx, company); err != nil {
			return err
		}
		return repo.UpsertDetails(ctx, details)
	})
	if err != nil {
		return nil, err
	}

	company.Details = details
	return company, nil
}

// CreateJAF files a new form for review. Only companies verified by the
// placement cell may post jobs.
func (s *CompanyService) CreateJAF(ctx context.Context, userID int64, req *dto.JAFRequest) (*models.JAF, error) {
	company, err := s.authz.CompanyForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !company.IsVerifiedByAdmin {
		return nil, apperrors.NewCustomError(apperrors.ErrNotVerifiedByAdmin,
			"Your company must be verified by the placement cell before posting jobs")
	}
	if err := req.Validate(s.now()); err != nil {
		return nil, err
	}

	jaf := req.ToModel(company.ID)
	if err := s.jafRepo.Create(ctx, jaf); err != nil {
		return nil, err
	}
	jaf.CompanyName = company.Name

	s.logger.Info().Int64("companyID", company.ID).Int64("jafID", jaf.ID).Str("formType", string(jaf.FormType)).Msg("JAF submitted for review")
	return jaf, nil
}

// ListJAFs returns the forms of the company
func (s *CompanyService) ListJAFs(ctx context.Context, userID int64, filter models.JAFFilter) ([]*models.JAF, int64, error) {
	company, err := s.authz.CompanyForUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	filter.CompanyID = &company.ID
	return s.jafRepo.List(ctx, filter)
}

// GetJAF returns a form owned by the company
func (s *CompanyService) GetJAF(ctx context.Context, userID, jafID int64) (*models.JAF, error) {
	jaf, _, err := s.authz.ValidateJAFOwnership(ctx, jafID, userID)
	return jaf, err
}

// UpdateJAF edits a form while it awaits review
func (s *CompanyService) UpdateJAF(ctx context.Context, userID, jafID int64, req *dto.JAFRequest) (*models.JAF, error) {
	current, company, err := s.authz.ValidateJAFOwnership(ctx, jafID, userID)
	if err != nil {
		return nil, err
	}
	if !workflow.IsJAFEditable(current.Status) {
		return nil, apperrors.NewConflictError("Only forms awaiting review can be edited")
	}
	if err := req.Validate(s.now()); err != nil {
		return nil, err
	}

	jaf := req.ToModel(company.ID)
	jaf.ID = jafID
	if err := s.jafRepo.Update(ctx, jaf); err != nil {
		return nil, err
	}
	return s.jafRepo.GetByID(ctx, jafID)
}

// UpdateJobStatus closes or cancels a job
func (s *CompanyService) UpdateJobStatus(ctx context.Context, userID, jafID int64, to models.JobStatus) (*models.JAF, error) {
	jaf, _, err := s.authz.ValidateJAFOwnership(ctx, jafID, userID)
	if err != nil {
		return nil, err
	}
	if err := workflow.CheckJobStatusChange(jaf.JobStatus, to); err != nil {
		return nil, err
	}
	if err := s.jafRepo.SetJobStatus(ctx, jafID, jaf.JobStatus, to); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("jafID", jafID).Str("from", string(jaf.JobStatus)).Str("to", string(to)).Msg("Job status changed")
	jaf.JobStatus = to
	return jaf, nil
}

// ListApplicants returns the applications to a form owned by the company
func (s *CompanyService) ListApplicants(ctx context.Context, userID, jafID int64) ([]*models.ApplicationView, error) {
	if _, _, err := s.authz.ValidateJAFOwnership(ctx, jafID, userID); err != nil {
		return nil, err
	}
	return s.applicationRepo.ListByJAF(ctx, jafID)
}

// ExportApplicants writes the applicants of a form as an xlsx workbook and
// returns a suggested file name.
func (s *CompanyService) ExportApplicants(ctx context.Context, userID, jafID int64, w io.Writer) (string, error) {
	jaf, _, err := s.authz.ValidateJAFOwnership(ctx, jafID, userID)
	if err != nil {
		return "", err
	}
	views, err := s.applicationRepo.ListByJAF(ctx, jafID)
	if err != nil {
		return "", err
	}
	if err := export.WriteXLSX(w, applicantsTable(views)); err != nil {
		return "", err
	}
	return fmt.Sprintf("applicants-jaf-%d.xlsx", jaf.ID), nil
}

func applicantsTable(views []*models.ApplicationView) *export.Table {
	t := &export.Table{
		Sheet: "Applicants",
		Headers: []string{"Application ID", "Roll Number", "Name", "Email", "Branch", "Degree", "Batch",
			"CGPA", "Active Backlogs", "Status", "Round", "Remarks", "Applied At"},
	}
	for _, v := range views {
		var cgpa interface{} = ""
		if v.CGPA != nil {
			cgpa = *v.CGPA
		}
		t.Rows = append(t.Rows, []interface{}{
			v.ID, v.RollNumber, v.StudentName, v.StudentEmail, v.Branch, v.Degree, v.Batch,
			cgpa, v.ActiveBacklogs, string(v.Status), v.CurrentRound, helpers.StringValue(v.Remarks),
			v.AppliedAt.Format(time.RFC3339),
		})
	}
	return t
}
