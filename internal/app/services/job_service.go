package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/tpcell/portal/internal/app/auth"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/app/repositories"
	"github.com/tpcell/portal/internal/app/workflow"
	"github.com/tpcell/portal/internal/pkg/apperrors"
)

// JobService shows open jobs to students and takes their applications
type JobService struct {
	studentRepo     *repositories.StudentRepository
	jafRepo         *repositories.JAFRepository
	applicationRepo *repositories.ApplicationRepository
	authz           *auth.AuthorizationService
	logger          zerolog.Logger
	now             func() time.Time
}

// NewJobService creates a new JobService
func NewJobService(repos *repositories.Repositories, authz *auth.AuthorizationService, logger zerolog.Logger) *JobService {
	return &JobService{
		studentRepo:     repos.StudentRepository,
		jafRepo:         repos.JAFRepository,
		applicationRepo: repos.ApplicationRepository,
		authz:           authz,
		logger:          logger,
		now:             time.Now,
	}
}

func jobResponse(jaf *models.JAF, eligibility workflow.Eligibility, applied bool) *dto.JobResponse {
	return &dto.JobResponse{
		JAF:               jaf,
		Eligible:          eligibility.Eligible,
		IneligibleReasons: eligibility.Reasons,
		HasApplied:        applied,
	}
}

// ListJobs returns the jobs visible to the student with eligibility flags
func (s *JobService) ListJobs(ctx context.Context, userID int64, filter models.JAFFilter) ([]*dto.JobResponse, int64, error) {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	academics, err := s.studentRepo.GetAcademics(ctx, student.ID)
	if err != nil {
		return nil, 0, err
	}

	jafs, total, err := s.jafRepo.ListVisible(ctx, filter, s.now())
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(jafs))
	for i, j := range jafs {
		ids[i] = j.ID
	}
	applied, err := s.applicationRepo.AppliedJAFIDs(ctx, student.ID, ids)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.JobResponse, 0, len(jafs))
	for _, j := range jafs {
		items = append(items, jobResponse(j, workflow.CheckEligibility(student, academics, j), applied[j.ID]))
	}
	return items, total, nil
}

// GetJob returns one visible job with its eligibility flag
func (s *JobService) GetJob(ctx context.Context, userID, jafID int64) (*dto.JobResponse, error) {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	jaf, err := s.jafRepo.GetVisibleByID(ctx, jafID, s.now())
	if err != nil {
		return nil, err
	}
	academics, err := s.studentRepo.GetAcademics(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	applied, err := s.applicationRepo.AppliedJAFIDs(ctx, student.ID, []int64{jaf.ID})
	if err != nil {
		return nil, err
	}
	return jobResponse(jaf, workflow.CheckEligibility(student, academics, jaf), applied[jaf.ID]), nil
}

// Apply files an application of the student to a visible job. The unique
// (student, JAF) constraint rejects a second application with 409.
func (s *JobService) Apply(ctx context.Context, userID, jafID int64) (*models.Application, error) {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !student.IsEmailVerified {
		return nil, apperrors.ErrEmailNotVerified
	}
	if !student.IsVerifiedByAdmin {
		return nil, apperrors.ErrNotVerifiedByAdmin
	}

	jaf, err := s.jafRepo.GetVisibleByID(ctx, jafID, s.now())
	if err != nil {
		return nil, err
	}

	academics, err := s.studentRepo.GetAcademics(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	if eligibility := workflow.CheckEligibility(student, academics, jaf); !eligibility.Eligible {
		return nil, apperrors.NewCustomError(apperrors.ErrNotEligible, "You are not eligible for this job").
			WithDetails(map[string]interface{}{"reasons": eligibility.Reasons})
	}

	app := &models.Application{StudentID: student.ID, JAFID: jaf.ID}
	if err := s.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyApplied) {
			s.logger.Info().Int64("studentID", student.ID).Int64("jafID", jaf.ID).Msg("Duplicate application rejected")
		}
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Int64("jafID", jaf.ID).Int64("applicationID", app.ID).Msg("Application submitted")
	return app, nil
}

// MyApplications lists the applications of the student
func (s *JobService) MyApplications(ctx context.Context, userID int64) ([]*models.ApplicationView, error) {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.applicationRepo.ListByStudent(ctx, student.ID)
}
