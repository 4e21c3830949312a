package services

import (
	"context"
	"fmt"
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
	"github.com/tpcell/portal/internal/pkg/email"
	"github.com/tpcell/portal/internal/pkg/helpers"
	"github.com/tpcell/portal/internal/pkg/metrics"
	"github.com/tpcell/portal/internal/pkg/websocket"
)

// ApplicationService moves applications through the selection rounds
type ApplicationService struct {
	tx              db.Transactor
	applicationRepo *repositories.ApplicationRepository
	activityRepo    *repositories.ActivityLogRepository
	authz           *auth.AuthorizationService
	emails          email.EmailService
	notifier        Notifier
	logger          zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	tx db.Transactor,
	repos *repositories.Repositories,
	authz *auth.AuthorizationService,
	emails email.EmailService,
	notifier Notifier,
	logger zerolog.Logger,
) *ApplicationService {
	if notifier == nil {
		notifier = NopNotifier
	}
	return &ApplicationService{
		tx:              tx,
		applicationRepo: repos.ApplicationRepository,
		activityRepo:    repos.ActivityLogRepository,
		authz:           authz,
		emails:          emails,
		notifier:        notifier,
		logger:          logger,
	}
}

// ListForJAF returns the applications to any JAF for staff
func (s *ApplicationService) ListForJAF(ctx context.Context, jafID int64) ([]*models.ApplicationView, error) {
	return s.applicationRepo.ListByJAF(ctx, jafID)
}

// UpdateStatus moves an application to req.Status. The status change and
// its activity log entry commit together.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor models.Actor, applicationID int64, req *dto.ApplicationStatusRequest) (*models.ApplicationView, error) {
	var from models.ApplicationStatus
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		apps := s.applicationRepo.WithTx(tx)

		app, companyID, err := apps.LockForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		if err := s.authz.CanChangeApplication(ctx, actor, companyID); err != nil {
			return err
		}
		if err := workflow.CheckApplicationTransition(app.Status, req.Status); err != nil {
			return err
		}

		from = app.Status
		app.Status = req.Status
		app.CurrentRound = workflow.CurrentRound(app.CurrentRound, req.Status)
		if req.Remarks != nil {
			app.Remarks = helpers.NullableString(*req.Remarks)
		}
		if err := apps.UpdateStatus(ctx, app); err != nil {
			return err
		}

		return s.activityRepo.WithTx(tx).Insert(ctx, newLogEntry(actor, models.ActionApplicationStatusUpdate,
			models.EntityApplication, app.ID, map[string]interface{}{
				"from":         from,
				"to":           app.Status,
				"currentRound": app.CurrentRound,
				"jafId":        app.JAFID,
				"studentId":    app.StudentID,
			}))
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(string(models.EntityApplication), string(req.Status), 1)
	s.logger.Info().Int64("applicationID", applicationID).Int64("actorID", actor.UserID).
		Str("from", string(from)).Str("to", string(req.Status)).Msg("Application status updated")

	view, err := s.applicationRepo.GetView(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	s.notifyStudent(ctx, view)
	return view, nil
}

// notifyStudent tells the applicant about the new round. Failures are
// logged only; the status change is already committed.
func (s *ApplicationService) notifyStudent(ctx context.Context, view *models.ApplicationView) {
	status := strings.ReplaceAll(string(view.Status), "_", " ")
	remarks := helpers.StringValue(view.Remarks)

	s.notifier.Notify(view.StudentUserID, websocket.Notification{
		Kind:       websocket.KindApplicationStatus,
		Title:      "Application update",
		Body:       fmt.Sprintf("Your application for %s at %s moved to %s", view.JobTitle, view.CompanyName, status),
		EntityType: string(models.EntityApplication),
		EntityID:   view.ID,
		Data:       map[string]interface{}{"status": view.Status, "currentRound": view.CurrentRound},
		Timestamp:  time.Now(),
	})

	err := s.emails.SendApplicationStatusEmail(detached(ctx), view.StudentEmail, view.StudentName,
		view.JobTitle, view.CompanyName, string(view.Status), remarks)
	metrics.RecordEmail("application_status", err)
	if err != nil {
		s.logger.Error().Err(err).Int64("applicationID", view.ID).Msg("Failed to send application status email")
	}
}
