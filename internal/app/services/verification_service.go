package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/app/repositories"
	"github.com/tpcell/portal/internal/app/workflow"
	"github.com/tpcell/portal/internal/db"
	"github.com/tpcell/portal/internal/pkg/apperrors"
	"github.com/tpcell/portal/internal/pkg/email"
	"github.com/tpcell/portal/internal/pkg/helpers"
	"github.com/tpcell/portal/internal/pkg/metrics"
	"github.com/tpcell/portal/internal/pkg/websocket"
)

// batchOp describes one status change applied to many rows of a table
type batchOp[S ~string] struct {
	entity   models.EntityType
	notFound error
	to       S
	action   string
	remarks  *string
	lock     func(ctx context.Context, tx pgx.Tx, ids []int64) (map[int64]S, error)
	check    func(from, to S) error
	apply    func(ctx context.Context, tx pgx.Tx, ids []int64) (int64, error)
}

// batchOutcome holds the ids that changed and the reason each other id did not
type batchOutcome struct {
	succeeded []int64
	failed    map[int64]error
	order     []int64
}

func (o *batchOutcome) result() *dto.BulkResult {
	res := &dto.BulkResult{Succeeded: []int64{}, Failed: []dto.BulkFailure{}}
	res.Succeeded = append(res.Succeeded, o.succeeded...)
	for _, id := range o.order {
		if err, ok := o.failed[id]; ok {
			res.Failed = append(res.Failed, dto.BulkFailure{ID: id, Error: apperrors.MessageOf(err, err.Error())})
		}
	}
	return res
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// runBatch locks the rows, checks each transition, then applies one multi-row
// update and one multi-row activity log insert, all in a single transaction.
// Rows that are missing or cannot move are skipped and reported.
func runBatch[S ~string](ctx context.Context, txr db.Transactor, logs *repositories.ActivityLogRepository, actor models.Actor, ids []int64, op batchOp[S]) (*batchOutcome, error) {
	out := &batchOutcome{order: dedupeIDs(ids)}

	err := txr.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		out.succeeded = nil
		out.failed = make(map[int64]error)

		statuses, err := op.lock(ctx, tx, out.order)
		if err != nil {
			return err
		}

		eligible := make([]int64, 0, len(out.order))
		for _, id := range out.order {
			from, ok := statuses[id]
			if !ok {
				out.failed[id] = op.notFound
				continue
			}
			if err := op.check(from, op.to); err != nil {
				out.failed[id] = err
				continue
			}
			eligible = append(eligible, id)
		}
		if len(eligible) == 0 {
			return nil
		}

		n, err := op.apply(ctx, tx, eligible)
		if err != nil {
			return err
		}
		if n != int64(len(eligible)) {
			return fmt.Errorf("updated %d of %d locked rows", n, len(eligible))
		}

		entries := make([]*models.ActivityLog, 0, len(eligible))
		for _, id := range eligible {
			details := map[string]interface{}{"from": statuses[id], "to": op.to}
			if op.remarks != nil {
				details["remarks"] = *op.remarks
			}
			entries = append(entries, newLogEntry(actor, op.action, op.entity, id, details))
		}
		if err := logs.WithTx(tx).Insert(ctx, entries...); err != nil {
			return err
		}

		out.succeeded = eligible
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(string(op.entity), string(op.to), len(out.succeeded))
	return out, nil
}

// VerificationService records placement cell decisions on students,
// companies and job announcement forms.
type VerificationService struct {
	tx          db.Transactor
	studentRepo *repositories.StudentRepository
	companyRepo *repositories.CompanyRepository
	jafRepo     *repositories.JAFRepository
	logRepo     *repositories.ActivityLogRepository
	emails      email.EmailService
	notifier    Notifier
	logger      zerolog.Logger
}

// NewVerificationService creates a new VerificationService
func NewVerificationService(
	tx db.Transactor,
	repos *repositories.Repositories,
	emails email.EmailService,
	notifier Notifier,
	logger zerolog.Logger,
) *VerificationService {
	if notifier == nil {
		notifier = NopNotifier
	}
	return &VerificationService{
		tx:          tx,
		studentRepo: repos.StudentRepository,
		companyRepo: repos.CompanyRepository,
		jafRepo:     repos.JAFRepository,
		logRepo:     repos.ActivityLogRepository,
		emails:      emails,
		notifier:    notifier,
		logger:      logger,
	}
}

func remarksOf(remarks string) *string {
	return helpers.NullableString(remarks)
}

func (s *VerificationService) studentOp(to models.VerificationStatus, adminID int64, remarks *string) batchOp[models.VerificationStatus] {
	return batchOp[models.VerificationStatus]{
		entity:   models.EntityStudent,
		notFound: apperrors.ErrStudentNotFound,
		to:       to,
		action:   workflow.VerificationAction(models.EntityStudent, to),
		remarks:  remarks,
		lock: func(ctx context.Context, tx pgx.Tx, ids []int64) (map[int64]models.VerificationStatus, error) {
			return s.studentRepo.WithTx(tx).LockStatuses(ctx, ids)
		},
		check: workflow.CheckVerificationTransition,
		apply: func(ctx context.Context, tx pgx.Tx, ids []int64) (int64, error) {
			return s.studentRepo.WithTx(tx).SetVerification(ctx, ids, to, adminID, remarks)
		},
	}
}

func (s *VerificationService) companyOp(to models.VerificationStatus, adminID int64, remarks *string) batchOp[models.VerificationStatus] {
	return batchOp[models.VerificationStatus]{
		entity:   models.EntityCompany,
		notFound: apperrors.ErrCompanyNotFound,
		to:       to,
		action:   workflow.VerificationAction(models.EntityCompany, to),
		remarks:  remarks,
		lock: func(ctx context.Context, tx pgx.Tx, ids []int64) (map[int64]models.VerificationStatus, error) {
			return s.companyRepo.WithTx(tx).LockStatuses(ctx, ids)
		},
		check: workflow.CheckVerificationTransition,
		apply: func(ctx context.Context, tx pgx.Tx, ids []int64) (int64, error) {
			return s.companyRepo.WithTx(tx).SetVerification(ctx, ids, to, adminID, remarks)
		},
	}
}

func (s *VerificationService) jafOp(to models.JAFStatus, adminID int64, remarks *string) batchOp[models.JAFStatus] {
	return batchOp[models.JAFStatus]{
		entity:   models.EntityJAF,
		notFound: apperrors.ErrJAFNotFound,
		to:       to,
		action:   workflow.JAFReviewAction(to),
		remarks:  remarks,
		lock: func(ctx context.Context, tx pgx.Tx, ids []int64) (map[int64]models.JAFStatus, error) {
			return s.jafRepo.WithTx(tx).LockStatuses(ctx, ids)
		},
		check: workflow.CheckJAFReview,
		apply: func(ctx context.Context, tx pgx.Tx, ids []int64) (int64, error) {
			return s.jafRepo.WithTx(tx).SetReview(ctx, ids, to, adminID, remarks)
		},
	}
}

// single runs op on one id and returns that item's failure as the error
func single[S ~string](ctx context.Context, s *VerificationService, actor models.Actor, id int64, op batchOp[S]) error {
	out, err := runBatch(ctx, s.tx, s.logRepo, actor, []int64{id}, op)
	if err != nil {
		return err
	}
	if err := out.failed[id]; err != nil {
		return err
	}
	return nil
}

// bulk runs op on ids. A database failure rolls the whole batch back and is
// reported against every item rather than as an error.
func bulk[S ~string](ctx context.Context, s *VerificationService, actor models.Actor, ids []int64, op batchOp[S]) (*batchOutcome, *dto.BulkResult) {
	out, err := runBatch(ctx, s.tx, s.logRepo, actor, ids, op)
	if err != nil {
		s.logger.Error().Err(err).Str("entity", string(op.entity)).Int("items", len(ids)).Msg("Bulk status change rolled back")
		failed := &batchOutcome{order: dedupeIDs(ids), failed: map[int64]error{}}
		for _, id := range failed.order {
			failed.failed[id] = errors.New("batch could not be applied, nothing was changed")
		}
		return failed, failed.result()
	}
	return out, out.result()
}

// VerifyStudent marks a student verified by the placement cell
func (s *VerificationService) VerifyStudent(ctx context.Context, actor models.Actor, studentID int64) error {
	if err := single(ctx, s, actor, studentID, s.studentOp(models.VerificationVerified, actor.UserID, nil)); err != nil {
		return err
	}
	s.announceAccounts(ctx, models.EntityStudent, []int64{studentID}, true, "")
	return nil
}

// RejectStudent rejects a student, keeping remarks as the rejection reason
func (s *VerificationService) RejectStudent(ctx context.Context, actor models.Actor, studentID int64, remarks string) error {
	if err := single(ctx, s, actor, studentID, s.studentOp(models.VerificationRejected, actor.UserID, remarksOf(remarks))); err != nil {
		return err
	}
	s.announceAccounts(ctx, models.EntityStudent, []int64{studentID}, false, remarks)
	return nil
}

// BulkStudents verifies or rejects many students in one transaction
func (s *VerificationService) BulkStudents(ctx context.Context, actor models.Actor, req *dto.BulkVerificationRequest) *dto.BulkResult {
	to := req.Target()
	var remarks *string
	if to == models.VerificationRejected {
		remarks = remarksOf(req.Remarks)
	}
	out, res := bulk(ctx, s, actor, req.IDs, s.studentOp(to, actor.UserID, remarks))
	s.announceAccounts(ctx, models.EntityStudent, out.succeeded, to == models.VerificationVerified, req.Remarks)
	return res
}

// VerifyCompany marks a company verified by the placement cell
func (s *VerificationService) VerifyCompany(ctx context.Context, actor models.Actor, companyID int64) error {
	if err := single(ctx, s, actor, companyID, s.companyOp(models.VerificationVerified, actor.UserID, nil)); err != nil {
		return err
	}
	s.announceAccounts(ctx, models.EntityCompany, []int64{companyID}, true, "")
	return nil
}

// RejectCompany rejects a company, keeping remarks as the rejection reason
func (s *VerificationService) RejectCompany(ctx context.Context, actor models.Actor, companyID int64, remarks string) error {
	if err := single(ctx, s, actor, companyID, s.companyOp(models.VerificationRejected, actor.UserID, remarksOf(remarks))); err != nil {
		return err
	}
	s.announceAccounts(ctx, models.EntityCompany, []int64{companyID}, false, remarks)
	return nil
}

// BulkCompanies verifies or rejects many companies in one transaction
func (s *VerificationService) BulkCompanies(ctx context.Context, actor models.Actor, req *dto.BulkVerificationRequest) *dto.BulkResult {
	to := req.Target()
	var remarks *string
	if to == models.VerificationRejected {
		remarks = remarksOf(req.Remarks)
	}
	out, res := bulk(ctx, s, actor, req.IDs, s.companyOp(to, actor.UserID, remarks))
	s.announceAccounts(ctx, models.EntityCompany, out.succeeded, to == models.VerificationVerified, req.Remarks)
	return res
}

// ApproveJAF publishes a form to eligible students
func (s *VerificationService) ApproveJAF(ctx context.Context, actor models.Actor, jafID int64, remarks string) error {
	if err := single(ctx, s, actor, jafID, s.jafOp(models.JAFApproved, actor.UserID, remarksOf(remarks))); err != nil {
		return err
	}
	s.announceJAFs(ctx, []int64{jafID}, models.JAFApproved, remarks)
	return nil
}

// RejectJAF rejects a form
func (s *VerificationService) RejectJAF(ctx context.Context, actor models.Actor, jafID int64, remarks string) error {
	if err := single(ctx, s, actor, jafID, s.jafOp(models.JAFRejected, actor.UserID, remarksOf(remarks))); err != nil {
		return err
	}
	s.announceJAFs(ctx, []int64{jafID}, models.JAFRejected, remarks)
	return nil
}

// BulkJAFs approves or rejects many forms in one transaction
func (s *VerificationService) BulkJAFs(ctx context.Context, actor models.Actor, req *dto.BulkJAFReviewRequest) *dto.BulkResult {
	to := req.Target()
	out, res := bulk(ctx, s, actor, req.IDs, s.jafOp(to, actor.UserID, remarksOf(req.Remarks)))
	s.announceJAFs(ctx, out.succeeded, to, req.Remarks)
	return res
}

// announceAccounts emails and notifies the owners of committed decisions.
// Failures are logged only.
func (s *VerificationService) announceAccounts(ctx context.Context, entity models.EntityType, ids []int64, verified bool, remarks string) {
	if len(ids) == 0 {
		return
	}

	var recipients []models.Recipient
	var err error
	if entity == models.EntityStudent {
		recipients, err = s.studentRepo.Recipients(ctx, ids)
	} else {
		recipients, err = s.companyRepo.Recipients(ctx, ids)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("entity", string(entity)).Msg("Failed to load verification recipients")
		return
	}

	title := "Account verified"
	body := "Your account has been verified by the placement cell."
	if !verified {
		title = "Account verification rejected"
		body = "Your account could not be verified by the placement cell."
	}

	mailCtx := detached(ctx)
	for _, r := range recipients {
		s.notifier.Notify(r.UserID, websocket.Notification{
			Kind:       websocket.KindVerification,
			Title:      title,
			Body:       body,
			EntityType: string(entity),
			EntityID:   r.EntityID,
			Data:       map[string]interface{}{"verified": verified},
			Timestamp:  time.Now(),
		})

		err := s.emails.SendVerificationResultEmail(mailCtx, r.Email, r.Name, string(entity), verified, remarks)
		metrics.RecordEmail("verification_result", err)
		if err != nil {
			s.logger.Error().Err(err).Str("entity", string(entity)).Int64("id", r.EntityID).Msg("Failed to send verification result email")
		}
	}
}

// announceJAFs notifies the posting companies of review decisions
func (s *VerificationService) announceJAFs(ctx context.Context, ids []int64, to models.JAFStatus, remarks string) {
	if len(ids) == 0 {
		return
	}
	recipients, err := s.jafRepo.Recipients(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load JAF review recipients")
		return
	}

	title := "Job announcement approved"
	if to == models.JAFRejected {
		title = "Job announcement rejected"
	}
	for _, r := range recipients {
		data := map[string]interface{}{"status": to}
		if remarks != "" {
			data["remarks"] = remarks
		}
		s.notifier.Notify(r.UserID, websocket.Notification{
			Kind:       websocket.KindJAFReview,
			Title:      title,
			Body:       fmt.Sprintf("Form #%d was reviewed by the placement cell", r.EntityID),
			EntityType: string(models.EntityJAF),
			EntityID:   r.EntityID,
			Data:       data,
			Timestamp:  time.Now(),
		})
	}
}
