package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/db"
	"github.com/tpcell/portal/internal/pkg/apperrors"
	"github.com/tpcell/portal/internal/pkg/helpers"
	"github.com/tpcell/portal/internal/pkg/logger"
)

var jafColumns = []string{
	"j.id", "j.company_id", "j.form_type", "j.title", "j.description", "j.location", "j.ctc", "j.stipend",
	"j.eligible_batches", "j.eligible_branches", "j.eligible_degrees", "j.min_cgpa", "j.max_backlogs",
	"j.selection_process", "j.application_deadline", "j.status", "j.job_status", "j.remarks",
	"j.reviewed_by", "j.reviewed_at", "j.created_at", "j.updated_at", "c.name",
}

func scanJAF(row rowScanner) (*models.JAF, error) {
	j := &models.JAF{}
	err := row.Scan(&j.ID, &j.CompanyID, &j.FormType, &j.Title, &j.Description, &j.Location, &j.CTC, &j.Stipend,
		&j.EligibleBatches, &j.EligibleBranches, &j.EligibleDegrees, &j.MinCGPA, &j.MaxBacklogs,
		&j.SelectionProcess, &j.ApplicationDeadline, &j.Status, &j.JobStatus, &j.Remarks,
		&j.ReviewedBy, &j.ReviewedAt, &j.CreatedAt, &j.UpdatedAt, &j.CompanyName)
	if err != nil {
		return nil, err
	}
	return j, nil
}

// visibleToStudents is the predicate for JAFs a student may see at now
func visibleToStudents(now time.Time) squirrel.And {
	return squirrel.And{
		squirrel.Eq{"j.status": models.JAFApproved, "j.job_status": models.JobOpen, "c.is_verified_by_admin": true},
		squirrel.Gt{"j.application_deadline": now},
		squirrel.Expr("u.deleted_at IS NULL"),
	}
}

// JAFRepository handles job announcement forms
type JAFRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewJAFRepository creates a new JAFRepository
func NewJAFRepository(conn db.DBTX) *JAFRepository {
	return &JAFRepository{db: conn, sb: newBuilder()}
}

// WithTx returns a copy bound to tx
func (r *JAFRepository) WithTx(tx pgx.Tx) *JAFRepository {
	return &JAFRepository{db: tx, sb: r.sb}
}

func (r *JAFRepository) selectJAFs() squirrel.SelectBuilder {
	return r.sb.Select(jafColumns...).
		From("jafs j").
		Join("companies c ON c.id = j.company_id").
		Join("users u ON u.id = c.user_id")
}

// Create inserts a JAF in review
func (r *JAFRepository) Create(ctx context.Context, j *models.JAF) error {
	sql, args, err := r.sb.Insert("jafs").
		Columns("company_id", "form_type", "title", "description", "location", "ctc", "stipend",
			"eligible_batches", "eligible_branches", "eligible_degrees", "min_cgpa", "max_backlogs",
			"selection_process", "application_deadline").
		Values(j.CompanyID, j.FormType, j.Title, j.Description, j.Location, j.CTC, j.Stipend,
			j.EligibleBatches, j.EligibleBranches, j.EligibleDegrees, j.MinCGPA, j.MaxBacklogs,
			j.SelectionProcess, j.ApplicationDeadline).
		Suffix("RETURNING id, status, job_status, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create jaf query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&j.ID, &j.Status, &j.JobStatus, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("companyID", j.CompanyID).Msg("Error creating JAF")
		return fmt.Errorf("error creating jaf: %w", err)
	}
	return nil
}

func (r *JAFRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.JAF, error) {
	sql, args, err := r.selectJAFs().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get jaf query: %w", err)
	}

	j, err := scanJAF(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJAFNotFound
		}
		logger.Error().Err(err).Msg("Error scanning JAF row")
		return nil, fmt.Errorf("error retrieving jaf: %w", err)
	}
	return j, nil
}

// GetByID retrieves a JAF regardless of its state
func (r *JAFRepository) GetByID(ctx context.Context, id int64) (*models.JAF, error) {
	return r.getOne(ctx, squirrel.Eq{"j.id": id})
}

// GetVisibleByID retrieves a JAF only when students may see it at now
func (r *JAFRepository) GetVisibleByID(ctx context.Context, id int64, now time.Time) (*models.JAF, error) {
	return r.getOne(ctx, append(visibleToStudents(now), squirrel.Eq{"j.id": id}))
}

// Update replaces the editable fields of a JAF still in review
func (r *JAFRepository) Update(ctx context.Context, j *models.JAF) error {
	sql, args, err := r.sb.Update("jafs").
		Set("form_type", j.FormType).
		Set("title", j.Title).
		Set("description", j.Description).
		Set("location", j.Location).
		Set("ctc", j.CTC).
		Set("stipend", j.Stipend).
		Set("eligible_batches", j.EligibleBatches).
		Set("eligible_branches", j.EligibleBranches).
		Set("eligible_degrees", j.EligibleDegrees).
		Set("min_cgpa", j.MinCGPA).
		Set("max_backlogs", j.MaxBacklogs).
		Set("selection_process", j.SelectionProcess).
		Set("application_deadline", j.ApplicationDeadline).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": j.ID, "company_id": j.CompanyID, "status": models.JAFPendingReview}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update jaf query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("jafID", j.ID).Msg("Error updating JAF")
		return fmt.Errorf("error updating jaf: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("Only forms awaiting review can be edited")
	}
	return nil
}

func jafFilterWhere(f models.JAFFilter) squirrel.And {
	where := squirrel.And{}
	if f.CompanyID != nil {
		where = append(where, squirrel.Eq{"j.company_id": *f.CompanyID})
	}
	if f.Status != nil {
		where = append(where, squirrel.Eq{"j.status": *f.Status})
	}
	if f.JobStatus != nil {
		where = append(where, squirrel.Eq{"j.job_status": *f.JobStatus})
	}
	if f.FormType != nil {
		where = append(where, squirrel.Eq{"j.form_type": *f.FormType})
	}
	if f.Search != "" {
		pattern := helpers.LikePattern(f.Search)
		where = append(where, squirrel.Or{
			squirrel.ILike{"j.title": pattern},
			squirrel.ILike{"c.name": pattern},
		})
	}
	return where
}

func (r *JAFRepository) list(ctx context.Context, where squirrel.And, orderBy string, offset uint64, limit int) ([]*models.JAF, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("jafs j").
		Join("companies c ON c.id = j.company_id").
		Join("users u ON u.id = c.user_id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count jafs query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting jafs: %w", err)
	}

	q := r.selectJAFs().Where(where).OrderBy(orderBy, "j.id DESC").Offset(offset)
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list jafs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing JAFs")
		return nil, 0, fmt.Errorf("error listing jafs: %w", err)
	}
	defer rows.Close()

	jafs := []*models.JAF{}
	for rows.Next() {
		j, err := scanJAF(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning jaf: %w", err)
		}
		jafs = append(jafs, j)
	}
	return jafs, total, rows.Err()
}

// List returns JAFs matching f, newest first
func (r *JAFRepository) List(ctx context.Context, f models.JAFFilter) ([]*models.JAF, int64, error) {
	return r.list(ctx, jafFilterWhere(f), "j.created_at DESC", f.Offset, f.Limit)
}

// ListVisible returns the JAFs students may see at now, nearest deadline first.
// Only f.FormType, f.Search, f.Offset and f.Limit apply.
func (r *JAFRepository) ListVisible(ctx context.Context, f models.JAFFilter, now time.Time) ([]*models.JAF, int64, error) {
	where := visibleToStudents(now)
	if f.FormType != nil {
		where = append(where, squirrel.Eq{"j.form_type": *f.FormType})
	}
	if f.Search != "" {
		pattern := helpers.LikePattern(f.Search)
		where = append(where, squirrel.Or{
			squirrel.ILike{"j.title": pattern},
			squirrel.ILike{"c.name": pattern},
		})
	}
	return r.list(ctx, where, "j.application_deadline ASC", f.Offset, f.Limit)
}

// LockStatuses locks the given JAFs for update and returns the review status
// of each one found.
func (r *JAFRepository) LockStatuses(ctx context.Context, ids []int64) (map[int64]models.JAFStatus, error) {
	sql, args, err := r.sb.Select("id", "status").
		From("jafs").
		Where(squirrel.Expr("id = ANY(?)", ids)).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lock jafs query: %w", err)
	}
	return scanStatuses[models.JAFStatus](ctx, r.db, sql, args)
}

// SetReview records the review decision on every JAF in ids
func (r *JAFRepository) SetReview(ctx context.Context, ids []int64, status models.JAFStatus, reviewerID int64, remarks *string) (int64, error) {
	sql, args, err := r.sb.Update("jafs").
		Set("status", status).
		Set("remarks", remarks).
		Set("reviewed_by", reviewerID).
		Set("reviewed_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Expr("id = ANY(?)", ids)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build review jafs query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error recording JAF review")
		return 0, fmt.Errorf("error reviewing jafs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SetJobStatus moves a JAF from one job status to another. It fails with a
// conflict when the JAF left from in the meantime.
func (r *JAFRepository) SetJobStatus(ctx context.Context, id int64, from, to models.JobStatus) error {
	sql, args, err := r.sb.Update("jafs").
		Set("job_status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "job_status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build job status query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating job status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("Job status changed concurrently")
	}
	return nil
}

// CloseExpired closes open approved JAFs whose deadline passed before now
func (r *JAFRepository) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	sql, args, err := r.sb.Update("jafs").
		Set("job_status", models.JobClosed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": models.JAFApproved, "job_status": models.JobOpen}).
		Where(squirrel.LtOrEq{"application_deadline": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build close expired query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error closing expired JAFs")
		return 0, fmt.Errorf("error closing expired jafs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Recipients returns the company contact of each JAF in ids
func (r *JAFRepository) Recipients(ctx context.Context, ids []int64) ([]models.Recipient, error) {
	sql, args, err := r.sb.Select("j.id", "u.id", "u.email", "c.name").
		From("jafs j").
		Join("companies c ON c.id = j.company_id").
		Join("users u ON u.id = c.user_id").
		Where(squirrel.Expr("j.id = ANY(?)", ids)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build jaf recipients query: %w", err)
	}
	return scanRecipients(ctx, r.db, sql, args)
}
