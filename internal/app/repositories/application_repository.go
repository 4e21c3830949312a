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
	"github.com/tpcell/portal/internal/pkg/dberrors"
	"github.com/tpcell/portal/internal/pkg/logger"
)

var applicationViewColumns = []string{
	"a.id", "a.student_id", "a.jaf_id", "a.status", "a.current_round", "a.remarks", "a.applied_at", "a.updated_at",
	"j.title", "j.form_type", "c.id", "c.name",
	"u.id", "u.first_name || ' ' || u.last_name", "u.email", "s.roll_number", "s.branch", "s.degree", "s.batch",
	"sa.cgpa", "COALESCE(sa.active_backlogs, 0)",
}

func scanApplicationView(row rowScanner) (*models.ApplicationView, error) {
	v := &models.ApplicationView{}
	err := row.Scan(&v.ID, &v.StudentID, &v.JAFID, &v.Status, &v.CurrentRound, &v.Remarks, &v.AppliedAt, &v.UpdatedAt,
		&v.JobTitle, &v.FormType, &v.CompanyID, &v.CompanyName,
		&v.StudentUserID, &v.StudentName, &v.StudentEmail, &v.RollNumber, &v.Branch, &v.Degree, &v.Batch,
		&v.CGPA, &v.ActiveBacklogs)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ApplicationRepository handles student applications
type ApplicationRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(conn db.DBTX) *ApplicationRepository {
	return &ApplicationRepository{db: conn, sb: newBuilder()}
}

// WithTx returns a copy bound to tx
func (r *ApplicationRepository) WithTx(tx pgx.Tx) *ApplicationRepository {
	return &ApplicationRepository{db: tx, sb: r.sb}
}

// Create inserts an application. A second application of the same student to
// the same JAF fails with ErrAlreadyApplied.
func (r *ApplicationRepository) Create(ctx context.Context, a *models.Application) error {
	sql, args, err := r.sb.Insert("applications").
		Columns("student_id", "jaf_id", "status", "current_round").
		Values(a.StudentID, a.JAFID, models.ApplicationApplied, 0).
		Suffix("RETURNING id, status, current_round, applied_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create application query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.Status, &a.CurrentRound, &a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "applications_student_jaf_key") {
			return apperrors.ErrAlreadyApplied
		}
		logger.Error().Err(err).Int64("studentID", a.StudentID).Int64("jafID", a.JAFID).Msg("Error creating application")
		return fmt.Errorf("error creating application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) selectViews() squirrel.SelectBuilder {
	return r.sb.Select(applicationViewColumns...).
		From("applications a").
		Join("jafs j ON j.id = a.jaf_id").
		Join("companies c ON c.id = j.company_id").
		Join("students s ON s.id = a.student_id").
		Join("users u ON u.id = s.user_id").
		LeftJoin("student_academics sa ON sa.student_id = s.id")
}

func (r *ApplicationRepository) listViews(ctx context.Context, where squirrel.Sqlizer) ([]*models.ApplicationView, error) {
	sql, args, err := r.selectViews().Where(where).OrderBy("a.applied_at DESC", "a.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing applications")
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	views := []*models.ApplicationView{}
	for rows.Next() {
		v, err := scanApplicationView(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning application: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// GetView retrieves an application with its job, company and student
func (r *ApplicationRepository) GetView(ctx context.Context, id int64) (*models.ApplicationView, error) {
	sql, args, err := r.selectViews().Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	v, err := scanApplicationView(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}
	return v, nil
}

// ListByStudent returns the applications of a student
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.ApplicationView, error) {
	return r.listViews(ctx, squirrel.Eq{"a.student_id": studentID})
}

// ListByJAF returns the applicants of a JAF
func (r *ApplicationRepository) ListByJAF(ctx context.Context, jafID int64) ([]*models.ApplicationView, error) {
	return r.listViews(ctx, squirrel.Eq{"a.jaf_id": jafID})
}

// LockForUpdate locks an application row and returns it with the owning
// company of its JAF.
func (r *ApplicationRepository) LockForUpdate(ctx context.Context, id int64) (*models.Application, int64, error) {
	sql, args, err := r.sb.Select("a.id", "a.student_id", "a.jaf_id", "a.status", "a.current_round", "a.remarks",
		"a.applied_at", "a.updated_at", "j.company_id").
		From("applications a").
		Join("jafs j ON j.id = a.jaf_id").
		Where(squirrel.Eq{"a.id": id}).
		Suffix("FOR UPDATE OF a").
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build lock application query: %w", err)
	}

	a := &models.Application{}
	var companyID int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.StudentID, &a.JAFID, &a.Status, &a.CurrentRound,
		&a.Remarks, &a.AppliedAt, &a.UpdatedAt, &companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, apperrors.ErrApplicationNotFound
		}
		return nil, 0, fmt.Errorf("error locking application: %w", err)
	}
	return a, companyID, nil
}

// UpdateStatus stores a new status, round and remarks
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, a *models.Application) error {
	sql, args, err := r.sb.Update("applications").
		Set("status", a.Status).
		Set("current_round", a.CurrentRound).
		Set("remarks", a.Remarks).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update application query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Int64("applicationID", a.ID).Msg("Error updating application status")
		return fmt.Errorf("error updating application: %w", err)
	}
	return nil
}

// AppliedJAFIDs returns which of jafIDs the student already applied to
func (r *ApplicationRepository) AppliedJAFIDs(ctx context.Context, studentID int64, jafIDs []int64) (map[int64]bool, error) {
	applied := make(map[int64]bool)
	if len(jafIDs) == 0 {
		return applied, nil
	}

	sql, args, err := r.sb.Select("jaf_id").
		From("applications").
		Where(squirrel.Eq{"student_id": studentID}).
		Where(squirrel.Expr("jaf_id = ANY(?)", jafIDs)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build applied jafs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error loading applied jafs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning applied jaf: %w", err)
		}
		applied[id] = true
	}
	return applied, rows.Err()
}
