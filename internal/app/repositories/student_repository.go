package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/db"
	"github.com/tpcell/portal/internal/pkg/apperrors"
	"github.com/tpcell/portal/internal/pkg/dberrors"
	"github.com/tpcell/portal/internal/pkg/helpers"
	"github.com/tpcell/portal/internal/pkg/logger"
)

var studentColumns = []string{
	"s.id", "s.user_id", "s.roll_number", "s.branch", "s.degree", "s.batch", "s.phone",
	"s.is_email_verified", "s.is_verified_by_admin", "s.verification_status", "s.rejection_reason",
	"s.verified_by", "s.verified_at", "s.created_at", "s.updated_at",
	"u.email", "u.first_name", "u.last_name", "u.is_active",
}

func scanStudent(row rowScanner, extra ...any) (*models.Student, error) {
	s := &models.Student{User: &models.User{}}
	dest := []any{
		&s.ID, &s.UserID, &s.RollNumber, &s.Branch, &s.Degree, &s.Batch, &s.Phone,
		&s.IsEmailVerified, &s.IsVerifiedByAdmin, &s.VerificationStatus, &s.RejectionReason,
		&s.VerifiedBy, &s.VerifiedAt, &s.CreatedAt, &s.UpdatedAt,
		&s.User.Email, &s.User.FirstName, &s.User.LastName, &s.User.IsActive,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	s.User.ID = s.UserID
	s.User.RoleType = models.RoleStudent
	return s, nil
}

// StudentRepository handles students and their 1:1 and 1:N profile tables
type StudentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(conn db.DBTX) *StudentRepository {
	return &StudentRepository{db: conn, sb: newBuilder()}
}

// WithTx returns a copy bound to tx
func (r *StudentRepository) WithTx(tx pgx.Tx) *StudentRepository {
	return &StudentRepository{db: tx, sb: r.sb}
}

// Create inserts a student row for an existing user
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("user_id", "roll_number", "branch", "degree", "batch", "phone").
		Values(s.UserID, s.RollNumber, s.Branch, s.Degree, s.Batch, s.Phone).
		Suffix("RETURNING id, verification_status, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.VerificationStatus, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_roll_number_key") {
			return apperrors.ErrRollNumberExists
		}
		logger.Error().Err(err).Int64("userID", s.UserID).Msg("Error creating student")
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select(studentColumns...).
		From("students s").
		Join("users u ON u.id = s.user_id")
}

func (r *StudentRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Student, error) {
	sql, args, err := r.selectStudents().Where(where).Where("u.deleted_at IS NULL").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return s, nil
}

// GetByID retrieves a live student by id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.id": id})
}

// GetByUserID retrieves the student profile of a user
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.user_id": userID})
}

// UpdateProfile changes the editable columns. The roll number never changes.
func (r *StudentRepository) UpdateProfile(ctx context.Context, s *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("branch", s.Branch).
		Set("degree", s.Degree).
		Set("batch", s.Batch).
		Set("phone", s.Phone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", s.ID).Msg("Error updating student")
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func studentFilterWhere(f models.StudentFilter) squirrel.And {
	where := squirrel.And{squirrel.Expr("u.deleted_at IS NULL")}
	if f.Status != nil {
		where = append(where, squirrel.Eq{"s.verification_status": *f.Status})
	}
	if f.Branch != "" {
		where = append(where, squirrel.Eq{"s.branch": f.Branch})
	}
	if f.Degree != "" {
		where = append(where, squirrel.Eq{"s.degree": f.Degree})
	}
	if f.Batch != 0 {
		where = append(where, squirrel.Eq{"s.batch": f.Batch})
	}
	if f.Search != "" {
		pattern := helpers.LikePattern(f.Search)
		where = append(where, squirrel.Or{
			squirrel.ILike{"s.roll_number": pattern},
			squirrel.ILike{"u.email": pattern},
			squirrel.Expr("(u.first_name || ' ' || u.last_name) ILIKE ?", pattern),
		})
	}
	return where
}

// List returns students matching f with their CGPA, newest first
func (r *StudentRepository) List(ctx context.Context, f models.StudentFilter) ([]*dto.StudentListItem, int64, error) {
	where := studentFilterWhere(f)

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("students s").
		Join("users u ON u.id = s.user_id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count students query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	q := r.selectStudents().
		Column("a.cgpa").
		LeftJoin("student_academics a ON a.student_id = s.id").
		Where(where).
		OrderBy("s.created_at DESC", "s.id DESC").
		Offset(f.Offset)
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing students")
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	items := []*dto.StudentListItem{}
	for rows.Next() {
		var cgpa *float64
		s, err := scanStudent(rows, &cgpa)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning student: %w", err)
		}
		items = append(items, &dto.StudentListItem{
			Student:  s,
			FullName: s.User.FullName(),
			Email:    s.User.Email,
			CGPA:     cgpa,
		})
	}
	return items, total, rows.Err()
}

// LockStatuses locks the given students for update and returns the current
// verification status of each one found.
func (r *StudentRepository) LockStatuses(ctx context.Context, ids []int64) (map[int64]models.VerificationStatus, error) {
	sql, args, err := r.sb.Select("s.id", "s.verification_status").
		From("students s").
		Join("users u ON u.id = s.user_id").
		Where(squirrel.Expr("s.id = ANY(?)", ids)).
		Where("u.deleted_at IS NULL").
		Suffix("FOR UPDATE OF s").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lock students query: %w", err)
	}
	return scanStatuses[models.VerificationStatus](ctx, r.db, sql, args)
}

// SetVerification moves every student in ids to status in one statement
func (r *StudentRepository) SetVerification(ctx context.Context, ids []int64, status models.VerificationStatus, adminID int64, remarks *string) (int64, error) {
	return setVerification(ctx, r.db, r.sb, "students", ids, status, adminID, remarks)
}

// Recipients returns the contact of each student in ids
func (r *StudentRepository) Recipients(ctx context.Context, ids []int64) ([]models.Recipient, error) {
	sql, args, err := r.sb.Select("s.id", "u.id", "u.email", "u.first_name || ' ' || u.last_name").
		From("students s").
		Join("users u ON u.id = s.user_id").
		Where(squirrel.Expr("s.id = ANY(?)", ids)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student recipients query: %w", err)
	}
	return scanRecipients(ctx, r.db, sql, args)
}

// scanStatuses reads (id, status) pairs
func scanStatuses[S ~string](ctx context.Context, conn db.DBTX, sql string, args []any) (map[int64]S, error) {
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error locking rows")
		return nil, fmt.Errorf("error locking rows: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]S)
	for rows.Next() {
		var (
			id     int64
			status S
		)
		if err := rows.Scan(&id, &status); err != nil {
			return nil, fmt.Errorf("error scanning status: %w", err)
		}
		out[id] = status
	}
	return out, rows.Err()
}

func setVerification(ctx context.Context, conn db.DBTX, sb squirrel.StatementBuilderType, table string, ids []int64, status models.VerificationStatus, adminID int64, remarks *string) (int64, error) {
	q := sb.Update(table).
		Set("verification_status", status).
		Set("is_verified_by_admin", status == models.VerificationVerified).
		Set("verified_by", adminID).
		Set("verified_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Expr("id = ANY(?)", ids))
	if status == models.VerificationRejected {
		q = q.Set("rejection_reason", remarks)
	} else {
		q = q.Set("rejection_reason", nil)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build verification query: %w", err)
	}
	tag, err := conn.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error updating verification status")
		return 0, fmt.Errorf("error updating verification status: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanRecipients(ctx context.Context, conn db.DBTX, sql string, args []any) ([]models.Recipient, error) {
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error loading recipients: %w", err)
	}
	defer rows.Close()

	var out []models.Recipient
	for rows.Next() {
		var rc models.Recipient
		if err := rows.Scan(&rc.EntityID, &rc.UserID, &rc.Email, &rc.Name); err != nil {
			return nil, fmt.Errorf("error scanning recipient: %w", err)
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}
