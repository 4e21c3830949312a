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

var userColumns = []string{
	"id", "email", "password", "first_name", "last_name", "role_type", "is_active",
	"is_email_verified", "last_login_at", "created_at", "updated_at", "deleted_at",
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.RoleType, &u.IsActive,
		&u.IsEmailVerified, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UserRepository handles the users table
type UserRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(conn db.DBTX) *UserRepository {
	return &UserRepository{db: conn, sb: newBuilder()}
}

// WithTx returns a copy bound to tx
func (r *UserRepository) WithTx(tx pgx.Tx) *UserRepository {
	return &UserRepository{db: tx, sb: r.sb}
}

// CreateUser inserts a user and returns its id
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("email", "password", "first_name", "last_name", "role_type", "is_active", "is_email_verified").
		Values(user.Email, user.Password, user.FirstName, user.LastName, user.RoleType, user.IsActive, user.IsEmailVerified).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error creating user")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return user.ID, nil
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email, including soft deleted ones
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// GetUserByID retrieves a user by ID, including soft deleted ones
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetSessionUser loads the fields the auth middleware checks on every request
func (r *UserRepository) GetSessionUser(ctx context.Context, id int64) (*models.SessionUser, error) {
	sql, args, err := r.sb.Select("id", "email", "role_type", "is_active", "is_email_verified").
		From("users").
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build session query: %w", err)
	}

	s := &models.SessionUser{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.Email, &s.RoleType, &s.IsActive, &s.IsEmailVerified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading session user: %w", err)
	}
	return s, nil
}

// UpdateLastLogin stamps the last successful login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("users").
		Set("last_login_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// MarkEmailVerified flags the user and its student or company profile.
// Run it inside a transaction.
func (r *UserRepository) MarkEmailVerified(ctx context.Context, userID int64) error {
	for _, table := range []string{"users", "students", "companies"} {
		key := "user_id"
		if table == "users" {
			key = "id"
		}
		sql, args, err := r.sb.Update(table).
			Set("is_email_verified", true).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{key: userID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build email verified query: %w", err)
		}
		if _, err := r.db.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Str("table", table).Int64("userID", userID).Msg("Error marking email verified")
			return fmt.Errorf("error marking email verified: %w", err)
		}
	}
	return nil
}

// ListByRoles returns live users with one of roles, newest first
func (r *UserRepository) ListByRoles(ctx context.Context, roles []models.RoleType, offset uint64, limit int) ([]*models.User, int64, error) {
	where := squirrel.And{squirrel.Eq{"role_type": roles}, squirrel.Eq{"deleted_at": nil}}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("users").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count users query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	sql, args, err := r.sb.Select(userColumns...).From("users").Where(where).
		OrderBy("created_at DESC").Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// UpdateUser changes names, and optionally the active flag and password hash,
// of a live user having one of roles.
func (r *UserRepository) UpdateUser(ctx context.Context, id int64, roles []models.RoleType, firstName, lastName string, isActive *bool, passwordHash *string) error {
	q := r.sb.Update("users").
		Set("first_name", firstName).
		Set("last_name", lastName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "role_type": roles, "deleted_at": nil})
	if isActive != nil {
		q = q.Set("is_active", *isActive)
	}
	if passwordHash != nil {
		q = q.Set("password", *passwordHash)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update user query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", id).Msg("Error updating user")
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SoftDelete sets deleted_at and clears is_active of a live user having one
// of roles.
func (r *UserRepository) SoftDelete(ctx context.Context, id int64, roles []models.RoleType) error {
	sql, args, err := r.sb.Update("users").
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "role_type": roles, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build soft delete query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", id).Msg("Error soft deleting user")
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
