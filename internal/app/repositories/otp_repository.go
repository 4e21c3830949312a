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
	"github.com/tpcell/portal/internal/pkg/logger"
)

// OTPRepository stores hashed email verification codes, one per user
type OTPRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewOTPRepository creates a new OTPRepository
func NewOTPRepository(conn db.DBTX) *OTPRepository {
	return &OTPRepository{db: conn, sb: newBuilder()}
}

// WithTx returns a copy bound to tx
func (r *OTPRepository) WithTx(tx pgx.Tx) *OTPRepository {
	return &OTPRepository{db: tx, sb: r.sb}
}

// Upsert replaces any pending code of the user
func (r *OTPRepository) Upsert(ctx context.Context, otp *models.EmailOTP) error {
	sql, args, err := r.sb.Insert("email_otps").
		Columns("user_id", "code_hash", "expires_at", "attempts_left").
		Values(otp.UserID, otp.CodeHash, otp.ExpiresAt, otp.AttemptsLeft).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET code_hash = EXCLUDED.code_hash,
			expires_at = EXCLUDED.expires_at, attempts_left = EXCLUDED.attempts_left, created_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert otp query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", otp.UserID).Msg("Error storing verification code")
		return fmt.Errorf("error storing verification code: %w", err)
	}
	return nil
}

// Get returns the pending code of a user
func (r *OTPRepository) Get(ctx context.Context, userID int64) (*models.EmailOTP, error) {
	sql, args, err := r.sb.Select("user_id", "code_hash", "expires_at", "attempts_left").
		From("email_otps").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get otp query: %w", err)
	}

	otp := &models.EmailOTP{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&otp.UserID, &otp.CodeHash, &otp.ExpiresAt, &otp.AttemptsLeft)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidOTP
		}
		return nil, fmt.Errorf("error retrieving verification code: %w", err)
	}
	return otp, nil
}

// DecrementAttempts records a failed attempt and returns the attempts left
func (r *OTPRepository) DecrementAttempts(ctx context.Context, userID int64) (int, error) {
	sql, args, err := r.sb.Update("email_otps").
		Set("attempts_left", squirrel.Expr("attempts_left - 1")).
		Where(squirrel.Eq{"user_id": userID}).
		Suffix("RETURNING attempts_left").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build decrement otp query: %w", err)
	}

	var left int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&left); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrInvalidOTP
		}
		return 0, fmt.Errorf("error updating verification attempts: %w", err)
	}
	return left, nil
}

// Delete removes the code of a user
func (r *OTPRepository) Delete(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("email_otps").Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete otp query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting verification code: %w", err)
	}
	return nil
}

// PurgeExpired removes codes that expired before now
func (r *OTPRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	sql, args, err := r.sb.Delete("email_otps").Where(squirrel.Lt{"expires_at": now}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build purge otp query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error purging expired verification codes")
		return 0, fmt.Errorf("error purging verification codes: %w", err)
	}
	return tag.RowsAffected(), nil
}
