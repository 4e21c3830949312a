package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/pkg/apperrors"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestActivityLogInsert_SingleMultiRowStatement(t *testing.T) {
	mock := newMock(t)
	repo := NewActivityLogRepository(mock)

	id1, id2 := int64(10), int64(11)
	mock.ExpectExec(`INSERT INTO activity_logs \(.+\) VALUES \(.+\),\(.+\)`).
		WithArgs(
			int64(1), models.RoleAdmin, models.ActionStudentVerification, models.EntityStudent, &id1, pgxmock.AnyArg(), pgxmock.AnyArg(),
			int64(1), models.RoleAdmin, models.ActionStudentVerification, models.EntityStudent, &id2, pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	err := repo.Insert(context.Background(),
		&models.ActivityLog{ActorUserID: 1, ActorRole: models.RoleAdmin, Action: models.ActionStudentVerification, EntityType: models.EntityStudent, EntityID: &id1},
		&models.ActivityLog{ActorUserID: 1, ActorRole: models.RoleAdmin, Action: models.ActionStudentVerification, EntityType: models.EntityStudent, EntityID: &id2},
	)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityLogInsert_NothingToWrite(t *testing.T) {
	mock := newMock(t)
	require.NoError(t, NewActivityLogRepository(mock).Insert(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationCreate_DuplicateIsAlreadyApplied(t *testing.T) {
	mock := newMock(t)
	repo := NewApplicationRepository(mock)

	mock.ExpectQuery("INSERT INTO applications").
		WithArgs(int64(3), int64(7), models.ApplicationApplied, 0).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "applications_student_jaf_key"})

	err := repo.Create(context.Background(), &models.Application{StudentID: 3, JAFID: 7})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentLockStatuses(t *testing.T) {
	mock := newMock(t)
	repo := NewStudentRepository(mock)

	ids := []int64{1, 2, 3}
	mock.ExpectQuery(`SELECT s.id, s.verification_status FROM students s .+ FOR UPDATE OF s`).
		WithArgs(ids).
		WillReturnRows(pgxmock.NewRows([]string{"id", "verification_status"}).
			AddRow(int64(1), models.VerificationPending).
			AddRow(int64(3), models.VerificationVerified))

	statuses, err := repo.LockStatuses(context.Background(), ids)
	require.NoError(t, err)
	assert.Equal(t, map[int64]models.VerificationStatus{
		1: models.VerificationPending,
		3: models.VerificationVerified,
	}, statuses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserSoftDelete_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(`UPDATE users SET deleted_at = NOW\(\), is_active = \$1`).
		WithArgs(false, int64(99), models.RoleAdmin).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SoftDelete(context.Background(), 99, []models.RoleType{models.RoleAdmin})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenGetByValue_Revoked(t *testing.T) {
	mock := newMock(t)
	repo := NewTokenRepository(mock)

	mock.ExpectQuery("SELECT user_id, expiry_date, is_revoked FROM refresh_tokens").
		WithArgs("abc").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "expiry_date", "is_revoked"}).
			AddRow(int64(4), time.Now().Add(time.Hour), true))

	_, err := repo.GetTokenByValue(context.Background(), "abc")
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestVisibleToStudents_RequiresVerifiedCompany(t *testing.T) {
	now := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	sql, args, err := visibleToStudents(now).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "c.is_verified_by_admin = ?")
	assert.Contains(t, sql, "j.status = ?")
	assert.Contains(t, sql, "j.job_status = ?")
	assert.Contains(t, sql, "j.application_deadline > ?")
	assert.Contains(t, sql, "u.deleted_at IS NULL")
	assert.Contains(t, args, true)
	assert.Contains(t, args, models.JAFApproved)
	assert.Contains(t, args, models.JobOpen)
	assert.Contains(t, args, now)
}
