package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tpcell/portal/internal/app/auth"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/app/repositories"
	"github.com/tpcell/portal/internal/db"
	"github.com/tpcell/portal/internal/pkg/apperrors"
	"github.com/tpcell/portal/internal/pkg/email"
	"github.com/tpcell/portal/internal/pkg/websocket"
)

type sentVerification struct {
	to       string
	entity   string
	verified bool
	remarks  string
}

type fakeEmails struct {
	mu            sync.Mutex
	verifications []sentVerification
	statuses      []string
	testErr       error
}

func (f *fakeEmails) SendOTPEmail(context.Context, string, string, string, time.Duration) error {
	return nil
}

func (f *fakeEmails) SendWelcomeEmail(context.Context, string, string) error { return nil }

func (f *fakeEmails) SendVerificationResultEmail(_ context.Context, to, _, entity string, verified bool, remarks string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifications = append(f.verifications, sentVerification{to, entity, verified, remarks})
	return nil
}

func (f *fakeEmails) SendApplicationStatusEmail(_ context.Context, to, _, _, _, status, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, to+":"+status)
	return nil
}

func (f *fakeEmails) SendContactFormEmail(context.Context, email.ContactMessage) error { return nil }

func (f *fakeEmails) SendTestEmail(context.Context, string) error { return f.testErr }

type fakeNotifier struct {
	mu   sync.Mutex
	sent map[int64][]websocket.Notification
}

func (f *fakeNotifier) Notify(userID int64, n websocket.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sent == nil {
		f.sent = map[int64][]websocket.Notification{}
	}
	f.sent[userID] = append(f.sent[userID], n)
}

type fixture struct {
	mock     pgxmock.PgxPoolIface
	repos    *repositories.Repositories
	tx       db.Transactor
	emails   *fakeEmails
	notifier *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &fixture{
		mock:     mock,
		repos:    repositories.NewRepositories(mock),
		tx:       db.NewTransactor(mock),
		emails:   &fakeEmails{},
		notifier: &fakeNotifier{},
	}
}

func (f *fixture) verification() *VerificationService {
	return NewVerificationService(f.tx, f.repos, f.emails, f.notifier, zerolog.Nop())
}

var admin = models.Actor{UserID: 7, Role: models.RoleAdmin, IPAddress: "10.0.0.1"}

func statusRows(pairs ...any) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "verification_status"})
	for i := 0; i < len(pairs); i += 2 {
		rows.AddRow(pairs[i], pairs[i+1])
	}
	return rows
}

func TestVerifyStudent_WritesOneLogReferencingAdmin(t *testing.T) {
	f := newFixture(t)
	id := int64(5)

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(`SELECT s.id, s.verification_status FROM students s .+ FOR UPDATE OF s`).
		WithArgs([]int64{id}).
		WillReturnRows(statusRows(id, models.VerificationPending))
	f.mock.ExpectExec(`UPDATE students SET verification_status = \$1, is_verified_by_admin = \$2, verified_by = \$3`).
		WithArgs(models.VerificationVerified, true, admin.UserID, nil, []int64{id}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	f.mock.ExpectExec(`INSERT INTO activity_logs \(.+\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7\)$`).
		WithArgs(admin.UserID, models.RoleAdmin, models.ActionStudentVerification, models.EntityStudent,
			&id, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	f.mock.ExpectCommit()
	f.mock.ExpectQuery(`SELECT s.id, u.id, u.email`).
		WithArgs([]int64{id}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "email", "name"}).
			AddRow(id, int64(50), "asha@college.edu", "Asha Rao"))

	err := f.verification().VerifyStudent(context.Background(), admin, id)
	require.NoError(t, err)
	require.NoError(t, f.mock.ExpectationsWereMet())

	require.Len(t, f.emails.verifications, 1)
	assert.Equal(t, sentVerification{"asha@college.edu", "STUDENT", true, ""}, f.emails.verifications[0])
	require.Len(t, f.notifier.sent[50], 1)
	assert.Equal(t, websocket.KindVerification, f.notifier.sent[50][0].Kind)
}

func TestRejectStudent_AlreadyVerifiedIsInvalidTransition(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(`FROM students s .+ FOR UPDATE OF s`).
		WithArgs([]int64{9}).
		WillReturnRows(statusRows(int64(9), models.VerificationVerified))
	f.mock.ExpectCommit()

	err := f.verification().RejectStudent(context.Background(), admin, 9, "documents missing")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	assert.NoError(t, f.mock.ExpectationsWereMet())
	assert.Empty(t, f.emails.verifications)
}

func TestVerifyCompany_NotFound(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(`FROM companies c .+ FOR UPDATE OF c`).
		WithArgs([]int64{4}).
		WillReturnRows(statusRows())
	f.mock.ExpectCommit()

	err := f.verification().VerifyCompany(context.Background(), admin, 4)
	assert.ErrorIs(t, err, apperrors.ErrCompanyNotFound)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestBulkStudents_ReportsPerItemFailures(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(`FROM students s .+ FOR UPDATE OF s`).
		WithArgs([]int64{1, 2, 3}).
		WillReturnRows(statusRows(int64(1), models.VerificationPending, int64(2), models.VerificationVerified))
	f.mock.ExpectExec(`UPDATE students SET`).
		WithArgs(models.VerificationVerified, true, admin.UserID, nil, []int64{1}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	f.mock.ExpectExec(`INSERT INTO activity_logs`).
		WithArgs(admin.UserID, models.RoleAdmin, models.ActionStudentVerification, models.EntityStudent,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	f.mock.ExpectCommit()
	f.mock.ExpectQuery(`SELECT s.id, u.id, u.email`).
		WithArgs([]int64{1}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "email", "name"}).
			AddRow(int64(1), int64(11), "one@college.edu", "One"))

	res := f.verification().BulkStudents(context.Background(), admin, &dto.BulkVerificationRequest{
		IDs:    []int64{1, 2, 2, 3},
		Action: "VERIFY",
	})

	require.NoError(t, f.mock.ExpectationsWereMet())
	assert.Equal(t, []int64{1}, res.Succeeded)
	require.Len(t, res.Failed, 2)
	assert.Equal(t, int64(2), res.Failed[0].ID)
	assert.Contains(t, res.Failed[0].Error, "cannot move verification from VERIFIED to VERIFIED")
	assert.Equal(t, dto.BulkFailure{ID: 3, Error: apperrors.ErrStudentNotFound.Error()}, res.Failed[1])
	assert.Len(t, f.emails.verifications, 1)
}

func TestBulkStudents_DatabaseFailureFailsEveryItem(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(`FROM students s .+ FOR UPDATE OF s`).
		WithArgs([]int64{1, 2}).
		WillReturnRows(statusRows(int64(1), models.VerificationPending, int64(2), models.VerificationPending))
	f.mock.ExpectExec(`UPDATE students SET`).
		WithArgs(models.VerificationRejected, false, admin.UserID, pgxmock.AnyArg(), []int64{1, 2}).
		WillReturnError(errors.New("connection reset"))
	f.mock.ExpectRollback()

	res := f.verification().BulkStudents(context.Background(), admin, &dto.BulkVerificationRequest{
		IDs:     []int64{1, 2},
		Action:  "REJECT",
		Remarks: "incomplete",
	})

	require.NoError(t, f.mock.ExpectationsWereMet())
	assert.Empty(t, res.Succeeded)
	require.Len(t, res.Failed, 2)
	assert.Equal(t, int64(1), res.Failed[0].ID)
	assert.Equal(t, int64(2), res.Failed[1].ID)
	assert.Empty(t, f.emails.verifications)
}

func TestBulkJAFs_ApprovesPendingOnly(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(`SELECT id, status FROM jafs WHERE id = ANY\(\$1\) FOR UPDATE`).
		WithArgs([]int64{20, 21}).
		WillReturnRows(statusRows(int64(20), models.JAFPendingReview, int64(21), models.JAFRejected))
	f.mock.ExpectExec(`UPDATE jafs SET status = \$1`).
		WithArgs(models.JAFApproved, pgxmock.AnyArg(), admin.UserID, []int64{20}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	f.mock.ExpectExec(`INSERT INTO activity_logs`).
		WithArgs(admin.UserID, models.RoleAdmin, models.ActionJAFApproval, models.EntityJAF,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	f.mock.ExpectCommit()
	f.mock.ExpectQuery(`SELECT j.id, u.id, u.email, c.name`).
		WithArgs([]int64{20}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "email", "name"}).
			AddRow(int64(20), int64(30), "hr@acme.com", "Acme"))

	res := f.verification().BulkJAFs(context.Background(), admin, &dto.BulkJAFReviewRequest{
		IDs:    []int64{20, 21},
		Action: "APPROVE",
	})

	require.NoError(t, f.mock.ExpectationsWereMet())
	assert.Equal(t, []int64{20}, res.Succeeded)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, int64(21), res.Failed[0].ID)
	assert.Len(t, f.notifier.sent[30], 1)
}

func TestDeleteAdmin_CommitsSoftDeleteWithLog(t *testing.T) {
	f := newFixture(t)
	svc := NewSuperAdminService(f.tx, f.repos, f.emails, zerolog.Nop())
	super := models.Actor{UserID: 1, Role: models.RoleSuperAdmin}

	f.mock.ExpectBegin()
	f.mock.ExpectExec(`UPDATE users SET deleted_at = NOW\(\), is_active = \$1`).
		WithArgs(false, int64(12), models.RoleAdmin).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	f.mock.ExpectExec(`UPDATE refresh_tokens SET is_revoked`).
		WithArgs(true, false, int64(12)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))
	f.mock.ExpectExec(`INSERT INTO activity_logs`).
		WithArgs(int64(1), models.RoleSuperAdmin, models.ActionAdminDelete, models.EntityUser,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	f.mock.ExpectCommit()

	require.NoError(t, svc.DeleteAdmin(context.Background(), super, 12))
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestDeleteAdmin_RollsBackWhenLogFails(t *testing.T) {
	f := newFixture(t)
	svc := NewSuperAdminService(f.tx, f.repos, f.emails, zerolog.Nop())
	super := models.Actor{UserID: 1, Role: models.RoleSuperAdmin}

	f.mock.ExpectBegin()
	f.mock.ExpectExec(`UPDATE users SET deleted_at`).
		WithArgs(false, int64(12), models.RoleAdmin).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	f.mock.ExpectExec(`UPDATE refresh_tokens SET is_revoked`).
		WithArgs(true, false, int64(12)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	f.mock.ExpectExec(`INSERT INTO activity_logs`).
		WithArgs(int64(1), models.RoleSuperAdmin, models.ActionAdminDelete, models.EntityUser,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("disk full"))
	f.mock.ExpectRollback()

	err := svc.DeleteAdmin(context.Background(), super, 12)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestDeleteAdmin_RejectsSelf(t *testing.T) {
	f := newFixture(t)
	svc := NewSuperAdminService(f.tx, f.repos, f.emails, zerolog.Nop())

	err := svc.DeleteAdmin(context.Background(), models.Actor{UserID: 3, Role: models.RoleSuperAdmin}, 3)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSendTestEmail_DisabledDelivery(t *testing.T) {
	f := newFixture(t)
	f.emails.testErr = apperrors.ErrEmailDeliveryDisabled
	svc := NewSuperAdminService(f.tx, f.repos, f.emails, zerolog.Nop())

	assert.ErrorIs(t, svc.SendTestEmail(context.Background(), "a@college.edu"), apperrors.ErrEmailDeliveryDisabled)
}

func studentRow(id, userID int64, verified bool) *pgxmock.Rows {
	now := time.Now()
	status := models.VerificationPending
	if verified {
		status = models.VerificationVerified
	}
	return pgxmock.NewRows([]string{
		"id", "user_id", "roll_number", "branch", "degree", "batch", "phone",
		"is_email_verified", "is_verified_by_admin", "verification_status", "rejection_reason",
		"verified_by", "verified_at", "created_at", "updated_at",
		"email", "first_name", "last_name", "is_active",
	}).AddRow(id, userID, "21CS1042", "CSE", "BTECH", 2025, nil,
		true, verified, status, nil,
		nil, nil, now, now,
		"asha@college.edu", "Asha", "Rao", true)
}

func jafRow(id int64) *pgxmock.Rows {
	now := time.Now()
	ctc := 1200000.0
	return pgxmock.NewRows([]string{
		"id", "company_id", "form_type", "title", "description", "location", "ctc", "stipend",
		"eligible_batches", "eligible_branches", "eligible_degrees", "min_cgpa", "max_backlogs",
		"selection_process", "application_deadline", "status", "job_status", "remarks",
		"reviewed_by", "reviewed_at", "created_at", "updated_at", "name",
	}).AddRow(id, int64(2), models.FormJNF, "Graduate Engineer", "Build things", nil, &ctc, nil,
		[]int32{2025}, []string{"CSE"}, []string{"BTECH"}, 0.0, nil,
		[]string{"Aptitude", "Interview"}, now.Add(48*time.Hour), models.JAFApproved, models.JobOpen, nil,
		nil, nil, now, now, "Acme")
}

// visibleJobArgs are the arguments of the student visibility lookup for one
// JAF: verified company, open, approved, deadline, id.
func visibleJobArgs(id int64) []any {
	return []any{true, models.JobOpen, models.JAFApproved, pgxmock.AnyArg(), id}
}

func newJobService(f *fixture) *JobService {
	authz := auth.NewAuthorizationService(f.repos.StudentRepository, f.repos.CompanyRepository, f.repos.JAFRepository)
	return NewJobService(f.repos, authz, zerolog.Nop())
}

func TestApply_DuplicateIsConflict(t *testing.T) {
	f := newFixture(t)
	svc := newJobService(f)

	f.mock.ExpectQuery(`FROM students s JOIN users u`).
		WithArgs(int64(50)).
		WillReturnRows(studentRow(5, 50, true))
	f.mock.ExpectQuery(`FROM jafs j JOIN companies c`).
		WithArgs(visibleJobArgs(8)...).
		WillReturnRows(jafRow(8))
	f.mock.ExpectQuery(`FROM student_academics`).
		WithArgs(int64(5)).
		WillReturnError(pgx.ErrNoRows)
	f.mock.ExpectQuery(`INSERT INTO applications`).
		WithArgs(int64(5), int64(8), models.ApplicationApplied, 0).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "applications_student_jaf_key"})

	_, err := svc.Apply(context.Background(), 50, 8)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestApply_RequiresAdminVerification(t *testing.T) {
	f := newFixture(t)
	svc := newJobService(f)

	f.mock.ExpectQuery(`FROM students s JOIN users u`).
		WithArgs(int64(50)).
		WillReturnRows(studentRow(5, 50, false))

	_, err := svc.Apply(context.Background(), 50, 8)
	assert.ErrorIs(t, err, apperrors.ErrNotVerifiedByAdmin)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestApply_HiddenJobIsNotFound(t *testing.T) {
	f := newFixture(t)
	svc := newJobService(f)

	f.mock.ExpectQuery(`FROM students s JOIN users u`).
		WithArgs(int64(50)).
		WillReturnRows(studentRow(5, 50, true))
	f.mock.ExpectQuery(`FROM jafs j JOIN companies c .+ WHERE \(c\.is_verified_by_admin = \$1 AND j\.job_status = \$2 AND j\.status = \$3`).
		WithArgs(visibleJobArgs(8)...).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Apply(context.Background(), 50, 8)
	assert.ErrorIs(t, err, apperrors.ErrJAFNotFound)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestUpdateApplicationStatus_LogsInSameTransaction(t *testing.T) {
	f := newFixture(t)
	authz := auth.NewAuthorizationService(f.repos.StudentRepository, f.repos.CompanyRepository, f.repos.JAFRepository)
	svc := NewApplicationService(f.tx, f.repos, authz, f.emails, f.notifier, zerolog.Nop())
	now := time.Now()

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(`FROM applications a JOIN jafs j .+ FOR UPDATE OF a`).
		WithArgs(int64(40)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "student_id", "jaf_id", "status", "current_round", "remarks",
			"applied_at", "updated_at", "company_id"}).
			AddRow(int64(40), int64(5), int64(8), models.ApplicationApplied, 0, nil, now, now, int64(2)))
	f.mock.ExpectQuery(`UPDATE applications SET status = \$1, current_round = \$2`).
		WithArgs(models.ApplicationTechnicalInterview, 4, pgxmock.AnyArg(), int64(40)).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))
	f.mock.ExpectExec(`INSERT INTO activity_logs`).
		WithArgs(admin.UserID, models.RoleAdmin, models.ActionApplicationStatusUpdate, models.EntityApplication,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	f.mock.ExpectCommit()
	cgpa := 8.4
	f.mock.ExpectQuery(`FROM applications a`).
		WithArgs(int64(40)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "student_id", "jaf_id", "status", "current_round", "remarks",
			"applied_at", "updated_at", "title", "form_type", "company_id", "company_name",
			"user_id", "name", "email", "roll_number", "branch", "degree", "batch", "cgpa", "backlogs"}).
			AddRow(int64(40), int64(5), int64(8), models.ApplicationTechnicalInterview, 4, nil, now, now,
				"Graduate Engineer", models.FormJNF, int64(2), "Acme",
				int64(50), "Asha Rao", "asha@college.edu", "21CS1042", "CSE", "BTECH", 2025, &cgpa, 0))

	view, err := svc.UpdateStatus(context.Background(), admin, 40, &dto.ApplicationStatusRequest{
		Status: models.ApplicationTechnicalInterview,
	})
	require.NoError(t, err)
	require.NoError(t, f.mock.ExpectationsWereMet())

	assert.Equal(t, models.ApplicationTechnicalInterview, view.Status)
	assert.Equal(t, []string{"asha@college.edu:TECHNICAL_INTERVIEW"}, f.emails.statuses)
	assert.Len(t, f.notifier.sent[50], 1)
}

func TestUpdateApplicationStatus_BackwardsMoveRollsBack(t *testing.T) {
	f := newFixture(t)
	authz := auth.NewAuthorizationService(f.repos.StudentRepository, f.repos.CompanyRepository, f.repos.JAFRepository)
	svc := NewApplicationService(f.tx, f.repos, authz, f.emails, f.notifier, zerolog.Nop())
	now := time.Now()

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(`FOR UPDATE OF a`).
		WithArgs(int64(40)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "student_id", "jaf_id", "status", "current_round", "remarks",
			"applied_at", "updated_at", "company_id"}).
			AddRow(int64(40), int64(5), int64(8), models.ApplicationHRInterview, 5, nil, now, now, int64(2)))
	f.mock.ExpectRollback()

	_, err := svc.UpdateStatus(context.Background(), admin, 40, &dto.ApplicationStatusRequest{
		Status: models.ApplicationAptitudeTest,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	assert.NoError(t, f.mock.ExpectationsWereMet())
	assert.Empty(t, f.emails.statuses)
}

func TestOwnerFolder(t *testing.T) {
	assert.Equal(t, "student/5", ownerFolder(models.RoleStudent, 5, ""))
	assert.Equal(t, "company/9/logos", ownerFolder(models.RoleCompany, 9, "/logos/"))
}

func TestDedupeIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, dedupeIDs([]int64{3, 1, 3, 2, 1}))
}
