package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appModels "github.com/tpcell/portal/internal/app/models"
	appRepos "github.com/tpcell/portal/internal/app/repositories"
)

var opts = Options{
	SuperAdminEmail:    "Root@College.edu",
	SuperAdminPassword: "changeme123",
	AdminContactEmail:  "tpo@college.edu",
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestCreateDefaultData_CreatesSuperAdmin(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec("INSERT INTO system_settings").
		WithArgs(pgxmock.AnyArg(), "tpo@college.edu").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs("root@college.edu").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("root@college.edu", pgxmock.AnyArg(), "Placement", "Cell", appModels.RoleSuperAdmin, true, true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), time.Now(), time.Now()))

	err := CreateDefaultData(context.Background(), appRepos.NewRepositories(mock), opts, zerolog.Nop())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDefaultData_LookupErrorIsReturned(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec("INSERT INTO system_settings").
		WithArgs(pgxmock.AnyArg(), "tpo@college.edu").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs("root@college.edu").
		WillReturnError(errors.New("connection reset"))

	err := CreateDefaultData(context.Background(), appRepos.NewRepositories(mock), opts, zerolog.Nop())
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDefaultData_SettingsFailureStillChecksAdmin(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec("INSERT INTO system_settings").
		WithArgs(pgxmock.AnyArg(), "tpo@college.edu").
		WillReturnError(errors.New("relation does not exist"))
	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs("root@college.edu").
		WillReturnError(pgx.ErrNoRows)

	noPassword := opts
	noPassword.SuperAdminPassword = ""
	err := CreateDefaultData(context.Background(), appRepos.NewRepositories(mock), noPassword, zerolog.Nop())
	assert.ErrorContains(t, err, "relation does not exist")
	assert.NoError(t, mock.ExpectationsWereMet())
}
