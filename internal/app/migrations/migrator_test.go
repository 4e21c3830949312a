package migrations

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateFromDirectory_AppliesPendingInOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_more.sql"), []byte("CREATE TABLE b (id INT);"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_init.sql"), []byte("CREATE TABLE a (id INT);"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o600))

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// 001 already applied
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("001").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	// 002 pending
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("002").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE b").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("002").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = NewMigrator(mock, zerolog.Nop()).MigrateFromDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
