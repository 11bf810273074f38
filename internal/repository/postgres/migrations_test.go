package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrationNames(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.up.sql"}, names)
}

func TestRunMigrations(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS currencies`).
			WillReturnResult(pgxmock.NewResult("CREATE", 0))

		err := RunMigrations(ctx, mock, logger)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Exec error", func(t *testing.T) {
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS currencies`).
			WillReturnError(errors.New("syntax error"))

		err := RunMigrations(ctx, mock, logger)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "001_init.up.sql")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
