package migrations

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsdmailer/wsdmailer/config"
	"github.com/wsdmailer/wsdmailer/pkg/logger"
)

const versionQuery = "SELECT value FROM settings WHERE key = 'db_version'"

func TestManager_GetCurrentDBVersion(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(mock sqlmock.Sqlmock)
		expected      float64
		expectExists  bool
		expectErrText string
	}{
		{
			name: "stored version",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(versionQuery).WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("2"))
			},
			expected:     2.0,
			expectExists: true,
		},
		{
			name: "no version yet",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(versionQuery).WillReturnError(sql.ErrNoRows)
			},
		},
		{
			name: "query error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(versionQuery).WillReturnError(errors.New("database error"))
			},
			expectErrText: "failed to get current database version",
		},
		{
			name: "invalid stored value",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(versionQuery).WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("two"))
			},
			expectErrText: "invalid database version format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setup(mock)

			manager := NewManager(logger.NewMockLogger(t))
			version, err, exists := manager.GetCurrentDBVersion(context.Background(), db)

			if tt.expectErrText != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectErrText)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expectExists, exists)
			assert.Equal(t, tt.expected, version)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestManager_RunMigrations_FirstRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(versionQuery).WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO settings").WithArgs("3").WillReturnResult(sqlmock.NewResult(1, 1))

	registry := NewRegistry()
	v2 := &mockMigration{version: 2.0}
	registry.Register(v2)

	manager := NewManagerWithRegistry(logger.NewMockLogger(t), registry)
	err = manager.RunMigrations(context.Background(), &config.Config{}, db)

	require.NoError(t, err)
	assert.Equal(t, 0, v2.called, "fresh databases are created at the current schema")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_RunMigrations_AppliesPendingInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(versionQuery).WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("1"))
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectExec("INSERT INTO settings").WithArgs("3").WillReturnResult(sqlmock.NewResult(1, 1))

	registry := NewRegistry()
	old := &mockMigration{version: 1.0}
	v2 := &mockMigration{version: 2.0}
	v3 := &mockMigration{version: 3.0}
	future := &mockMigration{version: 4.0}
	for _, m := range []*mockMigration{old, v2, v3, future} {
		registry.Register(m)
	}

	manager := NewManagerWithRegistry(logger.NewMockLogger(t), registry)
	err = manager.RunMigrations(context.Background(), &config.Config{}, db)

	require.NoError(t, err)
	assert.Equal(t, 0, old.called)
	assert.Equal(t, 1, v2.called)
	assert.Equal(t, 1, v3.called)
	assert.Equal(t, 0, future.called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_RunMigrations_UpToDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(versionQuery).WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("3"))

	manager := NewManagerWithRegistry(logger.NewMockLogger(t), NewRegistry())
	err = manager.RunMigrations(context.Background(), &config.Config{}, db)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_RunMigrations_FailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(versionQuery).WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("2"))
	mock.ExpectBegin()
	mock.ExpectRollback()

	registry := NewRegistry()
	registry.Register(&mockMigration{version: 3.0, updateErr: errors.New("lock timeout")})

	manager := NewManagerWithRegistry(logger.NewMockLogger(t), registry)
	err = manager.RunMigrations(context.Background(), &config.Config{}, db)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration failed for version 3")
	assert.Contains(t, err.Error(), "lock timeout")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_RunMigrations_RestartRequired(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(versionQuery).WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("2"))
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectExec("INSERT INTO settings").WithArgs("3").WillReturnResult(sqlmock.NewResult(1, 1))

	registry := NewRegistry()
	registry.Register(&mockMigration{version: 3.0, restart: true})

	manager := NewManagerWithRegistry(logger.NewMockLogger(t), registry)
	err = manager.RunMigrations(context.Background(), &config.Config{}, db)

	assert.ErrorIs(t, err, ErrRestartRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_RunMigrations_DatabaseAhead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(versionQuery).WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("4"))

	registry := NewRegistry()
	v3 := &mockMigration{version: 3.0}
	registry.Register(v3)

	manager := NewManagerWithRegistry(logger.NewMockLogger(t), registry)
	err = manager.RunMigrations(context.Background(), &config.Config{}, db)

	require.ErrorIs(t, err, ErrDatabaseAhead)
	assert.Equal(t, 0, v3.called)
	assert.NoError(t, mock.ExpectationsWereMet())
}
