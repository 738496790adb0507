package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsdmailer/wsdmailer/internal/domain"
	"github.com/wsdmailer/wsdmailer/internal/repository/testutil"
)

func TestDomainRepository_UpsertByNameTx(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewDomainRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	created := now.Add(-48 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO domains \(id,name,created_at,updated_at\) VALUES \(\$1,\$2,\$3,\$4\) ON CONFLICT \(name\) DO UPDATE SET name = EXCLUDED.name RETURNING id, name, created_at, updated_at`).
		WithArgs(testutil.AnyUUID(), "example.com", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow("dom-1", "example.com", created, created))

	tx, err := db.Begin()
	require.NoError(t, err)

	d, err := repo.UpsertByNameTx(ctx, tx, "Example.COM", now)
	require.NoError(t, err)
	assert.Equal(t, "dom-1", d.ID)
	assert.Equal(t, created, d.CreatedAt, "existing domain keeps its row")

	mock.ExpectQuery(`INSERT INTO domains`).WillReturnError(errors.New("connection lost"))
	_, err = repo.UpsertByNameTx(ctx, tx, "other.com", now)
	assert.ErrorContains(t, err, "failed to upsert domain")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDomainRepository_Touch(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewDomainRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`ON CONFLICT \(name\) DO UPDATE SET updated_at = EXCLUDED.updated_at RETURNING id, name, created_at, updated_at, \(xmax = 0\) AS inserted`).
		WithArgs(testutil.AnyUUID(), "new.example.com", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at", "inserted"}).
			AddRow("dom-2", "new.example.com", now, now, true))

	d, created, err := repo.Touch(context.Background(), "new.example.com", now)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "dom-2", d.ID)

	mock.ExpectQuery(`ON CONFLICT \(name\) DO UPDATE SET updated_at`).
		WithArgs(testutil.AnyUUID(), "old.example.com", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at", "inserted"}).
			AddRow("dom-3", "old.example.com", now.Add(-time.Hour), now, false))

	_, created, err = repo.Touch(context.Background(), "old.example.com", now)
	require.NoError(t, err)
	assert.False(t, created)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDomainRepository_GetByName(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewDomainRepository(db)
	now := time.Now().UTC()
	query := regexp.QuoteMeta(`SELECT id, name, created_at, updated_at FROM domains WHERE name = $1`)

	mock.ExpectQuery(query).
		WithArgs("example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow("dom-1", "example.com", now, now))

	d, err := repo.GetByName(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "dom-1", d.ID)

	mock.ExpectQuery(query).
		WithArgs("missing.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}))

	_, err = repo.GetByName(context.Background(), "missing.com")
	var notFound *domain.ErrNotFound
	assert.ErrorAs(t, err, &notFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDomainRepository_List(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewDomainRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, created_at, updated_at FROM domains ORDER BY name ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow("dom-1", "a.com", now, now).
			AddRow("dom-2", "b.com", now, now))

	domains, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, domains, 2)
	assert.Equal(t, "b.com", domains[1].Name)

	mock.ExpectQuery(`SELECT id, name`).WillReturnError(errors.New("db down"))
	_, err = repo.List(context.Background())
	assert.ErrorContains(t, err, "failed to list domains")

	assert.NoError(t, mock.ExpectationsWereMet())
}
