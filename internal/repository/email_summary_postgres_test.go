package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsdmailer/wsdmailer/internal/domain"
	"github.com/wsdmailer/wsdmailer/internal/repository/testutil"
)

var summaryRowColumns = []string{
	"total_sent", "total_hard_fail", "total_soft_fail", "total_bounce", "total_error",
	"total_held", "total_delayed", "total_loaded", "total_clicked",
}

func TestEmailSummaryRepository_IncrementTx(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewEmailSummaryRepository(db)
	at := time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO email_summaries (domain_id,total_loaded,created_at,updated_at) VALUES ($1,$2,$3,$4) ON CONFLICT (domain_id) DO UPDATE SET total_loaded = email_summaries.total_loaded + 1, updated_at = EXCLUDED.updated_at`)).
		WithArgs("dom-1", 1, at, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementTx(context.Background(), tx, "dom-1", domain.SummaryFieldLoaded, at))

	err = repo.IncrementTx(context.Background(), tx, "dom-1", domain.SummaryField("total_sent = 0 --"), at)
	assert.ErrorContains(t, err, "invalid summary field")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailSummaryRepository_Get(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewEmailSummaryRepository(db)
	now := time.Now().UTC()
	cols := append([]string{"domain_id"}, summaryRowColumns...)
	cols = append(cols, "created_at", "updated_at")

	mock.ExpectQuery(`SELECT domain_id, total_sent, .* FROM email_summaries WHERE domain_id = \$1`).
		WithArgs("dom-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("dom-1", 5, 1, 0, 0, 0, 0, 0, 3, 1, now, now))

	s, err := repo.Get(context.Background(), "dom-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), s.TotalSent)
	assert.Equal(t, int64(3), s.TotalLoaded)

	mock.ExpectQuery(`FROM email_summaries`).WithArgs("dom-2").WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), "dom-2")
	var notFound *domain.ErrNotFound
	assert.ErrorAs(t, err, &notFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailSummaryRepository_Aggregate(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewEmailSummaryRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_sent\), 0\), .* FROM email_summaries$`).
		WillReturnRows(sqlmock.NewRows(summaryRowColumns).AddRow(100, 2, 3, 4, 1, 0, 0, 40, 10))

	c, err := repo.Aggregate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(100), c.TotalSent)
	assert.Equal(t, int64(10), c.TotalFailed())

	mock.ExpectQuery(`FROM email_summaries WHERE domain_id = \$1`).
		WithArgs("dom-1").
		WillReturnRows(sqlmock.NewRows(summaryRowColumns).AddRow(0, 0, 0, 0, 0, 0, 0, 0, 0))

	_, err = repo.Aggregate(context.Background(), "dom-1")
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailSummaryRepository_Replace(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewEmailSummaryRepository(db)
	at := time.Now().UTC()
	counts := domain.SummaryCounts{TotalSent: 9, TotalBounce: 1, TotalLoaded: 4}

	mock.ExpectQuery(`INSERT INTO email_summaries .* ON CONFLICT \(domain_id\) DO UPDATE SET total_sent = EXCLUDED.total_sent, .* total_clicked = EXCLUDED.total_clicked, updated_at = EXCLUDED.updated_at RETURNING \(xmax = 0\) AS inserted`).
		WithArgs("dom-1", int64(9), int64(0), int64(0), int64(1), int64(0), int64(0), int64(0), int64(4), int64(0), at, at).
		WillReturnRows(sqlmock.NewRows([]string{"inserted"}).AddRow(false))

	created, err := repo.Replace(context.Background(), "dom-1", counts, at)
	require.NoError(t, err)
	assert.False(t, created)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailSummaryRepository_ListWithDomains(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewEmailSummaryRepository(db)
	now := time.Now().UTC()
	cols := append([]string{"id", "name", "created_at", "updated_at"}, summaryRowColumns...)
	cols = append(cols, "email_count")

	mock.ExpectQuery(`SELECT d.id, .*, COUNT\(e.id\) FROM domains d LEFT JOIN email_summaries s ON s.domain_id = d.id LEFT JOIN emails e ON e.domain_id = d.id GROUP BY d.id, s.domain_id ORDER BY d.name ASC`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("dom-1", "a.com", now, now, 10, 0, 0, 0, 0, 0, 0, 5, 1, 12).
			AddRow("dom-2", "b.com", now, now, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0))

	list, err := repo.ListWithDomains(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a.com", list[0].Domain.Name)
	assert.Equal(t, int64(5), list[0].Summary.TotalLoaded)
	assert.Equal(t, int64(12), list[0].EmailCount)
	assert.Equal(t, domain.SummaryCounts{}, list[1].Summary)
	assert.Zero(t, list[1].EmailCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}
