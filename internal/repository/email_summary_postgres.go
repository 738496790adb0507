package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/wsdmailer/wsdmailer/internal/domain"
)

// EmailSummaryRepository implements domain.EmailSummaryRepository using PostgreSQL
type EmailSummaryRepository struct {
	db *sql.DB
}

// NewEmailSummaryRepository creates a new EmailSummaryRepository instance
func NewEmailSummaryRepository(db *sql.DB) domain.EmailSummaryRepository {
	return &EmailSummaryRepository{db: db}
}

func summaryColumns(prefix string) []string {
	cols := make([]string, len(domain.SummaryFields))
	for i, f := range domain.SummaryFields {
		cols[i] = prefix + string(f)
	}
	return cols
}

func summaryScanTargets(c *domain.SummaryCounts) []interface{} {
	return []interface{}{
		&c.TotalSent, &c.TotalHardFail, &c.TotalSoftFail, &c.TotalBounce,
		&c.TotalError, &c.TotalHeld, &c.TotalDelayed, &c.TotalLoaded, &c.TotalClicked,
	}
}

// IncrementTx adds one to a counter. Creating the row and bumping it is a
// single statement, so two first events for a domain cannot lose a count.
func (r *EmailSummaryRepository) IncrementTx(ctx context.Context, tx *sql.Tx, domainID string, field domain.SummaryField, at time.Time) error {
	if !field.IsValid() {
		return fmt.Errorf("invalid summary field: %q", field)
	}
	col := string(field)

	query, args, err := psql.Insert("email_summaries").
		Columns("domain_id", col, "created_at", "updated_at").
		Values(domainID, 1, at, at).
		Suffix(fmt.Sprintf("ON CONFLICT (domain_id) DO UPDATE SET %s = email_summaries.%s + 1, updated_at = EXCLUDED.updated_at", col, col)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to increment %s: %w", col, err)
	}

	return nil
}

// Get returns the summary row of a domain
func (r *EmailSummaryRepository) Get(ctx context.Context, domainID string) (*domain.EmailSummary, error) {
	cols := append([]string{"domain_id"}, summaryColumns("")...)
	cols = append(cols, "created_at", "updated_at")

	query, args, err := psql.Select(cols...).
		From("email_summaries").
		Where(sq.Eq{"domain_id": domainID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	s := &domain.EmailSummary{}
	targets := append([]interface{}{&s.DomainID}, summaryScanTargets(&s.SummaryCounts)...)
	targets = append(targets, &s.CreatedAt, &s.UpdatedAt)

	err = r.db.QueryRowContext(ctx, query, args...).Scan(targets...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrNotFound{Entity: "email summary", ID: domainID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email summary: %w", err)
	}

	return s, nil
}

// Aggregate sums counters across summaries, optionally for one domain
func (r *EmailSummaryRepository) Aggregate(ctx context.Context, domainID string) (*domain.SummaryCounts, error) {
	builder := psql.Select()
	for _, col := range summaryColumns("") {
		builder = builder.Column(fmt.Sprintf("COALESCE(SUM(%s), 0)", col))
	}
	builder = builder.From("email_summaries")
	if domainID != "" {
		builder = builder.Where(sq.Eq{"domain_id": domainID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	c := &domain.SummaryCounts{}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(summaryScanTargets(c)...); err != nil {
		return nil, fmt.Errorf("failed to aggregate email summaries: %w", err)
	}

	return c, nil
}

// Replace overwrites every counter of a domain
func (r *EmailSummaryRepository) Replace(ctx context.Context, domainID string, counts domain.SummaryCounts, at time.Time) (bool, error) {
	cols := summaryColumns("")
	values := []interface{}{domainID}
	updates := make([]string, 0, len(cols)+1)
	for _, f := range domain.SummaryFields {
		values = append(values, counts.Get(f))
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", f, f))
	}
	values = append(values, at, at)
	updates = append(updates, "updated_at = EXCLUDED.updated_at")

	allCols := append([]string{"domain_id"}, cols...)
	allCols = append(allCols, "created_at", "updated_at")

	query, args, err := psql.Insert("email_summaries").
		Columns(allCols...).
		Values(values...).
		Suffix("ON CONFLICT (domain_id) DO UPDATE SET " + strings.Join(updates, ", ") + " RETURNING (xmax = 0) AS inserted").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var inserted bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&inserted); err != nil {
		return false, fmt.Errorf("failed to replace email summary: %w", err)
	}

	return inserted, nil
}

// ListWithDomains returns every domain with its counters, zero when no
// summary exists, and the number of emails stored for it
func (r *EmailSummaryRepository) ListWithDomains(ctx context.Context) ([]*domain.DomainSummary, error) {
	cols := []string{"d.id", "d.name", "d.created_at", "d.updated_at"}
	for _, col := range summaryColumns("s.") {
		cols = append(cols, fmt.Sprintf("COALESCE(%s, 0)", col))
	}

	cols = append(cols, "COUNT(e.id)")

	// d.id and s.domain_id are primary keys, so grouping on them covers every selected column
	query, args, err := psql.Select(cols...).
		From("domains d").
		LeftJoin("email_summaries s ON s.domain_id = d.id").
		LeftJoin("emails e ON e.domain_id = d.id").
		GroupBy("d.id", "s.domain_id").
		OrderBy("d.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list domain summaries: %w", err)
	}
	defer rows.Close()

	summaries := []*domain.DomainSummary{}
	for rows.Next() {
		ds := &domain.DomainSummary{}
		targets := []interface{}{&ds.Domain.ID, &ds.Domain.Name, &ds.Domain.CreatedAt, &ds.Domain.UpdatedAt}
		targets = append(targets, summaryScanTargets(&ds.Summary)...)
		targets = append(targets, &ds.EmailCount)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("failed to scan domain summary: %w", err)
		}
		summaries = append(summaries, ds)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating domain summary rows: %w", err)
	}

	return summaries, nil
}
