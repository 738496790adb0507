package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/wsdmailer/wsdmailer/internal/domain"
)

var domainColumns = []string{"id", "name", "created_at", "updated_at"}

// DomainRepository implements domain.DomainRepository using PostgreSQL
type DomainRepository struct {
	db *sql.DB
}

// NewDomainRepository creates a new DomainRepository instance
func NewDomainRepository(db *sql.DB) domain.DomainRepository {
	return &DomainRepository{db: db}
}

// UpsertByNameTx resolves a domain by name inside the ingest transaction.
// The no-op update makes RETURNING yield the existing row on conflict, so
// concurrent first events for a new domain never fail on the unique index.
func (r *DomainRepository) UpsertByNameTx(ctx context.Context, tx *sql.Tx, name string, now time.Time) (*domain.SendingDomain, error) {
	query, args, err := psql.Insert("domains").
		Columns(domainColumns...).
		Values(uuid.New().String(), domain.NormalizeDomainName(name), now, now).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id, name, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	d := &domain.SendingDomain{}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to upsert domain: %w", err)
	}

	return d, nil
}

// Touch creates the domain or refreshes its updated_at
func (r *DomainRepository) Touch(ctx context.Context, name string, now time.Time) (*domain.SendingDomain, bool, error) {
	query, args, err := psql.Insert("domains").
		Columns(domainColumns...).
		Values(uuid.New().String(), domain.NormalizeDomainName(name), now, now).
		Suffix("ON CONFLICT (name) DO UPDATE SET updated_at = EXCLUDED.updated_at RETURNING id, name, created_at, updated_at, (xmax = 0) AS inserted").
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build query: %w", err)
	}

	d := &domain.SendingDomain{}
	var inserted bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt, &inserted); err != nil {
		return nil, false, fmt.Errorf("failed to touch domain: %w", err)
	}

	return d, inserted, nil
}

// GetByName returns the domain or domain.ErrNotFound
func (r *DomainRepository) GetByName(ctx context.Context, name string) (*domain.SendingDomain, error) {
	query, args, err := psql.Select(domainColumns...).
		From("domains").
		Where(sq.Eq{"name": domain.NormalizeDomainName(name)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	d := &domain.SendingDomain{}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrNotFound{Entity: "domain", ID: name}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get domain: %w", err)
	}

	return d, nil
}

// List returns all domains ordered by name
func (r *DomainRepository) List(ctx context.Context) ([]*domain.SendingDomain, error) {
	query, args, err := psql.Select(domainColumns...).
		From("domains").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	defer rows.Close()

	domains := []*domain.SendingDomain{}
	for rows.Next() {
		d := &domain.SendingDomain{}
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating domain rows: %w", err)
	}

	return domains, nil
}
