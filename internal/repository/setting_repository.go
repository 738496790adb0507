package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wsdmailer/wsdmailer/internal/domain"
)

const (
	LastDomainSyncKey = "last_domain_sync"
)

// SQLSettingRepository is a SQL implementation of the SettingRepository interface
type SQLSettingRepository struct {
	systemDB *sql.DB
}

// NewSQLSettingRepository creates a new SQLSettingRepository
func NewSQLSettingRepository(db *sql.DB) *SQLSettingRepository {
	return &SQLSettingRepository{
		systemDB: db,
	}
}

// Get retrieves a setting by key
func (r *SQLSettingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	var setting domain.Setting
	err := r.systemDB.QueryRowContext(ctx,
		"SELECT key, value, created_at, updated_at FROM settings WHERE key = $1",
		key,
	).Scan(&setting.Key, &setting.Value, &setting.CreatedAt, &setting.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ErrSettingNotFound{Key: key}
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}

	return &setting, nil
}

// Set creates or updates a setting
func (r *SQLSettingRepository) Set(ctx context.Context, key, value string) error {
	now := time.Now().UTC()

	_, err := r.systemDB.ExecContext(ctx, `
		INSERT INTO settings (key, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key)
		DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, value, now, now)
	if err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}

	return nil
}

// SetLastDomainSync stores the completion time of a domain sync
func (r *SQLSettingRepository) SetLastDomainSync(ctx context.Context, at time.Time) error {
	return r.Set(ctx, LastDomainSyncKey, at.UTC().Format(time.RFC3339))
}

// GetLastDomainSync retrieves the last domain sync timestamp
func (r *SQLSettingRepository) GetLastDomainSync(ctx context.Context) (*time.Time, error) {
	setting, err := r.Get(ctx, LastDomainSyncKey)
	if err != nil {
		var notFound *domain.ErrSettingNotFound
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}

	timestamp, err := time.Parse(time.RFC3339, setting.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", LastDomainSyncKey, err)
	}

	return &timestamp, nil
}
