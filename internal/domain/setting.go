package domain

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_setting_repository.go -package mocks github.com/wsdmailer/wsdmailer/internal/domain SettingRepository

// Setting is a key/value row of the settings table
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ErrSettingNotFound struct {
	Key string
}

func (e *ErrSettingNotFound) Error() string {
	return fmt.Sprintf("setting not found: %s", e.Key)
}

type SettingRepository interface {
	Get(ctx context.Context, key string) (*Setting, error)
	Set(ctx context.Context, key, value string) error

	// SetLastDomainSync records when the sending domains were last pulled
	SetLastDomainSync(ctx context.Context, at time.Time) error
	// GetLastDomainSync returns nil when no sync has completed yet
	GetLastDomainSync(ctx context.Context) (*time.Time, error)
}
