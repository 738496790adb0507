package domain

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_domain_sync_service.go -package mocks github.com/wsdmailer/wsdmailer/internal/domain DomainSyncService

// DomainSyncReport summarizes one pull of the provider's sending domains
type DomainSyncReport struct {
	TotalReceived int           `json:"totalReceived"`
	Synced        int           `json:"synced"`
	Created       int           `json:"created"`
	Updated       int           `json:"updated"`
	Skipped       int           `json:"skipped"`
	Failed        int           `json:"failed"`
	Duration      time.Duration `json:"-"`
	DurationText  string        `json:"duration"`
	Timestamp     time.Time     `json:"timestamp"`
}

// ProviderAPIError is a non-2xx answer from the Emailit API
type ProviderAPIError struct {
	StatusCode int
	Body       string
}

func (e *ProviderAPIError) Error() string {
	return fmt.Sprintf("emailit api error: %d: %s", e.StatusCode, e.Body)
}

// DomainSyncService mirrors the provider's sending domains into the domains table
type DomainSyncService interface {
	SyncDomains(ctx context.Context) (*DomainSyncReport, error)
}
