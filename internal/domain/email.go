package domain

import (
	"context"
	"database/sql"
	"time"
)

//go:generate mockgen -destination mocks/mock_email_repository.go -package mocks github.com/wsdmailer/wsdmailer/internal/domain EmailRepository

// DeliveryStatus is the latest delivery outcome reported for an email.
// It is last-write-wins; history lives in email_events.
type DeliveryStatus string

const (
	DeliveryStatusSent     DeliveryStatus = "sent"
	DeliveryStatusHardFail DeliveryStatus = "hardfail"
	DeliveryStatusSoftFail DeliveryStatus = "softfail"
	DeliveryStatusBounce   DeliveryStatus = "bounce"
	DeliveryStatusError    DeliveryStatus = "error"
	DeliveryStatusHeld     DeliveryStatus = "held"
	DeliveryStatusDelayed  DeliveryStatus = "delayed"
)

// DeliveryStatuses lists every status in summary column order
var DeliveryStatuses = []DeliveryStatus{
	DeliveryStatusSent,
	DeliveryStatusHardFail,
	DeliveryStatusSoftFail,
	DeliveryStatusBounce,
	DeliveryStatusError,
	DeliveryStatusHeld,
	DeliveryStatusDelayed,
}

// ParseDeliveryStatus maps a provider suffix ("sent", "hardfail", ...) to a status
func ParseDeliveryStatus(value string) (DeliveryStatus, bool) {
	for _, s := range DeliveryStatuses {
		if string(s) == value {
			return s, true
		}
	}
	return "", false
}

// IsFailure reports whether the status counts against delivered mail
func (s DeliveryStatus) IsFailure() bool {
	switch s {
	case DeliveryStatusHardFail, DeliveryStatusSoftFail, DeliveryStatusBounce, DeliveryStatusError:
		return true
	}
	return false
}

// SummaryField returns the counter incremented when an email moves to s
func (s DeliveryStatus) SummaryField() SummaryField {
	switch s {
	case DeliveryStatusSent:
		return SummaryFieldSent
	case DeliveryStatusHardFail:
		return SummaryFieldHardFail
	case DeliveryStatusSoftFail:
		return SummaryFieldSoftFail
	case DeliveryStatusBounce:
		return SummaryFieldBounce
	case DeliveryStatusError:
		return SummaryFieldError
	case DeliveryStatusHeld:
		return SummaryFieldHeld
	case DeliveryStatusDelayed:
		return SummaryFieldDelayed
	}
	return ""
}

// Email is one outbound message, keyed by the provider message id
type Email struct {
	ID              string          `json:"id"`
	MessageID       string          `json:"message_id"`
	ProviderEmailID int64           `json:"provider_email_id"`
	Token           string          `json:"token"`
	To              string          `json:"to"`
	From            string          `json:"from"`
	Subject         string          `json:"subject"`
	SpamStatus      *int            `json:"spam_status,omitempty"`
	DeliveryStatus  *DeliveryStatus `json:"delivery_status,omitempty"`
	SentAt          *time.Time      `json:"sent_at,omitempty"`
	FirstOpenAt     *time.Time      `json:"first_open_at,omitempty"`
	FirstClickAt    *time.Time      `json:"first_click_at,omitempty"`
	DomainID        string          `json:"domain_id"`
	DomainName      string          `json:"domain_name,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// EmailUpsert carries the identity fields written when an email is first seen
type EmailUpsert struct {
	ID              string
	MessageID       string
	ProviderEmailID int64
	Token           string
	To              string
	From            string
	Subject         string
	SpamStatus      *int
	DomainID        string
	Now             time.Time
}

// EmailState is what the resolver hands to the state machine: the stored
// row's id and domain plus the mutable fields as they were before this event.
type EmailState struct {
	ID             string
	DomainID       string
	DeliveryStatus *DeliveryStatus
	SentAt         *time.Time
	FirstOpenAt    *time.Time
	FirstClickAt   *time.Time
	Created        bool
}

// EmailRepository persists emails. The Tx methods run inside the ingest transaction.
type EmailRepository interface {
	WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error

	// UpsertTx inserts the email or, when message_id already exists, returns
	// the stored row. relinkDomain moves an existing email to input.DomainID.
	UpsertTx(ctx context.Context, tx *sql.Tx, input EmailUpsert, relinkDomain bool) (*EmailState, error)

	// DomainIDByMessageIDTx returns the domain of a stored email, or "" when
	// no email has that message_id yet
	DomainIDByMessageIDTx(ctx context.Context, tx *sql.Tx, messageID string) (string, error)

	// SetDeliveryStatusTx overwrites delivery_status. sent_at is stamped only
	// for DeliveryStatusSent and only if it is still null.
	SetDeliveryStatusTx(ctx context.Context, tx *sql.Tx, emailID string, status DeliveryStatus, at time.Time) error

	// LatchFirstOpenTx sets first_open_at if it is null and reports whether this call set it.
	LatchFirstOpenTx(ctx context.Context, tx *sql.Tx, emailID string, at time.Time) (bool, error)

	// LatchFirstClickTx sets first_click_at if it is null and reports whether this call set it.
	LatchFirstClickTx(ctx context.Context, tx *sql.Tx, emailID string, at time.Time) (bool, error)

	GetByMessageID(ctx context.Context, messageID string) (*Email, error)
	List(ctx context.Context, params EmailListParams) (*EmailListResult, error)

	// AudienceStats groups emails by recipient, busiest first, and returns one
	// page together with the number of matching recipients. search is a case
	// insensitive substring of the address. An empty domainID covers every domain.
	AudienceStats(ctx context.Context, domainID, search string, limit, offset int) ([]*AudienceEntry, int64, error)

	// CountSummary recomputes the summary counters of a domain from the emails table
	CountSummary(ctx context.Context, domainID string) (*SummaryCounts, error)
}
