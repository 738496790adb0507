package domain

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

//go:generate mockgen -destination mocks/mock_email_event_repository.go -package mocks github.com/wsdmailer/wsdmailer/internal/domain EmailEventRepository

// EmailEvent is the append-only record of one provider event
type EmailEvent struct {
	ID         string          `json:"id"`
	EventID    string          `json:"event_id"`
	Type       string          `json:"type"`
	Status     *string         `json:"status,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	EmailID    string          `json:"email_id"`
	IPAddress  *string         `json:"ip_address,omitempty"`
	Country    *string         `json:"country,omitempty"`
	City       *string         `json:"city,omitempty"`
	UserAgent  *string         `json:"user_agent,omitempty"`
	IsBot      bool            `json:"is_bot"`
	LinkID     *string         `json:"link_id,omitempty"`
	LinkURL    *string         `json:"link_url,omitempty"`
	RawPayload json.RawMessage `json:"raw_payload,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`

	// Populated by list queries
	MessageID  string `json:"message_id,omitempty"`
	Recipient  string `json:"recipient,omitempty"`
	DomainName string `json:"domain_name,omitempty"`
}

type EmailEventRepository interface {
	// InsertTx appends the event. Duplicate provider event ids are stored again.
	InsertTx(ctx context.Context, tx *sql.Tx, event *EmailEvent) error

	List(ctx context.Context, params EmailEventListParams) (*EmailEventListResult, error)

	// RecentActivity counts emails, opens and clicks since the given instants
	RecentActivity(ctx context.Context, domainID string, now time.Time) (*RecentActivity, error)
}
