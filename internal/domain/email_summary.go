package domain

import (
	"context"
	"database/sql"
	"time"
)

//go:generate mockgen -destination mocks/mock_email_summary_repository.go -package mocks github.com/wsdmailer/wsdmailer/internal/domain EmailSummaryRepository

// SummaryField is a counter column of email_summaries
type SummaryField string

const (
	SummaryFieldSent     SummaryField = "total_sent"
	SummaryFieldHardFail SummaryField = "total_hard_fail"
	SummaryFieldSoftFail SummaryField = "total_soft_fail"
	SummaryFieldBounce   SummaryField = "total_bounce"
	SummaryFieldError    SummaryField = "total_error"
	SummaryFieldHeld     SummaryField = "total_held"
	SummaryFieldDelayed  SummaryField = "total_delayed"
	SummaryFieldLoaded   SummaryField = "total_loaded"
	SummaryFieldClicked  SummaryField = "total_clicked"
)

// SummaryFields lists the counters in column order
var SummaryFields = []SummaryField{
	SummaryFieldSent,
	SummaryFieldHardFail,
	SummaryFieldSoftFail,
	SummaryFieldBounce,
	SummaryFieldError,
	SummaryFieldHeld,
	SummaryFieldDelayed,
	SummaryFieldLoaded,
	SummaryFieldClicked,
}

// IsValid guards the column name before it is spliced into SQL
func (f SummaryField) IsValid() bool {
	for _, known := range SummaryFields {
		if f == known {
			return true
		}
	}
	return false
}

// SummaryCounts holds the per-domain running totals
type SummaryCounts struct {
	TotalSent     int64 `json:"totalSent"`
	TotalHardFail int64 `json:"totalHardFail"`
	TotalSoftFail int64 `json:"totalSoftFail"`
	TotalBounce   int64 `json:"totalBounce"`
	TotalError    int64 `json:"totalError"`
	TotalHeld     int64 `json:"totalHeld"`
	TotalDelayed  int64 `json:"totalDelayed"`
	TotalLoaded   int64 `json:"totalLoaded"`
	TotalClicked  int64 `json:"totalClicked"`
}

func (c *SummaryCounts) ptr(field SummaryField) *int64 {
	switch field {
	case SummaryFieldSent:
		return &c.TotalSent
	case SummaryFieldHardFail:
		return &c.TotalHardFail
	case SummaryFieldSoftFail:
		return &c.TotalSoftFail
	case SummaryFieldBounce:
		return &c.TotalBounce
	case SummaryFieldError:
		return &c.TotalError
	case SummaryFieldHeld:
		return &c.TotalHeld
	case SummaryFieldDelayed:
		return &c.TotalDelayed
	case SummaryFieldLoaded:
		return &c.TotalLoaded
	case SummaryFieldClicked:
		return &c.TotalClicked
	}
	return nil
}

// Get returns the value of a counter, 0 for an unknown field
func (c SummaryCounts) Get(field SummaryField) int64 {
	if p := c.ptr(field); p != nil {
		return *p
	}
	return 0
}

// Increment bumps one counter by one
func (c *SummaryCounts) Increment(field SummaryField) {
	if p := c.ptr(field); p != nil {
		*p++
	}
}

// Add sums other into c
func (c *SummaryCounts) Add(other SummaryCounts) {
	for _, f := range SummaryFields {
		*c.ptr(f) += other.Get(f)
	}
}

// TotalFailed is hardfail + softfail + bounce + error
func (c SummaryCounts) TotalFailed() int64 {
	return c.TotalHardFail + c.TotalSoftFail + c.TotalBounce + c.TotalError
}

// TotalDelivered is sent minus failures, floored at zero. Delivery increments
// are not latched, so failures can exceed sent for a domain.
func (c SummaryCounts) TotalDelivered() int64 {
	delivered := c.TotalSent - c.TotalFailed()
	if delivered < 0 {
		return 0
	}
	return delivered
}

// Diff lists the fields whose value differs between c and other
func (c SummaryCounts) Diff(other SummaryCounts) []SummaryField {
	var fields []SummaryField
	for _, f := range SummaryFields {
		if c.Get(f) != other.Get(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// EmailSummary is the counters row of one domain
type EmailSummary struct {
	DomainID string `json:"domainId"`
	SummaryCounts
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DomainSummary pairs a domain with its summary, zero counters when none exists yet
type DomainSummary struct {
	Domain     SendingDomain `json:"domain"`
	Summary    SummaryCounts `json:"summary"`
	EmailCount int64         `json:"email_count"`
}

type EmailSummaryRepository interface {
	// IncrementTx adds one to field, creating the row with that single count
	// when the domain has no summary yet. One statement, safe under concurrency.
	IncrementTx(ctx context.Context, tx *sql.Tx, domainID string, field SummaryField, at time.Time) error

	Get(ctx context.Context, domainID string) (*EmailSummary, error)

	// Aggregate sums the counters of every domain, or of one domain when domainID is set
	Aggregate(ctx context.Context, domainID string) (*SummaryCounts, error)

	// Replace overwrites the counters of a domain and reports whether the row was created
	Replace(ctx context.Context, domainID string, counts SummaryCounts, at time.Time) (bool, error)

	ListWithDomains(ctx context.Context) ([]*DomainSummary, error)
}
