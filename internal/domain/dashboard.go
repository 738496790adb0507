package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_dashboard_service.go -package mocks github.com/wsdmailer/wsdmailer/internal/domain DashboardService

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Cursor points at the last row of a page ordered by (timestamp DESC, id DESC)
type Cursor struct {
	Time time.Time
	ID   string
}

// EncodeCursor renders a cursor as base64("timestamp~id")
func EncodeCursor(t time.Time, id string) string {
	return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s~%s", t.UTC().Format(time.RFC3339Nano), id)))
}

// DecodeCursor parses a cursor produced by EncodeCursor
func DecodeCursor(cursor string) (*Cursor, error) {
	decoded, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor encoding: %w", err)
	}

	ts, id, found := strings.Cut(string(decoded), "~")
	if !found || id == "" {
		return nil, fmt.Errorf("invalid cursor format: expected timestamp~id")
	}

	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor timestamp format: %w", err)
	}

	return &Cursor{Time: t, ID: id}, nil
}

func parseLimit(query url.Values) (int, error) {
	limitStr := query.Get("limit")
	if limitStr == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return 0, fmt.Errorf("invalid limit value: %s", limitStr)
	}
	return limit, nil
}

func normalizeLimit(limit int) (int, error) {
	if limit < 0 {
		return 0, fmt.Errorf("limit cannot be negative")
	}
	if limit > MaxListLimit {
		return MaxListLimit, nil
	}
	if limit == 0 {
		return DefaultListLimit, nil
	}
	return limit, nil
}

func validateDomainFilter(name string) error {
	if name == "" || name == UnknownDomainName {
		return nil
	}
	if !govalidator.IsDNSName(name) {
		return fmt.Errorf("invalid domain: %s", name)
	}
	return nil
}

// EmailListParams filters the emails list, newest first
type EmailListParams struct {
	Cursor string `json:"cursor,omitempty"`
	Limit  int    `json:"limit,omitempty"`

	Domain    string         `json:"domain,omitempty"`
	Status    DeliveryStatus `json:"status,omitempty"`
	Recipient string         `json:"recipient,omitempty"`
}

// FromQuery creates EmailListParams from HTTP query parameters
func (p *EmailListParams) FromQuery(query url.Values) error {
	p.Cursor = query.Get("cursor")
	p.Domain = NormalizeDomainName(query.Get("domain"))
	p.Status = DeliveryStatus(query.Get("status"))
	p.Recipient = strings.TrimSpace(query.Get("recipient"))

	limit, err := parseLimit(query)
	if err != nil {
		return err
	}
	p.Limit = limit

	return p.Validate()
}

func (p *EmailListParams) Validate() error {
	limit, err := normalizeLimit(p.Limit)
	if err != nil {
		return err
	}
	p.Limit = limit

	if err := validateDomainFilter(p.Domain); err != nil {
		return err
	}

	if p.Status != "" {
		statuses := make([]string, len(DeliveryStatuses))
		for i, s := range DeliveryStatuses {
			statuses[i] = string(s)
		}
		if !govalidator.IsIn(string(p.Status), statuses...) {
			return fmt.Errorf("invalid status: %s", p.Status)
		}
	}

	if p.Recipient != "" && !govalidator.IsEmail(p.Recipient) {
		return fmt.Errorf("invalid recipient email format")
	}

	if p.Cursor != "" {
		if _, err := DecodeCursor(p.Cursor); err != nil {
			return err
		}
	}

	return nil
}

type EmailListResult struct {
	Emails     []*Email `json:"emails"`
	NextCursor string   `json:"next_cursor,omitempty"`
	HasMore    bool     `json:"has_more"`
}

// EmailEventListParams filters the event log, newest first
type EmailEventListParams struct {
	Cursor string `json:"cursor,omitempty"`
	Limit  int    `json:"limit,omitempty"`

	Domain    string `json:"domain,omitempty"`
	Type      string `json:"type,omitempty"`
	MessageID string `json:"message_id,omitempty"`
}

// FromQuery creates EmailEventListParams from HTTP query parameters
func (p *EmailEventListParams) FromQuery(query url.Values) error {
	p.Cursor = query.Get("cursor")
	p.Domain = NormalizeDomainName(query.Get("domain"))
	p.Type = strings.TrimSpace(query.Get("type"))
	p.MessageID = query.Get("message_id")

	limit, err := parseLimit(query)
	if err != nil {
		return err
	}
	p.Limit = limit

	return p.Validate()
}

func (p *EmailEventListParams) Validate() error {
	limit, err := normalizeLimit(p.Limit)
	if err != nil {
		return err
	}
	p.Limit = limit

	if err := validateDomainFilter(p.Domain); err != nil {
		return err
	}

	// Types are provider defined, only the charset is checked
	if p.Type != "" && !govalidator.Matches(p.Type, `^[a-z0-9_.]+$`) {
		return fmt.Errorf("invalid event type: %s", p.Type)
	}

	if p.Cursor != "" {
		if _, err := DecodeCursor(p.Cursor); err != nil {
			return err
		}
	}

	return nil
}

type EmailEventListResult struct {
	Events     []*EmailEvent `json:"events"`
	NextCursor string        `json:"next_cursor,omitempty"`
	HasMore    bool          `json:"has_more"`
}

// RecentActivity counts activity in the trailing 7 day and 24 hour windows
type RecentActivity struct {
	EmailsLast7Days   int64 `json:"emailsLast7Days"`
	EmailsLast24Hours int64 `json:"emailsLast24Hours"`
	OpensLast7Days    int64 `json:"opensLast7Days"`
	OpensLast24Hours  int64 `json:"opensLast24Hours"`
	ClicksLast7Days   int64 `json:"clicksLast7Days"`
	ClicksLast24Hours int64 `json:"clicksLast24Hours"`
	UniqueRecipients  int64 `json:"uniqueRecipients"`

	// Distinct recipients with at least one open or click event, all time
	RecipientsWhoOpened  int64 `json:"recipientsWhoOpened"`
	RecipientsWhoClicked int64 `json:"recipientsWhoClicked"`
}

// DashboardRates are percentages rounded to two decimals
type DashboardRates struct {
	DeliveryRate float64 `json:"deliveryRate"`
	OpenRate     float64 `json:"openRate"`
	ClickRate    float64 `json:"clickRate"`

	RecipientOpenRate  float64 `json:"recipientOpenRate"`
	RecipientClickRate float64 `json:"recipientClickRate"`
}

type DashboardStats struct {
	Domain         string         `json:"domain,omitempty"`
	Summary        SummaryCounts  `json:"summary"`
	TotalDelivered int64          `json:"totalDelivered"`
	TotalFailed    int64          `json:"totalFailed"`
	TotalPending   int64          `json:"totalPending"`
	Rates          DashboardRates `json:"rates"`
	RecentActivity RecentActivity `json:"recentActivity"`
	GeneratedAt    time.Time      `json:"generatedAt"`
}

// NewDashboardStats derives totals and rates from summary counters and
// recent activity. Delivery rate uses sent as denominator, open and click
// rates use delivered, recipient rates use unique recipients.
func NewDashboardStats(domainName string, c SummaryCounts, activity RecentActivity, now time.Time) *DashboardStats {
	delivered := c.TotalDelivered()
	return &DashboardStats{
		Domain:         domainName,
		Summary:        c,
		TotalDelivered: delivered,
		TotalFailed:    c.TotalFailed(),
		TotalPending:   c.TotalHeld + c.TotalDelayed,
		Rates: DashboardRates{
			DeliveryRate:       percentage(delivered, c.TotalSent),
			OpenRate:           percentage(c.TotalLoaded, delivered),
			ClickRate:          percentage(c.TotalClicked, delivered),
			RecipientOpenRate:  percentage(activity.RecipientsWhoOpened, activity.UniqueRecipients),
			RecipientClickRate: percentage(activity.RecipientsWhoClicked, activity.UniqueRecipients),
		},
		RecentActivity: activity,
		GeneratedAt:    now,
	}
}

func percentage(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*10000) / 100
}

// AudienceListParams pages through recipients ranked by email volume
type AudienceListParams struct {
	Domain string `json:"domain,omitempty"`
	Search string `json:"search,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// FromQuery creates AudienceListParams from HTTP query parameters
func (p *AudienceListParams) FromQuery(query url.Values) error {
	p.Domain = NormalizeDomainName(query.Get("domain"))
	p.Search = strings.TrimSpace(query.Get("search"))

	limit, err := parseLimit(query)
	if err != nil {
		return err
	}
	p.Limit = limit

	if offsetStr := query.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return fmt.Errorf("invalid offset value: %s", offsetStr)
		}
		p.Offset = offset
	}

	return p.Validate()
}

func (p *AudienceListParams) Validate() error {
	limit, err := normalizeLimit(p.Limit)
	if err != nil {
		return err
	}
	p.Limit = limit

	if p.Offset < 0 {
		return fmt.Errorf("offset cannot be negative")
	}

	if err := validateDomainFilter(p.Domain); err != nil {
		return err
	}

	if !govalidator.IsByteLength(p.Search, 0, 254) {
		return fmt.Errorf("search is too long")
	}

	return nil
}

// AudienceEntry is the engagement of one recipient across every email sent to it.
// Opens and clicks count events, so a recipient can exceed one per email.
type AudienceEntry struct {
	Email           string     `json:"email"`
	TotalEmails     int64      `json:"totalEmails"`
	DeliveredEmails int64      `json:"deliveredEmails"`
	FailedEmails    int64      `json:"failedEmails"`
	TotalOpens      int64      `json:"totalOpens"`
	TotalClicks     int64      `json:"totalClicks"`
	OpenRate        float64    `json:"openRate"`
	ClickRate       float64    `json:"clickRate"`
	FirstEmailSent  *time.Time `json:"firstEmailSent,omitempty"`
	LastActivity    *time.Time `json:"lastActivity,omitempty"`
}

// ComputeRates fills the per email open and click rates
func (e *AudienceEntry) ComputeRates() {
	e.OpenRate = percentage(e.TotalOpens, e.TotalEmails)
	e.ClickRate = percentage(e.TotalClicks, e.TotalEmails)
}

type AudienceListResult struct {
	Recipients []*AudienceEntry `json:"recipients"`
	Total      int64            `json:"total"`
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
	HasMore    bool             `json:"has_more"`
}

type DomainListResult struct {
	Domains      []*DomainSummary `json:"domains"`
	LastSyncedAt *time.Time       `json:"last_synced_at,omitempty"`
}

// DashboardService serves the read side of the summaries and event log
type DashboardService interface {
	// GetStats aggregates over all domains when domainName is empty
	GetStats(ctx context.Context, domainName string) (*DashboardStats, error)
	ListEvents(ctx context.Context, params EmailEventListParams) (*EmailEventListResult, error)
	ListEmails(ctx context.Context, params EmailListParams) (*EmailListResult, error)
	ListDomains(ctx context.Context) (*DomainListResult, error)

	// ListAudience ranks recipients by emails received, over all domains when params.Domain is empty
	ListAudience(ctx context.Context, params AudienceListParams) (*AudienceListResult, error)
}
