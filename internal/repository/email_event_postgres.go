package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/wsdmailer/wsdmailer/internal/domain"
	"github.com/wsdmailer/wsdmailer/pkg/tracing"
)

// EmailEventRepository implements domain.EmailEventRepository using PostgreSQL
type EmailEventRepository struct {
	db *sql.DB
}

// NewEmailEventRepository creates a new EmailEventRepository instance
func NewEmailEventRepository(db *sql.DB) domain.EmailEventRepository {
	return &EmailEventRepository{db: db}
}

// InsertTx appends one event
func (r *EmailEventRepository) InsertTx(ctx context.Context, tx *sql.Tx, event *domain.EmailEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query, args, err := psql.Insert("email_events").
		Columns(
			"id", "event_id", "type", "status", "occurred_at", "email_id",
			"ip_address", "country", "city", "user_agent", "is_bot",
			"link_id", "link_url", "raw_payload", "created_at",
		).
		Values(
			event.ID, event.EventID, event.Type, event.Status, event.OccurredAt, event.EmailID,
			event.IPAddress, event.Country, event.City, event.UserAgent, event.IsBot,
			event.LinkID, event.LinkURL, string(event.RawPayload), event.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert email event: %w", err)
	}

	return nil
}

// List returns events newest first. Raw payloads are not loaded.
func (r *EmailEventRepository) List(ctx context.Context, params domain.EmailEventListParams) (*domain.EmailEventListResult, error) {
	// codecov:ignore:start
	ctx, span := tracing.StartServiceSpan(ctx, "EmailEventRepository", "List")
	defer tracing.EndSpan(span, nil)
	// codecov:ignore:end

	limit := params.Limit
	if limit <= 0 {
		limit = domain.DefaultListLimit
	}

	queryBuilder := psql.Select(
		"ev.id", "ev.event_id", "ev.type", "ev.status", "ev.occurred_at", "ev.email_id",
		"ev.ip_address", "ev.country", "ev.city", "ev.user_agent", "ev.is_bot",
		"ev.link_id", "ev.link_url", "ev.created_at",
		"e.message_id", "e.to_address", "d.name",
	).
		From("email_events ev").
		Join("emails e ON e.id = ev.email_id").
		Join("domains d ON d.id = e.domain_id")

	if params.Domain != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"d.name": params.Domain})
	}
	if params.Type != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"ev.type": params.Type})
	}
	if params.MessageID != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"e.message_id": params.MessageID})
	}

	if params.Cursor != "" {
		cursor, err := domain.DecodeCursor(params.Cursor)
		if err != nil {
			return nil, err
		}
		queryBuilder = queryBuilder.Where(sq.Or{
			sq.Lt{"ev.occurred_at": cursor.Time},
			sq.And{
				sq.Eq{"ev.occurred_at": cursor.Time},
				sq.Lt{"ev.id": cursor.ID},
			},
		})
	}

	query, args, err := queryBuilder.
		OrderBy("ev.occurred_at DESC", "ev.id DESC").
		Limit(uint64(limit + 1)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		// codecov:ignore:start
		tracing.MarkSpanError(ctx, err)
		// codecov:ignore:end
		return nil, fmt.Errorf("failed to query email events: %w", err)
	}
	defer rows.Close()

	events := []*domain.EmailEvent{}
	for rows.Next() {
		ev := &domain.EmailEvent{}
		var status, ip, country, city, userAgent, linkID, linkURL, recipient sql.NullString

		err := rows.Scan(
			&ev.ID, &ev.EventID, &ev.Type, &status, &ev.OccurredAt, &ev.EmailID,
			&ip, &country, &city, &userAgent, &ev.IsBot,
			&linkID, &linkURL, &ev.CreatedAt,
			&ev.MessageID, &recipient, &ev.DomainName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan email event row: %w", err)
		}

		ev.Status = nullStringPtr(status)
		ev.IPAddress = nullStringPtr(ip)
		ev.Country = nullStringPtr(country)
		ev.City = nullStringPtr(city)
		ev.UserAgent = nullStringPtr(userAgent)
		ev.LinkID = nullStringPtr(linkID)
		ev.LinkURL = nullStringPtr(linkURL)
		ev.Recipient = recipient.String

		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating email event rows: %w", err)
	}

	result := &domain.EmailEventListResult{Events: events}
	if len(events) > limit {
		result.Events = events[:limit]
		result.HasMore = true
		last := result.Events[limit-1]
		result.NextCursor = domain.EncodeCursor(last.OccurredAt, last.ID)
	}

	return result, nil
}

// RecentActivity counts engagement in the 7 day and 24 hour windows before
// now. An empty domainID covers every domain.
func (r *EmailEventRepository) RecentActivity(ctx context.Context, domainID string, now time.Time) (*domain.RecentActivity, error) {
	weekAgo := now.Add(-7 * 24 * time.Hour)
	dayAgo := now.Add(-24 * time.Hour)

	builder := psql.Select().
		Column(sq.Expr("COUNT(DISTINCT e.id) FILTER (WHERE ev.occurred_at >= ?)", weekAgo)).
		Column(sq.Expr("COUNT(DISTINCT e.id) FILTER (WHERE ev.occurred_at >= ?)", dayAgo)).
		Column(sq.Expr("COUNT(*) FILTER (WHERE ev.type = ? AND ev.occurred_at >= ?)", domain.EmailitTypeLoaded, weekAgo)).
		Column(sq.Expr("COUNT(*) FILTER (WHERE ev.type = ? AND ev.occurred_at >= ?)", domain.EmailitTypeLoaded, dayAgo)).
		Column(sq.Expr("COUNT(*) FILTER (WHERE ev.type = ? AND ev.occurred_at >= ?)", domain.EmailitTypeLinkClicked, weekAgo)).
		Column(sq.Expr("COUNT(*) FILTER (WHERE ev.type = ? AND ev.occurred_at >= ?)", domain.EmailitTypeLinkClicked, dayAgo)).
		Column("COUNT(DISTINCT e.to_address)").
		Column(sq.Expr("COUNT(DISTINCT e.to_address) FILTER (WHERE ev.type = ?)", domain.EmailitTypeLoaded)).
		Column(sq.Expr("COUNT(DISTINCT e.to_address) FILTER (WHERE ev.type = ?)", domain.EmailitTypeLinkClicked)).
		From("email_events ev").
		Join("emails e ON e.id = ev.email_id")

	if domainID != "" {
		builder = builder.Where(sq.Eq{"e.domain_id": domainID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	a := &domain.RecentActivity{}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&a.EmailsLast7Days, &a.EmailsLast24Hours,
		&a.OpensLast7Days, &a.OpensLast24Hours,
		&a.ClicksLast7Days, &a.ClicksLast24Hours,
		&a.UniqueRecipients, &a.RecipientsWhoOpened, &a.RecipientsWhoClicked,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent activity: %w", err)
	}

	return a, nil
}
