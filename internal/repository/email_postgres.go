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
	"github.com/wsdmailer/wsdmailer/pkg/tracing"
)

var emailSelectColumns = []string{
	"e.id", "e.message_id", "e.provider_email_id", "e.token",
	"e.to_address", "e.from_address", "e.subject", "e.spam_status",
	"e.delivery_status", "e.sent_at", "e.first_open_at", "e.first_click_at",
	"e.domain_id", "d.name", "e.created_at", "e.updated_at",
}

// EmailRepository implements domain.EmailRepository using PostgreSQL
type EmailRepository struct {
	db *sql.DB
}

// NewEmailRepository creates a new EmailRepository instance
func NewEmailRepository(db *sql.DB) domain.EmailRepository {
	return &EmailRepository{db: db}
}

// WithTransaction executes fn within a transaction. Every statement of one
// webhook runs through here so a failure leaves no partial state behind.
func (r *EmailRepository) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// no-op after a successful commit
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpsertTx inserts the email or returns the stored one. Identity fields are
// written only on insert. RETURNING reads the row after the conflict update,
// which touches neither delivery_status nor the latch columns, so those
// are the values from before this event.
func (r *EmailRepository) UpsertTx(ctx context.Context, tx *sql.Tx, input domain.EmailUpsert, relinkDomain bool) (*domain.EmailState, error) {
	onConflict := "ON CONFLICT (message_id) DO UPDATE SET updated_at = EXCLUDED.updated_at"
	if relinkDomain {
		onConflict = "ON CONFLICT (message_id) DO UPDATE SET domain_id = EXCLUDED.domain_id, updated_at = EXCLUDED.updated_at"
	}

	query, args, err := psql.Insert("emails").
		Columns(
			"id", "message_id", "provider_email_id", "token",
			"to_address", "from_address", "subject", "spam_status",
			"domain_id", "created_at", "updated_at",
		).
		Values(
			input.ID, input.MessageID, input.ProviderEmailID, input.Token,
			input.To, input.From, input.Subject, input.SpamStatus,
			input.DomainID, input.Now, input.Now,
		).
		Suffix(onConflict + " RETURNING id, domain_id, delivery_status, sent_at, first_open_at, first_click_at, (xmax = 0) AS inserted").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	state := &domain.EmailState{}
	var status sql.NullString
	var sentAt, firstOpenAt, firstClickAt sql.NullTime

	err = tx.QueryRowContext(ctx, query, args...).Scan(
		&state.ID, &state.DomainID, &status, &sentAt, &firstOpenAt, &firstClickAt, &state.Created,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert email: %w", err)
	}

	if status.Valid {
		s := domain.DeliveryStatus(status.String)
		state.DeliveryStatus = &s
	}
	state.SentAt = nullTimePtr(sentAt)
	state.FirstOpenAt = nullTimePtr(firstOpenAt)
	state.FirstClickAt = nullTimePtr(firstClickAt)

	return state, nil
}

// DomainIDByMessageIDTx reads the domain an email is attached to
func (r *EmailRepository) DomainIDByMessageIDTx(ctx context.Context, tx *sql.Tx, messageID string) (string, error) {
	query, args, err := psql.Select("domain_id").
		From("emails").
		Where(sq.Eq{"message_id": messageID}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build query: %w", err)
	}

	var domainID string
	err = tx.QueryRowContext(ctx, query, args...).Scan(&domainID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get email domain: %w", err)
	}

	return domainID, nil
}

// SetDeliveryStatusTx overwrites the latest delivery status of an email
func (r *EmailRepository) SetDeliveryStatusTx(ctx context.Context, tx *sql.Tx, emailID string, status domain.DeliveryStatus, at time.Time) error {
	builder := psql.Update("emails").
		Set("delivery_status", string(status)).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP"))
	if status == domain.DeliveryStatusSent {
		builder = builder.Set("sent_at", sq.Expr("COALESCE(sent_at, ?)", at))
	}

	query, args, err := builder.Where(sq.Eq{"id": emailID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update delivery status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrNotFound{Entity: "email", ID: emailID}
	}

	return nil
}

// LatchFirstOpenTx sets first_open_at once
func (r *EmailRepository) LatchFirstOpenTx(ctx context.Context, tx *sql.Tx, emailID string, at time.Time) (bool, error) {
	return r.latchTx(ctx, tx, "first_open_at", emailID, at)
}

// LatchFirstClickTx sets first_click_at once
func (r *EmailRepository) LatchFirstClickTx(ctx context.Context, tx *sql.Tx, emailID string, at time.Time) (bool, error) {
	return r.latchTx(ctx, tx, "first_click_at", emailID, at)
}

// latchTx is a conditional update: the affected row count is the only
// source of truth for "first", a prior read would race with other webhooks.
func (r *EmailRepository) latchTx(ctx context.Context, tx *sql.Tx, column, emailID string, at time.Time) (bool, error) {
	query, args, err := psql.Update("emails").
		Set(column, at).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": emailID}).
		Where(sq.Eq{column: nil}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to latch %s: %w", column, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows == 1, nil
}

// GetByMessageID returns the email with its domain name
func (r *EmailRepository) GetByMessageID(ctx context.Context, messageID string) (*domain.Email, error) {
	query, args, err := psql.Select(emailSelectColumns...).
		From("emails e").
		Join("domains d ON d.id = e.domain_id").
		Where(sq.Eq{"e.message_id": messageID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	email, err := scanEmail(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrNotFound{Entity: "email", ID: messageID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email: %w", err)
	}

	return email, nil
}

// List returns emails newest first with cursor pagination
func (r *EmailRepository) List(ctx context.Context, params domain.EmailListParams) (*domain.EmailListResult, error) {
	// codecov:ignore:start
	ctx, span := tracing.StartServiceSpan(ctx, "EmailRepository", "List")
	defer tracing.EndSpan(span, nil)
	tracing.AddAttribute(ctx, "domain", params.Domain)
	// codecov:ignore:end

	limit := params.Limit
	if limit <= 0 {
		limit = domain.DefaultListLimit
	}

	queryBuilder := psql.Select(emailSelectColumns...).
		From("emails e").
		Join("domains d ON d.id = e.domain_id")

	if params.Domain != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"d.name": params.Domain})
	}
	if params.Status != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"e.delivery_status": string(params.Status)})
	}
	if params.Recipient != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"e.to_address": params.Recipient})
	}

	if params.Cursor != "" {
		cursor, err := domain.DecodeCursor(params.Cursor)
		if err != nil {
			// codecov:ignore:start
			tracing.MarkSpanError(ctx, err)
			// codecov:ignore:end
			return nil, err
		}
		queryBuilder = queryBuilder.Where(sq.Or{
			sq.Lt{"e.created_at": cursor.Time},
			sq.And{
				sq.Eq{"e.created_at": cursor.Time},
				sq.Lt{"e.id": cursor.ID},
			},
		})
	}

	query, args, err := queryBuilder.
		OrderBy("e.created_at DESC", "e.id DESC").
		Limit(uint64(limit + 1)).
		ToSql()
	if err != nil {
		// codecov:ignore:start
		tracing.MarkSpanError(ctx, err)
		// codecov:ignore:end
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		// codecov:ignore:start
		tracing.MarkSpanError(ctx, err)
		// codecov:ignore:end
		return nil, fmt.Errorf("failed to query emails: %w", err)
	}
	defer rows.Close()

	emails := []*domain.Email{}
	for rows.Next() {
		email, err := scanEmail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan email row: %w", err)
		}
		emails = append(emails, email)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating email rows: %w", err)
	}

	result := &domain.EmailListResult{Emails: emails}
	if len(emails) > limit {
		result.Emails = emails[:limit]
		result.HasMore = true
		last := result.Emails[limit-1]
		result.NextCursor = domain.EncodeCursor(last.CreatedAt, last.ID)
	}

	return result, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// AudienceStats aggregates emails and their events per recipient in one
// grouped query. The window count carries the number of recipients before paging.
func (r *EmailRepository) AudienceStats(ctx context.Context, domainID, search string, limit, offset int) ([]*domain.AudienceEntry, int64, error) {
	// codecov:ignore:start
	ctx, span := tracing.StartServiceSpan(ctx, "EmailRepository", "AudienceStats")
	defer tracing.EndSpan(span, nil)
	// codecov:ignore:end

	if limit <= 0 {
		limit = domain.DefaultListLimit
	}

	failures := []interface{}{}
	for _, s := range domain.DeliveryStatuses {
		if s.IsFailure() {
			failures = append(failures, string(s))
		}
	}

	builder := psql.Select("e.to_address").
		Column("COUNT(DISTINCT e.id) AS total_emails").
		Column(sq.Expr("COUNT(DISTINCT e.id) FILTER (WHERE e.delivery_status = ?)", string(domain.DeliveryStatusSent))).
		Column(sq.Expr("COUNT(DISTINCT e.id) FILTER (WHERE e.delivery_status IN ("+sq.Placeholders(len(failures))+"))", failures...)).
		Column(sq.Expr("COUNT(DISTINCT ev.id) FILTER (WHERE ev.type = ?)", domain.EmailitTypeLoaded)).
		Column(sq.Expr("COUNT(DISTINCT ev.id) FILTER (WHERE ev.type = ?)", domain.EmailitTypeLinkClicked)).
		Column("COALESCE(MIN(e.sent_at), MIN(e.created_at))").
		Column("COALESCE(MAX(ev.occurred_at), MAX(e.updated_at))").
		Column("COUNT(*) OVER ()").
		From("emails e").
		LeftJoin("email_events ev ON ev.email_id = e.id").
		Where(sq.NotEq{"e.to_address": ""})

	if domainID != "" {
		builder = builder.Where(sq.Eq{"e.domain_id": domainID})
	}
	if search != "" {
		builder = builder.Where(sq.ILike{"e.to_address": "%" + likeEscaper.Replace(search) + "%"})
	}

	query, args, err := builder.
		GroupBy("e.to_address").
		OrderBy("total_emails DESC", "e.to_address ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		// codecov:ignore:start
		tracing.MarkSpanError(ctx, err)
		// codecov:ignore:end
		return nil, 0, fmt.Errorf("failed to query audience: %w", err)
	}
	defer rows.Close()

	var total int64
	entries := []*domain.AudienceEntry{}
	for rows.Next() {
		entry := &domain.AudienceEntry{}
		var firstSent, lastActivity sql.NullTime
		if err := rows.Scan(
			&entry.Email, &entry.TotalEmails, &entry.DeliveredEmails, &entry.FailedEmails,
			&entry.TotalOpens, &entry.TotalClicks, &firstSent, &lastActivity, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audience row: %w", err)
		}
		entry.FirstEmailSent = nullTimePtr(firstSent)
		entry.LastActivity = nullTimePtr(lastActivity)
		entry.ComputeRates()
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating audience rows: %w", err)
	}

	return entries, total, nil
}

// CountSummary derives the summary counters of a domain from the emails table:
// one per current delivery status plus the latched opens and clicks.
func (r *EmailRepository) CountSummary(ctx context.Context, domainID string) (*domain.SummaryCounts, error) {
	builder := psql.Select()
	for _, status := range domain.DeliveryStatuses {
		builder = builder.Column(sq.Expr("COUNT(*) FILTER (WHERE delivery_status = ?)", string(status)))
	}
	builder = builder.
		Column("COUNT(*) FILTER (WHERE first_open_at IS NOT NULL)").
		Column("COUNT(*) FILTER (WHERE first_click_at IS NOT NULL)").
		From("emails").
		Where(sq.Eq{"domain_id": domainID})

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	c := &domain.SummaryCounts{}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&c.TotalSent, &c.TotalHardFail, &c.TotalSoftFail, &c.TotalBounce,
		&c.TotalError, &c.TotalHeld, &c.TotalDelayed,
		&c.TotalLoaded, &c.TotalClicked,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count emails: %w", err)
	}

	return c, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmail(row rowScanner) (*domain.Email, error) {
	email := &domain.Email{}
	var to, from, subject, status sql.NullString
	var spamStatus sql.NullInt64
	var sentAt, firstOpenAt, firstClickAt sql.NullTime

	err := row.Scan(
		&email.ID, &email.MessageID, &email.ProviderEmailID, &email.Token,
		&to, &from, &subject, &spamStatus,
		&status, &sentAt, &firstOpenAt, &firstClickAt,
		&email.DomainID, &email.DomainName, &email.CreatedAt, &email.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	email.To = to.String
	email.From = from.String
	email.Subject = subject.String
	email.SpamStatus = nullIntPtr(spamStatus)
	if status.Valid {
		s := domain.DeliveryStatus(status.String)
		email.DeliveryStatus = &s
	}
	email.SentAt = nullTimePtr(sentAt)
	email.FirstOpenAt = nullTimePtr(firstOpenAt)
	email.FirstClickAt = nullTimePtr(firstClickAt)

	return email, nil
}
