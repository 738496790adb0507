// Package schema holds the table definitions applied at startup.
//
// New columns or indexes on existing installations go through internal/migrations;
// this file describes the current shape for fresh databases.
package schema

// TableDefinitions contains all the SQL statements to create the database tables
// Don't put REFERENCES and don't put CHECK constraints in the CREATE TABLE statements
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		key VARCHAR(255) PRIMARY KEY,
		value TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS domains (
		id UUID PRIMARY KEY,
		name VARCHAR(255) UNIQUE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS emails (
		id UUID PRIMARY KEY,
		message_id VARCHAR(512) UNIQUE NOT NULL,
		provider_email_id BIGINT NOT NULL DEFAULT 0,
		token VARCHAR(255) NOT NULL,
		to_address VARCHAR(512),
		from_address VARCHAR(512),
		subject TEXT,
		spam_status INTEGER,
		delivery_status VARCHAR(20),
		sent_at TIMESTAMPTZ,
		first_open_at TIMESTAMPTZ,
		first_click_at TIMESTAMPTZ,
		domain_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS email_events (
		id UUID PRIMARY KEY,
		event_id VARCHAR(255) NOT NULL,
		type VARCHAR(100) NOT NULL,
		status VARCHAR(100),
		occurred_at TIMESTAMPTZ NOT NULL,
		email_id UUID NOT NULL,
		ip_address VARCHAR(64),
		country VARCHAR(100),
		city VARCHAR(255),
		user_agent TEXT,
		is_bot BOOLEAN NOT NULL DEFAULT FALSE,
		link_id VARCHAR(255),
		link_url TEXT,
		raw_payload JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS email_summaries (
		domain_id UUID PRIMARY KEY,
		total_sent BIGINT NOT NULL DEFAULT 0,
		total_hard_fail BIGINT NOT NULL DEFAULT 0,
		total_soft_fail BIGINT NOT NULL DEFAULT 0,
		total_bounce BIGINT NOT NULL DEFAULT 0,
		total_error BIGINT NOT NULL DEFAULT 0,
		total_held BIGINT NOT NULL DEFAULT 0,
		total_delayed BIGINT NOT NULL DEFAULT 0,
		total_loaded BIGINT NOT NULL DEFAULT 0,
		total_clicked BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_emails_domain_id ON emails(domain_id)`,
	`CREATE INDEX IF NOT EXISTS idx_emails_created_at ON emails(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_email_events_email_id ON email_events(email_id)`,
	`CREATE INDEX IF NOT EXISTS idx_email_events_event_id ON email_events(event_id)`,
	`CREATE INDEX IF NOT EXISTS idx_email_events_occurred_at ON email_events(occurred_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_email_events_type ON email_events(type)`,
}

// TableNames lists the tables in creation order.
var TableNames = []string{
	"settings",
	"domains",
	"emails",
	"email_events",
	"email_summaries",
}
