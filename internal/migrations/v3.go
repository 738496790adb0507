package migrations

import (
	"context"
	"fmt"

	"github.com/wsdmailer/wsdmailer/config"
)

// V3Migration adds the indexes used by the dashboard list endpoints and by
// the recent-activity query.
type V3Migration struct{}

func (m *V3Migration) GetMajorVersion() float64 {
	return 3.0
}

func (m *V3Migration) ShouldRestartServer() bool {
	return false
}

func (m *V3Migration) Update(ctx context.Context, cfg *config.Config, db DBExecutor) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_emails_created_at ON emails(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_email_events_occurred_at ON email_events(occurred_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_email_events_type ON email_events(type)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create dashboard index: %w", err)
		}
	}
	return nil
}

func init() {
	Register(&V3Migration{})
}
