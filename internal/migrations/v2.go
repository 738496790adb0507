package migrations

import (
	"context"
	"fmt"

	"github.com/wsdmailer/wsdmailer/config"
)

// V2Migration adds bot classification to recorded events.
type V2Migration struct{}

func (m *V2Migration) GetMajorVersion() float64 {
	return 2.0
}

func (m *V2Migration) ShouldRestartServer() bool {
	return false
}

func (m *V2Migration) Update(ctx context.Context, cfg *config.Config, db DBExecutor) error {
	_, err := db.ExecContext(ctx, `
		ALTER TABLE email_events
		ADD COLUMN IF NOT EXISTS is_bot BOOLEAN NOT NULL DEFAULT FALSE
	`)
	if err != nil {
		return fmt.Errorf("failed to add is_bot column to email_events: %w", err)
	}
	return nil
}

func init() {
	Register(&V2Migration{})
}
