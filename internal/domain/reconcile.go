package domain

import "context"

//go:generate mockgen -destination mocks/mock_summary_reconciler_service.go -package mocks github.com/wsdmailer/wsdmailer/internal/domain SummaryReconcilerService

// DomainReconciliation is the outcome for one domain. Before is nil when
// the domain had no summary row.
type DomainReconciliation struct {
	Domain  SendingDomain  `json:"domain"`
	Before  *SummaryCounts `json:"before,omitempty"`
	After   SummaryCounts  `json:"after"`
	Changed []SummaryField `json:"changed,omitempty"`
	Created bool           `json:"created"`
	Error   string         `json:"error,omitempty"`
}

type ReconcileReport struct {
	Domains []*DomainReconciliation `json:"domains"`
	Updated int                     `json:"updated"`
	Created int                     `json:"created"`
	Failed  int                     `json:"failed"`
}

// SummaryReconcilerService recomputes summary counters from the emails table.
// It must not run while webhooks are being ingested for the same domains.
type SummaryReconcilerService interface {
	Reconcile(ctx context.Context) (*ReconcileReport, error)
}
