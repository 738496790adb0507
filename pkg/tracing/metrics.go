package tracing

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	// KeyEventKind is the normalized kind of an ingested webhook (delivery, open, click, unrecognized, other).
	KeyEventKind = tag.MustNewKey("event_kind")
	// KeyOutcome is "ok", "malformed" or "storage_error".
	KeyOutcome = tag.MustNewKey("outcome")

	MeasureEventsIngested  = stats.Int64("wsdmailer/ingest/events", "Webhook events handled", stats.UnitDimensionless)
	MeasureFirstEngagement = stats.Int64("wsdmailer/ingest/first_engagement", "Open or click latches won", stats.UnitDimensionless)
	MeasureIngestLatency   = stats.Float64("wsdmailer/ingest/latency", "Time spent processing one webhook", stats.UnitMilliseconds)
)

// IngestViews aggregates the ingest measures for exporters.
var IngestViews = []*view.View{
	{
		Name:        "wsdmailer/ingest/events_count",
		Description: "Count of webhook events by kind and outcome",
		Measure:     MeasureEventsIngested,
		TagKeys:     []tag.Key{KeyEventKind, KeyOutcome},
		Aggregation: view.Count(),
	},
	{
		Name:        "wsdmailer/ingest/first_engagement_count",
		Description: "Count of first opens and first clicks",
		Measure:     MeasureFirstEngagement,
		TagKeys:     []tag.Key{KeyEventKind},
		Aggregation: view.Count(),
	},
	{
		Name:        "wsdmailer/ingest/latency",
		Description: "Webhook processing latency distribution",
		Measure:     MeasureIngestLatency,
		TagKeys:     []tag.Key{KeyOutcome},
		Aggregation: view.Distribution(1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500),
	},
}

func RegisterIngestViews() error {
	return view.Register(IngestViews...)
}

// RecordIngest records one processed webhook. Recording without registered
// views is a no-op, so callers do not need to check whether metrics are on.
func RecordIngest(ctx context.Context, kind, outcome string, firstEngagement bool, elapsed time.Duration) {
	ctx, err := tag.New(ctx, tag.Upsert(KeyEventKind, kind), tag.Upsert(KeyOutcome, outcome))
	if err != nil {
		return
	}
	measurements := []stats.Measurement{
		MeasureEventsIngested.M(1),
		MeasureIngestLatency.M(float64(elapsed) / float64(time.Millisecond)),
	}
	if firstEngagement {
		measurements = append(measurements, MeasureFirstEngagement.M(1))
	}
	stats.Record(ctx, measurements...)
}
