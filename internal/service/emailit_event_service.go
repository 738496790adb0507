package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wsdmailer/wsdmailer/internal/database"
	"github.com/wsdmailer/wsdmailer/internal/domain"
	"github.com/wsdmailer/wsdmailer/pkg/botdetection"
	"github.com/wsdmailer/wsdmailer/pkg/logger"
	"github.com/wsdmailer/wsdmailer/pkg/tracing"
)

const (
	ingestOutcomeOK           = "ok"
	ingestOutcomeMalformed    = "malformed"
	ingestOutcomeStorageError = "storage_error"
)

// EmailitEventService implements domain.EmailitEventService
type EmailitEventService struct {
	emailRepo    domain.EmailRepository
	eventRepo    domain.EmailEventRepository
	domainRepo   domain.DomainRepository
	summaryRepo  domain.EmailSummaryRepository
	logger       logger.Logger
	relinkDomain bool

	now   func() time.Time
	newID func() string
}

// NewEmailitEventService creates a new EmailitEventService
func NewEmailitEventService(
	emailRepo domain.EmailRepository,
	eventRepo domain.EmailEventRepository,
	domainRepo domain.DomainRepository,
	summaryRepo domain.EmailSummaryRepository,
	logger logger.Logger,
	relinkDomain bool,
) *EmailitEventService {
	return &EmailitEventService{
		emailRepo:    emailRepo,
		eventRepo:    eventRepo,
		domainRepo:   domainRepo,
		summaryRepo:  summaryRepo,
		logger:       logger,
		relinkDomain: relinkDomain,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// ProcessEvent normalizes one webhook body and applies it in a single
// transaction: resolve the domain and email, record the event, advance the
// email state and bump the summary counters.
func (s *EmailitEventService) ProcessEvent(ctx context.Context, raw []byte) (*domain.ProcessEventResult, error) {
	// codecov:ignore:start
	ctx, span := tracing.StartServiceSpan(ctx, "EmailitEventService", "ProcessEvent")
	defer tracing.EndSpan(span, nil)
	// codecov:ignore:end

	started := time.Now()
	now := s.now().UTC()

	event, err := domain.NormalizeEmailitPayload(raw, now, s.newID)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		tracing.RecordIngest(ctx, domain.EventKindOther.String(), ingestOutcomeMalformed, false, time.Since(started))
		s.logger.WithField("error", err.Error()).Warn("Rejected malformed Emailit webhook")
		return nil, err
	}

	// codecov:ignore:start
	tracing.AddAttribute(ctx, "event_type", event.Type)
	tracing.AddAttribute(ctx, "message_id", event.MessageID)
	// codecov:ignore:end

	result := &domain.ProcessEventResult{
		EventID:   event.EventID,
		Type:      event.Type,
		MessageID: event.MessageID,
		Kind:      event.Kind,
	}

	err = s.emailRepo.WithTransaction(ctx, func(tx *sql.Tx) error {
		return s.apply(ctx, tx, event, now, result)
	})
	if err != nil {
		var storageErr *domain.StorageTransactionError
		if !errors.As(err, &storageErr) {
			storageErr = newStorageError("transaction", err)
		}

		tracing.MarkSpanError(ctx, storageErr)
		tracing.RecordIngest(ctx, event.Kind.String(), ingestOutcomeStorageError, false, time.Since(started))
		s.logger.WithField("event_id", event.EventID).
			WithField("event_type", event.Type).
			WithField("message_id", event.MessageID).
			WithField("retryable", storageErr.Retryable).
			Error(fmt.Sprintf("Failed to process Emailit webhook: %v", storageErr))
		return nil, storageErr
	}

	if result.Unrecognized {
		s.logger.WithField("event_id", event.EventID).
			WithField("event_type", event.Type).
			WithField("message_id", event.MessageID).
			Warn("Unrecognized delivery event type, recorded without state change")
	}

	tracing.RecordIngest(ctx, event.Kind.String(), ingestOutcomeOK, result.FirstEngagement, time.Since(started))
	s.logger.WithField("event_id", event.EventID).
		WithField("event_type", event.Type).
		WithField("kind", event.Kind.String()).
		WithField("first_engagement", result.FirstEngagement).
		Debug("Processed Emailit webhook")

	return result, nil
}

func (s *EmailitEventService) apply(ctx context.Context, tx *sql.Tx, event *domain.NormalizedEvent, now time.Time, result *domain.ProcessEventResult) error {
	domainID, err := s.resolveDomain(ctx, tx, event, now)
	if err != nil {
		return err
	}

	state, err := s.emailRepo.UpsertTx(ctx, tx, domain.EmailUpsert{
		ID:              s.newID(),
		MessageID:       event.MessageID,
		ProviderEmailID: event.ProviderEmailID,
		Token:           event.Token,
		To:              event.To,
		From:            event.From,
		Subject:         event.Subject,
		SpamStatus:      event.SpamStatus,
		DomainID:        domainID,
		Now:             now,
	}, s.relinkDomain)
	if err != nil {
		return newStorageError("resolve_email", err)
	}

	record := &domain.EmailEvent{
		ID:         s.newID(),
		EventID:    event.EventID,
		Type:       event.Type,
		Status:     event.Status,
		OccurredAt: event.OccurredAt,
		EmailID:    state.ID,
		IPAddress:  event.IPAddress,
		Country:    event.Country,
		City:       event.City,
		UserAgent:  event.UserAgent,
		LinkID:     event.LinkID,
		LinkURL:    event.LinkURL,
		RawPayload: event.Raw,
		CreatedAt:  now,
	}
	if event.Kind == domain.EventKindOpen || event.Kind == domain.EventKindClick {
		ua := ""
		if event.UserAgent != nil {
			ua = *event.UserAgent
		}
		record.IsBot = botdetection.IsBotUserAgent(ua)
	}
	if err := s.eventRepo.InsertTx(ctx, tx, record); err != nil {
		return newStorageError("record_event", err)
	}

	switch event.Kind {
	case domain.EventKindDelivery:
		if err := s.emailRepo.SetDeliveryStatusTx(ctx, tx, state.ID, event.DeliveryStatus, event.OccurredAt); err != nil {
			return newStorageError("update_delivery_status", err)
		}
		// Not latched: every delivery event counts, including repeats
		if err := s.summaryRepo.IncrementTx(ctx, tx, state.DomainID, event.DeliveryStatus.SummaryField(), now); err != nil {
			return newStorageError("increment_summary", err)
		}

	case domain.EventKindOpen:
		won, err := s.emailRepo.LatchFirstOpenTx(ctx, tx, state.ID, event.OccurredAt)
		if err != nil {
			return newStorageError("latch_first_open", err)
		}
		if won {
			if err := s.summaryRepo.IncrementTx(ctx, tx, state.DomainID, domain.SummaryFieldLoaded, now); err != nil {
				return newStorageError("increment_summary", err)
			}
			result.FirstEngagement = true
		}

	case domain.EventKindClick:
		won, err := s.emailRepo.LatchFirstClickTx(ctx, tx, state.ID, event.OccurredAt)
		if err != nil {
			return newStorageError("latch_first_click", err)
		}
		if won {
			if err := s.summaryRepo.IncrementTx(ctx, tx, state.DomainID, domain.SummaryFieldClicked, now); err != nil {
				return newStorageError("increment_summary", err)
			}
			result.FirstEngagement = true
		}

	case domain.EventKindUnrecognizedDelivery:
		result.Unrecognized = true
	}

	return nil
}

// resolveDomain returns the domain the email is charged to. Without relinking
// an existing email keeps its domain, so the sender domain is only created
// for emails seen for the first time.
func (s *EmailitEventService) resolveDomain(ctx context.Context, tx *sql.Tx, event *domain.NormalizedEvent, now time.Time) (string, error) {
	if !s.relinkDomain {
		domainID, err := s.emailRepo.DomainIDByMessageIDTx(ctx, tx, event.MessageID)
		if err != nil {
			return "", newStorageError("resolve_email", err)
		}
		if domainID != "" {
			return domainID, nil
		}
	}

	sendingDomain, err := s.domainRepo.UpsertByNameTx(ctx, tx, event.DomainName, now)
	if err != nil {
		return "", newStorageError("resolve_domain", err)
	}
	return sendingDomain.ID, nil
}

func newStorageError(op string, err error) *domain.StorageTransactionError {
	return &domain.StorageTransactionError{
		Op:        op,
		Err:       err,
		Retryable: database.IsRetryableError(err),
	}
}
