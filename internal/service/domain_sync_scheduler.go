package service

import (
	"context"
	"sync"
	"time"

	"github.com/wsdmailer/wsdmailer/internal/domain"
	"github.com/wsdmailer/wsdmailer/pkg/logger"
	"github.com/wsdmailer/wsdmailer/pkg/tracing"
)

// DomainSyncScheduler runs the sending domain sync on a fixed interval
type DomainSyncScheduler struct {
	syncService domain.DomainSyncService
	logger      logger.Logger
	interval    time.Duration
	stopChan    chan struct{}
	stoppedChan chan struct{}
	mu          sync.Mutex
	running     bool
}

// NewDomainSyncScheduler creates a new domain sync scheduler
func NewDomainSyncScheduler(
	syncService domain.DomainSyncService,
	logger logger.Logger,
	interval time.Duration,
) *DomainSyncScheduler {
	return &DomainSyncScheduler{
		syncService: syncService,
		logger:      logger,
		interval:    interval,
		stopChan:    make(chan struct{}),
		stoppedChan: make(chan struct{}),
	}
}

// Start launches the sync loop. The first sync runs immediately.
func (s *DomainSyncScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("Domain sync scheduler already running")
		return
	}
	s.running = true
	s.mu.Unlock()

	s.logger.WithField("interval", s.interval.String()).
		Info("Starting domain sync scheduler")

	go s.run(ctx)
}

// Stop gracefully stops the scheduler
func (s *DomainSyncScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Stopping domain sync scheduler...")
	close(s.stopChan)

	select {
	case <-s.stoppedChan:
		s.logger.Info("Domain sync scheduler stopped successfully")
	case <-time.After(5 * time.Second):
		s.logger.Warn("Domain sync scheduler stop timeout exceeded")
	}
}

func (s *DomainSyncScheduler) run(ctx context.Context) {
	defer close(s.stoppedChan)
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.syncOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Domain sync scheduler context cancelled")
			return
		case <-s.stopChan:
			s.logger.Info("Domain sync scheduler received stop signal")
			return
		case <-ticker.C:
			s.syncOnce(ctx)
		}
	}
}

func (s *DomainSyncScheduler) syncOnce(ctx context.Context) {
	// codecov:ignore:start
	syncCtx, span := tracing.StartServiceSpan(ctx, "DomainSyncScheduler", "syncOnce")
	defer tracing.EndSpan(span, nil)
	// codecov:ignore:end

	startTime := time.Now()
	report, err := s.syncService.SyncDomains(syncCtx)
	elapsed := time.Since(startTime)

	if err != nil {
		// codecov:ignore:start
		tracing.MarkSpanError(syncCtx, err)
		// codecov:ignore:end
		s.logger.WithField("error", err.Error()).
			WithField("elapsed", elapsed.String()).
			Error("Scheduled domain sync failed")
		return
	}

	s.logger.WithField("synced", report.Synced).
		WithField("elapsed", elapsed.String()).
		Debug("Scheduled domain sync completed")
}

// IsRunning returns whether the scheduler is currently running
func (s *DomainSyncScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
