package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wsdmailer/wsdmailer/internal/domain"
	"github.com/wsdmailer/wsdmailer/pkg/cache"
	"github.com/wsdmailer/wsdmailer/pkg/logger"
	"github.com/wsdmailer/wsdmailer/pkg/tracing"
)

// DashboardStatsTTL bounds how stale a cached stats response can be
const DashboardStatsTTL = 30 * time.Second

// DashboardStatsLoadTimeout caps one shared stats load
const DashboardStatsLoadTimeout = 15 * time.Second

// DashboardService implements domain.DashboardService
type DashboardService struct {
	emailRepo   domain.EmailRepository
	eventRepo   domain.EmailEventRepository
	domainRepo  domain.DomainRepository
	summaryRepo domain.EmailSummaryRepository
	settingRepo domain.SettingRepository
	statsCache  *cache.TTLCache[*domain.DashboardStats]
	logger      logger.Logger
	now         func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	emailRepo domain.EmailRepository,
	eventRepo domain.EmailEventRepository,
	domainRepo domain.DomainRepository,
	summaryRepo domain.EmailSummaryRepository,
	settingRepo domain.SettingRepository,
	statsCache *cache.TTLCache[*domain.DashboardStats],
	logger logger.Logger,
) *DashboardService {
	return &DashboardService{
		emailRepo:   emailRepo,
		eventRepo:   eventRepo,
		domainRepo:  domainRepo,
		summaryRepo: summaryRepo,
		settingRepo: settingRepo,
		statsCache:  statsCache,
		logger:      logger,
		now:         time.Now,
	}
}

// GetStats returns summary totals, derived rates and recent activity. An
// unknown domain name yields *domain.ErrNotFound.
func (s *DashboardService) GetStats(ctx context.Context, domainName string) (*domain.DashboardStats, error) {
	// codecov:ignore:start
	ctx, span := tracing.StartServiceSpan(ctx, "DashboardService", "GetStats")
	defer tracing.EndSpan(span, nil)
	tracing.AddAttribute(ctx, "domain", domainName)
	// codecov:ignore:end

	domainName = domain.NormalizeDomainName(domainName)

	var domainID string
	if domainName != "" {
		d, err := s.domainRepo.GetByName(ctx, domainName)
		if err != nil {
			return nil, err
		}
		domainID = d.ID
	}

	return s.statsCache.GetOrLoad("stats:"+domainName, DashboardStatsTTL, func() (*domain.DashboardStats, error) {
		// the load is shared by every waiter on this key, so it must not end
		// when the first caller goes away
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DashboardStatsLoadTimeout)
		defer cancel()
		return s.loadStats(loadCtx, domainName, domainID)
	})
}

func (s *DashboardService) loadStats(ctx context.Context, domainName, domainID string) (*domain.DashboardStats, error) {
	now := s.now().UTC()

	var counts *domain.SummaryCounts
	var activity *domain.RecentActivity

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.summaryRepo.Aggregate(gctx, domainID)
		return err
	})
	g.Go(func() error {
		var err error
		activity, err = s.eventRepo.RecentActivity(gctx, domainID, now)
		return err
	})

	if err := g.Wait(); err != nil {
		// codecov:ignore:start
		tracing.MarkSpanError(ctx, err)
		// codecov:ignore:end
		s.logger.WithField("domain", domainName).
			Error(fmt.Sprintf("Failed to load dashboard stats: %v", err))
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}

	return domain.NewDashboardStats(domainName, *counts, *activity, now), nil
}

// ListEvents returns one page of the event log
func (s *DashboardService) ListEvents(ctx context.Context, params domain.EmailEventListParams) (*domain.EmailEventListResult, error) {
	if err := params.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	result, err := s.eventRepo.List(ctx, params)
	if err != nil {
		s.logger.WithField("domain", params.Domain).
			WithField("type", params.Type).
			Error(fmt.Sprintf("Failed to list email events: %v", err))
		return nil, fmt.Errorf("failed to list email events: %w", err)
	}
	return result, nil
}

// ListEmails returns one page of emails
func (s *DashboardService) ListEmails(ctx context.Context, params domain.EmailListParams) (*domain.EmailListResult, error) {
	if err := params.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	result, err := s.emailRepo.List(ctx, params)
	if err != nil {
		s.logger.WithField("domain", params.Domain).
			WithField("status", params.Status).
			Error(fmt.Sprintf("Failed to list emails: %v", err))
		return nil, fmt.Errorf("failed to list emails: %w", err)
	}
	return result, nil
}

// ListAudience returns one page of recipients with their engagement. An
// unknown domain name yields *domain.ErrNotFound.
func (s *DashboardService) ListAudience(ctx context.Context, params domain.AudienceListParams) (*domain.AudienceListResult, error) {
	// codecov:ignore:start
	ctx, span := tracing.StartServiceSpan(ctx, "DashboardService", "ListAudience")
	defer tracing.EndSpan(span, nil)
	tracing.AddAttribute(ctx, "domain", params.Domain)
	// codecov:ignore:end

	if err := params.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	var domainID string
	if params.Domain != "" {
		d, err := s.domainRepo.GetByName(ctx, params.Domain)
		if err != nil {
			return nil, err
		}
		domainID = d.ID
	}

	entries, total, err := s.emailRepo.AudienceStats(ctx, domainID, params.Search, params.Limit, params.Offset)
	if err != nil {
		s.logger.WithField("domain", params.Domain).
			Error(fmt.Sprintf("Failed to list audience: %v", err))
		return nil, fmt.Errorf("failed to list audience: %w", err)
	}

	return &domain.AudienceListResult{
		Recipients: entries,
		Total:      total,
		Limit:      params.Limit,
		Offset:     params.Offset,
		HasMore:    int64(params.Offset+len(entries)) < total,
	}, nil
}

// ListDomains returns every known domain with its counters and the time of
// the last provider sync
func (s *DashboardService) ListDomains(ctx context.Context) (*domain.DomainListResult, error) {
	result := &domain.DomainListResult{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summaries, err := s.summaryRepo.ListWithDomains(gctx)
		if err != nil {
			return err
		}
		result.Domains = summaries
		return nil
	})
	g.Go(func() error {
		lastSync, err := s.settingRepo.GetLastDomainSync(gctx)
		if err != nil {
			return err
		}
		result.LastSyncedAt = lastSync
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list domains: %v", err))
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}

	return result, nil
}
