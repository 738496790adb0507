package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/wsdmailer/wsdmailer/internal/domain"
	"github.com/wsdmailer/wsdmailer/pkg/logger"
	"github.com/wsdmailer/wsdmailer/pkg/tracing"
)

const sendingDomainsPath = "/v1/sending-domains"

// maxProviderErrorBody caps how much of a failed response is kept in the error
const maxProviderErrorBody = 4096

// DomainSyncService implements domain.DomainSyncService against the Emailit API
type DomainSyncService struct {
	domainRepo  domain.DomainRepository
	settingRepo domain.SettingRepository
	httpClient  *http.Client
	apiURL      string
	apiKey      string
	logger      logger.Logger
	now         func() time.Time
}

// NewDomainSyncService creates a new DomainSyncService. The client is
// wrapped for tracing.
func NewDomainSyncService(
	domainRepo domain.DomainRepository,
	settingRepo domain.SettingRepository,
	httpClient *http.Client,
	apiURL string,
	apiKey string,
	logger logger.Logger,
) *DomainSyncService {
	return &DomainSyncService{
		domainRepo:  domainRepo,
		settingRepo: settingRepo,
		httpClient:  tracing.WrapHTTPClient(httpClient),
		apiURL:      apiURL,
		apiKey:      apiKey,
		logger:      logger,
		now:         time.Now,
	}
}

// SyncDomains pulls the sending domains from Emailit and creates or touches
// a row for each named one. A failure on one domain is counted and the sync
// continues.
func (s *DomainSyncService) SyncDomains(ctx context.Context) (*domain.DomainSyncReport, error) {
	// codecov:ignore:start
	ctx, span := tracing.StartServiceSpan(ctx, "DomainSyncService", "SyncDomains")
	defer tracing.EndSpan(span, nil)
	// codecov:ignore:end

	if s.apiKey == "" {
		return nil, domain.ErrDomainSyncNotConfigured
	}

	started := s.now()
	s.logger.Info("Starting sending domain sync")

	entries, err := s.fetchDomains(ctx)
	if err != nil {
		// codecov:ignore:start
		tracing.MarkSpanError(ctx, err)
		// codecov:ignore:end
		s.logger.Error(fmt.Sprintf("Failed to fetch sending domains: %v", err))
		return nil, err
	}

	report := &domain.DomainSyncReport{TotalReceived: len(entries)}

	for _, entry := range entries {
		name := domain.NormalizeDomainName(entry.Get("name").String())
		if name == "" {
			report.Skipped++
			s.logger.WithField("entry", entry.Raw).Warn("Skipping sending domain with no name")
			continue
		}

		_, created, err := s.domainRepo.Touch(ctx, name, s.now().UTC())
		if err != nil {
			report.Failed++
			s.logger.WithField("domain", name).
				Error(fmt.Sprintf("Failed to sync sending domain: %v", err))
			continue
		}

		if created {
			report.Created++
		} else {
			report.Updated++
		}
	}
	report.Synced = report.Created + report.Updated

	finished := s.now()
	if err := s.settingRepo.SetLastDomainSync(ctx, finished); err != nil {
		s.logger.Warn(fmt.Sprintf("Failed to record last domain sync: %v", err))
	}

	report.Duration = finished.Sub(started)
	report.DurationText = fmt.Sprintf("%dms", report.Duration.Milliseconds())
	report.Timestamp = finished.UTC()

	s.logger.WithField("received", report.TotalReceived).
		WithField("created", report.Created).
		WithField("updated", report.Updated).
		WithField("skipped", report.Skipped).
		WithField("failed", report.Failed).
		WithField("duration", report.DurationText).
		Info("Sending domain sync completed")

	return report, nil
}

func (s *DomainSyncService) fetchDomains(ctx context.Context) ([]gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+sendingDomainsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call emailit api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxProviderErrorBody))
		return nil, &domain.ProviderAPIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read emailit response: %w", err)
	}

	data := gjson.GetBytes(body, "data")
	if !gjson.ValidBytes(body) || !data.IsArray() {
		return nil, errors.New("invalid response format from emailit api")
	}

	return data.Array(), nil
}
