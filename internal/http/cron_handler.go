package http

import (
	"errors"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/wsdmailer/wsdmailer/internal/domain"
	"github.com/wsdmailer/wsdmailer/internal/http/middleware"
	"github.com/wsdmailer/wsdmailer/pkg/logger"
	"github.com/wsdmailer/wsdmailer/pkg/ratelimiter"
)

// CronRateLimitNamespace is the limiter namespace of the cron endpoints
const CronRateLimitNamespace = "cron"

// CronHandler exposes scheduled jobs to external schedulers
type CronHandler struct {
	syncService domain.DomainSyncService
	limiter     *ratelimiter.RateLimiter
	cronSecret  string
	logger      logger.Logger
}

// NewCronHandler creates the handler. The limiter must have a policy for
// CronRateLimitNamespace.
func NewCronHandler(syncService domain.DomainSyncService, limiter *ratelimiter.RateLimiter, cronSecret string, logger logger.Logger) *CronHandler {
	return &CronHandler{
		syncService: syncService,
		limiter:     limiter,
		cronSecret:  cronSecret,
		logger:      logger,
	}
}

// RegisterRoutes registers the cron endpoints behind the bearer secret
func (h *CronHandler) RegisterRoutes(mux *http.ServeMux) {
	requireSecret := middleware.RequireBearerSecret(h.cronSecret)
	mux.Handle("/api/cron/syncDomains", requireSecret(http.HandlerFunc(h.handleSyncDomains)))
}

func (h *CronHandler) handleSyncDomains(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	decision := h.limiter.Allow(CronRateLimitNamespace, clientIP(r))
	if !decision.Allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(decision.RetryAfter.Seconds()))))
		WriteJSONError(w, "Too many requests", http.StatusTooManyRequests)
		return
	}

	report, err := h.syncService.SyncDomains(r.Context())
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Domain sync failed")

		var apiErr *domain.ProviderAPIError
		switch {
		case errors.Is(err, domain.ErrDomainSyncNotConfigured):
			WriteJSONError(w, "Emailit API key not configured", http.StatusInternalServerError)
		case errors.As(err, &apiErr):
			writeJSON(w, http.StatusBadGateway, map[string]interface{}{
				"error":     "Domain sync failed",
				"details":   apiErr.Error(),
				"timestamp": time.Now().UTC(),
			})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"error":     "Domain sync failed",
				"details":   err.Error(),
				"timestamp": time.Now().UTC(),
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Domain sync completed successfully",
		"result":    report,
		"timestamp": report.Timestamp,
	})
}

// clientIP is the remote host, or the whole RemoteAddr when it has no port
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
