package http

import (
	"errors"
	"net/http"

	"github.com/wsdmailer/wsdmailer/internal/domain"
	"github.com/wsdmailer/wsdmailer/pkg/logger"
)

// DashboardHandler serves the read-only dashboard API
type DashboardHandler struct {
	service domain.DashboardService
	logger  logger.Logger
}

func NewDashboardHandler(service domain.DashboardService, logger logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the dashboard HTTP endpoints
func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/dashboard.stats", h.handleStats)
	mux.HandleFunc("/api/dashboard.events", h.handleEvents)
	mux.HandleFunc("/api/dashboard.messages", h.handleMessages)
	mux.HandleFunc("/api/dashboard.audience", h.handleAudience)
	mux.HandleFunc("/api/domains.list", h.handleDomains)
}

func (h *DashboardHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	domainName := r.URL.Query().Get("domain")
	stats, err := h.service.GetStats(r.Context(), domainName)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			WriteJSONError(w, "Domain not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).
			WithField("domain", domainName).
			Error("Failed to get dashboard stats")
		WriteJSONError(w, "Failed to get dashboard stats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	params := domain.EmailEventListParams{}
	if err := params.FromQuery(r.URL.Query()); err != nil {
		WriteJSONError(w, "Invalid parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.ListEvents(r.Context(), params)
	if err != nil {
		h.writeListError(w, err, "Failed to list email events")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *DashboardHandler) handleMessages(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	params := domain.EmailListParams{}
	if err := params.FromQuery(r.URL.Query()); err != nil {
		WriteJSONError(w, "Invalid parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.ListEmails(r.Context(), params)
	if err != nil {
		h.writeListError(w, err, "Failed to list emails")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *DashboardHandler) handleAudience(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	params := domain.AudienceListParams{}
	if err := params.FromQuery(r.URL.Query()); err != nil {
		WriteJSONError(w, "Invalid parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.ListAudience(r.Context(), params)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			WriteJSONError(w, "Domain not found", http.StatusNotFound)
			return
		}
		h.writeListError(w, err, "Failed to list audience")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *DashboardHandler) handleDomains(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	result, err := h.service.ListDomains(r.Context())
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list domains")
		WriteJSONError(w, "Failed to list domains", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *DashboardHandler) writeListError(w http.ResponseWriter, err error, message string) {
	var validationErr domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteJSONError(w, "Invalid parameters: "+validationErr.Message, http.StatusBadRequest)
		return
	}
	h.logger.WithField("error", err.Error()).Error(message)
	WriteJSONError(w, message, http.StatusInternalServerError)
}
