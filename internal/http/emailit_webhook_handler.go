package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"

	"github.com/wsdmailer/wsdmailer/internal/domain"
	"github.com/wsdmailer/wsdmailer/pkg/logger"
)

// EmailitWebhookHandler receives Emailit event webhooks
type EmailitWebhookHandler struct {
	service domain.EmailitEventService
	// verifier is nil when no signing secret is configured
	verifier *standardwebhooks.Webhook
	logger   logger.Logger
}

// NewEmailitWebhookHandler creates the handler. A non-empty secret (whsec_...)
// turns on standard-webhooks signature verification.
func NewEmailitWebhookHandler(service domain.EmailitEventService, webhookSecret string, logger logger.Logger) (*EmailitWebhookHandler, error) {
	h := &EmailitWebhookHandler{
		service: service,
		logger:  logger,
	}

	if webhookSecret != "" {
		verifier, err := standardwebhooks.NewWebhook(webhookSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to create webhook verifier: %w", err)
		}
		h.verifier = verifier
	}

	return h, nil
}

// RegisterRoutes registers the webhook endpoint
func (h *EmailitWebhookHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/webhooks/emailit", h.handleWebhook)
}

func (h *EmailitWebhookHandler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteJSONError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to read webhook request body")
		WriteJSONError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	if h.verifier != nil {
		if err := h.verifier.Verify(body, r.Header); err != nil {
			h.logger.WithField("webhook_id", r.Header.Get("Webhook-Id")).
				WithField("error", err.Error()).
				Warn("Rejected Emailit webhook with invalid signature")
			WriteJSONError(w, "Invalid webhook signature", http.StatusUnauthorized)
			return
		}
	}

	result, err := h.service.ProcessEvent(r.Context(), body)
	if err != nil {
		if domain.IsMalformedPayload(err) {
			// permanent: the provider must not retry this body
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		h.logger.WithField("error", err.Error()).Error("Failed to process Emailit webhook")
		WriteJSONError(w, "Failed to process webhook", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"event_id":   result.EventID,
		"type":       result.Type,
		"message_id": result.MessageID,
	})
}
