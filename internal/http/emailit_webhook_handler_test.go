package http

import (
	"bytes"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsdmailer/wsdmailer/internal/domain"
	"github.com/wsdmailer/wsdmailer/internal/domain/mocks"
	"github.com/wsdmailer/wsdmailer/pkg/logger"
)

const samplePayload = `{"event_id":"evt-1","type":"email.delivery.sent","object":{"email":{"message_id":"m-1","from":"a@example.com"}}}`

var testWebhookSecret = "whsec_" + base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))

func setupWebhookHandler(t *testing.T, secret string) (*http.ServeMux, *mocks.MockEmailitEventService) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	svc := mocks.NewMockEmailitEventService(ctrl)
	handler, err := NewEmailitWebhookHandler(svc, secret, logger.NewTestLogger(t))
	require.NoError(t, err)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux, svc
}

func TestEmailitWebhookHandler(t *testing.T) {
	t.Run("accepted event", func(t *testing.T) {
		mux, svc := setupWebhookHandler(t, "")
		svc.EXPECT().
			ProcessEvent(gomock.Any(), []byte(samplePayload)).
			Return(&domain.ProcessEventResult{EventID: "evt-1", Type: "email.delivery.sent", MessageID: "m-1"}, nil)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhooks/emailit", strings.NewReader(samplePayload)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"event_id":"evt-1","type":"email.delivery.sent","message_id":"m-1"}`, rec.Body.String())
	})

	t.Run("malformed payload is a permanent 400", func(t *testing.T) {
		mux, svc := setupWebhookHandler(t, "")
		svc.EXPECT().
			ProcessEvent(gomock.Any(), gomock.Any()).
			Return(nil, &domain.MalformedPayloadError{Field: "object.email.message_id", Reason: "is required"})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhooks/emailit", strings.NewReader(`{"type":"x"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "object.email.message_id")
	})

	t.Run("storage failure is a retryable 500", func(t *testing.T) {
		mux, svc := setupWebhookHandler(t, "")
		svc.EXPECT().
			ProcessEvent(gomock.Any(), gomock.Any()).
			Return(nil, &domain.StorageTransactionError{Op: "increment_summary", Err: errors.New("deadlock"), Retryable: true})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhooks/emailit", strings.NewReader(samplePayload)))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Failed to process webhook"}`, rec.Body.String())
	})

	t.Run("wrong method", func(t *testing.T) {
		mux, _ := setupWebhookHandler(t, "")

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/webhooks/emailit", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("oversized body", func(t *testing.T) {
		mux, _ := setupWebhookHandler(t, "")
		body := bytes.Repeat([]byte("a"), maxWebhookBodyBytes+1)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhooks/emailit", bytes.NewReader(body)))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

func TestEmailitWebhookHandler_Signature(t *testing.T) {
	sign := func(t *testing.T, req *http.Request, payload []byte, at time.Time) {
		wh, err := standardwebhooks.NewWebhook(testWebhookSecret)
		require.NoError(t, err)
		signature, err := wh.Sign("msg_1", at, payload)
		require.NoError(t, err)

		req.Header.Set("webhook-id", "msg_1")
		req.Header.Set("webhook-timestamp", strconv.FormatInt(at.Unix(), 10))
		req.Header.Set("webhook-signature", signature)
	}

	t.Run("valid signature", func(t *testing.T) {
		mux, svc := setupWebhookHandler(t, testWebhookSecret)
		svc.EXPECT().
			ProcessEvent(gomock.Any(), []byte(samplePayload)).
			Return(&domain.ProcessEventResult{EventID: "evt-1"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/webhooks/emailit", strings.NewReader(samplePayload))
		sign(t, req, []byte(samplePayload), time.Now())
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing signature", func(t *testing.T) {
		mux, _ := setupWebhookHandler(t, testWebhookSecret)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhooks/emailit", strings.NewReader(samplePayload)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("tampered body", func(t *testing.T) {
		mux, _ := setupWebhookHandler(t, testWebhookSecret)

		req := httptest.NewRequest(http.MethodPost, "/webhooks/emailit", strings.NewReader(samplePayload+" "))
		sign(t, req, []byte(samplePayload), time.Now())
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		mux, _ := setupWebhookHandler(t, testWebhookSecret)

		req := httptest.NewRequest(http.MethodPost, "/webhooks/emailit", strings.NewReader(samplePayload))
		sign(t, req, []byte(samplePayload), time.Now().Add(-10*time.Minute))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestNewEmailitWebhookHandler_InvalidSecret(t *testing.T) {
	_, err := NewEmailitWebhookHandler(nil, "whsec_!!!not-base64", logger.NewTestLogger(t))
	assert.Error(t, err)
}
