package middleware

import (
	"context"
	"net/http"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"
)

// TracingMiddleware starts an OpenCensus span per request, named after the
// method and path, and records the response status on it.
func TracingMiddleware(next http.Handler) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if span := trace.FromContext(ctx); span != nil {
			span.AddAttributes(
				trace.StringAttribute("http.host", r.Host),
				trace.StringAttribute("http.user_agent", r.UserAgent()),
				trace.StringAttribute("http.method", r.Method),
				trace.StringAttribute("http.path", r.URL.Path),
			)

			// Webhook deliveries carry their own id, useful to match provider retries
			if webhookID := r.Header.Get("Webhook-Id"); webhookID != "" {
				span.AddAttributes(trace.StringAttribute("webhook.id", webhookID))
			}
			if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
				span.AddAttributes(trace.StringAttribute("http.request_id", requestID))
			}
		}

		next.ServeHTTP(&statusRecorder{ResponseWriter: w, ctx: ctx}, r)
	})

	return &ochttp.Handler{
		Handler: inner,
		FormatSpanName: func(r *http.Request) string {
			return r.Method + " " + r.URL.Path
		},
		IsPublicEndpoint: true,
	}
}

// statusRecorder copies the response status onto the request span
type statusRecorder struct {
	http.ResponseWriter
	ctx        context.Context
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code

	if span := trace.FromContext(sr.ctx); span != nil {
		span.AddAttributes(trace.Int64Attribute("http.status_code", int64(code)))
		if code >= 500 {
			span.SetStatus(trace.Status{
				Code:    trace.StatusCodeInternal,
				Message: http.StatusText(code),
			})
		} else if code >= 400 {
			span.SetStatus(trace.Status{
				Code:    trace.StatusCodeInvalidArgument,
				Message: http.StatusText(code),
			})
		}
	}

	sr.ResponseWriter.WriteHeader(code)
}
