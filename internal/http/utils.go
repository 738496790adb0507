package http

import (
	"encoding/json"
	"net/http"
)

// maxWebhookBodyBytes bounds a webhook body; Emailit events are a few KB
const maxWebhookBodyBytes = 1 << 20

// WriteJSONError writes a JSON error response with the given message and status code.
// The response is formatted as {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// allowMethods answers 405 unless the request uses one of methods
func allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}
