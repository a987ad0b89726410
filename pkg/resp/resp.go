package resp

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Kind         string `json:"kind,omitempty"`
	Error        string `json:"error"`
	RetryAfterMs *int64 `json:"retryAfterMs,omitempty"`
}

func WriteJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError пишет ошибку в едином формате {"kind": ..., "error": ...}
func WriteError(w http.ResponseWriter, status int, kind, message string) {
	WriteJSONResponse(w, status, ErrorResponse{
		Kind:  kind,
		Error: message,
	})
}
