package utils

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// WriteJSON encodes before touching the response, so an encoding failure still yields a clean 500.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// WritePublicJSON is WriteJSON for data that only changes on deploy (category tiles, videos).
func WritePublicJSON(w http.ResponseWriter, data interface{}, maxAge time.Duration) {
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds())))
	WriteJSON(w, http.StatusOK, data)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, status, map[string]string{"error": message})
}

// WriteNotFoundRedirect tells API clients where to go after a lookup miss, and when.
func WriteNotFoundRedirect(w http.ResponseWriter, message, location string, afterMs int64) {
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":           message,
		"redirect":        location,
		"redirectAfterMs": afterMs,
	})
}
