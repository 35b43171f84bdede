// Package health exposes liveness and readiness handlers.
package health

import (
	"context"
	"encoding/json"
	"net/http"
)

// Pinger reports whether the upstream geocoding service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"message": "Geotagging Service is running.",
		})
	}
}

func Readiness(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type resp struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}
		out := resp{Status: "ready"}
		if err := p.Ping(r.Context()); err != nil {
			out = resp{Status: "not_ready", Error: err.Error()}
		}
		w.Header().Set("Content-Type", "application/json")
		if out.Status != "ready" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}
