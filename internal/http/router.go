// Package http exposes the local debug surface: health probes, Prometheus
// metrics, and the current session state as JSON.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"voice-assistant-client/internal/session"
)

// NewRouter constructs the debug HTTP router. snapshot supplies the
// coordinator's current state; it is read-only and safe to call from any
// goroutine.
func NewRouter(snapshot func() session.State) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/v1/liveness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/v1/readiness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	r.Get("/v1/state", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshot()); err != nil {
			log.Error().Err(err).Msg("Failed to encode state snapshot")
		}
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
