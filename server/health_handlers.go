package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler reports liveness and, when a database is wired, whether it answers
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
			defer cancel()
			if err := s.db.PingContext(ctx); err != nil {
				log.Warn().Err(err).Msg("health check: database unreachable")
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
