package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// accessLog tags every request with an id and logs method, path, status and
// duration.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		next.ServeHTTP(rec, r)

		s.log.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}

// public wraps an API handler with the maintenance gate only.
func (s *Server) public(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Maintenance {
			s.writeError(w, http.StatusServiceUnavailable, "Service temporarily unavailable for maintenance")
			return
		}
		h(w, r)
	})
}

// protected additionally checks the static API key in X-API-Key.
func (s *Server) protected(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Maintenance {
			s.writeError(w, http.StatusServiceUnavailable, "Service temporarily unavailable for maintenance")
			return
		}
		if s.cfg.APIKey == "" {
			s.log.Error("api key is not configured")
			s.writeError(w, http.StatusInternalServerError, "Server misconfiguration – API key not set")
			return
		}
		if r.Header.Get("X-API-Key") != s.cfg.APIKey {
			s.writeError(w, http.StatusUnauthorized, "Missing or invalid API key")
			return
		}
		h(w, r)
	})
}
