package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"esprit-rooms-backend/internal/config"
	"esprit-rooms-backend/internal/schedule"
)

// Server is the thin HTTP layer over the schedule engine.
type Server struct {
	engine *schedule.Engine
	cfg    *config.Config
	log    *zap.Logger
}

func New(engine *schedule.Engine, cfg *config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{engine: engine, cfg: cfg, log: log}
}

// Handler builds the route table. /api/v1 routes require the API key;
// /api/empty is the legacy public endpoint; /health bypasses everything.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /api/empty", s.public(s.handleLegacyEmpty))
	mux.Handle("GET /api/v1/rooms/free", s.protected(s.handleFreeRooms))
	mux.Handle("GET /api/v1/rooms/nearest", s.protected(s.handleNearest))
	mux.Handle("GET /api/v1/classes/{classCode}/location", s.protected(s.handleLocation))

	return s.accessLog(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("response encode failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
