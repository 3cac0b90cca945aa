package server

import (
	"fmt"
	"net/http"
	"regexp"

	"go.uber.org/zap"

	"esprit-rooms-backend/internal/models"
	"esprit-rooms-backend/internal/schedule"
)

var timeParamRe = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

func validTimeParam(t string) bool {
	return t == "" || timeParamRe.MatchString(t)
}

func (s *Server) handleFreeRooms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	timeParam := q.Get("time")
	if !validTimeParam(timeParam) {
		s.writeError(w, http.StatusBadRequest, "Invalid time format. Expected HH:MM (24h), e.g. 09:00")
		return
	}

	result, err := s.engine.FreeRooms(r.Context(), schedule.Query{
		Day:      q.Get("day"),
		Time:     timeParam,
		Building: q.Get("building"),
	})
	if err != nil {
		s.log.Error("free rooms query failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// handleLegacyEmpty serves the pre-v1 response shape: no auth, no building
// filter, warning rooms folded into empty.
func (s *Server) handleLegacyEmpty(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := s.engine.FreeRooms(r.Context(), schedule.Query{
		Day:  q.Get("day"),
		Time: q.Get("time"),
	})
	if err != nil {
		s.log.Error("free rooms query failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Days     []string `json:"days"`
		Rooms    []string `json:"rooms"`
		Occupied []string `json:"occupied"`
		Empty    []string `json:"empty"`
	}{
		Days:     result.Days,
		Rooms:    result.Rooms,
		Occupied: result.Occupied,
		Empty:    append(result.Empty, result.Warning...),
	})
}

func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	classParam := q.Get("class")
	if classParam == "" {
		s.writeError(w, http.StatusBadRequest, "Missing required parameter: class (e.g. class=4SAE11)")
		return
	}
	timeParam := q.Get("time")
	if !validTimeParam(timeParam) {
		s.writeError(w, http.StatusBadRequest, "Invalid time format. Expected HH:MM (24h), e.g. 09:00")
		return
	}

	result, err := s.engine.NearestRoomForClass(r.Context(), classParam, q.Get("day"), timeParam)
	if err != nil {
		s.log.Error("nearest room query failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if result.CurrentRoom == "" {
		s.writeError(w, http.StatusNotFound,
			fmt.Sprintf("Class %q not found or has no room assigned", classParam))
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Class         string             `json:"class"`
		CurrentRoom   string             `json:"currentRoom"`
		Nearest       *string            `json:"nearest"`
		IsWarning     bool               `json:"isWarning"`
		Day           string             `json:"day"`
		Time          string             `json:"time"`
		TopCandidates []models.Candidate `json:"topCandidates"`
	}{
		Class:         result.ClassCode,
		CurrentRoom:   result.CurrentRoom,
		Nearest:       nullable(result.Nearest),
		IsWarning:     result.IsWarning,
		Day:           result.Day,
		Time:          result.Time,
		TopCandidates: result.Candidates,
	})
}

func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	classCode := r.PathValue("classCode")
	q := r.URL.Query()

	loc, err := s.engine.Location(r.Context(), classCode, q.Get("day"), q.Get("time"))
	if err != nil {
		s.log.Error("class location query failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if loc.Status == schedule.StatusNoSchedule {
		s.writeJSON(w, http.StatusOK, struct {
			ClassCode string `json:"classCode"`
			Status    string `json:"status"`
		}{ClassCode: loc.ClassCode, Status: loc.Status})
		return
	}

	type roomInfo struct {
		RoomID   string `json:"roomId"`
		Name     string `json:"name"`
		Building string `json:"building"`
	}
	resp := struct {
		ClassCode    string                      `json:"classCode"`
		Status       string                      `json:"status"`
		Room         *roomInfo                   `json:"room,omitempty"`
		Session      *schedule.SessionWindow     `json:"session,omitempty"`
		NextSession  *schedule.NextSession       `json:"nextSession,omitempty"`
		FullSchedule map[string][]models.Session `json:"fullSchedule"`
	}{
		ClassCode:    loc.ClassCode,
		Status:       loc.Status,
		Session:      loc.Session,
		NextSession:  loc.NextSession,
		FullSchedule: loc.FullSchedule,
	}
	if loc.Room != "" {
		resp.Room = &roomInfo{RoomID: loc.Room, Name: loc.Room, Building: loc.Room[:1]}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
