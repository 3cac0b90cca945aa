package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"esprit-rooms-backend/internal/config"
	"esprit-rooms-backend/internal/models"
	"esprit-rooms-backend/internal/schedule"
)

type staticSource struct {
	set models.ScheduleSet
}

func (s *staticSource) LoadSchedules(ctx context.Context) (models.ScheduleSet, error) {
	return s.set, nil
}

func testServer(cfg *config.Config) *Server {
	set := models.ScheduleSet{
		"4SAE11": {
			Days: map[string][]models.Session{
				"Lundi": {
					{Time: "09H:00 - 12H:15", Course: "ALGO", Room: "G308"},
					{Time: "13H:30 - 16H:45", Course: "SEC", Room: "G305"},
				},
			},
			Metadata: models.Metadata{PrimaryRoom: "G206"},
		},
		"4SAE12": {
			Days: map[string][]models.Session{
				"Lundi": {{Time: "09H:00 - 12H:15", Course: "FREEWARNING", Room: "G311"}},
			},
		},
	}
	engine := schedule.NewEngine(&staticSource{set: set}, schedule.Slots{
		Starts:     []string{"09:00", "13:30"},
		LunchStart: 735,
		LunchEnd:   810,
	}, zap.NewNop())
	return New(engine, cfg, zap.NewNop())
}

func get(t *testing.T, h http.Handler, path, apiKey string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuth(t *testing.T) {
	h := testServer(&config.Config{APIKey: "secret"}).Handler()

	if rec := get(t, h, "/api/v1/rooms/free", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing key: status = %d, want 401", rec.Code)
	}
	if rec := get(t, h, "/api/v1/rooms/free", "wrong"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong key: status = %d, want 401", rec.Code)
	}
	if rec := get(t, h, "/api/v1/rooms/free", "secret"); rec.Code != http.StatusOK {
		t.Fatalf("valid key: status = %d, want 200", rec.Code)
	}

	// An unset server-side key is a server misconfiguration, not a 401.
	h = testServer(&config.Config{}).Handler()
	if rec := get(t, h, "/api/v1/rooms/free", "anything"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("unset server key: status = %d, want 500", rec.Code)
	}
}

func TestHealthBypassesAuth(t *testing.T) {
	h := testServer(&config.Config{APIKey: "secret", Maintenance: true}).Handler()
	rec := get(t, h, "/health", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("health = %d %q, want 200 OK", rec.Code, rec.Body.String())
	}
}

func TestMaintenanceMode(t *testing.T) {
	h := testServer(&config.Config{APIKey: "secret", Maintenance: true}).Handler()
	if rec := get(t, h, "/api/v1/rooms/free", "secret"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if rec := get(t, h, "/api/empty", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("legacy route status = %d, want 503", rec.Code)
	}
}

func TestFreeRoomsRoute(t *testing.T) {
	h := testServer(&config.Config{APIKey: "secret"}).Handler()

	rec := get(t, h, "/api/v1/rooms/free?day=Lundi&time=10:00", "secret")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var res schedule.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Occupied) != 1 || res.Occupied[0] != "G308" {
		t.Fatalf("occupied = %v, want [G308]", res.Occupied)
	}
	if len(res.Warning) != 1 || res.Warning[0] != "G311" {
		t.Fatalf("warning = %v, want [G311]", res.Warning)
	}
}

func TestFreeRoomsRejectsBadTime(t *testing.T) {
	h := testServer(&config.Config{APIKey: "secret"}).Handler()
	if rec := get(t, h, "/api/v1/rooms/free?time=10h00", "secret"); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLegacyEmptyMergesWarning(t *testing.T) {
	h := testServer(&config.Config{APIKey: "secret"}).Handler()

	// No API key needed on the legacy route.
	rec := get(t, h, "/api/empty?day=Lundi&time=10:00", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var res struct {
		Empty   []string `json:"empty"`
		Warning []string `json:"warning"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Warning != nil {
		t.Fatalf("legacy shape must not carry warning, got %v", res.Warning)
	}
	found := false
	for _, r := range res.Empty {
		if r == "G311" {
			found = true
		}
	}
	if !found {
		t.Fatalf("empty = %v, want the warning room G311 folded in", res.Empty)
	}
}

func TestNearestRoute(t *testing.T) {
	h := testServer(&config.Config{APIKey: "secret"}).Handler()

	if rec := get(t, h, "/api/v1/rooms/nearest", "secret"); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing class: status = %d, want 400", rec.Code)
	}
	if rec := get(t, h, "/api/v1/rooms/nearest?class=9XYZ99", "secret"); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown class: status = %d, want 404", rec.Code)
	}

	rec := get(t, h, "/api/v1/rooms/nearest?class=4sae11&day=Lundi&time=10:00", "secret")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var res struct {
		Class       string  `json:"class"`
		CurrentRoom string  `json:"currentRoom"`
		Nearest     *string `json:"nearest"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Class != "4SAE11" || res.CurrentRoom != "G308" {
		t.Fatalf("response = %+v, want class 4SAE11 in G308", res)
	}
	if res.Nearest == nil || *res.Nearest != "G305" {
		t.Fatalf("nearest = %v, want G305", res.Nearest)
	}
}

func TestLocationRoute(t *testing.T) {
	h := testServer(&config.Config{APIKey: "secret"}).Handler()

	rec := get(t, h, "/api/v1/classes/4SAE11/location?day=Lundi&time=10:00", "secret")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var res struct {
		ClassCode string `json:"classCode"`
		Status    string `json:"status"`
		Room      *struct {
			RoomID   string `json:"roomId"`
			Building string `json:"building"`
		} `json:"room"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Status != schedule.StatusInSession || res.Room == nil || res.Room.RoomID != "G308" {
		t.Fatalf("response = %+v, want in_session in G308", res)
	}
	if res.Room.Building != "G" {
		t.Fatalf("building = %q, want G", res.Room.Building)
	}

	rec = get(t, h, "/api/v1/classes/9XYZ99/location", "secret")
	if rec.Code != http.StatusOK {
		t.Fatalf("unknown class status = %d, want 200 with no_schedule", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Status != schedule.StatusNoSchedule {
		t.Fatalf("status = %q, want no_schedule", res.Status)
	}
}
