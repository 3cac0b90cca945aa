package schedule

import (
	"context"
	"testing"

	"esprit-rooms-backend/internal/models"
)

func locationSet() models.ScheduleSet {
	return models.ScheduleSet{
		"4SAE11": {Days: map[string][]models.Session{
			"Lundi 10 Février": {
				{Time: "09H:00 - 12H:15", Course: "ALGO", Room: "G308"},
				{Time: "12H:45 - 13H:15", Course: "NOT-FREE", Room: "G308"},
				{Time: "13H:30 - 16H:45", Course: "SEC", Room: "G310"},
			},
			"Mardi 11 Février": {
				{Time: "09H:00 - 12H:15", Course: "FREE", Room: "G301"},
			},
		}},
	}
}

func TestLocationInSession(t *testing.T) {
	loc, err := newTestEngine(locationSet()).Location(context.Background(), "4sae11", "Lundi", "10:00")
	if err != nil {
		t.Fatal(err)
	}

	if loc.Status != StatusInSession {
		t.Fatalf("status = %q, want %q", loc.Status, StatusInSession)
	}
	if loc.ClassCode != "4SAE11" || loc.Room != "G308" {
		t.Fatalf("loc = %+v, want class 4SAE11 in G308", loc)
	}
	if loc.Session == nil || loc.Session.Start != "09:00" || loc.Session.End != "12:15" {
		t.Fatalf("session = %+v, want 09:00-12:15", loc.Session)
	}
	if len(loc.FullSchedule["Lundi"]) != 3 || len(loc.FullSchedule["Mardi"]) != 1 {
		t.Fatalf("full schedule = %+v, want sessions grouped under weekday names", loc.FullSchedule)
	}
}

// A query inside the lunch window searches next sessions from the window's
// end, skipping the synthetic NOT-FREE row that starts in between.
func TestLocationNextSessionSkipsLunchBreak(t *testing.T) {
	loc, err := newTestEngine(locationSet()).Location(context.Background(), "4SAE11", "Lundi", "12:30")
	if err != nil {
		t.Fatal(err)
	}

	if loc.Status != StatusNotInSession {
		t.Fatalf("status = %q, want %q", loc.Status, StatusNotInSession)
	}
	if loc.NextSession == nil {
		t.Fatal("next session missing")
	}
	if loc.NextSession.Start != "13H:30" || loc.NextSession.Room != "G310" {
		t.Fatalf("next session = %+v, want the 13H:30 session in G310", loc.NextSession)
	}
}

func TestLocationUnknownClass(t *testing.T) {
	loc, err := newTestEngine(locationSet()).Location(context.Background(), "9XYZ99", "Lundi", "10:00")
	if err != nil {
		t.Fatal(err)
	}
	if loc.Status != StatusNoSchedule || loc.ClassCode != "9XYZ99" {
		t.Fatalf("loc = %+v, want no_schedule with echoed code", loc)
	}
}

func TestLocationNextSessionFallsBackToAnyDay(t *testing.T) {
	set := models.ScheduleSet{
		"4SAE11": {Days: map[string][]models.Session{
			"Mardi 11 Février": {{Time: "09H:00 - 12H:15", Course: "BD", Room: "A12"}},
		}},
	}

	// Nothing left on Lundi: the first real session of any day is offered.
	loc, err := newTestEngine(set).Location(context.Background(), "4SAE11", "Lundi", "17:00")
	if err != nil {
		t.Fatal(err)
	}
	if loc.NextSession == nil || loc.NextSession.Room != "A12" {
		t.Fatalf("next session = %+v, want the Mardi session in A12", loc.NextSession)
	}
}
