package schedule

import (
	"strings"

	"esprit-rooms-backend/internal/models"
)

// ComputeOccupancy walks every group's sessions on the given day and
// returns the rooms occupied and the rooms flagged as free-with-risk at the
// query instant. Sessions with an unparseable time range are skipped rather
// than failing the query.
func ComputeOccupancy(set models.ScheduleSet, day string, minutes int) (occupied, warning map[string]struct{}) {
	occupied = make(map[string]struct{})
	warning = make(map[string]struct{})

	for _, group := range set {
		for _, s := range group.Days[day] {
			classifySession(s, minutes, occupied, warning)
		}
	}
	return occupied, warning
}

func classifySession(s models.Session, q int, occupied, warning map[string]struct{}) {
	start, end, ok := ParseRange(s.Time)
	if !ok {
		return
	}
	// Half-open interval: a session ending exactly at the query instant does
	// not occupy its room.
	if q < start || q >= end {
		return
	}

	room := strings.TrimSpace(s.Room)

	switch s.Kind() {
	case models.KindFree:
		// Explicitly free.
	case models.KindFreeWarning:
		if room != "" {
			warning[room] = struct{}{}
		}
	case models.KindNotFree:
		// The room is in use by a party not listed in the dataset.
		if room != "" {
			occupied[room] = struct{}{}
		}
	case models.KindRemote:
		// Online class, no physical room consumed.
	default:
		if room != "" {
			occupied[room] = struct{}{}
		}
	}
}
