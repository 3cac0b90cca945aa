package schedule

import (
	"context"
	"fmt"
	"strings"

	"esprit-rooms-backend/internal/models"
)

// Location statuses.
const (
	StatusNoSchedule   = "no_schedule"
	StatusInSession    = "in_session"
	StatusNotInSession = "not_in_session"
)

// SessionWindow is the active session's bounds in HH:MM form.
type SessionWindow struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Course string `json:"course"`
}

// NextSession is the upcoming session of a class that is not currently in
// one. Start and End are the raw halves of the session's time range.
type NextSession struct {
	Day    string `json:"day"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Room   string `json:"room"`
	Course string `json:"course"`
}

// Location answers "where is my class right now". FullSchedule groups the
// weekly sessions by weekday name (the first token of each day label).
type Location struct {
	ClassCode    string
	Status       string
	Room         string
	Session      *SessionWindow
	NextSession  *NextSession
	FullSchedule map[string][]models.Session
}

// frenchWeekdays is indexed by time.Weekday (Sunday first).
var frenchWeekdays = [...]string{
	"Dimanche", "Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi",
}

// Location locates a class at the given day and time. Empty day and time
// default to the current clock.
func (e *Engine) Location(ctx context.Context, classCode, day, timeStr string) (Location, error) {
	set, err := e.source.LoadSchedules(ctx)
	if err != nil {
		return Location{}, err
	}
	return e.locationIn(set, classCode, day, timeStr), nil
}

func (e *Engine) locationIn(set models.ScheduleSet, classCode, day, timeStr string) Location {
	matched, group := lookupGroup(set, classCode)
	if matched == "" {
		return Location{ClassCode: classCode, Status: StatusNoSchedule}
	}

	dayKeys := make([]string, 0, len(group.Days))
	for dk := range group.Days {
		dayKeys = append(dayKeys, dk)
	}
	sortDayLabels(dayKeys)

	full := make(map[string][]models.Session, len(dayKeys))
	for _, dk := range dayKeys {
		full[weekdayName(dk)] = append(full[weekdayName(dk)], group.Days[dk]...)
	}

	now := e.now()
	q := now.Hour()*60 + now.Minute()
	if timeStr != "" {
		// Accept "09:00-10:30" by keeping the left half.
		t := timeStr
		if i := strings.Index(t, "-"); i >= 0 {
			t = t[:i]
		}
		if m, ok := ParseTime(t); ok {
			q = m
		}
	}
	targetDay := day
	if targetDay == "" {
		targetDay = frenchWeekdays[int(now.Weekday())]
	}

	for _, dk := range dayKeys {
		if !strings.HasPrefix(dk, targetDay) {
			continue
		}
		for _, s := range group.Days[dk] {
			if s.Kind() == models.KindFree {
				continue
			}
			start, end, ok := ParseRange(s.Time)
			if !ok {
				continue
			}
			if q >= start && q < end {
				return Location{
					ClassCode: matched,
					Status:    StatusInSession,
					Room:      strings.TrimSpace(s.Room),
					Session: &SessionWindow{
						Start:  clock(start),
						End:    clock(end),
						Course: s.Course,
					},
					FullSchedule: full,
				}
			}
		}
	}

	return Location{
		ClassCode:    matched,
		Status:       StatusNotInSession,
		NextSession:  e.nextSession(group, dayKeys, targetDay, q),
		FullSchedule: full,
	}
}

// nextSession finds the class's next real session on the target day, then
// falls back to the first session of any day. During the lunch window the
// search starts at the window's end. FREE and NOT-FREE rows are synthetic
// and never a destination.
func (e *Engine) nextSession(group models.Group, dayKeys []string, targetDay string, q int) *NextSession {
	searchFrom := q
	if e.slots.LunchEnd > 0 && q >= e.slots.LunchStart && q < e.slots.LunchEnd {
		searchFrom = e.slots.LunchEnd
	}

	for _, dk := range dayKeys {
		if !strings.HasPrefix(dk, targetDay) {
			continue
		}
		for _, s := range group.Days[dk] {
			if skipAsDestination(s) {
				continue
			}
			start, _, ok := ParseRange(s.Time)
			if !ok || start < searchFrom {
				continue
			}
			return nextFromSession(dk, s)
		}
	}

	for _, dk := range dayKeys {
		for _, s := range group.Days[dk] {
			if skipAsDestination(s) {
				continue
			}
			return nextFromSession(dk, s)
		}
	}
	return nil
}

func skipAsDestination(s models.Session) bool {
	k := s.Kind()
	return k == models.KindFree || k == models.KindNotFree
}

func nextFromSession(day string, s models.Session) *NextSession {
	next := &NextSession{Day: day, Start: s.Time, Room: s.Room, Course: s.Course}
	if parts := strings.SplitN(s.Time, "-", 2); len(parts) == 2 {
		next.Start = strings.TrimSpace(parts[0])
		next.End = strings.TrimSpace(parts[1])
	}
	return next
}

func weekdayName(label string) string {
	if f := strings.Fields(label); len(f) > 0 {
		return f[0]
	}
	return label
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
