package models

import "strings"

// ScheduleSet is the full precomputed weekly dataset, keyed by group code
// (a class/section code such as "4SAE11").
type ScheduleSet map[string]Group

// Group holds one group's weekly schedule. Day labels are free-text strings
// such as "Lundi 10 Février"; each maps to the ordered sessions of that day.
type Group struct {
	Days     map[string][]Session `json:"days"`
	Metadata Metadata             `json:"metadata"`
}

// Metadata carries the optional extras attached to a group by the exporter.
type Metadata struct {
	PrimaryRoom string `json:"primary_room,omitempty"`
	Year        string `json:"year,omitempty"`
	Semester    string `json:"semester,omitempty"`
	Period      string `json:"period,omitempty"`
}

// Session is one scheduled time block: a free-text time range, a course
// label (possibly a sentinel value) and a room identifier.
type Session struct {
	Time   string `json:"time"`
	Course string `json:"course"`
	Room   string `json:"room"`
}

// SessionKind classifies the sentinel vocabulary of the dataset once, so the
// raw strings are not re-compared at every classification site.
type SessionKind int

const (
	// KindOrdinary is a real class occupying its room.
	KindOrdinary SessionKind = iota
	// KindFree marks a room explicitly free during the slot.
	KindFree
	// KindFreeWarning marks a room free but at risk of ad-hoc use.
	KindFreeWarning
	// KindNotFree marks a room in use by an unlisted party.
	KindNotFree
	// KindRemote is an online class that consumes no physical room.
	KindRemote
)

// RemoteRoom is the room sentinel for online sessions, matched
// case-insensitively.
const RemoteRoom = "En Ligne"

const (
	courseFree        = "FREE"
	courseFreeWarning = "FREEWARNING"
	courseNotFree     = "NOT-FREE"
)

// Kind decodes the session's sentinel vocabulary. Course sentinels take
// priority over the remote-room sentinel, matching the classification order
// of the occupancy rules.
func (s Session) Kind() SessionKind {
	switch strings.ToUpper(strings.TrimSpace(s.Course)) {
	case courseFree:
		return KindFree
	case courseFreeWarning:
		return KindFreeWarning
	case courseNotFree:
		return KindNotFree
	}
	if s.IsRemote() {
		return KindRemote
	}
	return KindOrdinary
}

// IsRemote reports whether the session's room is the online sentinel.
func (s Session) IsRemote() bool {
	return strings.EqualFold(strings.TrimSpace(s.Room), RemoteRoom)
}

// PhysicalRoom returns the trimmed room identifier, or "" when the session
// has no room or is held online.
func (s Session) PhysicalRoom() string {
	if s.IsRemote() {
		return ""
	}
	return strings.TrimSpace(s.Room)
}

// ParsedRoom is a room identifier decomposed into building block, floor and
// room number, e.g. "G308" -> block G, floor 3, room 8.
type ParsedRoom struct {
	Raw     string
	Block   string
	Floor   int
	RoomNum int
}

// Candidate is one proximity-ranked room. Lower score is closer; warning
// rooms carry a fixed 0.5 penalty on top of their integer tier.
type Candidate struct {
	Room      string  `json:"room"`
	IsWarning bool    `json:"isWarning"`
	Score     float64 `json:"score"`
}

// FreeRoomsSnapshot is the precomputed per-day, per-slot list of empty
// rooms, in the shape published to the realtime database.
type FreeRoomsSnapshot struct {
	Schedule   map[string]map[string][]string `json:"schedule"`
	LastUpdate string                         `json:"last_update"`
}
