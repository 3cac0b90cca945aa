package schedule

import (
	"sort"
	"strings"

	"esprit-rooms-backend/internal/models"
)

// Resolution is the outcome of mapping a class code to a room. Room is ""
// when the class is unknown or has no resolvable room; that is a result
// value, not an error.
type Resolution struct {
	Room        string `json:"room"`
	ClassCode   string `json:"classCode"`
	PrimaryRoom string `json:"primaryRoom"`
}

// lookupGroup finds a dataset group whose key matches classCode
// case-insensitively. When several keys differ only in case, the
// lexicographically first one wins so the lookup is deterministic.
func lookupGroup(set models.ScheduleSet, classCode string) (string, models.Group) {
	upper := strings.ToUpper(classCode)

	var matches []string
	for k := range set {
		if strings.ToUpper(k) == upper {
			matches = append(matches, k)
		}
	}
	if len(matches) == 0 {
		return "", models.Group{}
	}
	sort.Strings(matches)
	return matches[0], set[matches[0]]
}

// ResolveClassToRoom maps a class code to the room it occupies at the given
// day and time, falling back to the group's registered primary room. The
// returned ClassCode is the dataset's own casing of the matched key, or the
// caller's input when the class is unknown.
func ResolveClassToRoom(set models.ScheduleSet, classCode, day, timeStr string) Resolution {
	matched, group := lookupGroup(set, classCode)
	if matched == "" {
		return Resolution{ClassCode: classCode}
	}

	primary := strings.TrimSpace(group.Metadata.PrimaryRoom)

	if day != "" && timeStr != "" {
		if q, ok := ParseTime(timeStr); ok {
			if room := roomAt(group, day, q); room != "" {
				return Resolution{Room: room, ClassCode: matched, PrimaryRoom: primary}
			}
		}
	}

	return Resolution{Room: primary, ClassCode: matched, PrimaryRoom: primary}
}

// roomAt returns the room of the first session bracketing the query minute.
// Sentinel rows are synthetic free-room markers, not real occupancy of the
// searched class, and online sessions have no physical room; both are
// skipped.
func roomAt(group models.Group, day string, q int) string {
	for _, s := range group.Days[day] {
		start, end, ok := ParseRange(s.Time)
		if !ok {
			continue
		}
		if q < start || q >= end {
			continue
		}
		switch s.Kind() {
		case models.KindFree, models.KindFreeWarning, models.KindNotFree, models.KindRemote:
			continue
		}
		if room := strings.TrimSpace(s.Room); room != "" {
			return room
		}
	}
	return ""
}
