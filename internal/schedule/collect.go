package schedule

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"esprit-rooms-backend/internal/models"
)

// weekdayOrder drives day-label sorting. Labels are free text but start
// with a French weekday name; anything else gets index -1 and sorts first.
var weekdayOrder = []string{
	"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche",
}

func weekdayIndex(label string) int {
	for i, w := range weekdayOrder {
		if strings.HasPrefix(label, w) {
			return i
		}
	}
	return -1
}

// sortRooms orders room identifiers with a French collator, matching how
// the room lists are displayed.
func sortRooms(rooms []string) {
	collate.New(language.French).SortStrings(rooms)
}

// sortDayLabels orders day labels by weekday, collated within a weekday so
// the order is stable across runs.
func sortDayLabels(days []string) {
	collate.New(language.French).SortStrings(days)
	sort.SliceStable(days, func(i, j int) bool {
		return weekdayIndex(days[i]) < weekdayIndex(days[j])
	})
}

// CollectRoomsAndDays scans the whole dataset once and returns every known
// schedule day and every physical room. Online sessions contribute no room.
func CollectRoomsAndDays(set models.ScheduleSet) (days, rooms []string) {
	daySet := make(map[string]struct{})
	roomSet := make(map[string]struct{})

	for _, group := range set {
		for day, sessions := range group.Days {
			daySet[day] = struct{}{}
			for _, s := range sessions {
				if r := s.PhysicalRoom(); r != "" {
					roomSet[r] = struct{}{}
				}
			}
		}
	}

	days = make([]string, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sortDayLabels(days)

	rooms = make([]string, 0, len(roomSet))
	for r := range roomSet {
		rooms = append(rooms, r)
	}
	sortRooms(rooms)

	return days, rooms
}
