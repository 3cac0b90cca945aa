package schedule

import (
	"time"

	"esprit-rooms-backend/internal/models"
)

// BuildSnapshot precomputes, for every known day and every configured slot
// start, the rooms with no scheduled occupancy. Warning rooms are left out:
// the snapshot is consumed by clients that only want safe picks.
func BuildSnapshot(set models.ScheduleSet, slotStarts []string, now time.Time) models.FreeRoomsSnapshot {
	days, rooms := CollectRoomsAndDays(set)

	scheduleMap := make(map[string]map[string][]string, len(days))
	for _, day := range days {
		scheduleMap[day] = make(map[string][]string, len(slotStarts))

		for _, slot := range slotStarts {
			q, ok := ParseTime(slot)
			if !ok {
				continue
			}
			occupied, warning := ComputeOccupancy(set, day, q)

			free := make([]string, 0, len(rooms))
			for _, r := range rooms {
				if _, occ := occupied[r]; occ {
					continue
				}
				if _, w := warning[r]; w {
					continue
				}
				free = append(free, r)
			}
			scheduleMap[day][slot] = free
		}
	}

	return models.FreeRoomsSnapshot{
		Schedule:   scheduleMap,
		LastUpdate: now.Format("2006-01-02 15:04:05"),
	}
}
