package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"

	"esprit-rooms-backend/internal/models"
	"esprit-rooms-backend/internal/storage"
)

// Slots carries the config-derived slot grid: the slot start times used for
// the free-rooms snapshot and the lunch window skipped when looking for a
// class's next session. Times are minutes since midnight.
type Slots struct {
	Starts     []string
	LunchStart int
	LunchEnd   int
}

// Engine answers the room and class queries over a schedule Source. It is
// stateless: every query loads the dataset through the source (typically a
// storage.CachedSource) and computes fresh.
type Engine struct {
	source storage.Source
	slots  Slots
	log    *zap.Logger
	now    func() time.Time
}

func NewEngine(source storage.Source, slots Slots, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{source: source, slots: slots, log: log, now: time.Now}
}

// Query is the free-rooms request. All fields are optional free text: Day
// defaults to the first collected day, an absent Time skips occupancy, and
// Building "" or "all" skips filtering.
type Query struct {
	Day      string
	Time     string
	Building string
}

// Result is the free-rooms report. Days and Rooms are always global; the
// building filter narrows only Empty and Warning.
type Result struct {
	Days     []string `json:"days"`
	Rooms    []string `json:"rooms"`
	Occupied []string `json:"occupied"`
	Empty    []string `json:"empty"`
	Warning  []string `json:"warning"`
}

// FreeRooms computes the occupied/empty/warning report for a day and time.
func (e *Engine) FreeRooms(ctx context.Context, q Query) (Result, error) {
	set, err := e.source.LoadSchedules(ctx)
	if err != nil {
		return Result{}, err
	}
	return FreeRoomsIn(set, q), nil
}

// FreeRoomsIn computes the free-rooms report over an already-loaded
// dataset.
func FreeRoomsIn(set models.ScheduleSet, q Query) Result {
	days, rooms := CollectRoomsAndDays(set)

	selectedDay := q.Day
	if selectedDay == "" && len(days) > 0 {
		selectedDay = days[0]
	}

	qMinutes, haveTime := 0, false
	if q.Time != "" {
		qMinutes, haveTime = ParseTime(q.Time)
	}

	occupied := map[string]struct{}{}
	warning := map[string]struct{}{}
	if selectedDay != "" && haveTime {
		occupied, warning = ComputeOccupancy(set, selectedDay, qMinutes)
	}

	occupiedList := make([]string, 0, len(occupied))
	for r := range occupied {
		occupiedList = append(occupiedList, r)
	}
	sortRooms(occupiedList)

	// Occupied wins over warning, so the three lists stay disjoint and
	// empty/warning keep the global room order.
	empty := make([]string, 0, len(rooms))
	warn := make([]string, 0)
	for _, r := range rooms {
		if _, occ := occupied[r]; occ {
			continue
		}
		if _, w := warning[r]; w {
			warn = append(warn, r)
			continue
		}
		empty = append(empty, r)
	}

	if q.Building != "" && q.Building != "all" {
		empty = FilterByBuilding(empty, q.Building)
		warn = FilterByBuilding(warn, q.Building)
	}

	return Result{
		Days:     days,
		Rooms:    rooms,
		Occupied: occupiedList,
		Empty:    empty,
		Warning:  warn,
	}
}

// NearestOutcome is a proximity ranking echoing the query's day and time.
type NearestOutcome struct {
	NearestResult
	Day  string `json:"day"`
	Time string `json:"time"`
}

// NearestRoomTo finds the nearest empty room to a given room at the given
// day and time.
func (e *Engine) NearestRoomTo(ctx context.Context, room, day, timeStr string) (NearestOutcome, error) {
	res, err := e.FreeRooms(ctx, Query{Day: day, Time: timeStr})
	if err != nil {
		return NearestOutcome{}, err
	}
	return NearestOutcome{
		NearestResult: FindNearestRoom(room, res.Empty, res.Warning),
		Day:           day,
		Time:          timeStr,
	}, nil
}

// ResolveClass maps a class code to its current room (see
// ResolveClassToRoom).
func (e *Engine) ResolveClass(ctx context.Context, classCode, day, timeStr string) (Resolution, error) {
	set, err := e.source.LoadSchedules(ctx)
	if err != nil {
		return Resolution{}, err
	}
	return ResolveClassToRoom(set, classCode, day, timeStr), nil
}

// ClassNearest is the combined "nearest empty room to my class" answer.
// CurrentRoom is "" when the class is unknown or has no room at all.
type ClassNearest struct {
	NearestResult
	Day         string `json:"day"`
	Time        string `json:"time"`
	ClassCode   string `json:"classCode"`
	CurrentRoom string `json:"currentRoom"`
}

// NearestRoomForClass resolves the class to its room and ranks the empty
// and warning rooms around it.
func (e *Engine) NearestRoomForClass(ctx context.Context, classCode, day, timeStr string) (ClassNearest, error) {
	set, err := e.source.LoadSchedules(ctx)
	if err != nil {
		return ClassNearest{}, err
	}

	resolved := ResolveClassToRoom(set, classCode, day, timeStr)
	out := ClassNearest{
		Day:       day,
		Time:      timeStr,
		ClassCode: resolved.ClassCode,
	}
	if resolved.Room == "" {
		out.Candidates = []models.Candidate{}
		return out, nil
	}

	free := FreeRoomsIn(set, Query{Day: day, Time: timeStr})
	out.NearestResult = FindNearestRoom(resolved.Room, free.Empty, free.Warning)
	out.CurrentRoom = resolved.Room
	return out, nil
}

// Snapshot precomputes the per-day, per-slot free-room lists for the
// configured slot grid.
func (e *Engine) Snapshot(ctx context.Context) (models.FreeRoomsSnapshot, error) {
	set, err := e.source.LoadSchedules(ctx)
	if err != nil {
		return models.FreeRoomsSnapshot{}, err
	}
	return BuildSnapshot(set, e.slots.Starts, e.now()), nil
}
