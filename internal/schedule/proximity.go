package schedule

import (
	"sort"

	"esprit-rooms-backend/internal/models"
)

// warningPenalty is added to warning-room scores. It never changes which
// integer tier a candidate falls in but breaks every tie within a tier in
// favor of a confirmed-empty room.
const warningPenalty = 0.5

// maxCandidates caps the candidate list returned to callers.
const maxCandidates = 10

// SameBlockGroup reports whether two blocks belong to the same physical
// group. I, J and K are adjacent buildings and count as one group.
func SameBlockGroup(a, b string) bool {
	if a == b {
		return true
	}
	return isIJK(a) && isIJK(b)
}

func isIJK(block string) bool {
	return block == "I" || block == "J" || block == "K"
}

// ProximityScore scores a candidate room relative to the origin room; lower
// is better. Tiers, best to worst:
//
//	same block group, same floor      roomDist
//	same block group, one floor down  1000 + roomDist
//	same block group, one floor up    2000 + roomDist
//	same block group, other floors    3000 + 100*floorDist + roomDist
//	different block group             10000 + 100*floorDist + roomDist
//
// A floor below outranks a floor above at equal distance: stairs down are
// easier than stairs up.
func ProximityScore(origin, candidate models.ParsedRoom) float64 {
	roomDist := abs(origin.RoomNum - candidate.RoomNum)

	if !SameBlockGroup(origin.Block, candidate.Block) {
		return float64(10000 + 100*abs(origin.Floor-candidate.Floor) + roomDist)
	}

	switch diff := candidate.Floor - origin.Floor; {
	case diff == 0:
		return float64(roomDist)
	case diff == -1:
		return float64(1000 + roomDist)
	case diff == 1:
		return float64(2000 + roomDist)
	default:
		return float64(3000 + 100*abs(diff) + roomDist)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// NearestResult is the outcome of a proximity ranking. Nearest is "" when
// no candidate could be ranked.
type NearestResult struct {
	Nearest    string             `json:"nearest"`
	IsWarning  bool               `json:"isWarning"`
	Candidates []models.Candidate `json:"allCandidates"`
}

// FindNearestRoom ranks the empty and warning rooms by proximity to the
// origin room and returns the winner plus the top candidates. Unparseable
// room names, the origin included, silently drop out of candidacy. The sort
// is stable, so ties keep input order: empty rooms before warning rooms,
// each in dataset room order.
func FindNearestRoom(originRoom string, emptyRooms, warningRooms []string) NearestResult {
	origin, ok := ParseRoomName(originRoom)
	if !ok {
		return NearestResult{Candidates: []models.Candidate{}}
	}

	candidates := make([]models.Candidate, 0, len(emptyRooms)+len(warningRooms))
	for _, r := range emptyRooms {
		parsed, ok := ParseRoomName(r)
		if !ok {
			continue
		}
		candidates = append(candidates, models.Candidate{
			Room:  r,
			Score: ProximityScore(origin, parsed),
		})
	}
	for _, r := range warningRooms {
		parsed, ok := ParseRoomName(r)
		if !ok {
			continue
		}
		candidates = append(candidates, models.Candidate{
			Room:      r,
			IsWarning: true,
			Score:     ProximityScore(origin, parsed) + warningPenalty,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score < candidates[j].Score
	})

	res := NearestResult{Candidates: candidates}
	if len(candidates) > maxCandidates {
		res.Candidates = candidates[:maxCandidates]
	}
	if len(candidates) > 0 {
		res.Nearest = candidates[0].Room
		res.IsWarning = candidates[0].IsWarning
	}
	return res
}
