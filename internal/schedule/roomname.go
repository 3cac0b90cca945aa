package schedule

import (
	"regexp"
	"strconv"
	"strings"

	"esprit-rooms-backend/internal/models"
)

// A room identifier is letters followed by digits, nothing else.
var roomNameRe = regexp.MustCompile(`^([A-Za-z]+)(\d+)$`)

// ParseRoomName decomposes a room identifier like "G308" into block "G",
// floor 3, room number 8. The first digit is the floor; the remaining
// digits form the room number (0 when the digit run has length 1). Names
// that do not match the pattern cannot be proximity-ranked and return
// ok=false.
func ParseRoomName(name string) (models.ParsedRoom, bool) {
	trimmed := strings.TrimSpace(name)
	m := roomNameRe.FindStringSubmatch(trimmed)
	if m == nil {
		return models.ParsedRoom{}, false
	}

	digits := m[2]
	floor := int(digits[0] - '0')
	roomNum := 0
	if len(digits) > 1 {
		roomNum, _ = strconv.Atoi(digits[1:])
	}

	return models.ParsedRoom{
		Raw:     trimmed,
		Block:   strings.ToUpper(m[1]),
		Floor:   floor,
		RoomNum: roomNum,
	}, true
}
