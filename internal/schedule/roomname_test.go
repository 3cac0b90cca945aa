package schedule

import "testing"

func TestParseRoomName(t *testing.T) {
	cases := []struct {
		in      string
		block   string
		floor   int
		roomNum int
	}{
		{"G308", "G", 3, 8},
		{"A12", "A", 1, 2},
		{"M205", "M", 2, 5},
		{"A1", "A", 1, 0},
		{"g308", "G", 3, 8},
		{" G308 ", "G", 3, 8},
		{"IJ42", "IJ", 4, 2},
	}

	for _, tc := range cases {
		got, ok := ParseRoomName(tc.in)
		if !ok {
			t.Errorf("ParseRoomName(%q) not ok", tc.in)
			continue
		}
		if got.Block != tc.block || got.Floor != tc.floor || got.RoomNum != tc.roomNum {
			t.Errorf("ParseRoomName(%q) = %+v, want block %q floor %d roomNum %d",
				tc.in, got, tc.block, tc.floor, tc.roomNum)
		}
	}
}

func TestParseRoomNameRejects(t *testing.T) {
	for _, in := range []string{"", "bad-name", "308", "G", "G30 8", "En Ligne", "G308b"} {
		if _, ok := ParseRoomName(in); ok {
			t.Errorf("ParseRoomName(%q) ok = true, want false", in)
		}
	}
}
