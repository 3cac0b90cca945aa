package schedule

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// "09H:00" / "09H00" -> "09:00". The H separator is case-insensitive.
	hourSepRe = regexp.MustCompile(`(?i)(\d{1,2})H:?(\d{2})`)
	clockRe   = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	// A token counts as time-like when it holds a digit followed by H, or a
	// colon with two digits.
	timeTokenRe = regexp.MustCompile(`\dH|:\d{2}`)
)

// ParseTime converts "09H:00" or "9:00" into minutes since midnight. The
// second return is false when no time pattern is found.
func ParseTime(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	normalized := strings.TrimSpace(hourSepRe.ReplaceAllString(s, "$1:$2"))
	m := clockRe.FindStringSubmatch(normalized)
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes, true
}

// ParseRange converts a session time range like "09H:00 - 12H:15" into start
// and end minutes. Ranges normally split on a literal "-"; some exporter
// output uses irregular whitespace instead, so when the split does not yield
// exactly two parts the range is re-tokenized on whitespace and the first
// two time-like tokens are used. ok is false unless both bounds parse.
func ParseRange(s string) (start, end int, ok bool) {
	if s == "" {
		return 0, 0, false
	}

	if parts := strings.Split(s, "-"); len(parts) == 2 {
		return parsePair(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
	}

	var toks []string
	for _, t := range strings.Fields(s) {
		if timeTokenRe.MatchString(t) {
			toks = append(toks, t)
		}
	}
	if len(toks) < 2 {
		return 0, 0, false
	}
	return parsePair(toks[0], toks[1])
}

func parsePair(a, b string) (int, int, bool) {
	start, okA := ParseTime(a)
	end, okB := ParseTime(b)
	if !okA || !okB {
		return 0, 0, false
	}
	return start, end, true
}
