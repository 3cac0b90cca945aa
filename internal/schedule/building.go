package schedule

import "strings"

// NormalizeBloc merges the adjacent I, J and K buildings into the single
// "IJK" group; every other bloc is simply uppercased.
func NormalizeBloc(bloc string) string {
	upper := strings.ToUpper(bloc)
	if upper == "I" || upper == "J" || upper == "K" {
		return "IJK"
	}
	return upper
}

// FilterByBuilding keeps the rooms in the given building. The IJK group is
// matched case-insensitively via normalization; every other building is a
// case-sensitive prefix match on the caller's literal token. The asymmetry
// is long-standing observable behavior and is kept as is.
func FilterByBuilding(rooms []string, building string) []string {
	out := make([]string, 0, len(rooms))
	if NormalizeBloc(building) == "IJK" {
		for _, r := range rooms {
			if strings.HasPrefix(r, "I") || strings.HasPrefix(r, "J") || strings.HasPrefix(r, "K") {
				out = append(out, r)
			}
		}
		return out
	}
	for _, r := range rooms {
		if strings.HasPrefix(r, building) {
			out = append(out, r)
		}
	}
	return out
}
