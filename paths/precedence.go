package paths

import (
	"cmp"
	"slices"

	"github.com/erraggy/oasgen/marker"
)

// ordered returns markers from the highest to the lowest precedence:
// method before class before group, deeper groups before shallower ones,
// and otherwise the order in which they are listed on the route.
func ordered(markers []marker.Declaration) []marker.Declaration {
	out := slices.Clone(markers)
	slices.SortStableFunc(out, func(a, b marker.Declaration) int {
		if c := cmp.Compare(b.Level, a.Level); c != 0 {
			return c
		}
		if a.Level == marker.LevelGroup {
			return cmp.Compare(b.Depth, a.Depth)
		}
		return 0
	})
	return out
}

// sameTier reports whether a and b share a precedence tier: the same
// level and, for group markers, the same depth.
func sameTier(a, b marker.Declaration) bool {
	return a.Level == b.Level && (a.Level != marker.LevelGroup || a.Depth == b.Depth)
}

// ofKind returns the markers of kind, preserving order.
func ofKind(markers []marker.Declaration, kind marker.Kind) []marker.Declaration {
	var out []marker.Declaration
	for _, m := range markers {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}
