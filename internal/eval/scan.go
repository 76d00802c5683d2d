package eval

import (
	"cmp"
	"slices"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
)

// #region scan

// Scan collects every part with an operation, in wedge position order and
// innermost part first within a wedge.
func Scan(wedges []board.Wedge) []Entry {
	var entries []Entry
	for _, w := range wedges {
		for _, kind := range board.PartKinds {
			if w.Parts[kind].Active() {
				entries = append(entries, Entry{Wedge: w, Kind: kind})
			}
		}
	}
	return entries
}

// #endregion scan

// #region group

// Group buckets entries by ring distance, innermost ring first. The sort is
// stable so each ring keeps the clockwise order of the scan.
func Group(entries []Entry) []Ring {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return cmp.Compare(a.RingDistance(), b.RingDistance())
	})

	var rings []Ring
	for _, e := range sorted {
		if n := len(rings); n == 0 || rings[n-1].Distance != e.RingDistance() {
			rings = append(rings, Ring{Distance: e.RingDistance()})
		}
		last := &rings[len(rings)-1]
		last.Entries = append(last.Entries, e)
	}
	return rings
}

// #endregion group
