package coverage

import (
	"sort"

	"github.com/Ko-stant/robot-path-service/internal/geometry"
)

// CountUnique returns the number of distinct points covered by the state.
//
// Row and column totals double count every point lying on both a row segment
// and a column segment. Crossings are found per column segment by binary
// searching the sorted row coordinates it spans, then the row's own segments.
func CountUnique(s *ExecutionState) int {
	return s.Horizontal.Total() + s.Vertical.Total() - countCrossings(s.Horizontal, s.Vertical)
}

func countCrossings(rows, cols LineIndex) int {
	rowKeys := rows.Lines()
	crossings := 0
	for col, line := range cols {
		for _, span := range line {
			first := sort.SearchInts(rowKeys, span.Lo)
			for _, row := range rowKeys[first:] {
				if row > span.Hi {
					break
				}
				if _, ok := rows[row].Find(col); ok {
					crossings++
				}
			}
		}
	}
	return crossings
}

type indexedSegment struct {
	line int
	seg  geometry.Segment
}

func flatten(idx LineIndex) []indexedSegment {
	out := make([]indexedSegment, 0, idx.SegmentCount())
	for line, l := range idx {
		for _, seg := range l {
			out = append(out, indexedSegment{line: line, seg: seg})
		}
	}
	return out
}

// CountUniqueNaive is CountUnique with a full cross product of row and column
// segments. It is quadratic and kept as a reference.
func CountUniqueNaive(s *ExecutionState) int {
	rows := flatten(s.Horizontal)
	cols := flatten(s.Vertical)

	crossings := 0
	for _, c := range cols {
		for _, r := range rows {
			if c.seg.Contains(r.line) && r.seg.Contains(c.line) {
				crossings++
			}
		}
	}
	return s.Horizontal.Total() + s.Vertical.Total() - crossings
}
