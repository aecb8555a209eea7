package coverage

import (
	"slices"

	"github.com/Ko-stant/robot-path-service/internal/geometry"
)

// Line is the covered ranges of one row or column, sorted by Lo, pairwise
// disjoint and never sharing an endpoint.
type Line []geometry.Segment

// Insert returns the line with seg merged in. A new segment that bridges
// several existing ones collapses them all into a single entry.
func (l Line) Insert(seg geometry.Segment) Line {
	if len(l) == 0 {
		return Line{seg}
	}

	out := make(Line, 0, len(l)+1)
	placed := false
	for _, s := range l {
		switch {
		case placed:
			out = append(out, s)
		case seg.Overlaps(s):
			seg = seg.Merge(s)
		case seg.StartsBefore(s):
			out = append(out, seg, s)
			placed = true
		default:
			out = append(out, s)
		}
	}
	if !placed {
		out = append(out, seg)
	}
	return out
}

// Total is the number of points covered by the line.
func (l Line) Total() int {
	total := 0
	for _, s := range l {
		total += s.Magnitude()
	}
	return total
}

// Find returns the segment containing v, if any.
func (l Line) Find(v int) (geometry.Segment, bool) {
	i, found := slices.BinarySearchFunc(l, v, func(s geometry.Segment, v int) int {
		switch {
		case s.Hi < v:
			return -1
		case s.Lo > v:
			return 1
		}
		return 0
	})
	if !found {
		return geometry.Segment{}, false
	}
	return l[i], true
}

// LineIndex maps a fixed coordinate (y for rows, x for columns) to the line
// stored there.
type LineIndex map[int]Line

func (idx LineIndex) Insert(line int, seg geometry.Segment) {
	idx[line] = idx[line].Insert(seg)
}

// Lines returns the populated coordinates in ascending order.
func (idx LineIndex) Lines() []int {
	keys := make([]int, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (idx LineIndex) Total() int {
	total := 0
	for _, l := range idx {
		total += l.Total()
	}
	return total
}

// SegmentCount is the number of stored segments across all lines.
func (idx LineIndex) SegmentCount() int {
	n := 0
	for _, l := range idx {
		n += len(l)
	}
	return n
}
