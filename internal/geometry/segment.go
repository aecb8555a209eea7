package geometry

// NormalizeSegment orders two coordinates on the same line so that Lo <= Hi.
func NormalizeSegment(a, b int) Segment {
	if a <= b {
		return Segment{Lo: a, Hi: b}
	}
	return Segment{Lo: b, Hi: a}
}

// SegmentBetween classifies the move from -> to and returns the fixed line
// coordinate together with the normalized covered range. A zero-length move
// is horizontal: both endpoints share y.
func SegmentBetween(from, to Position) (Orientation, int, Segment) {
	if from.Y == to.Y {
		return Horizontal, from.Y, NormalizeSegment(from.X, to.X)
	}
	return Vertical, from.X, NormalizeSegment(from.Y, to.Y)
}

// Overlaps reports whether s and o share at least one value. Touching at a
// boundary counts; a gap of any size does not.
func (s Segment) Overlaps(o Segment) bool {
	return s.Lo <= o.Hi && o.Lo <= s.Hi
}

// StartsBefore reports whether s ends strictly before o begins.
func (s Segment) StartsBefore(o Segment) bool {
	return s.Hi < o.Lo
}

func (s Segment) Merge(o Segment) Segment {
	return Segment{Lo: min(s.Lo, o.Lo), Hi: max(s.Hi, o.Hi)}
}

func (s Segment) Contains(v int) bool {
	return s.Lo <= v && v <= s.Hi
}

// Magnitude is the number of integer points covered by s.
func (s Segment) Magnitude() int {
	return s.Hi - s.Lo + 1
}

// MagnitudeOf is Magnitude with a nil segment counting as empty.
func MagnitudeOf(s *Segment) int {
	if s == nil {
		return 0
	}
	return s.Magnitude()
}
