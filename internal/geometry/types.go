package geometry

import "math"

type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Coordinates are limited to the int32 range so that segment magnitudes and
// per-axis totals stay far from int overflow.
const (
	MinCoordinate = math.MinInt32
	MaxCoordinate = math.MaxInt32
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) InBounds() bool {
	return p.X >= MinCoordinate && p.X <= MaxCoordinate &&
		p.Y >= MinCoordinate && p.Y <= MaxCoordinate
}

// Reach is the largest step count that keeps an in-bounds p in bounds when
// moving in d.
func (p Position) Reach(d Direction) int {
	switch d {
	case North:
		return p.Y - MinCoordinate
	case South:
		return MaxCoordinate - p.Y
	case East:
		return MaxCoordinate - p.X
	case West:
		return p.X - MinCoordinate
	default:
		return 0
	}
}

type Command struct {
	Direction Direction `json:"direction"`
	Steps     int       `json:"steps"`
}

// Segment is an inclusive range [Lo, Hi] on a single row or column.
type Segment struct {
	Lo int
	Hi int
}
