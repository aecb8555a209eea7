package geometry

import (
	"fmt"
	"strings"
)

// Direction is one of the four compass directions a command can move in.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// ParseDirection is the only place raw input becomes a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north":
		return North, nil
	case "east":
		return East, nil
	case "south":
		return South, nil
	case "west":
		return West, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Delta returns the unit offset for one step. North decreases y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Step applies the command to p. Both p and the resulting position must lie
// within [MinCoordinate, MaxCoordinate].
func (p Position) Step(c Command) (Position, error) {
	if c.Steps < 0 {
		return p, fmt.Errorf("%w: %d", ErrInvalidStep, c.Steps)
	}
	if !c.Direction.IsValid() {
		return p, fmt.Errorf("%w: %d", ErrInvalidDirection, int(c.Direction))
	}
	if !p.InBounds() {
		return p, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, p.X, p.Y)
	}
	if c.Steps > p.Reach(c.Direction) {
		return p, fmt.Errorf("%w: %s %d from (%d, %d) leaves the coordinate range", ErrInvalidStep, c.Direction, c.Steps, p.X, p.Y)
	}
	dx, dy := c.Direction.Delta()
	return Position{X: p.X + dx*c.Steps, Y: p.Y + dy*c.Steps}, nil
}
