package coverage

import (
	"fmt"

	"github.com/Ko-stant/robot-path-service/internal/geometry"
)

// ExecutionState is the ledger built during one evaluation plus the current
// position of the walk.
type ExecutionState struct {
	Horizontal LineIndex
	Vertical   LineIndex
	Position   geometry.Position
}

func NewExecutionState(start geometry.Position) *ExecutionState {
	return &ExecutionState{
		Horizontal: LineIndex{},
		Vertical:   LineIndex{},
		Position:   start,
	}
}

// Apply folds one command into the ledger and advances the position. On error
// the state is left untouched.
func (s *ExecutionState) Apply(cmd geometry.Command) error {
	next, err := s.Position.Step(cmd)
	if err != nil {
		return err
	}

	orientation, line, seg := geometry.SegmentBetween(s.Position, next)
	switch orientation {
	case geometry.Horizontal:
		s.Horizontal.Insert(line, seg)
	case geometry.Vertical:
		s.Vertical.Insert(line, seg)
	}
	s.Position = next
	return nil
}

// Reduce applies commands in order starting at start.
func Reduce(start geometry.Position, commands []geometry.Command) (*ExecutionState, error) {
	state := NewExecutionState(start)
	for i, cmd := range commands {
		if err := state.Apply(cmd); err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
	}
	return state, nil
}
