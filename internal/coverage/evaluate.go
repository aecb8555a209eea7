package coverage

import "github.com/Ko-stant/robot-path-service/internal/geometry"

// Evaluate walks commands from start and returns the number of unique points
// visited. The start point counts once any command has been applied; an empty
// command list covers nothing.
func Evaluate(start geometry.Position, commands []geometry.Command) (int, error) {
	count, _, err := EvaluateState(start, commands)
	return count, err
}

// EvaluateState is Evaluate that also returns the final ledger.
func EvaluateState(start geometry.Position, commands []geometry.Command) (int, *ExecutionState, error) {
	state, err := Reduce(start, commands)
	if err != nil {
		return 0, nil, err
	}
	return CountUnique(state), state, nil
}
