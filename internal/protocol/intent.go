package protocol

import (
	"fmt"

	"github.com/Ko-stant/robot-path-service/internal/geometry"
)

type RequestEnterPath struct {
	Start    geometry.Position `json:"start"`
	Commands []RawCommand      `json:"commands"`
}

// RawCommand keeps the direction as sent so that an unknown value is reported
// against the command that carried it.
type RawCommand struct {
	Direction string `json:"direction"`
	Steps     int    `json:"steps"`
}

// ParseCommands converts the request into engine commands.
func (r RequestEnterPath) ParseCommands() ([]geometry.Command, error) {
	commands := make([]geometry.Command, len(r.Commands))
	for i, raw := range r.Commands {
		dir, err := geometry.ParseDirection(raw.Direction)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		if raw.Steps < 0 {
			return nil, fmt.Errorf("command %d: %w: %d", i, geometry.ErrInvalidStep, raw.Steps)
		}
		commands[i] = geometry.Command{Direction: dir, Steps: raw.Steps}
	}
	return commands, nil
}
