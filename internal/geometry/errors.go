package geometry

import "errors"

var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidStep      = errors.New("invalid step count")
	ErrOutOfBounds      = errors.New("position outside coordinate range")
)
