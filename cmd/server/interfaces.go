package main

import (
	"context"

	"github.com/Ko-stant/robot-path-service/internal/protocol"
)

// Broadcaster interface for WebSocket communication
type Broadcaster interface {
	BroadcastEvent(ctx context.Context, eventType string, payload any)
}

// Logger interface for logging abstraction, satisfied by *slog.Logger
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SequenceGenerator interface for sequence number generation
type SequenceGenerator interface {
	Next() uint64
}

// PathEngine evaluates enter-path requests and records the outcome
type PathEngine interface {
	Execute(ctx context.Context, req protocol.RequestEnterPath) (*ExecutionResult, error)
}
