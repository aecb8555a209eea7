package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Ko-stant/robot-path-service/internal/coverage"
	"github.com/Ko-stant/robot-path-service/internal/geometry"
	"github.com/Ko-stant/robot-path-service/internal/protocol"
	"github.com/Ko-stant/robot-path-service/internal/store"
)

// ExecutionResult contains the stored record of one evaluation
type ExecutionResult struct {
	Record        protocol.ExecutionRecord
	FinalPosition geometry.Position
}

// PathEngineImpl implements the PathEngine interface
type PathEngineImpl struct {
	store       store.Store
	metrics     *PerformanceMetrics
	logger      Logger
	maxCommands int
}

// NewPathEngine creates a new path engine with dependencies. maxCommands <= 0
// disables the command limit.
func NewPathEngine(st store.Store, metrics *PerformanceMetrics, logger Logger, maxCommands int) *PathEngineImpl {
	return &PathEngineImpl{
		store:       st,
		metrics:     metrics,
		logger:      logger,
		maxCommands: maxCommands,
	}
}

func (e *PathEngineImpl) Execute(ctx context.Context, req protocol.RequestEnterPath) (*ExecutionResult, error) {
	if e.maxCommands > 0 && len(req.Commands) > e.maxCommands {
		return nil, fmt.Errorf("%w: %d exceeds limit of %d", ErrTooManyCommands, len(req.Commands), e.maxCommands)
	}
	commands, err := req.ParseCommands()
	if err != nil {
		return nil, err
	}

	result, final, elapsed, err := evaluateTimed(req.Start, commands)
	if err != nil {
		return nil, err
	}
	e.metrics.TrackExecution(len(commands), elapsed)

	id, err := e.store.Put(ctx, store.NewRecord(len(commands), result, elapsed))
	if err != nil {
		return nil, fmt.Errorf("store execution: %w", err)
	}
	rec, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load execution %s: %w", id, err)
	}

	e.logger.Info("execution recorded",
		"id", rec.ID, "commands", rec.Commands, "result", rec.Result, "duration", elapsed)

	return &ExecutionResult{Record: toProtocolRecord(rec), FinalPosition: final}, nil
}

// evaluateTimed runs one evaluation and measures it
func evaluateTimed(start geometry.Position, commands []geometry.Command) (int, geometry.Position, time.Duration, error) {
	var final geometry.Position
	result, elapsed, err := timed(func() (int, error) {
		count, state, err := coverage.EvaluateState(start, commands)
		if err != nil {
			return 0, err
		}
		final = state.Position
		return count, nil
	})
	return result, final, elapsed, err
}

func timed[T any](fn func() (T, error)) (T, time.Duration, error) {
	start := time.Now()
	v, err := fn()
	return v, time.Since(start), err
}

func toProtocolRecord(rec store.Record) protocol.ExecutionRecord {
	return protocol.ExecutionRecord{
		ID:        rec.ID.String(),
		Timestamp: rec.Timestamp,
		Commands:  rec.Commands,
		Result:    rec.Result,
		Duration:  rec.Duration.Seconds(),
	}
}

func toProtocolRecords(recs []store.Record) []protocol.ExecutionRecord {
	out := make([]protocol.ExecutionRecord, len(recs))
	for i, rec := range recs {
		out[i] = toProtocolRecord(rec)
	}
	return out
}
