package main

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/Ko-stant/robot-path-service/internal/protocol"
	"github.com/Ko-stant/robot-path-service/internal/ws"
)

// BroadcasterImpl implements Broadcaster using WebSocket hub
type BroadcasterImpl struct {
	hub      *ws.Hub
	sequence SequenceGenerator
	logger   Logger
}

func NewBroadcaster(hub *ws.Hub, sequence SequenceGenerator, logger Logger) *BroadcasterImpl {
	return &BroadcasterImpl{
		hub:      hub,
		sequence: sequence,
		logger:   logger,
	}
}

func (b *BroadcasterImpl) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	envelope := protocol.PatchEnvelope{
		Sequence: b.sequence.Next(),
		Type:     eventType,
		Payload:  payload,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		b.logger.Error("failed to marshal event", "type", eventType, "err", err)
		return
	}
	delivered := b.hub.Broadcast(ctx, data)
	b.logger.Info("broadcast", "type", eventType, "seq", envelope.Sequence, "subscribers", delivered)
}

// SequenceGeneratorImpl implements SequenceGenerator using atomic counter
type SequenceGeneratorImpl struct {
	counter atomic.Uint64
}

func NewSequenceGenerator() *SequenceGeneratorImpl {
	return &SequenceGeneratorImpl{}
}

func (sg *SequenceGeneratorImpl) Next() uint64 {
	return sg.counter.Add(1)
}

func (sg *SequenceGeneratorImpl) Current() uint64 {
	return sg.counter.Load()
}
