// Package events moves document changes from the verification endpoint to the
// notifier, either over Kafka or in-process.
package events

import (
	"context"
	"errors"

	"realtyapi/internal/model"
)

// Handler processes one document change. A non-nil error asks the transport to
// redeliver.
type Handler func(ctx context.Context, change model.DocumentChange) error

// Publisher emits document changes.
type Publisher interface {
	Publish(ctx context.Context, change model.DocumentChange) error
}

var ErrNilHandler = errors.New("events: handler is nil")

// DirectPublisher hands changes straight to a handler in the calling goroutine.
// It is used when no brokers are configured.
type DirectPublisher struct {
	handle Handler
}

// NewDirectPublisher returns a DirectPublisher calling h.
func NewDirectPublisher(h Handler) *DirectPublisher {
	return &DirectPublisher{handle: h}
}

func (p *DirectPublisher) Publish(ctx context.Context, change model.DocumentChange) error {
	if p.handle == nil {
		return ErrNilHandler
	}
	return p.handle(ctx, change)
}

var (
	_ Publisher = (*DirectPublisher)(nil)
	_ Publisher = (*KafkaPublisher)(nil)
)
