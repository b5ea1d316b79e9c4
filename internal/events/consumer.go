package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"

	"realtyapi/internal/config"
	"realtyapi/internal/logger"
	"realtyapi/internal/model"
)

const (
	defaultMaxAttempts = 3
	defaultBackoff     = 500 * time.Millisecond
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer feeds document changes from a consumer group to a Handler.
// A message is committed once the handler succeeds, is given up on after
// maxAttempts, or cannot be decoded.
type Consumer struct {
	reader      messageReader
	handle      Handler
	maxAttempts int
	backoff     time.Duration
}

// NewConsumer joins cfg.GroupID on cfg.DocumentTopic.
func NewConsumer(cfg config.KafkaConfig, h Handler) (*Consumer, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	if strings.TrimSpace(cfg.DocumentTopic) == "" {
		return nil, errors.New("kafka: document topic must not be empty")
	}
	if strings.TrimSpace(cfg.GroupID) == "" {
		return nil, errors.New("kafka: consumer group must not be empty")
	}
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.DocumentTopic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})
	return newConsumer(r, h), nil
}

func newConsumer(r messageReader, h Handler) *Consumer {
	return &Consumer{reader: r, handle: h, maxAttempts: defaultMaxAttempts, backoff: defaultBackoff}
}

// Run consumes until ctx is cancelled or the reader is closed.
func (c *Consumer) Run(ctx context.Context) error {
	logger.Info(ctx, "document change consumer started")
	defer logger.Info(ctx, "document change consumer stopped")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, kafka.ErrGroupClosed) {
				return nil
			}
			logger.Error(ctx, "document change fetch failed", "error", err)
			if !sleep(ctx, c.backoff) {
				return nil
			}
			continue
		}

		c.process(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			logger.Error(ctx, "document change commit failed", "offset", msg.Offset, "error", err)
		}
	}
}

// Close leaves the consumer group.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

func (c *Consumer) process(ctx context.Context, msg kafka.Message) {
	var change model.DocumentChange
	if err := json.Unmarshal(msg.Value, &change); err != nil {
		logger.Warn(ctx, "undecodable document change skipped", "offset", msg.Offset, "error", err)
		return
	}
	ctx = otel.GetTextMapPropagator().Extract(ctx, headerCarrier{msg: &msg})

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		err := c.safeHandle(ctx, change)
		if err == nil {
			return
		}
		logger.Warn(ctx, "document change handler failed",
			"doc_id", change.DocID,
			"attempt", attempt,
			"error", err,
		)
		if attempt == c.maxAttempts || !sleep(ctx, c.backoff*time.Duration(attempt)) {
			break
		}
	}
	if ctx.Err() != nil {
		return
	}
	logger.Error(ctx, "document change dropped after retries", "doc_id", change.DocID, "offset", msg.Offset)
}

func (c *Consumer) safeHandle(ctx context.Context, change model.DocumentChange) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return c.handle(ctx, change)
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
