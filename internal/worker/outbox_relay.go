package worker

import (
	"context"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/logging"
	"storefront/internal/repository"

	"github.com/labstack/gommon/log"
)

// Publisher hands one event to the broker.
type Publisher interface {
	Publish(ctx context.Context, key string, eventType string, value []byte) error
}

// PublishObserver is told about every publish attempt.
type PublishObserver interface {
	OutboxPublished(ok bool)
}

// OutboxRelay moves committed outbox rows to the broker. Delivery is at least
// once: a crash between Publish and MarkSent resends the row, and consumers
// dedupe on event_id.
type OutboxRelay struct {
	outbox    repository.OutboxRepository
	publisher Publisher
	observer  PublishObserver
	logger    *log.Logger
	interval  time.Duration
	batchSize int
}

func NewOutboxRelay(
	outbox repository.OutboxRepository,
	publisher Publisher,
	observer PublishObserver,
	logger *log.Logger,
	interval time.Duration,
	batchSize int,
) *OutboxRelay {
	return &OutboxRelay{
		outbox:    outbox,
		publisher: publisher,
		observer:  observer,
		logger:    logger,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run polls until ctx is cancelled.
func (r *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, err := r.RelayOnce(ctx); err != nil && ctx.Err() == nil {
			logging.Error(r.logger, logging.Fields{Step: "outbox_fetch", Error: err})
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RelayOnce publishes one batch in id order and returns how many rows were
// marked sent. It stops at the first publish failure so later events of the
// same order are not sent ahead of an earlier one.
func (r *OutboxRelay) RelayOnce(ctx context.Context) (int, error) {
	events, err := r.outbox.FetchPending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, ev := range events {
		if err := r.publish(ctx, ev); err != nil {
			r.observer.OutboxPublished(false)
			logging.Warn(r.logger, logging.Fields{Step: "outbox_publish", Status: ev.Type, Message: ev.EventID, Error: err})
			return sent, nil
		}
		r.observer.OutboxPublished(true)

		if err := r.outbox.MarkSent(ctx, ev.ID); err != nil {
			logging.Error(r.logger, logging.Fields{Step: "outbox_mark_sent", Message: ev.EventID, Error: err})
			return sent, nil
		}
		sent++
	}
	return sent, nil
}

func (r *OutboxRelay) publish(ctx context.Context, ev model.OutboxEvent) error {
	return r.publisher.Publish(ctx, ev.Key, ev.Type, []byte(ev.Payload))
}
