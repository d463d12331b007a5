package publisher

import (
	"context"
	"log/slog"
	"time"

	"github.com/fjod/swiftrail/internal/repository"
)

// OutboxPoller republishes order events whose first write failed.
type OutboxPoller struct {
	timeout   time.Duration
	eventTick time.Duration
	batchSize int
	repo      repository.OutboxRepository
	writer    MessageWriter
	log       *slog.Logger
}

func NewOutboxPoller(repo repository.OutboxRepository, writer MessageWriter, log *slog.Logger) *OutboxPoller {
	return &OutboxPoller{
		timeout:   5 * time.Second,
		eventTick: 5 * time.Second,
		batchSize: 100,
		repo:      repo,
		writer:    writer,
		log:       log.With("component", "outbox"),
	}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	eventTicker := time.NewTicker(p.eventTick)
	defer eventTicker.Stop()
	for {
		select {
		case <-eventTicker.C:
			p.processUnpublishedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// processUnpublishedEvents returns the number of events it published.
func (p *OutboxPoller) processUnpublishedEvents(ctx context.Context) int {
	fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	events, err := p.repo.GetUnprocessedEvents(fetchCtx, p.batchSize)
	if err != nil {
		p.log.ErrorContext(ctx, "failed to fetch outbox events", "error", err)
		return 0
	}

	published := 0
	for _, event := range events {
		if err := p.publish(ctx, event); err != nil {
			// Keep order per reference: later events wait for the next tick.
			p.log.WarnContext(ctx, "failed to publish outbox event", "event_id", event.ID, "error", err)
			return published
		}

		markCtx, cancel := context.WithTimeout(ctx, p.timeout)
		err := p.repo.MarkEventAsProcessed(markCtx, event.ID)
		cancel()
		if err != nil {
			p.log.ErrorContext(ctx, "failed to mark outbox event as processed", "event_id", event.ID, "error", err)
			continue
		}
		published++
	}
	if published > 0 {
		p.log.InfoContext(ctx, "outbox events published", "count", published)
	}
	return published
}

func (p *OutboxPoller) publish(ctx context.Context, event *repository.OutboxEvent) error {
	writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.writer.WriteMessages(writeCtx, message(event))
}
