package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/wassalha/wassalha/internal/domain/model"
	"github.com/wassalha/wassalha/internal/observability"
)

// RelayFacade exposes the subset of application functionality required by the relay.
type RelayFacade interface {
	EventsForDispatch(ctx context.Context, limit int) ([]model.OutboxEvent, error)
	// DeliverEvent fans one event out to the realtime hub, the notification
	// store and the broker. Delivery must be safe to retry.
	DeliverEvent(ctx context.Context, event model.OutboxEvent) error
	MarkEventPublished(ctx context.Context, eventID int64) error
}

// EventRelay drains the outbox and fans events out concurrently. Events that
// fail to deliver stay unpublished and are retried once their dispatch claim
// expires.
type EventRelay struct {
	facade       RelayFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	metrics      *observability.Metrics
	logger       *slog.Logger

	jobs   chan model.OutboxEvent
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewEventRelay constructs the relay worker pool.
func NewEventRelay(facade RelayFacade, pollInterval time.Duration, batchSize, workers int, metrics *observability.Metrics, logger *slog.Logger) *EventRelay {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &EventRelay{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		metrics:      metrics,
		logger:       logger,
		jobs:         make(chan model.OutboxEvent, batchSize*workers),
	}
}

// Start launches background processing.
func (r *EventRelay) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *EventRelay) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *EventRelay) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *EventRelay) fetchAndDispatch(ctx context.Context) {
	events, err := r.facade.EventsForDispatch(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch events for dispatch failed", slog.String("error", err.Error()))
		return
	}
	for _, event := range events {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- event:
		}
	}
}

func (r *EventRelay) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handleEvent(ctx, event)
		}
	}
}

func (r *EventRelay) handleEvent(ctx context.Context, event model.OutboxEvent) {
	if err := r.facade.DeliverEvent(ctx, event); err != nil {
		r.logger.Error("deliver event failed",
			slog.Int64("event_id", event.ID),
			slog.String("kind", string(event.Kind)),
			slog.String("error", err.Error()))
		if r.metrics != nil {
			r.metrics.RelayFailed()
		}
		return
	}
	if err := r.facade.MarkEventPublished(ctx, event.ID); err != nil {
		r.logger.Error("mark event published failed",
			slog.Int64("event_id", event.ID),
			slog.String("error", err.Error()))
		if r.metrics != nil {
			r.metrics.RelayFailed()
		}
		return
	}
	if r.metrics != nil {
		r.metrics.RelayPublished()
	}
}
