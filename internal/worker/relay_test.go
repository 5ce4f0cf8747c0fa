package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wassalha/wassalha/internal/domain/model"
	testhelpers "github.com/wassalha/wassalha/internal/test"
)

func TestNewEventRelayDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	relay := NewEventRelay(&testhelpers.RelayFacadeStub{}, time.Second, 0, 0, nil, logger)
	if relay.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", relay.batchSize)
	}
	if relay.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", relay.workers)
	}
}

func TestEventRelayPublishesEvents(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.RelayFacadeStub{Events: [][]model.OutboxEvent{{{ID: 1, Kind: model.EventOfferMade, RecipientID: 2}}}}
	relay := NewEventRelay(facade, 10*time.Millisecond, 1, 1, nil, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	relay.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		published := len(facade.Published) > 0
		facade.Unlock()
		if published {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for event dispatch")
		case <-time.After(10 * time.Millisecond):
		}
	}

	relay.Stop()
	facade.Lock()
	defer facade.Unlock()
	if len(facade.Delivered) == 0 {
		t.Fatal("expected event delivery")
	}
	if facade.Delivered[0].Kind != model.EventOfferMade {
		t.Fatalf("expected offer made event, got %v", facade.Delivered[0].Kind)
	}
	if facade.Published[0] != 1 {
		t.Fatalf("expected event 1 marked published, got %d", facade.Published[0])
	}
}

func TestEventRelayRetriesFailedDelivery(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	attempts := int32(0)
	facade := &testhelpers.RelayFacadeStub{
		Events: [][]model.OutboxEvent{{{ID: 1, Kind: model.EventOfferAccepted}}, {{ID: 1, Kind: model.EventOfferAccepted}}},
	}
	facade.DeliverFn = func(ctx context.Context, event model.OutboxEvent) error {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return errors.New("broker unavailable")
		}
		facade.Lock()
		facade.Delivered = append(facade.Delivered, event)
		facade.Unlock()
		return nil
	}

	relay := NewEventRelay(facade, 5*time.Millisecond, 1, 1, nil, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	relay.Start(ctx)

	deadline := time.After(time.Second)
	for {
		facade.Lock()
		if len(facade.Published) > 0 {
			facade.Unlock()
			break
		}
		facade.Unlock()
		select {
		case <-deadline:
			t.Fatal("timeout waiting for retry")
		case <-time.After(10 * time.Millisecond):
		}
	}
	relay.Stop()

	if atomic.LoadInt32(&attempts) < 2 {
		t.Fatalf("expected a retried delivery, got %d attempts", attempts)
	}
}

func TestEventRelayFailedMarkLeavesEventUnpublished(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.RelayFacadeStub{
		Events: [][]model.OutboxEvent{{{ID: 5, Kind: model.EventOfferRejected}}},
		MarkFn: func(ctx context.Context, eventID int64) error {
			return errors.New("storage unavailable")
		},
	}

	relay := NewEventRelay(facade, 5*time.Millisecond, 1, 1, nil, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	relay.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		delivered := len(facade.Delivered) > 0
		facade.Unlock()
		if delivered {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for delivery")
		case <-time.After(10 * time.Millisecond):
		}
	}
	relay.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Published) != 0 {
		t.Fatalf("expected no published marks, got %v", facade.Published)
	}
}

func TestEventRelayStopBeforeStart(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	relay := NewEventRelay(&testhelpers.RelayFacadeStub{}, time.Second, 1, 1, nil, logger)
	relay.Stop()
}
