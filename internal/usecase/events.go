package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/wassalha/wassalha/internal/domain/model"
	"github.com/wassalha/wassalha/internal/domain/repository"
)

// emitEvent appends a lifecycle event to the outbox. Fan-out failures must
// not fail the state change that already happened, so callers treat the
// returned error as advisory.
func emitEvent(ctx context.Context, outbox repository.OutboxRepository, kind model.EventKind, recipientID, processID int64, payload any) error {
	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = encoded
	}
	return outbox.Append(ctx, &model.OutboxEvent{
		Kind:        kind,
		RecipientID: recipientID,
		ProcessID:   processID,
		Payload:     body,
		CreatedAt:   time.Now(),
	})
}
