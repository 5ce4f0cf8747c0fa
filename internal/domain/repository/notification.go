package repository

import (
	"context"

	"github.com/wassalha/wassalha/internal/domain/model"
)

// NotificationRepository describes persistence operations with notifications.
type NotificationRepository interface {
	Insert(ctx context.Context, n *model.Notification) (*model.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
}

// OutboxRepository describes the transactional event outbox drained by the relay.
type OutboxRepository interface {
	Append(ctx context.Context, event *model.OutboxEvent) error
	// SelectBatchForDispatch claims and returns unpublished events. A claimed
	// event is not served again until its claim expires, so concurrent polls
	// and slow deliveries do not double-dispatch.
	SelectBatchForDispatch(ctx context.Context, limit int) ([]model.OutboxEvent, error)
	MarkPublished(ctx context.Context, id int64) error
}
