package usecase

import (
	"context"
	"log/slog"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/domain/model"
	"github.com/wassalha/wassalha/internal/domain/repository"
)

// NotificationCache is a read-through cache over a user's notification list.
// A nil-safe noop implementation stands in when no cache backend is configured.
type NotificationCache interface {
	Get(ctx context.Context, userID int64) ([]model.Notification, bool)
	Set(ctx context.Context, userID int64, notifications []model.Notification)
	Invalidate(ctx context.Context, userID int64)
}

// NotificationUseCase serves the client-side notification store: the
// server list is authoritative, the cache only fronts it.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
	cache         NotificationCache
	logger        *slog.Logger
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(notifications repository.NotificationRepository, cache NotificationCache, logger *slog.Logger) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications, cache: cache, logger: logger}
}

// List returns a user's notifications, newest first.
func (u *NotificationUseCase) List(ctx context.Context, userID int64) ([]model.Notification, error) {
	if userID <= 0 {
		return nil, domainErrors.ErrMissingField
	}

	if cached, ok := u.cache.Get(ctx, userID); ok {
		return cached, nil
	}

	notifications, err := u.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.cache.Set(ctx, userID, notifications)
	return notifications, nil
}

// MarkRead flags one notification as read for its owner.
func (u *NotificationUseCase) MarkRead(ctx context.Context, id, userID int64) error {
	if id <= 0 || userID <= 0 {
		return domainErrors.ErrMissingField
	}
	if err := u.notifications.MarkRead(ctx, id, userID); err != nil {
		return err
	}
	u.cache.Invalidate(ctx, userID)
	return nil
}

// RecordFromEvent synthesizes the notification for an outbox event.
// Broadcast-only kinds produce none.
func (u *NotificationUseCase) RecordFromEvent(ctx context.Context, event model.OutboxEvent) (*model.Notification, error) {
	title, message, ok := model.NotificationText(event.Kind)
	if !ok || event.RecipientID <= 0 {
		return nil, nil
	}

	inserted, err := u.notifications.Insert(ctx, &model.Notification{
		UserID:  event.RecipientID,
		Type:    event.Kind,
		Title:   title,
		Message: message,
	})
	if err != nil {
		return nil, err
	}

	u.cache.Invalidate(ctx, event.RecipientID)
	return inserted, nil
}
