package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/domain/model"
)

type notificationRepository struct {
	storage *Storage
}

type outboxRepository struct {
	storage *Storage
}

// --- NotificationRepository implementation ---

func (r *notificationRepository) Insert(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	const query = `INSERT INTO notifications (user_id, type, title, message, read)
                   VALUES ($1, $2, $3, $4, FALSE)
                   RETURNING id, created_at`
	created := *n
	created.Read = false
	err := r.storage.pool.QueryRow(ctx, query, n.UserID, n.Type, n.Title, n.Message).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	const query = `SELECT id, user_id, type, title, message, read, created_at
                   FROM notifications WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	const query = `UPDATE notifications SET read=TRUE WHERE id=$1 AND user_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OutboxRepository implementation ---

func (r *outboxRepository) Append(ctx context.Context, event *model.OutboxEvent) error {
	const query = `INSERT INTO outbox_events (kind, recipient_id, process_id, payload) VALUES ($1, $2, $3, $4)`
	_, err := r.storage.pool.Exec(ctx, query, event.Kind, event.RecipientID, event.ProcessID, event.Payload)
	return err
}

// redispatchAfter bounds how long a dispatched but unpublished event stays
// claimed. Only a relay that died mid-delivery leaves such events behind.
const redispatchAfter = time.Minute

func (r *outboxRepository) SelectBatchForDispatch(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	const query = `SELECT id, kind, recipient_id, process_id, payload, created_at
                   FROM outbox_events
                   WHERE published_at IS NULL
                     AND (dispatched_at IS NULL OR dispatched_at < NOW() - make_interval(secs => $2))
                   ORDER BY created_at
                   LIMIT $1
                   FOR UPDATE SKIP LOCKED`
	const claim = `UPDATE outbox_events SET dispatched_at=NOW() WHERE id = ANY($1)`

	var events []model.OutboxEvent
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, limit, redispatchAfter.Seconds())
		if err != nil {
			return err
		}
		defer rows.Close()

		ids := make([]int64, 0, limit)
		for rows.Next() {
			var ev model.OutboxEvent
			if err := rows.Scan(&ev.ID, &ev.Kind, &ev.RecipientID, &ev.ProcessID, &ev.Payload, &ev.CreatedAt); err != nil {
				return err
			}
			events = append(events, ev)
			ids = append(ids, ev.ID)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		// Claiming in the same transaction keeps a slow delivery from being
		// re-fetched by the next poll or by another instance.
		_, err = tx.Exec(ctx, claim, ids)
		return err
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *outboxRepository) MarkPublished(ctx context.Context, id int64) error {
	const query = `UPDATE outbox_events SET published_at=NOW() WHERE id=$1 AND published_at IS NULL`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
