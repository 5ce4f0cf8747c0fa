package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/domain/model"
)

type requestRepository struct {
	storage *Storage
}

type offerRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type processRepository struct {
	storage *Storage
}

type pickupRepository struct {
	storage *Storage
}

// --- RequestRepository implementation ---

func (r *requestRepository) Create(ctx context.Context, req *model.Request) (*model.Request, error) {
	const query = `INSERT INTO requests (user_id, goods_name, quantity, origin, destination, status)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at, updated_at`
	created := *req
	created.Status = model.RequestStatusPending
	err := r.storage.pool.QueryRow(ctx, query,
		req.UserID, req.GoodsName, req.Quantity, req.Origin, req.Destination, created.Status,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*model.Request, error) {
	const query = `SELECT id, user_id, goods_name, quantity, origin, destination, status, order_id, created_at, updated_at
                   FROM requests WHERE id=$1`
	var req model.Request
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.UserID, &req.GoodsName, &req.Quantity, &req.Origin, &req.Destination,
		&req.Status, &req.OrderID, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) ListOfferable(ctx context.Context) ([]model.Request, error) {
	const query = `SELECT r.id, r.user_id, r.goods_name, r.quantity, r.origin, r.destination, r.status, r.order_id, r.created_at, r.updated_at
                   FROM requests r
                   LEFT JOIN orders o ON o.id = r.order_id AND o.status <> 'CANCELLED'
                   WHERE r.status = 'PENDING' AND o.id IS NULL
                   ORDER BY r.created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *requestRepository) ListByUser(ctx context.Context, userID int64) ([]model.Request, error) {
	const query = `SELECT id, user_id, goods_name, quantity, origin, destination, status, order_id, created_at, updated_at
                   FROM requests WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func scanRequests(rows pgx.Rows) ([]model.Request, error) {
	var result []model.Request
	for rows.Next() {
		var req model.Request
		if err := rows.Scan(
			&req.ID, &req.UserID, &req.GoodsName, &req.Quantity, &req.Origin, &req.Destination,
			&req.Status, &req.OrderID, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) error {
	const query = `UPDATE requests SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *requestRepository) SetOrder(ctx context.Context, id int64, orderID *int64) error {
	const query = `UPDATE requests SET order_id=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, orderID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OfferRepository implementation ---

func (r *offerRepository) Create(ctx context.Context, offer *model.Offer) (*model.Offer, error) {
	const query = `INSERT INTO offers (request_id, traveler_id, price, estimated_delivery_date, status, notes)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at`
	created := *offer
	created.Status = model.OfferStatusPending
	err := r.storage.pool.QueryRow(ctx, query,
		offer.RequestID, offer.TravelerID, offer.Price, offer.EstimatedDeliveryDate, created.Status, offer.Notes,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *offerRepository) GetByID(ctx context.Context, id int64) (*model.Offer, error) {
	const query = `SELECT id, request_id, traveler_id, price, estimated_delivery_date, status, notes, created_at
                   FROM offers WHERE id=$1`
	var offer model.Offer
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&offer.ID, &offer.RequestID, &offer.TravelerID, &offer.Price,
		&offer.EstimatedDeliveryDate, &offer.Status, &offer.Notes, &offer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) ListByRequest(ctx context.Context, requestID int64) ([]model.Offer, error) {
	const query = `SELECT id, request_id, traveler_id, price, estimated_delivery_date, status, notes, created_at
                   FROM offers WHERE request_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Offer
	for rows.Next() {
		var offer model.Offer
		if err := rows.Scan(
			&offer.ID, &offer.RequestID, &offer.TravelerID, &offer.Price,
			&offer.EstimatedDeliveryDate, &offer.Status, &offer.Notes, &offer.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *offerRepository) UpdateStatus(ctx context.Context, id int64, status model.OfferStatus) error {
	const query = `UPDATE offers SET status=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (offer_id, request_id, traveler_id, price, estimated_delivery_date, status, payment_status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, created_at, updated_at`
	created := *order
	err := r.storage.pool.QueryRow(ctx, query,
		order.OfferID, order.RequestID, order.TravelerID, order.Price,
		order.EstimatedDeliveryDate, order.Status, order.PaymentStatus,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT id, offer_id, request_id, traveler_id, price, estimated_delivery_date, status, payment_status, created_at, updated_at
                   FROM orders WHERE id=$1`
	var order model.Order
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.OfferID, &order.RequestID, &order.TravelerID, &order.Price,
		&order.EstimatedDeliveryDate, &order.Status, &order.PaymentStatus,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetActiveByRequest(ctx context.Context, requestID int64) (*model.Order, error) {
	const query = `SELECT id, offer_id, request_id, traveler_id, price, estimated_delivery_date, status, payment_status, created_at, updated_at
                   FROM orders WHERE request_id=$1 AND status <> 'CANCELLED'
                   ORDER BY created_at DESC LIMIT 1`
	var order model.Order
	err := r.storage.pool.QueryRow(ctx, query, requestID).Scan(
		&order.ID, &order.OfferID, &order.RequestID, &order.TravelerID, &order.Price,
		&order.EstimatedDeliveryDate, &order.Status, &order.PaymentStatus,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	const query = `UPDATE orders SET payment_status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- ProcessRepository implementation ---

func (r *processRepository) CreateForOrder(ctx context.Context, orderID int64) (*model.GoodsProcess, error) {
	const query = `INSERT INTO processes (order_id, status) VALUES ($1, $2)
                   RETURNING id, created_at, updated_at`
	process := model.GoodsProcess{OrderID: orderID, Status: model.ProcessStatusPreinitialized}
	err := r.storage.pool.QueryRow(ctx, query, orderID, process.Status).
		Scan(&process.ID, &process.CreatedAt, &process.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &process, nil
}

func (r *processRepository) GetByID(ctx context.Context, id int64) (*model.GoodsProcess, error) {
	const query = `SELECT id, order_id, status, created_at, updated_at FROM processes WHERE id=$1`
	var process model.GoodsProcess
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&process.ID, &process.OrderID, &process.Status, &process.CreatedAt, &process.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &process, nil
}

func (r *processRepository) GetByOrder(ctx context.Context, orderID int64) (*model.GoodsProcess, error) {
	const query = `SELECT id, order_id, status, created_at, updated_at FROM processes WHERE order_id=$1`
	var process model.GoodsProcess
	err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(
		&process.ID, &process.OrderID, &process.Status, &process.CreatedAt, &process.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &process, nil
}

func (r *processRepository) List(ctx context.Context, userID int64) ([]model.GoodsProcess, error) {
	const query = `SELECT p.id, p.order_id, p.status, p.created_at, p.updated_at
                   FROM processes p
                   JOIN orders o ON o.id = p.order_id
                   JOIN requests req ON req.id = o.request_id
                   WHERE o.traveler_id = $1 OR req.user_id = $1
                   ORDER BY p.created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.GoodsProcess
	for rows.Next() {
		var process model.GoodsProcess
		if err := rows.Scan(
			&process.ID, &process.OrderID, &process.Status, &process.CreatedAt, &process.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, process)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *processRepository) UpdateStatus(ctx context.Context, id int64, status model.ProcessStatus, event model.ProcessEvent) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateQuery = `UPDATE processes SET status=$1, updated_at=NOW() WHERE id=$2`
		tag, err := tx.Exec(ctx, updateQuery, status, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		const insertEvent = `INSERT INTO process_events (process_id, from_status, to_status, changed_by, note)
                             VALUES ($1, $2, $3, $4, $5)`
		if _, err := tx.Exec(ctx, insertEvent,
			id, event.FromStatus, event.ToStatus, event.ChangedByUserID, event.Note,
		); err != nil {
			return err
		}
		return nil
	})
}

func (r *processRepository) ListEvents(ctx context.Context, processID int64) ([]model.ProcessEvent, error) {
	const query = `SELECT id, process_id, from_status, to_status, changed_by, note, created_at
                   FROM process_events WHERE process_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, processID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ProcessEvent
	for rows.Next() {
		var event model.ProcessEvent
		if err := rows.Scan(
			&event.ID, &event.ProcessID, &event.FromStatus, &event.ToStatus,
			&event.ChangedByUserID, &event.Note, &event.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- PickupRepository implementation ---

func (r *pickupRepository) Create(ctx context.Context, orderID int64, location string, scheduledAt time.Time, qrToken string) (*model.Pickup, error) {
	const query = `INSERT INTO pickups (order_id, location, scheduled_at, status, qr_token)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, created_at`
	pickup := model.Pickup{
		OrderID:     orderID,
		Location:    location,
		ScheduledAt: scheduledAt,
		Status:      model.PickupStatusScheduled,
		QRToken:     qrToken,
	}
	err := r.storage.pool.QueryRow(ctx, query, orderID, location, scheduledAt, pickup.Status, qrToken).
		Scan(&pickup.ID, &pickup.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &pickup, nil
}

func (r *pickupRepository) GetByID(ctx context.Context, id int64) (*model.Pickup, error) {
	const query = `SELECT id, order_id, location, scheduled_at, status, qr_token, created_at
                   FROM pickups WHERE id=$1`
	var pickup model.Pickup
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&pickup.ID, &pickup.OrderID, &pickup.Location, &pickup.ScheduledAt,
		&pickup.Status, &pickup.QRToken, &pickup.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &pickup, nil
}

func (r *pickupRepository) GetByOrder(ctx context.Context, orderID int64) (*model.Pickup, error) {
	const query = `SELECT id, order_id, location, scheduled_at, status, qr_token, created_at
                   FROM pickups WHERE order_id=$1 ORDER BY created_at DESC LIMIT 1`
	var pickup model.Pickup
	err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(
		&pickup.ID, &pickup.OrderID, &pickup.Location, &pickup.ScheduledAt,
		&pickup.Status, &pickup.QRToken, &pickup.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &pickup, nil
}

func (r *pickupRepository) UpdateStatus(ctx context.Context, id int64, status model.PickupStatus) error {
	const query = `UPDATE pickups SET status=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
