package repository

import (
	"context"
	"time"

	"github.com/wassalha/wassalha/internal/domain/model"
)

// RequestRepository describes persistence operations with delivery requests.
type RequestRepository interface {
	Create(ctx context.Context, req *model.Request) (*model.Request, error)
	GetByID(ctx context.Context, id int64) (*model.Request, error)
	// ListOfferable returns pending requests with no active (non-cancelled) order.
	ListOfferable(ctx context.Context) ([]model.Request, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Request, error)
	UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) error
	SetOrder(ctx context.Context, id int64, orderID *int64) error
}

// OfferRepository describes persistence operations with traveler offers.
type OfferRepository interface {
	Create(ctx context.Context, offer *model.Offer) (*model.Offer, error)
	GetByID(ctx context.Context, id int64) (*model.Offer, error)
	ListByRequest(ctx context.Context, requestID int64) ([]model.Offer, error)
	UpdateStatus(ctx context.Context, id int64, status model.OfferStatus) error
}

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetActiveByRequest(ctx context.Context, requestID int64) (*model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error
}

// ProcessRepository describes persistence operations with goods processes.
type ProcessRepository interface {
	CreateForOrder(ctx context.Context, orderID int64) (*model.GoodsProcess, error)
	GetByID(ctx context.Context, id int64) (*model.GoodsProcess, error)
	GetByOrder(ctx context.Context, orderID int64) (*model.GoodsProcess, error)
	List(ctx context.Context, userID int64) ([]model.GoodsProcess, error)
	// UpdateStatus persists the new status and appends the audit event atomically.
	UpdateStatus(ctx context.Context, id int64, status model.ProcessStatus, event model.ProcessEvent) error
	ListEvents(ctx context.Context, processID int64) ([]model.ProcessEvent, error)
}

// PickupRepository describes persistence operations with pickups.
type PickupRepository interface {
	Create(ctx context.Context, orderID int64, location string, scheduledAt time.Time, qrToken string) (*model.Pickup, error)
	GetByID(ctx context.Context, id int64) (*model.Pickup, error)
	GetByOrder(ctx context.Context, orderID int64) (*model.Pickup, error)
	UpdateStatus(ctx context.Context, id int64, status model.PickupStatus) error
}
