package model

import "time"

// Order binds an accepted offer to its request and traveler.
type Order struct {
	ID                    int64
	OfferID               int64
	RequestID             int64
	TravelerID            int64
	Price                 float64
	EstimatedDeliveryDate time.Time
	Status                OrderStatus
	PaymentStatus         PaymentStatus
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// GoodsProcess tracks the multi-stage delivery of one order.
type GoodsProcess struct {
	ID        int64
	OrderID   int64
	Status    ProcessStatus
	Events    []ProcessEvent
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProcessEvent is one audit entry of a status change.
type ProcessEvent struct {
	ID              int64
	ProcessID       int64
	FromStatus      ProcessStatus
	ToStatus        ProcessStatus
	ChangedByUserID int64
	Note            string
	CreatedAt       time.Time
}

// Pickup is an in-person handoff tied to an order, confirmed by QR scan.
type Pickup struct {
	ID          int64
	OrderID     int64
	Location    string
	ScheduledAt time.Time
	Status      PickupStatus
	QRToken     string
	CreatedAt   time.Time
}
