package model

import "time"

// Request is a shopper's ask for a good to be delivered.
type Request struct {
	ID          int64
	UserID      int64
	GoodsName   string
	Quantity    int
	Origin      string
	Destination string
	Status      RequestStatus
	// OrderID links the active order once an offer has been accepted.
	OrderID   *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Offerable reports whether the request may still receive new offers:
// it must be pending and carry no active order. A cancelled order releases
// the request back into this pool.
func (r Request) Offerable(activeOrder *Order) bool {
	if r.Status != RequestStatusPending {
		return false
	}
	if activeOrder == nil {
		return true
	}
	return activeOrder.Status == OrderStatusCancelled
}

// Offer is a traveler's priced bid against a request.
type Offer struct {
	ID                    int64
	RequestID             int64
	TravelerID            int64
	Price                 float64
	EstimatedDeliveryDate time.Time
	Status                OfferStatus
	Notes                 string
	CreatedAt             time.Time
}
