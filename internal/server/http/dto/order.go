package dto

import (
	"time"

	"github.com/wassalha/wassalha/internal/domain/model"
)

// CreateOrderRequest is the accept-offer payload. The server derives the
// order from the referenced offer; the denormalized fields mirror what the
// client already displays.
type CreateOrderRequest struct {
	OfferID               int64     `json:"offerId"`
	RequestID             int64     `json:"requestId"`
	TravelerID            int64     `json:"travelerId"`
	Price                 float64   `json:"price"`
	EstimatedDeliveryDate time.Time `json:"estimatedDeliveryDate"`
	OrderStatus           string    `json:"orderStatus"`
	PaymentStatus         string    `json:"paymentStatus"`
}

// UpdateOrderStatusRequest advances or cancels the order's process.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
	UserID int64  `json:"userId"`
	Note   string `json:"note,omitempty"`
}

// OrderResponse is the client view of an order.
type OrderResponse struct {
	ID                    int64     `json:"id"`
	OfferID               int64     `json:"offerId"`
	RequestID             int64     `json:"requestId"`
	TravelerID            int64     `json:"travelerId"`
	Price                 float64   `json:"price"`
	EstimatedDeliveryDate time.Time `json:"estimatedDeliveryDate"`
	OrderStatus           string    `json:"orderStatus"`
	PaymentStatus         string    `json:"paymentStatus"`
	CreatedAt             time.Time `json:"createdAt"`
}

// NewOrderResponse converts a domain order to its client view.
func NewOrderResponse(o model.Order) OrderResponse {
	return OrderResponse{
		ID:                    o.ID,
		OfferID:               o.OfferID,
		RequestID:             o.RequestID,
		TravelerID:            o.TravelerID,
		Price:                 o.Price,
		EstimatedDeliveryDate: o.EstimatedDeliveryDate,
		OrderStatus:           string(o.Status),
		PaymentStatus:         string(o.PaymentStatus),
		CreatedAt:             o.CreatedAt,
	}
}
