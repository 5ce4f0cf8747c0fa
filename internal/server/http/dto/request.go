package dto

import (
	"time"

	"github.com/wassalha/wassalha/internal/domain/model"
)

// CreateRequestRequest describes the payload for posting a delivery request.
type CreateRequestRequest struct {
	GoodsName   string `json:"goodsName"`
	Quantity    int    `json:"quantity"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// RequestResponse is the client view of a delivery request.
type RequestResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	GoodsName   string    `json:"goodsName"`
	Quantity    int       `json:"quantity"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	OrderID     *int64    `json:"orderId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewRequestResponse converts a domain request to its client view.
func NewRequestResponse(r model.Request) RequestResponse {
	return RequestResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		GoodsName:   r.GoodsName,
		Quantity:    r.Quantity,
		Origin:      r.Origin,
		Destination: r.Destination,
		Status:      string(r.Status),
		OrderID:     r.OrderID,
		CreatedAt:   r.CreatedAt,
	}
}

// NewRequestResponses converts a slice of domain requests.
func NewRequestResponses(requests []model.Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, NewRequestResponse(r))
	}
	return out
}
