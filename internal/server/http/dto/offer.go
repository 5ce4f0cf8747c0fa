package dto

import (
	"time"

	"github.com/wassalha/wassalha/internal/domain/model"
)

// MakeOfferRequest describes the payload for bidding on a request.
type MakeOfferRequest struct {
	RequestID             int64     `json:"requestId"`
	Price                 float64   `json:"price"`
	EstimatedDeliveryDate time.Time `json:"estimatedDeliveryDate"`
	Notes                 string    `json:"notes"`
}

// UpdateOfferStatusRequest carries the target status of an offer patch.
type UpdateOfferStatusRequest struct {
	Status string `json:"status"`
}

// RetryAcceptRequest resumes the accept saga against an already created order.
type RetryAcceptRequest struct {
	OrderID int64 `json:"orderId"`
}

// AcceptIncompleteResponse reports the accept saga's partial failure: the
// order exists but the offer is still pending.
type AcceptIncompleteResponse struct {
	OrderID int64 `json:"orderId"`
	OfferID int64 `json:"offerId"`
}

// OfferResponse is the client view of an offer.
type OfferResponse struct {
	ID                    int64     `json:"id"`
	RequestID             int64     `json:"requestId"`
	TravelerID            int64     `json:"travelerId"`
	Price                 float64   `json:"price"`
	EstimatedDeliveryDate time.Time `json:"estimatedDeliveryDate"`
	Status                string    `json:"status"`
	Notes                 string    `json:"notes,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
}

// NewOfferResponse converts a domain offer to its client view.
func NewOfferResponse(o model.Offer) OfferResponse {
	return OfferResponse{
		ID:                    o.ID,
		RequestID:             o.RequestID,
		TravelerID:            o.TravelerID,
		Price:                 o.Price,
		EstimatedDeliveryDate: o.EstimatedDeliveryDate,
		Status:                string(o.Status),
		Notes:                 o.Notes,
		CreatedAt:             o.CreatedAt,
	}
}

// NewOfferResponses converts a slice of domain offers.
func NewOfferResponses(offers []model.Offer) []OfferResponse {
	out := make([]OfferResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, NewOfferResponse(o))
	}
	return out
}
