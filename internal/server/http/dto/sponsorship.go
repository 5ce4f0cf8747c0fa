package dto

import (
	"time"

	"github.com/wassalha/wassalha/internal/domain/model"
)

// InitiateSponsorshipRequest starts a sponsorship purchase. RecipientID is
// an accepted alias for BuyerID kept for older clients.
type InitiateSponsorshipRequest struct {
	SponsorshipID int64 `json:"sponsorshipId"`
	BuyerID       int64 `json:"buyerId"`
	RecipientID   int64 `json:"recipientId"`
}

// UpdateSponsorshipStatusRequest carries the target sponsorship status.
type UpdateSponsorshipStatusRequest struct {
	Status string `json:"status"`
}

// InitiatedSponsorshipResponse is the {id, sponsorId} payload of initiate.
type InitiatedSponsorshipResponse struct {
	ID        int64 `json:"id"`
	SponsorID int64 `json:"sponsorId"`
}

// SponsorshipProcessResponse is the client view of a sponsorship purchase.
type SponsorshipProcessResponse struct {
	ID                int64     `json:"id"`
	SponsorshipID     int64     `json:"sponsorshipId"`
	BuyerID           int64     `json:"buyerId"`
	Status            string    `json:"status"`
	VerificationImage string    `json:"verificationImage,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// SponsorshipResponse is the client view of a sponsorship listing.
type SponsorshipResponse struct {
	ID          int64     `json:"id"`
	SponsorID   int64     `json:"sponsorId"`
	Platform    string    `json:"platform"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewSponsorshipProcessResponse converts a domain process to its client view.
func NewSponsorshipProcessResponse(p model.SponsorshipProcess) SponsorshipProcessResponse {
	return SponsorshipProcessResponse{
		ID:                p.ID,
		SponsorshipID:     p.SponsorshipID,
		BuyerID:           p.BuyerID,
		Status:            string(p.Status),
		VerificationImage: p.VerificationImage,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// NewSponsorshipResponses converts a slice of listings.
func NewSponsorshipResponses(items []model.Sponsorship) []SponsorshipResponse {
	out := make([]SponsorshipResponse, 0, len(items))
	for _, s := range items {
		out = append(out, SponsorshipResponse{
			ID:          s.ID,
			SponsorID:   s.SponsorID,
			Platform:    s.Platform,
			Description: s.Description,
			Price:       s.Price,
			CreatedAt:   s.CreatedAt,
		})
	}
	return out
}
