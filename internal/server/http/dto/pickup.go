package dto

import (
	"time"

	"github.com/wassalha/wassalha/internal/domain/model"
)

// SchedulePickupRequest creates an in-person handoff for an order.
type SchedulePickupRequest struct {
	OrderID     int64     `json:"orderId"`
	Location    string    `json:"location"`
	ScheduledAt time.Time `json:"scheduledAt"`
}

// UpdatePickupStatusRequest sets a pickup's status directly.
type UpdatePickupStatusRequest struct {
	PickupID  int64  `json:"pickupId"`
	NewStatus string `json:"newStatus"`
}

// ScanPickupRequest carries the raw decoded QR payload.
type ScanPickupRequest struct {
	Payload string `json:"payload"`
}

// PickupResponse is the client view of a pickup.
type PickupResponse struct {
	ID          int64     `json:"id"`
	OrderID     int64     `json:"orderId"`
	Location    string    `json:"location"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Status      string    `json:"status"`
	QRToken     string    `json:"qrToken,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewPickupResponse converts a domain pickup to its client view.
func NewPickupResponse(p model.Pickup) PickupResponse {
	return PickupResponse{
		ID:          p.ID,
		OrderID:     p.OrderID,
		Location:    p.Location,
		ScheduledAt: p.ScheduledAt,
		Status:      string(p.Status),
		QRToken:     p.QRToken,
		CreatedAt:   p.CreatedAt,
	}
}
