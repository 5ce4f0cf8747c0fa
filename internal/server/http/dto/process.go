package dto

import (
	"time"

	"github.com/wassalha/wassalha/internal/domain/model"
)

// ProcessEventResponse is one audit entry of a process.
type ProcessEventResponse struct {
	ID              int64     `json:"id"`
	FromStatus      string    `json:"fromStatus"`
	ToStatus        string    `json:"toStatus"`
	ChangedByUserID int64     `json:"changedByUserId"`
	Note            string    `json:"note,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ProcessResponse is the client view of a goods process.
type ProcessResponse struct {
	ID        int64                  `json:"id"`
	OrderID   int64                  `json:"orderId"`
	Status    string                 `json:"status"`
	Events    []ProcessEventResponse `json:"events,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// RouteResponse names the screen a viewer should be routed to.
type RouteResponse struct {
	Route string `json:"route"`
}

// NewProcessResponse converts a domain process to its client view.
func NewProcessResponse(p model.GoodsProcess) ProcessResponse {
	resp := ProcessResponse{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for _, e := range p.Events {
		resp.Events = append(resp.Events, ProcessEventResponse{
			ID:              e.ID,
			FromStatus:      string(e.FromStatus),
			ToStatus:        string(e.ToStatus),
			ChangedByUserID: e.ChangedByUserID,
			Note:            e.Note,
			CreatedAt:       e.CreatedAt,
		})
	}
	return resp
}

// NewProcessResponses converts a slice of domain processes.
func NewProcessResponses(processes []model.GoodsProcess) []ProcessResponse {
	out := make([]ProcessResponse, 0, len(processes))
	for _, p := range processes {
		out = append(out, NewProcessResponse(p))
	}
	return out
}
