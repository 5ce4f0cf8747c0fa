package handlers

import (
	"context"
	"time"

	"github.com/wassalha/wassalha/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// RequestFacade exposes delivery-request operations over HTTP.
type RequestFacade interface {
	CreateRequest(ctx context.Context, userID int64, goodsName string, quantity int, origin, destination string) (*model.Request, error)
	OfferableRequests(ctx context.Context) ([]model.Request, error)
	UserRequests(ctx context.Context, userID int64) ([]model.Request, error)
	RequestOffers(ctx context.Context, requestID int64) ([]model.Offer, error)
}

// OfferFacade exposes traveler offer operations, including the two-phase
// accept saga and its recovery.
type OfferFacade interface {
	MakeOffer(ctx context.Context, travelerID, requestID int64, price float64, estimatedDelivery time.Time, notes string) (*model.Offer, error)
	AcceptOffer(ctx context.Context, userID, offerID int64) (*model.Order, error)
	RetryAcceptOffer(ctx context.Context, userID, offerID, orderID int64) (*model.Order, error)
	RejectOffer(ctx context.Context, userID, offerID int64) error
	WithdrawOffer(ctx context.Context, userID, offerID int64) error
}

// ProcessFacade exposes the delivery status workflow.
type ProcessFacade interface {
	AdvanceOrderStatus(ctx context.Context, userID, orderID int64, status model.ProcessStatus, note string) (*model.GoodsProcess, error)
	Processes(ctx context.Context, userID int64) ([]model.GoodsProcess, error)
	ProcessByID(ctx context.Context, id int64) (*model.GoodsProcess, error)
	ProcessRoute(ctx context.Context, userID, processID int64) (model.Route, error)
}

// SponsorshipFacade exposes the sponsorship purchase workflow.
type SponsorshipFacade interface {
	InitiateSponsorship(ctx context.Context, buyerID, sponsorshipID int64) (*model.SponsorshipProcess, int64, error)
	SponsorshipProcess(ctx context.Context, id int64) (*model.SponsorshipProcess, error)
	UpdateSponsorshipStatus(ctx context.Context, userID, processID int64, status model.SponsorshipStatus) (*model.SponsorshipProcess, error)
	VerifySponsorshipDelivery(ctx context.Context, userID, processID int64, image string) (*model.SponsorshipProcess, error)
	RequestNewSponsorshipPhoto(ctx context.Context, userID, processID int64) (*model.SponsorshipProcess, error)
	ActiveSponsorships(ctx context.Context) ([]model.Sponsorship, error)
}

// PickupFacade exposes pickup scheduling and QR confirmation. Every
// operation acts on behalf of the authenticated user, who must be a party
// to the pickup's order.
type PickupFacade interface {
	SchedulePickup(ctx context.Context, userID, orderID int64, location string, at time.Time) (*model.Pickup, error)
	UpdatePickupStatus(ctx context.Context, userID, pickupID int64, status model.PickupStatus) (*model.Pickup, error)
	ConfirmPickupScan(ctx context.Context, userID int64, payload []byte) (*model.Pickup, error)
}

// NotificationFacade exposes the notification store.
type NotificationFacade interface {
	Notifications(ctx context.Context, userID int64) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID int64) error
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	AuthFacade
	RequestFacade
	OfferFacade
	ProcessFacade
	SponsorshipFacade
	PickupFacade
	NotificationFacade
}
