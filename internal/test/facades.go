package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wassalha/wassalha/internal/domain/model"
)

// RequestFacadeStub provides controllable behaviour for request endpoints.
type RequestFacadeStub struct {
	CreateFn    func(context.Context, int64, string, int, string, string) (*model.Request, error)
	OfferableFn func(context.Context) ([]model.Request, error)
	MineFn      func(context.Context, int64) ([]model.Request, error)
	OffersFn    func(context.Context, int64) ([]model.Offer, error)
}

// CreateRequest delegates to the provided function or returns a default request.
func (s RequestFacadeStub) CreateRequest(ctx context.Context, userID int64, goodsName string, quantity int, origin, destination string) (*model.Request, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, goodsName, quantity, origin, destination)
	}
	return &model.Request{ID: 1, UserID: userID, GoodsName: goodsName, Quantity: quantity, Origin: origin, Destination: destination, Status: model.RequestStatusPending}, nil
}

// OfferableRequests returns the configured offerable pool.
func (s RequestFacadeStub) OfferableRequests(ctx context.Context) ([]model.Request, error) {
	if s.OfferableFn != nil {
		return s.OfferableFn(ctx)
	}
	return []model.Request{{ID: 1, Status: model.RequestStatusPending}}, nil
}

// UserRequests returns the configured requests of one user.
func (s RequestFacadeStub) UserRequests(ctx context.Context, userID int64) ([]model.Request, error) {
	if s.MineFn != nil {
		return s.MineFn(ctx, userID)
	}
	return []model.Request{{ID: 1, UserID: userID}}, nil
}

// RequestOffers returns the configured offers on a request.
func (s RequestFacadeStub) RequestOffers(ctx context.Context, requestID int64) ([]model.Offer, error) {
	if s.OffersFn != nil {
		return s.OffersFn(ctx, requestID)
	}
	return []model.Offer{{ID: 1, RequestID: requestID, Status: model.OfferStatusPending}}, nil
}

// OfferFacadeStub provides controllable behaviour for offer endpoints.
type OfferFacadeStub struct {
	MakeFn     func(context.Context, int64, int64, float64, time.Time, string) (*model.Offer, error)
	AcceptFn   func(context.Context, int64, int64) (*model.Order, error)
	RetryFn    func(context.Context, int64, int64, int64) (*model.Order, error)
	RejectFn   func(context.Context, int64, int64) error
	WithdrawFn func(context.Context, int64, int64) error
}

// MakeOffer delegates to the provided function or returns a default offer.
func (s OfferFacadeStub) MakeOffer(ctx context.Context, travelerID, requestID int64, price float64, estimatedDelivery time.Time, notes string) (*model.Offer, error) {
	if s.MakeFn != nil {
		return s.MakeFn(ctx, travelerID, requestID, price, estimatedDelivery, notes)
	}
	return &model.Offer{ID: 1, RequestID: requestID, TravelerID: travelerID, Price: price, Status: model.OfferStatusPending}, nil
}

// AcceptOffer delegates to the provided function or returns a default order.
func (s OfferFacadeStub) AcceptOffer(ctx context.Context, userID, offerID int64) (*model.Order, error) {
	if s.AcceptFn != nil {
		return s.AcceptFn(ctx, userID, offerID)
	}
	return &model.Order{ID: 101, OfferID: offerID, Status: model.OrderStatusPending, PaymentStatus: model.PaymentStatusOnHold}, nil
}

// RetryAcceptOffer delegates to the provided function or succeeds.
func (s OfferFacadeStub) RetryAcceptOffer(ctx context.Context, userID, offerID, orderID int64) (*model.Order, error) {
	if s.RetryFn != nil {
		return s.RetryFn(ctx, userID, offerID, orderID)
	}
	return &model.Order{ID: orderID, OfferID: offerID}, nil
}

// RejectOffer delegates to the provided function or succeeds.
func (s OfferFacadeStub) RejectOffer(ctx context.Context, userID, offerID int64) error {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, userID, offerID)
	}
	return nil
}

// WithdrawOffer delegates to the provided function or succeeds.
func (s OfferFacadeStub) WithdrawOffer(ctx context.Context, userID, offerID int64) error {
	if s.WithdrawFn != nil {
		return s.WithdrawFn(ctx, userID, offerID)
	}
	return nil
}

// ProcessFacadeStub provides controllable behaviour for process endpoints.
type ProcessFacadeStub struct {
	AdvanceFn func(context.Context, int64, int64, model.ProcessStatus, string) (*model.GoodsProcess, error)
	ListFn    func(context.Context, int64) ([]model.GoodsProcess, error)
	GetFn     func(context.Context, int64) (*model.GoodsProcess, error)
	RouteFn   func(context.Context, int64, int64) (model.Route, error)
}

// AdvanceOrderStatus delegates to the provided function or returns a default process.
func (s ProcessFacadeStub) AdvanceOrderStatus(ctx context.Context, userID, orderID int64, status model.ProcessStatus, note string) (*model.GoodsProcess, error) {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, userID, orderID, status, note)
	}
	return &model.GoodsProcess{ID: 1, OrderID: orderID, Status: status}, nil
}

// Processes returns configured processes visible to the user.
func (s ProcessFacadeStub) Processes(ctx context.Context, userID int64) ([]model.GoodsProcess, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return []model.GoodsProcess{{ID: 1, Status: model.ProcessStatusPreinitialized}}, nil
}

// ProcessByID returns the configured process.
func (s ProcessFacadeStub) ProcessByID(ctx context.Context, id int64) (*model.GoodsProcess, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.GoodsProcess{ID: id, Status: model.ProcessStatusPreinitialized}, nil
}

// ProcessRoute returns the configured destination route.
func (s ProcessFacadeStub) ProcessRoute(ctx context.Context, userID, processID int64) (model.Route, error) {
	if s.RouteFn != nil {
		return s.RouteFn(ctx, userID, processID)
	}
	return model.RouteUnimplemented, nil
}

// SponsorshipFacadeStub provides controllable behaviour for sponsorship endpoints.
type SponsorshipFacadeStub struct {
	InitiateFn     func(context.Context, int64, int64) (*model.SponsorshipProcess, int64, error)
	GetFn          func(context.Context, int64) (*model.SponsorshipProcess, error)
	UpdateStatusFn func(context.Context, int64, int64, model.SponsorshipStatus) (*model.SponsorshipProcess, error)
	VerifyFn       func(context.Context, int64, int64, string) (*model.SponsorshipProcess, error)
	NewPhotoFn     func(context.Context, int64, int64) (*model.SponsorshipProcess, error)
	ListActiveFn   func(context.Context) ([]model.Sponsorship, error)
}

// InitiateSponsorship delegates to the provided function or returns defaults.
func (s SponsorshipFacadeStub) InitiateSponsorship(ctx context.Context, buyerID, sponsorshipID int64) (*model.SponsorshipProcess, int64, error) {
	if s.InitiateFn != nil {
		return s.InitiateFn(ctx, buyerID, sponsorshipID)
	}
	return &model.SponsorshipProcess{ID: 1, SponsorshipID: sponsorshipID, BuyerID: buyerID, Status: model.SponsorshipStatusInitialized}, 7, nil
}

// SponsorshipProcess returns the configured process.
func (s SponsorshipFacadeStub) SponsorshipProcess(ctx context.Context, id int64) (*model.SponsorshipProcess, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.SponsorshipProcess{ID: id, Status: model.SponsorshipStatusInitialized}, nil
}

// UpdateSponsorshipStatus delegates to the provided function or echoes the target.
func (s SponsorshipFacadeStub) UpdateSponsorshipStatus(ctx context.Context, userID, processID int64, status model.SponsorshipStatus) (*model.SponsorshipProcess, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, userID, processID, status)
	}
	return &model.SponsorshipProcess{ID: processID, Status: status}, nil
}

// VerifySponsorshipDelivery delegates to the provided function or succeeds.
func (s SponsorshipFacadeStub) VerifySponsorshipDelivery(ctx context.Context, userID, processID int64, image string) (*model.SponsorshipProcess, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, userID, processID, image)
	}
	return &model.SponsorshipProcess{ID: processID, Status: model.SponsorshipStatusDelivered, VerificationImage: image}, nil
}

// RequestNewSponsorshipPhoto delegates to the provided function or succeeds.
func (s SponsorshipFacadeStub) RequestNewSponsorshipPhoto(ctx context.Context, userID, processID int64) (*model.SponsorshipProcess, error) {
	if s.NewPhotoFn != nil {
		return s.NewPhotoFn(ctx, userID, processID)
	}
	return &model.SponsorshipProcess{ID: processID, Status: model.SponsorshipStatusPaid}, nil
}

// ActiveSponsorships returns the configured listings.
func (s SponsorshipFacadeStub) ActiveSponsorships(ctx context.Context) ([]model.Sponsorship, error) {
	if s.ListActiveFn != nil {
		return s.ListActiveFn(ctx)
	}
	return []model.Sponsorship{{ID: 1, Active: true}}, nil
}

// PickupFacadeStub provides controllable behaviour for pickup endpoints.
type PickupFacadeStub struct {
	ScheduleFn     func(context.Context, int64, int64, string, time.Time) (*model.Pickup, error)
	UpdateStatusFn func(context.Context, int64, int64, model.PickupStatus) (*model.Pickup, error)
	ScanFn         func(context.Context, int64, []byte) (*model.Pickup, error)
}

// SchedulePickup delegates to the provided function or returns a default pickup.
func (s PickupFacadeStub) SchedulePickup(ctx context.Context, userID, orderID int64, location string, at time.Time) (*model.Pickup, error) {
	if s.ScheduleFn != nil {
		return s.ScheduleFn(ctx, userID, orderID, location, at)
	}
	return &model.Pickup{ID: 1, OrderID: orderID, Location: location, ScheduledAt: at, Status: model.PickupStatusScheduled}, nil
}

// UpdatePickupStatus delegates to the provided function or echoes the target.
func (s PickupFacadeStub) UpdatePickupStatus(ctx context.Context, userID, pickupID int64, status model.PickupStatus) (*model.Pickup, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, userID, pickupID, status)
	}
	return &model.Pickup{ID: pickupID, Status: status}, nil
}

// ConfirmPickupScan delegates to the provided function or completes the pickup.
func (s PickupFacadeStub) ConfirmPickupScan(ctx context.Context, userID int64, payload []byte) (*model.Pickup, error) {
	if s.ScanFn != nil {
		return s.ScanFn(ctx, userID, payload)
	}
	return &model.Pickup{ID: 1, Status: model.PickupStatusCompleted}, nil
}

// NotificationFacadeStub provides controllable behaviour for notification endpoints.
type NotificationFacadeStub struct {
	ListFn     func(context.Context, int64) ([]model.Notification, error)
	MarkReadFn func(context.Context, int64, int64) error
}

// Notifications returns the configured list.
func (s NotificationFacadeStub) Notifications(ctx context.Context, userID int64) ([]model.Notification, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return []model.Notification{{ID: 1, UserID: userID, Type: model.EventOfferMade}}, nil
}

// MarkNotificationRead delegates to the provided function or succeeds.
func (s NotificationFacadeStub) MarkNotificationRead(ctx context.Context, id, userID int64) error {
	if s.MarkReadFn != nil {
		return s.MarkReadFn(ctx, id, userID)
	}
	return nil
}

// MarketplaceFacadeStub aggregates facade dependencies for HTTP layer tests.
type MarketplaceFacadeStub struct {
	AuthFacadeStub
	RequestFacadeStub
	OfferFacadeStub
	ProcessFacadeStub
	SponsorshipFacadeStub
	PickupFacadeStub
	NotificationFacadeStub
}

// RelayFacadeStub mimics relay interactions with the marketplace facade.
type RelayFacadeStub struct {
	Events          [][]model.OutboxEvent
	EventsFn        func(context.Context, int) ([]model.OutboxEvent, error)
	DeliverFn       func(context.Context, model.OutboxEvent) error
	MarkFn          func(context.Context, int64) error
	Delivered       []model.OutboxEvent
	Published       []int64
	mu              sync.Mutex
	eventsCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *RelayFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *RelayFacadeStub) Unlock() { s.mu.Unlock() }

// EventsForDispatch returns batches from the configured queue.
func (s *RelayFacadeStub) EventsForDispatch(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	if s.EventsFn != nil {
		return s.EventsFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.eventsCallCount, 1)
	if int(call) <= len(s.Events) {
		return s.Events[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// DeliverEvent records delivered events.
func (s *RelayFacadeStub) DeliverEvent(ctx context.Context, event model.OutboxEvent) error {
	if s.DeliverFn != nil {
		return s.DeliverFn(ctx, event)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Delivered = append(s.Delivered, event)
	return nil
}

// MarkEventPublished records published event identifiers.
func (s *RelayFacadeStub) MarkEventPublished(ctx context.Context, eventID int64) error {
	if s.MarkFn != nil {
		return s.MarkFn(ctx, eventID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Published = append(s.Published, eventID)
	return nil
}
