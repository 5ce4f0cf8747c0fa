package app

import (
	"context"
	"time"

	"github.com/wassalha/wassalha/internal/adapter/broker"
	"github.com/wassalha/wassalha/internal/domain/model"
	"github.com/wassalha/wassalha/internal/domain/repository"
	"github.com/wassalha/wassalha/internal/realtime"
	"github.com/wassalha/wassalha/internal/usecase"
)

// MarketplaceFacade is the single entry point the HTTP layer and the relay
// worker talk to. It wires the use cases together and owns the event
// fan-out: hub broadcast, notification synthesis and broker publish.
type MarketplaceFacade struct {
	auth          *usecase.AuthUseCase
	requests      *usecase.RequestUseCase
	offers        *usecase.OfferUseCase
	process       *usecase.ProcessUseCase
	sponsorships  *usecase.SponsorshipUseCase
	pickups       *usecase.PickupUseCase
	notifications *usecase.NotificationUseCase
	outbox        repository.OutboxRepository
	hub           *realtime.Hub
	publisher     broker.Publisher
}

func NewMarketplaceFacade(
	auth *usecase.AuthUseCase,
	requests *usecase.RequestUseCase,
	offers *usecase.OfferUseCase,
	process *usecase.ProcessUseCase,
	sponsorships *usecase.SponsorshipUseCase,
	pickups *usecase.PickupUseCase,
	notifications *usecase.NotificationUseCase,
	outbox repository.OutboxRepository,
	hub *realtime.Hub,
	publisher broker.Publisher,
) *MarketplaceFacade {
	return &MarketplaceFacade{
		auth:          auth,
		requests:      requests,
		offers:        offers,
		process:       process,
		sponsorships:  sponsorships,
		pickups:       pickups,
		notifications: notifications,
		outbox:        outbox,
		hub:           hub,
		publisher:     publisher,
	}
}

func (f *MarketplaceFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *MarketplaceFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *MarketplaceFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketplaceFacade) CreateRequest(ctx context.Context, userID int64, goodsName string, quantity int, origin, destination string) (*model.Request, error) {
	return f.requests.Create(ctx, userID, goodsName, quantity, origin, destination)
}

func (f *MarketplaceFacade) OfferableRequests(ctx context.Context) ([]model.Request, error) {
	return f.requests.ListOfferable(ctx)
}

func (f *MarketplaceFacade) UserRequests(ctx context.Context, userID int64) ([]model.Request, error) {
	return f.requests.ListByUser(ctx, userID)
}

func (f *MarketplaceFacade) RequestOffers(ctx context.Context, requestID int64) ([]model.Offer, error) {
	return f.offers.ListByRequest(ctx, requestID)
}

func (f *MarketplaceFacade) MakeOffer(ctx context.Context, travelerID, requestID int64, price float64, estimatedDelivery time.Time, notes string) (*model.Offer, error) {
	return f.offers.Make(ctx, travelerID, requestID, price, estimatedDelivery, notes)
}

func (f *MarketplaceFacade) AcceptOffer(ctx context.Context, userID, offerID int64) (*model.Order, error) {
	return f.offers.Accept(ctx, userID, offerID)
}

func (f *MarketplaceFacade) RetryAcceptOffer(ctx context.Context, userID, offerID, orderID int64) (*model.Order, error) {
	return f.offers.RetryAccept(ctx, userID, offerID, orderID)
}

func (f *MarketplaceFacade) RejectOffer(ctx context.Context, userID, offerID int64) error {
	return f.offers.Reject(ctx, userID, offerID)
}

func (f *MarketplaceFacade) WithdrawOffer(ctx context.Context, userID, offerID int64) error {
	return f.offers.Withdraw(ctx, userID, offerID)
}

func (f *MarketplaceFacade) AdvanceOrderStatus(ctx context.Context, userID, orderID int64, status model.ProcessStatus, note string) (*model.GoodsProcess, error) {
	return f.process.Advance(ctx, userID, orderID, status, note)
}

func (f *MarketplaceFacade) Processes(ctx context.Context, userID int64) ([]model.GoodsProcess, error) {
	return f.process.List(ctx, userID)
}

func (f *MarketplaceFacade) ProcessByID(ctx context.Context, id int64) (*model.GoodsProcess, error) {
	return f.process.Get(ctx, id)
}

func (f *MarketplaceFacade) ProcessRoute(ctx context.Context, userID, processID int64) (model.Route, error) {
	return f.process.Route(ctx, userID, processID)
}

func (f *MarketplaceFacade) InitiateSponsorship(ctx context.Context, buyerID, sponsorshipID int64) (*model.SponsorshipProcess, int64, error) {
	return f.sponsorships.Initiate(ctx, buyerID, sponsorshipID)
}

func (f *MarketplaceFacade) SponsorshipProcess(ctx context.Context, id int64) (*model.SponsorshipProcess, error) {
	return f.sponsorships.Get(ctx, id)
}

func (f *MarketplaceFacade) UpdateSponsorshipStatus(ctx context.Context, userID, processID int64, status model.SponsorshipStatus) (*model.SponsorshipProcess, error) {
	return f.sponsorships.UpdateStatus(ctx, userID, processID, status)
}

func (f *MarketplaceFacade) VerifySponsorshipDelivery(ctx context.Context, userID, processID int64, image string) (*model.SponsorshipProcess, error) {
	return f.sponsorships.Verify(ctx, userID, processID, image)
}

func (f *MarketplaceFacade) RequestNewSponsorshipPhoto(ctx context.Context, userID, processID int64) (*model.SponsorshipProcess, error) {
	return f.sponsorships.RequestNewPhoto(ctx, userID, processID)
}

func (f *MarketplaceFacade) ActiveSponsorships(ctx context.Context) ([]model.Sponsorship, error) {
	return f.sponsorships.ListActive(ctx)
}

func (f *MarketplaceFacade) SchedulePickup(ctx context.Context, userID, orderID int64, location string, at time.Time) (*model.Pickup, error) {
	return f.pickups.Schedule(ctx, userID, orderID, location, at)
}

func (f *MarketplaceFacade) UpdatePickupStatus(ctx context.Context, userID, pickupID int64, status model.PickupStatus) (*model.Pickup, error) {
	return f.pickups.UpdateStatus(ctx, userID, pickupID, status)
}

func (f *MarketplaceFacade) ConfirmPickupScan(ctx context.Context, userID int64, payload []byte) (*model.Pickup, error) {
	return f.pickups.ConfirmScan(ctx, userID, payload)
}

func (f *MarketplaceFacade) Notifications(ctx context.Context, userID int64) ([]model.Notification, error) {
	return f.notifications.List(ctx, userID)
}

func (f *MarketplaceFacade) MarkNotificationRead(ctx context.Context, id, userID int64) error {
	return f.notifications.MarkRead(ctx, id, userID)
}

func (f *MarketplaceFacade) EventsForDispatch(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	return f.outbox.SelectBatchForDispatch(ctx, limit)
}

// DeliverEvent fans one outbox event out: the persistent notification
// record, the realtime rooms, and the broker. Events addressed to neither a
// process nor a recipient are marketplace-wide and go to the processTrack
// lobby. A failed mark leaves the event claimed in the outbox; it is only
// redelivered once the claim expires.
func (f *MarketplaceFacade) DeliverEvent(ctx context.Context, event model.OutboxEvent) error {
	if _, err := f.notifications.RecordFromEvent(ctx, event); err != nil {
		return err
	}

	ev := realtime.Event{Kind: event.Kind, Payload: event.Payload}
	if event.ProcessID > 0 {
		f.hub.Broadcast(realtime.NamespaceProcessTrack, event.ProcessID, ev)
	}
	if event.RecipientID > 0 {
		f.hub.Broadcast(realtime.NamespaceNotifications, event.RecipientID, ev)
	}
	if event.ProcessID == 0 && event.RecipientID == 0 {
		f.hub.Broadcast(realtime.NamespaceProcessTrack, realtime.LobbyRoom, ev)
	}

	key := event.ProcessID
	if key == 0 {
		key = event.RecipientID
	}
	return f.publisher.Publish(ctx, key, event.Payload)
}

func (f *MarketplaceFacade) MarkEventPublished(ctx context.Context, eventID int64) error {
	return f.outbox.MarkPublished(ctx, eventID)
}
