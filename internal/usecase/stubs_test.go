package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/wassalha/wassalha/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubRequestRepository struct {
	createFn       func(context.Context, *model.Request) (*model.Request, error)
	getFn          func(context.Context, int64) (*model.Request, error)
	listOfferable  func(context.Context) ([]model.Request, error)
	listByUser     func(context.Context, int64) ([]model.Request, error)
	updateStatusFn func(context.Context, int64, model.RequestStatus) error
	setOrderFn     func(context.Context, int64, *int64) error
}

func (s stubRequestRepository) Create(ctx context.Context, r *model.Request) (*model.Request, error) {
	return s.createFn(ctx, r)
}

func (s stubRequestRepository) GetByID(ctx context.Context, id int64) (*model.Request, error) {
	return s.getFn(ctx, id)
}

func (s stubRequestRepository) ListOfferable(ctx context.Context) ([]model.Request, error) {
	return s.listOfferable(ctx)
}

func (s stubRequestRepository) ListByUser(ctx context.Context, userID int64) ([]model.Request, error) {
	return s.listByUser(ctx, userID)
}

func (s stubRequestRepository) UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) error {
	if s.updateStatusFn == nil {
		return nil
	}
	return s.updateStatusFn(ctx, id, status)
}

func (s stubRequestRepository) SetOrder(ctx context.Context, id int64, orderID *int64) error {
	if s.setOrderFn == nil {
		return nil
	}
	return s.setOrderFn(ctx, id, orderID)
}

type stubOfferRepository struct {
	createFn       func(context.Context, *model.Offer) (*model.Offer, error)
	getFn          func(context.Context, int64) (*model.Offer, error)
	listByRequest  func(context.Context, int64) ([]model.Offer, error)
	updateStatusFn func(context.Context, int64, model.OfferStatus) error
}

func (s stubOfferRepository) Create(ctx context.Context, o *model.Offer) (*model.Offer, error) {
	return s.createFn(ctx, o)
}

func (s stubOfferRepository) GetByID(ctx context.Context, id int64) (*model.Offer, error) {
	return s.getFn(ctx, id)
}

func (s stubOfferRepository) ListByRequest(ctx context.Context, requestID int64) ([]model.Offer, error) {
	return s.listByRequest(ctx, requestID)
}

func (s stubOfferRepository) UpdateStatus(ctx context.Context, id int64, status model.OfferStatus) error {
	return s.updateStatusFn(ctx, id, status)
}

type stubOrderRepository struct {
	createFn        func(context.Context, *model.Order) (*model.Order, error)
	getFn           func(context.Context, int64) (*model.Order, error)
	getActiveFn     func(context.Context, int64) (*model.Order, error)
	updateStatusFn  func(context.Context, int64, model.OrderStatus) error
	updatePaymentFn func(context.Context, int64, model.PaymentStatus) error
}

func (s stubOrderRepository) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	return s.createFn(ctx, o)
}

func (s stubOrderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	return s.getFn(ctx, id)
}

func (s stubOrderRepository) GetActiveByRequest(ctx context.Context, requestID int64) (*model.Order, error) {
	return s.getActiveFn(ctx, requestID)
}

func (s stubOrderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	if s.updateStatusFn == nil {
		return nil
	}
	return s.updateStatusFn(ctx, id, status)
}

func (s stubOrderRepository) UpdatePaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	if s.updatePaymentFn == nil {
		return nil
	}
	return s.updatePaymentFn(ctx, id, status)
}

type processStatusUpdate struct {
	ProcessID int64
	Status    model.ProcessStatus
	Event     model.ProcessEvent
}

type stubProcessRepository struct {
	createFn     func(context.Context, int64) (*model.GoodsProcess, error)
	getFn        func(context.Context, int64) (*model.GoodsProcess, error)
	getByOrderFn func(context.Context, int64) (*model.GoodsProcess, error)
	listFn       func(context.Context, int64) ([]model.GoodsProcess, error)
	listEventsFn func(context.Context, int64) ([]model.ProcessEvent, error)
	updateErr    error

	mu      sync.Mutex
	updates []processStatusUpdate
}

func (s *stubProcessRepository) CreateForOrder(ctx context.Context, orderID int64) (*model.GoodsProcess, error) {
	if s.createFn == nil {
		return &model.GoodsProcess{ID: orderID, OrderID: orderID, Status: model.ProcessStatusPreinitialized}, nil
	}
	return s.createFn(ctx, orderID)
}

func (s *stubProcessRepository) GetByID(ctx context.Context, id int64) (*model.GoodsProcess, error) {
	return s.getFn(ctx, id)
}

func (s *stubProcessRepository) GetByOrder(ctx context.Context, orderID int64) (*model.GoodsProcess, error) {
	return s.getByOrderFn(ctx, orderID)
}

func (s *stubProcessRepository) List(ctx context.Context, userID int64) ([]model.GoodsProcess, error) {
	return s.listFn(ctx, userID)
}

func (s *stubProcessRepository) UpdateStatus(ctx context.Context, id int64, status model.ProcessStatus, event model.ProcessEvent) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, processStatusUpdate{ProcessID: id, Status: status, Event: event})
	return nil
}

func (s *stubProcessRepository) ListEvents(ctx context.Context, processID int64) ([]model.ProcessEvent, error) {
	if s.listEventsFn == nil {
		return nil, nil
	}
	return s.listEventsFn(ctx, processID)
}

type stubPickupRepository struct {
	createFn       func(context.Context, int64, string, time.Time, string) (*model.Pickup, error)
	getFn          func(context.Context, int64) (*model.Pickup, error)
	getByOrderFn   func(context.Context, int64) (*model.Pickup, error)
	updateStatusFn func(context.Context, int64, model.PickupStatus) error
}

func (s stubPickupRepository) Create(ctx context.Context, orderID int64, location string, at time.Time, token string) (*model.Pickup, error) {
	return s.createFn(ctx, orderID, location, at, token)
}

func (s stubPickupRepository) GetByID(ctx context.Context, id int64) (*model.Pickup, error) {
	return s.getFn(ctx, id)
}

func (s stubPickupRepository) GetByOrder(ctx context.Context, orderID int64) (*model.Pickup, error) {
	return s.getByOrderFn(ctx, orderID)
}

func (s stubPickupRepository) UpdateStatus(ctx context.Context, id int64, status model.PickupStatus) error {
	if s.updateStatusFn == nil {
		return nil
	}
	return s.updateStatusFn(ctx, id, status)
}

type stubSponsorshipRepository struct {
	getFn        func(context.Context, int64) (*model.Sponsorship, error)
	listActiveFn func(context.Context) ([]model.Sponsorship, error)
}

func (s stubSponsorshipRepository) Create(ctx context.Context, sp *model.Sponsorship) (*model.Sponsorship, error) {
	panic("not implemented")
}

func (s stubSponsorshipRepository) GetByID(ctx context.Context, id int64) (*model.Sponsorship, error) {
	return s.getFn(ctx, id)
}

func (s stubSponsorshipRepository) ListActive(ctx context.Context) ([]model.Sponsorship, error) {
	return s.listActiveFn(ctx)
}

type stubSponsorshipProcessRepository struct {
	createFn  func(context.Context, int64, int64) (*model.SponsorshipProcess, error)
	getFn     func(context.Context, int64) (*model.SponsorshipProcess, error)
	updateErr error
	imageErr  error

	mu       sync.Mutex
	statuses []model.SponsorshipStatus
	images   []string
}

func (s *stubSponsorshipProcessRepository) Create(ctx context.Context, sponsorshipID, buyerID int64) (*model.SponsorshipProcess, error) {
	return s.createFn(ctx, sponsorshipID, buyerID)
}

func (s *stubSponsorshipProcessRepository) GetByID(ctx context.Context, id int64) (*model.SponsorshipProcess, error) {
	return s.getFn(ctx, id)
}

func (s *stubSponsorshipProcessRepository) UpdateStatus(ctx context.Context, id int64, status model.SponsorshipStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, status)
	return nil
}

func (s *stubSponsorshipProcessRepository) SetVerificationImage(ctx context.Context, id int64, image string) error {
	if s.imageErr != nil {
		return s.imageErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = append(s.images, image)
	return nil
}

type stubNotificationRepository struct {
	insertFn   func(context.Context, *model.Notification) (*model.Notification, error)
	listFn     func(context.Context, int64) ([]model.Notification, error)
	markReadFn func(context.Context, int64, int64) error
}

func (s stubNotificationRepository) Insert(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	return s.insertFn(ctx, n)
}

func (s stubNotificationRepository) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	return s.listFn(ctx, userID)
}

func (s stubNotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	return s.markReadFn(ctx, id, userID)
}

// recordingOutbox collects events appended by use cases.
type recordingOutbox struct {
	mu     sync.Mutex
	events []model.OutboxEvent
	err    error
}

func (o *recordingOutbox) Append(ctx context.Context, event *model.OutboxEvent) error {
	if o.err != nil {
		return o.err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, *event)
	return nil
}

func (o *recordingOutbox) SelectBatchForDispatch(context.Context, int) ([]model.OutboxEvent, error) {
	panic("not implemented")
}

func (o *recordingOutbox) MarkPublished(context.Context, int64) error {
	panic("not implemented")
}

func (o *recordingOutbox) kinds() []model.EventKind {
	o.mu.Lock()
	defer o.mu.Unlock()
	kinds := make([]model.EventKind, 0, len(o.events))
	for _, e := range o.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

type stubPayments struct {
	captureFn func(context.Context, string, float64) error

	mu       sync.Mutex
	captures []string
}

func (s *stubPayments) Capture(ctx context.Context, reference string, amount float64) error {
	if s.captureFn != nil {
		return s.captureFn(ctx, reference, amount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.captures = append(s.captures, reference)
	return nil
}

type stubCache struct {
	mu            sync.Mutex
	entries       map[int64][]model.Notification
	sets          int
	invalidations int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[int64][]model.Notification)}
}

func (c *stubCache) Get(ctx context.Context, userID int64) ([]model.Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[userID]
	return entry, ok
}

func (c *stubCache) Set(ctx context.Context, userID int64, notifications []model.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = notifications
	c.sets++
}

func (c *stubCache) Invalidate(ctx context.Context, userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	c.invalidations++
}
