package test

import (
	"context"
	"time"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OutboxRepositoryStub records appended events and serves dispatch batches.
type OutboxRepositoryStub struct {
	AppendFn        func(context.Context, *model.OutboxEvent) error
	SelectFn        func(context.Context, int) ([]model.OutboxEvent, error)
	MarkFn          func(context.Context, int64) error
	Appended        []model.OutboxEvent
	Pending         []model.OutboxEvent
	MarkedPublished []int64
}

// Append records the event for later assertions.
func (s *OutboxRepositoryStub) Append(ctx context.Context, event *model.OutboxEvent) error {
	if s.AppendFn != nil {
		return s.AppendFn(ctx, event)
	}
	stored := *event
	stored.ID = int64(len(s.Appended) + 1)
	s.Appended = append(s.Appended, stored)
	return nil
}

// SelectBatchForDispatch returns the configured pending events.
func (s *OutboxRepositoryStub) SelectBatchForDispatch(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	if s.SelectFn != nil {
		return s.SelectFn(ctx, limit)
	}
	if limit > len(s.Pending) {
		limit = len(s.Pending)
	}
	batch := s.Pending[:limit]
	s.Pending = s.Pending[limit:]
	return batch, nil
}

// MarkPublished records the event identifier.
func (s *OutboxRepositoryStub) MarkPublished(ctx context.Context, id int64) error {
	if s.MarkFn != nil {
		return s.MarkFn(ctx, id)
	}
	s.MarkedPublished = append(s.MarkedPublished, id)
	return nil
}

// NotificationRepositoryStub keeps notifications in a slice.
type NotificationRepositoryStub struct {
	InsertFn   func(context.Context, *model.Notification) (*model.Notification, error)
	ListFn     func(context.Context, int64) ([]model.Notification, error)
	MarkReadFn func(context.Context, int64, int64) error
	Items      []model.Notification
}

// Insert appends the record and returns it with a generated identifier.
func (s *NotificationRepositoryStub) Insert(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if s.InsertFn != nil {
		return s.InsertFn(ctx, n)
	}
	stored := *n
	stored.ID = int64(len(s.Items) + 1)
	s.Items = append(s.Items, stored)
	return &stored, nil
}

// ListByUser returns stored notifications for the user.
func (s *NotificationRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	var out []model.Notification
	for _, n := range s.Items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

// MarkRead flips the read flag on a stored notification.
func (s *NotificationRepositoryStub) MarkRead(ctx context.Context, id, userID int64) error {
	if s.MarkReadFn != nil {
		return s.MarkReadFn(ctx, id, userID)
	}
	for i := range s.Items {
		if s.Items[i].ID == id && s.Items[i].UserID == userID {
			s.Items[i].Read = true
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// RequestRepositoryStub serves canned requests for graph wiring tests.
type RequestRepositoryStub struct {
	Requests []model.Request
	Err      error
}

// Create echoes the request with a generated identifier.
func (s *RequestRepositoryStub) Create(ctx context.Context, req *model.Request) (*model.Request, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *req
	stored.ID = int64(len(s.Requests) + 1)
	s.Requests = append(s.Requests, stored)
	return &stored, nil
}

// GetByID returns the matching request or not found.
func (s *RequestRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Request, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, r := range s.Requests {
		if r.ID == id {
			item := r
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListOfferable returns every stored request.
func (s *RequestRepositoryStub) ListOfferable(ctx context.Context) ([]model.Request, error) {
	return s.Requests, s.Err
}

// ListByUser filters stored requests by owner.
func (s *RequestRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Request, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Request
	for _, r := range s.Requests {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// UpdateStatus overwrites the stored request status.
func (s *RequestRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) error {
	for i := range s.Requests {
		if s.Requests[i].ID == id {
			s.Requests[i].Status = status
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// SetOrder links or unlinks the active order.
func (s *RequestRepositoryStub) SetOrder(ctx context.Context, id int64, orderID *int64) error {
	for i := range s.Requests {
		if s.Requests[i].ID == id {
			s.Requests[i].OrderID = orderID
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// OfferRepositoryStub serves canned offers.
type OfferRepositoryStub struct {
	Offers []model.Offer
	Err    error
}

// Create echoes the offer with a generated identifier.
func (s *OfferRepositoryStub) Create(ctx context.Context, offer *model.Offer) (*model.Offer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *offer
	stored.ID = int64(len(s.Offers) + 1)
	s.Offers = append(s.Offers, stored)
	return &stored, nil
}

// GetByID returns the matching offer or not found.
func (s *OfferRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Offer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, o := range s.Offers {
		if o.ID == id {
			item := o
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByRequest filters stored offers by request.
func (s *OfferRepositoryStub) ListByRequest(ctx context.Context, requestID int64) ([]model.Offer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Offer
	for _, o := range s.Offers {
		if o.RequestID == requestID {
			out = append(out, o)
		}
	}
	return out, nil
}

// UpdateStatus overwrites the stored offer status.
func (s *OfferRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.OfferStatus) error {
	for i := range s.Offers {
		if s.Offers[i].ID == id {
			s.Offers[i].Status = status
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// OrderRepositoryStub serves canned orders.
type OrderRepositoryStub struct {
	Orders []model.Order
	Err    error
}

// Create echoes the order with a generated identifier.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *order
	stored.ID = int64(len(s.Orders) + 1)
	s.Orders = append(s.Orders, stored)
	return &stored, nil
}

// GetByID returns the matching order or not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, o := range s.Orders {
		if o.ID == id {
			item := o
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetActiveByRequest returns the newest non-cancelled order for the request.
func (s *OrderRepositoryStub) GetActiveByRequest(ctx context.Context, requestID int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := len(s.Orders) - 1; i >= 0; i-- {
		if s.Orders[i].RequestID == requestID && s.Orders[i].Status != model.OrderStatusCancelled {
			item := s.Orders[i]
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateStatus overwrites the stored order status.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			s.Orders[i].Status = status
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// UpdatePaymentStatus overwrites the stored payment status.
func (s *OrderRepositoryStub) UpdatePaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			s.Orders[i].PaymentStatus = status
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// ProcessRepositoryStub serves canned goods processes.
type ProcessRepositoryStub struct {
	Processes []model.GoodsProcess
	Err       error
}

// CreateForOrder opens a process in the initial status.
func (s *ProcessRepositoryStub) CreateForOrder(ctx context.Context, orderID int64) (*model.GoodsProcess, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := model.GoodsProcess{ID: int64(len(s.Processes) + 1), OrderID: orderID, Status: model.ProcessStatusPreinitialized}
	s.Processes = append(s.Processes, stored)
	return &stored, nil
}

// GetByID returns the matching process or not found.
func (s *ProcessRepositoryStub) GetByID(ctx context.Context, id int64) (*model.GoodsProcess, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Processes {
		if p.ID == id {
			item := p
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByOrder returns the process tracking the order.
func (s *ProcessRepositoryStub) GetByOrder(ctx context.Context, orderID int64) (*model.GoodsProcess, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Processes {
		if p.OrderID == orderID {
			item := p
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns every stored process.
func (s *ProcessRepositoryStub) List(ctx context.Context, userID int64) ([]model.GoodsProcess, error) {
	return s.Processes, s.Err
}

// UpdateStatus overwrites the status and appends the audit event.
func (s *ProcessRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.ProcessStatus, event model.ProcessEvent) error {
	for i := range s.Processes {
		if s.Processes[i].ID == id {
			s.Processes[i].Status = status
			s.Processes[i].Events = append(s.Processes[i].Events, event)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// ListEvents returns the audit trail of the process.
func (s *ProcessRepositoryStub) ListEvents(ctx context.Context, processID int64) ([]model.ProcessEvent, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Processes {
		if p.ID == processID {
			return p.Events, nil
		}
	}
	return nil, nil
}

// PickupRepositoryStub serves canned pickups.
type PickupRepositoryStub struct {
	Pickups []model.Pickup
	Err     error
}

// Create stores a scheduled pickup.
func (s *PickupRepositoryStub) Create(ctx context.Context, orderID int64, location string, scheduledAt time.Time, qrToken string) (*model.Pickup, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := model.Pickup{ID: int64(len(s.Pickups) + 1), OrderID: orderID, Location: location, ScheduledAt: scheduledAt, QRToken: qrToken, Status: model.PickupStatusScheduled}
	s.Pickups = append(s.Pickups, stored)
	return &stored, nil
}

// GetByID returns the matching pickup or not found.
func (s *PickupRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Pickup, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Pickups {
		if p.ID == id {
			item := p
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByOrder returns the pickup tied to the order.
func (s *PickupRepositoryStub) GetByOrder(ctx context.Context, orderID int64) (*model.Pickup, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Pickups {
		if p.OrderID == orderID {
			item := p
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateStatus overwrites the stored pickup status.
func (s *PickupRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.PickupStatus) error {
	for i := range s.Pickups {
		if s.Pickups[i].ID == id {
			s.Pickups[i].Status = status
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// SponsorshipRepositoryStub serves canned sponsorship listings.
type SponsorshipRepositoryStub struct {
	Sponsorships []model.Sponsorship
	Err          error
}

// Create echoes the sponsorship with a generated identifier.
func (s *SponsorshipRepositoryStub) Create(ctx context.Context, sp *model.Sponsorship) (*model.Sponsorship, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *sp
	stored.ID = int64(len(s.Sponsorships) + 1)
	s.Sponsorships = append(s.Sponsorships, stored)
	return &stored, nil
}

// GetByID returns the matching sponsorship or not found.
func (s *SponsorshipRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Sponsorship, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, sp := range s.Sponsorships {
		if sp.ID == id {
			item := sp
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListActive returns listings flagged active.
func (s *SponsorshipRepositoryStub) ListActive(ctx context.Context) ([]model.Sponsorship, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Sponsorship
	for _, sp := range s.Sponsorships {
		if sp.Active {
			out = append(out, sp)
		}
	}
	return out, nil
}

// SponsorshipProcessRepositoryStub serves canned purchase processes.
type SponsorshipProcessRepositoryStub struct {
	Processes []model.SponsorshipProcess
	Err       error
}

// Create opens a process in the initial status.
func (s *SponsorshipProcessRepositoryStub) Create(ctx context.Context, sponsorshipID, buyerID int64) (*model.SponsorshipProcess, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := model.SponsorshipProcess{ID: int64(len(s.Processes) + 1), SponsorshipID: sponsorshipID, BuyerID: buyerID, Status: model.SponsorshipStatusInitialized}
	s.Processes = append(s.Processes, stored)
	return &stored, nil
}

// GetByID returns the matching process or not found.
func (s *SponsorshipProcessRepositoryStub) GetByID(ctx context.Context, id int64) (*model.SponsorshipProcess, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Processes {
		if p.ID == id {
			item := p
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateStatus overwrites the stored process status.
func (s *SponsorshipProcessRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.SponsorshipStatus) error {
	for i := range s.Processes {
		if s.Processes[i].ID == id {
			s.Processes[i].Status = status
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// SetVerificationImage stores the delivery proof reference.
func (s *SponsorshipProcessRepositoryStub) SetVerificationImage(ctx context.Context, id int64, image string) error {
	for i := range s.Processes {
		if s.Processes[i].ID == id {
			s.Processes[i].VerificationImage = image
			return nil
		}
	}
	return domainErrors.ErrNotFound
}
