package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/domain/model"
	"github.com/wassalha/wassalha/internal/domain/repository"
)

// OfferUseCase encapsulates traveler bid logic, including the two-phase
// accept operation that turns an offer into an order.
type OfferUseCase struct {
	offers    repository.OfferRepository
	requests  repository.RequestRepository
	orders    repository.OrderRepository
	processes repository.ProcessRepository
	outbox    repository.OutboxRepository
	logger    *slog.Logger
}

// NewOfferUseCase constructs OfferUseCase.
func NewOfferUseCase(
	offers repository.OfferRepository,
	requests repository.RequestRepository,
	orders repository.OrderRepository,
	processes repository.ProcessRepository,
	outbox repository.OutboxRepository,
	logger *slog.Logger,
) *OfferUseCase {
	return &OfferUseCase{offers: offers, requests: requests, orders: orders, processes: processes, outbox: outbox, logger: logger}
}

// Make places a traveler's bid on an open request.
func (u *OfferUseCase) Make(ctx context.Context, travelerID, requestID int64, price float64, estimatedDelivery time.Time, notes string) (*model.Offer, error) {
	if travelerID <= 0 || requestID <= 0 || price <= 0 {
		return nil, domainErrors.ErrMissingField
	}

	request, err := u.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	active, err := u.activeOrder(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !request.Offerable(active) {
		return nil, domainErrors.ErrRequestNotOfferable
	}

	offer, err := u.offers.Create(ctx, &model.Offer{
		RequestID:             requestID,
		TravelerID:            travelerID,
		Price:                 price,
		EstimatedDeliveryDate: estimatedDelivery,
		Status:                model.OfferStatusPending,
		Notes:                 notes,
	})
	if err != nil {
		return nil, err
	}

	if err := emitEvent(ctx, u.outbox, model.EventOfferMade, request.UserID, 0, offer); err != nil {
		u.logger.Error("emit offer made event failed", slog.String("error", err.Error()))
	}

	return offer, nil
}

// Accept runs the two-phase accept: create the order, then mark the offer
// accepted. The two calls are deliberately not one transaction; if the
// second fails the caller receives OfferAcceptIncompleteError carrying the
// created order so the client can retry just the second phase.
func (u *OfferUseCase) Accept(ctx context.Context, actingUserID, offerID int64) (*model.Order, error) {
	if actingUserID <= 0 || offerID <= 0 {
		return nil, domainErrors.ErrMissingField
	}

	offer, err := u.offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.Status != model.OfferStatusPending {
		return nil, domainErrors.ErrOfferNotPending
	}

	request, err := u.requests.GetByID(ctx, offer.RequestID)
	if err != nil {
		return nil, err
	}
	if request.UserID != actingUserID {
		return nil, domainErrors.ErrNotAuthorized
	}

	active, err := u.activeOrder(ctx, request.ID)
	if err != nil {
		return nil, err
	}
	if !request.Offerable(active) {
		return nil, domainErrors.ErrRequestNotOfferable
	}

	order, err := u.orders.Create(ctx, &model.Order{
		OfferID:               offer.ID,
		RequestID:             offer.RequestID,
		TravelerID:            offer.TravelerID,
		Price:                 offer.Price,
		EstimatedDeliveryDate: offer.EstimatedDeliveryDate,
		Status:                model.OrderStatusPending,
		PaymentStatus:         model.PaymentStatusOnHold,
	})
	if err != nil {
		return nil, err
	}

	if err := u.offers.UpdateStatus(ctx, offer.ID, model.OfferStatusAccepted); err != nil {
		return nil, &domainErrors.OfferAcceptIncompleteError{OfferID: offer.ID, OrderID: order.ID, Err: err}
	}

	u.finishAccept(ctx, offer, order)
	return order, nil
}

// RetryAccept completes an accept that failed after order creation.
func (u *OfferUseCase) RetryAccept(ctx context.Context, actingUserID, offerID, orderID int64) (*model.Order, error) {
	if actingUserID <= 0 || offerID <= 0 || orderID <= 0 {
		return nil, domainErrors.ErrMissingField
	}

	offer, err := u.offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	request, err := u.requests.GetByID(ctx, offer.RequestID)
	if err != nil {
		return nil, err
	}
	if request.UserID != actingUserID {
		return nil, domainErrors.ErrNotAuthorized
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.OfferID != offer.ID {
		return nil, domainErrors.ErrNotFound
	}

	if offer.Status != model.OfferStatusAccepted {
		if err := u.offers.UpdateStatus(ctx, offer.ID, model.OfferStatusAccepted); err != nil {
			return nil, &domainErrors.OfferAcceptIncompleteError{OfferID: offer.ID, OrderID: order.ID, Err: err}
		}
	}

	u.finishAccept(ctx, offer, order)
	return order, nil
}

// Reject turns down a pending offer on the requester's behalf.
func (u *OfferUseCase) Reject(ctx context.Context, actingUserID, offerID int64) error {
	if actingUserID <= 0 || offerID <= 0 {
		return domainErrors.ErrMissingField
	}

	offer, err := u.offers.GetByID(ctx, offerID)
	if err != nil {
		return err
	}
	if offer.Status != model.OfferStatusPending {
		return domainErrors.ErrOfferNotPending
	}

	request, err := u.requests.GetByID(ctx, offer.RequestID)
	if err != nil {
		return err
	}
	if request.UserID != actingUserID {
		return domainErrors.ErrNotAuthorized
	}

	if err := u.offers.UpdateStatus(ctx, offer.ID, model.OfferStatusRejected); err != nil {
		return err
	}

	if err := emitEvent(ctx, u.outbox, model.EventOfferRejected, offer.TravelerID, 0, offer); err != nil {
		u.logger.Error("emit offer rejected event failed", slog.String("error", err.Error()))
	}
	return nil
}

// Withdraw lets a traveler pull back their own pending offer.
func (u *OfferUseCase) Withdraw(ctx context.Context, travelerID, offerID int64) error {
	if travelerID <= 0 || offerID <= 0 {
		return domainErrors.ErrMissingField
	}

	offer, err := u.offers.GetByID(ctx, offerID)
	if err != nil {
		return err
	}
	if offer.TravelerID != travelerID {
		return domainErrors.ErrNotAuthorized
	}
	if offer.Status != model.OfferStatusPending {
		return domainErrors.ErrOfferNotPending
	}

	if err := u.offers.UpdateStatus(ctx, offer.ID, model.OfferStatusRejected); err != nil {
		return err
	}

	request, err := u.requests.GetByID(ctx, offer.RequestID)
	if err != nil {
		return err
	}
	if err := emitEvent(ctx, u.outbox, model.EventOfferCancelled, request.UserID, 0, offer); err != nil {
		u.logger.Error("emit offer cancelled event failed", slog.String("error", err.Error()))
	}
	return nil
}

// ListByRequest returns offers placed on a request.
func (u *OfferUseCase) ListByRequest(ctx context.Context, requestID int64) ([]model.Offer, error) {
	return u.offers.ListByRequest(ctx, requestID)
}

func (u *OfferUseCase) activeOrder(ctx context.Context, requestID int64) (*model.Order, error) {
	order, err := u.orders.GetActiveByRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return order, nil
}

// finishAccept runs the follow-ups after both phases succeeded. Each step
// is best effort: the accept itself is already durable.
func (u *OfferUseCase) finishAccept(ctx context.Context, offer *model.Offer, order *model.Order) {
	if err := u.requests.UpdateStatus(ctx, offer.RequestID, model.RequestStatusAccepted); err != nil {
		u.logger.Error("mark request accepted failed", slog.Int64("request", offer.RequestID), slog.String("error", err.Error()))
	}
	orderID := order.ID
	if err := u.requests.SetOrder(ctx, offer.RequestID, &orderID); err != nil {
		u.logger.Error("link order to request failed", slog.Int64("request", offer.RequestID), slog.String("error", err.Error()))
	}
	if _, err := u.processes.GetByOrder(ctx, order.ID); errors.Is(err, domainErrors.ErrNotFound) {
		if _, err := u.processes.CreateForOrder(ctx, order.ID); err != nil {
			u.logger.Error("create goods process failed", slog.Int64("order", order.ID), slog.String("error", err.Error()))
		}
	}
	if err := emitEvent(ctx, u.outbox, model.EventOfferAccepted, offer.TravelerID, 0, order); err != nil {
		u.logger.Error("emit offer accepted event failed", slog.String("error", err.Error()))
	}
}
