package usecase

import (
	"context"
	"fmt"
	"log/slog"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/domain/model"
	"github.com/wassalha/wassalha/internal/domain/repository"
)

// PaymentProvider captures held funds when a process reaches PAID.
type PaymentProvider interface {
	Capture(ctx context.Context, reference string, amount float64) error
}

// ProcessUseCase owns the delivery status workflow of orders.
type ProcessUseCase struct {
	processes repository.ProcessRepository
	orders    repository.OrderRepository
	requests  repository.RequestRepository
	outbox    repository.OutboxRepository
	payments  PaymentProvider
	logger    *slog.Logger
}

// NewProcessUseCase constructs ProcessUseCase.
func NewProcessUseCase(
	processes repository.ProcessRepository,
	orders repository.OrderRepository,
	requests repository.RequestRepository,
	outbox repository.OutboxRepository,
	payments PaymentProvider,
	logger *slog.Logger,
) *ProcessUseCase {
	return &ProcessUseCase{processes: processes, orders: orders, requests: requests, outbox: outbox, payments: payments, logger: logger}
}

// Advance moves an order's process to the requested status. Only the
// order's traveler or the request's requester may advance; the target must
// be either the single next status from the forward table or CANCELLED.
func (u *ProcessUseCase) Advance(ctx context.Context, userID, orderID int64, target model.ProcessStatus, note string) (*model.GoodsProcess, error) {
	if userID <= 0 || orderID <= 0 || target == "" {
		return nil, domainErrors.ErrMissingField
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	request, err := u.requests.GetByID(ctx, order.RequestID)
	if err != nil {
		return nil, err
	}
	process, err := u.processes.GetByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	role := model.ResolveRole(userID, request, order)
	if role == model.RoleNone {
		return nil, domainErrors.ErrNotAuthorized
	}

	if target == model.ProcessStatusCancelled {
		return u.cancel(ctx, userID, role, request, order, process, note)
	}

	next, ok := process.Status.Next()
	if !ok {
		return nil, domainErrors.ErrTerminalStatus
	}
	if target != next {
		return nil, fmt.Errorf("%w: %s -> %s", domainErrors.ErrInvalidTransition, process.Status, target)
	}

	if target == model.ProcessStatusPaid {
		if err := u.payments.Capture(ctx, fmt.Sprintf("order-%d", order.ID), order.Price); err != nil {
			return nil, err
		}
		if err := u.orders.UpdatePaymentStatus(ctx, order.ID, model.PaymentStatusCaptured); err != nil {
			return nil, err
		}
	}

	event := model.ProcessEvent{
		ProcessID:       process.ID,
		FromStatus:      process.Status,
		ToStatus:        target,
		ChangedByUserID: userID,
		Note:            note,
	}
	if err := u.processes.UpdateStatus(ctx, process.ID, target, event); err != nil {
		return nil, err
	}
	process.Status = target

	if err := emitEvent(ctx, u.outbox, model.EventProcessStatusChanged, 0, process.ID, process); err != nil {
		u.logger.Error("emit status changed event failed", slog.String("error", err.Error()))
	}

	return process, nil
}

// cancel handles the out-of-band CANCELLED transition: allowed from any
// non-terminal status, releases the request back into the offerable pool
// and keeps the acting user on the audit trail.
func (u *ProcessUseCase) cancel(ctx context.Context, userID int64, role model.Role, request *model.Request, order *model.Order, process *model.GoodsProcess, note string) (*model.GoodsProcess, error) {
	if !process.Status.Cancellable() {
		return nil, domainErrors.ErrTerminalStatus
	}

	event := model.ProcessEvent{
		ProcessID:       process.ID,
		FromStatus:      process.Status,
		ToStatus:        model.ProcessStatusCancelled,
		ChangedByUserID: userID,
		Note:            note,
	}
	if err := u.processes.UpdateStatus(ctx, process.ID, model.ProcessStatusCancelled, event); err != nil {
		return nil, err
	}
	process.Status = model.ProcessStatusCancelled

	if err := u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusCancelled); err != nil {
		return nil, err
	}
	if err := u.requests.UpdateStatus(ctx, request.ID, model.RequestStatusPending); err != nil {
		u.logger.Error("reopen request failed", slog.Int64("request", request.ID), slog.String("error", err.Error()))
	}

	// Notify the counterparty, not the actor.
	recipient := request.UserID
	if role == model.RoleRequester {
		recipient = order.TravelerID
	}
	if err := emitEvent(ctx, u.outbox, model.EventOrderCancelled, recipient, process.ID, process); err != nil {
		u.logger.Error("emit order cancelled event failed", slog.String("error", err.Error()))
	}
	if err := emitEvent(ctx, u.outbox, model.EventProcessStatusChanged, 0, process.ID, process); err != nil {
		u.logger.Error("emit status changed event failed", slog.String("error", err.Error()))
	}

	return process, nil
}

// Get returns one process with its audit trail.
func (u *ProcessUseCase) Get(ctx context.Context, id int64) (*model.GoodsProcess, error) {
	process, err := u.processes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	events, err := u.processes.ListEvents(ctx, id)
	if err != nil {
		return nil, err
	}
	process.Events = events
	return process, nil
}

// List returns the processes visible to a user as requester or traveler.
func (u *ProcessUseCase) List(ctx context.Context, userID int64) ([]model.GoodsProcess, error) {
	return u.processes.List(ctx, userID)
}

// Route resolves the viewer's destination screen for a process.
func (u *ProcessUseCase) Route(ctx context.Context, userID, processID int64) (model.Route, error) {
	process, err := u.processes.GetByID(ctx, processID)
	if err != nil {
		return "", err
	}
	order, err := u.orders.GetByID(ctx, process.OrderID)
	if err != nil {
		return "", err
	}
	request, err := u.requests.GetByID(ctx, order.RequestID)
	if err != nil {
		return "", err
	}

	role := model.ResolveRole(userID, request, order)
	return model.RouteFor(process.Status, role), nil
}
