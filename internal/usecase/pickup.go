package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/domain/model"
	"github.com/wassalha/wassalha/internal/domain/repository"
)

// qrPayload is the JSON a pickup QR code decodes to.
type qrPayload struct {
	PickupNumber int64 `json:"pickupNumber"`
	OrderNumber  int64 `json:"orderNumber"`
}

// PickupUseCase manages in-person handoffs and their QR confirmation.
type PickupUseCase struct {
	pickups  repository.PickupRepository
	orders   repository.OrderRepository
	requests repository.RequestRepository
	outbox   repository.OutboxRepository
	logger   *slog.Logger
}

// NewPickupUseCase constructs PickupUseCase.
func NewPickupUseCase(
	pickups repository.PickupRepository,
	orders repository.OrderRepository,
	requests repository.RequestRepository,
	outbox repository.OutboxRepository,
	logger *slog.Logger,
) *PickupUseCase {
	return &PickupUseCase{pickups: pickups, orders: orders, requests: requests, outbox: outbox, logger: logger}
}

// requireParty rejects users who are neither the order's traveler nor the
// request's requester. Pickups follow the same gate as status advances.
func (u *PickupUseCase) requireParty(ctx context.Context, userID, orderID int64) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	request, err := u.requests.GetByID(ctx, order.RequestID)
	if err != nil {
		return err
	}
	if model.ResolveRole(userID, request, order) == model.RoleNone {
		return domainErrors.ErrNotAuthorized
	}
	return nil
}

// Schedule creates a pickup for an order with a fresh QR token.
func (u *PickupUseCase) Schedule(ctx context.Context, userID, orderID int64, location string, at time.Time) (*model.Pickup, error) {
	if userID <= 0 || orderID <= 0 || location == "" {
		return nil, domainErrors.ErrMissingField
	}
	if err := u.requireParty(ctx, userID, orderID); err != nil {
		return nil, err
	}
	return u.pickups.Create(ctx, orderID, location, at, uuid.NewString())
}

// UpdateStatus sets a pickup's status directly.
func (u *PickupUseCase) UpdateStatus(ctx context.Context, userID, pickupID int64, status model.PickupStatus) (*model.Pickup, error) {
	if userID <= 0 || pickupID <= 0 || status == "" {
		return nil, domainErrors.ErrMissingField
	}
	pickup, err := u.pickups.GetByID(ctx, pickupID)
	if err != nil {
		return nil, err
	}
	if err := u.requireParty(ctx, userID, pickup.OrderID); err != nil {
		return nil, err
	}
	if err := u.pickups.UpdateStatus(ctx, pickupID, status); err != nil {
		return nil, err
	}
	return u.pickups.GetByID(ctx, pickupID)
}

// ConfirmScan validates a scanned QR payload and completes the pickup. Only
// a party to the pickup's order may confirm. A malformed payload is a
// recoverable scan error; an unknown pickup, a mismatched order and an
// already completed pickup each get their own sentinel so the client can
// show the specific message.
func (u *PickupUseCase) ConfirmScan(ctx context.Context, userID int64, payload []byte) (*model.Pickup, error) {
	var scanned qrPayload
	if err := json.Unmarshal(payload, &scanned); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrMalformedQRPayload, err)
	}
	if scanned.PickupNumber <= 0 || scanned.OrderNumber <= 0 {
		return nil, domainErrors.ErrMalformedQRPayload
	}

	pickup, err := u.pickups.GetByID(ctx, scanned.PickupNumber)
	if err != nil {
		return nil, err
	}
	if err := u.requireParty(ctx, userID, pickup.OrderID); err != nil {
		return nil, err
	}
	if pickup.OrderID != scanned.OrderNumber {
		return nil, domainErrors.ErrPickupMismatch
	}
	if pickup.Status == model.PickupStatusCompleted {
		return nil, domainErrors.ErrPickupCompleted
	}

	if err := u.pickups.UpdateStatus(ctx, pickup.ID, model.PickupStatusCompleted); err != nil {
		return nil, err
	}
	pickup.Status = model.PickupStatusCompleted

	if err := emitEvent(ctx, u.outbox, model.EventProcessStatusChanged, 0, pickup.OrderID, pickup); err != nil {
		u.logger.Error("emit pickup completed event failed", slog.String("error", err.Error()))
	}

	return pickup, nil
}
