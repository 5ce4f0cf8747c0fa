package usecase

import (
	"context"
	"log/slog"
	"strings"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/domain/model"
	"github.com/wassalha/wassalha/internal/domain/repository"
)

// RequestUseCase encapsulates delivery request lifecycle logic.
type RequestUseCase struct {
	requests repository.RequestRepository
	orders   repository.OrderRepository
	outbox   repository.OutboxRepository
	logger   *slog.Logger
}

// NewRequestUseCase constructs RequestUseCase.
func NewRequestUseCase(requests repository.RequestRepository, orders repository.OrderRepository, outbox repository.OutboxRepository, logger *slog.Logger) *RequestUseCase {
	return &RequestUseCase{requests: requests, orders: orders, outbox: outbox, logger: logger}
}

// Create registers a new delivery request in pending state.
func (u *RequestUseCase) Create(ctx context.Context, userID int64, goodsName string, quantity int, origin, destination string) (*model.Request, error) {
	if userID <= 0 || strings.TrimSpace(goodsName) == "" || quantity <= 0 {
		return nil, domainErrors.ErrMissingField
	}

	created, err := u.requests.Create(ctx, &model.Request{
		UserID:      userID,
		GoodsName:   strings.TrimSpace(goodsName),
		Quantity:    quantity,
		Origin:      origin,
		Destination: destination,
		Status:      model.RequestStatusPending,
	})
	if err != nil {
		return nil, err
	}

	if err := emitEvent(ctx, u.outbox, model.EventNewRequest, 0, 0, created); err != nil {
		u.logger.Error("emit new request event failed", slog.String("error", err.Error()))
	}

	return created, nil
}

// Get returns one request by identifier.
func (u *RequestUseCase) Get(ctx context.Context, id int64) (*model.Request, error) {
	return u.requests.GetByID(ctx, id)
}

// ListOfferable returns pending requests still open for offers.
func (u *RequestUseCase) ListOfferable(ctx context.Context) ([]model.Request, error) {
	return u.requests.ListOfferable(ctx)
}

// ListByUser returns the requests created by a user.
func (u *RequestUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Request, error) {
	return u.requests.ListByUser(ctx, userID)
}
