package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/domain/model"
	"github.com/wassalha/wassalha/internal/domain/repository"
)

// SponsorshipUseCase owns the sponsorship purchase workflow. It runs in a
// value space parallel to the goods process and is deliberately not unified
// with it.
type SponsorshipUseCase struct {
	sponsorships repository.SponsorshipRepository
	processes    repository.SponsorshipProcessRepository
	outbox       repository.OutboxRepository
	payments     PaymentProvider
	logger       *slog.Logger
}

// NewSponsorshipUseCase constructs SponsorshipUseCase.
func NewSponsorshipUseCase(
	sponsorships repository.SponsorshipRepository,
	processes repository.SponsorshipProcessRepository,
	outbox repository.OutboxRepository,
	payments PaymentProvider,
	logger *slog.Logger,
) *SponsorshipUseCase {
	return &SponsorshipUseCase{sponsorships: sponsorships, processes: processes, outbox: outbox, payments: payments, logger: logger}
}

// Initiate opens a purchase process for a buyer. The sponsor id is returned
// alongside so clients can join the right realtime room without another fetch.
func (u *SponsorshipUseCase) Initiate(ctx context.Context, buyerID, sponsorshipID int64) (*model.SponsorshipProcess, int64, error) {
	if buyerID <= 0 || sponsorshipID <= 0 {
		return nil, 0, domainErrors.ErrMissingField
	}

	sponsorship, err := u.sponsorships.GetByID(ctx, sponsorshipID)
	if err != nil {
		return nil, 0, err
	}
	if !sponsorship.Active {
		return nil, 0, domainErrors.ErrNotFound
	}

	process, err := u.processes.Create(ctx, sponsorshipID, buyerID)
	if err != nil {
		return nil, 0, err
	}

	return process, sponsorship.SponsorID, nil
}

// UpdateStatus applies one transition of the sponsorship flow, enforcing
// both the transition table and the per-status role gate: the sponsor
// answers the initial request, the buyer pays and confirms, either party
// may cancel.
func (u *SponsorshipUseCase) UpdateStatus(ctx context.Context, actingUserID, processID int64, target model.SponsorshipStatus) (*model.SponsorshipProcess, error) {
	if actingUserID <= 0 || processID <= 0 || target == "" {
		return nil, domainErrors.ErrMissingField
	}

	process, err := u.processes.GetByID(ctx, processID)
	if err != nil {
		return nil, err
	}
	sponsorship, err := u.sponsorships.GetByID(ctx, process.SponsorshipID)
	if err != nil {
		return nil, err
	}

	if !process.Status.CanTransitionTo(target) {
		if process.Status.Terminal() {
			return nil, domainErrors.ErrTerminalStatus
		}
		return nil, fmt.Errorf("%w: %s -> %s", domainErrors.ErrInvalidTransition, process.Status, target)
	}

	var eventKind model.EventKind
	var recipient int64

	switch target {
	case model.SponsorshipStatusAccepted, model.SponsorshipStatusRejected:
		if actingUserID != sponsorship.SponsorID {
			return nil, domainErrors.ErrNotAuthorized
		}
	case model.SponsorshipStatusPaid:
		if actingUserID != process.BuyerID {
			return nil, domainErrors.ErrNotAuthorized
		}
		if err := u.payments.Capture(ctx, fmt.Sprintf("sponsorship-%d", process.ID), sponsorship.Price); err != nil {
			return nil, err
		}
	case model.SponsorshipStatusConfirmed:
		if actingUserID != process.BuyerID {
			return nil, domainErrors.ErrNotAuthorized
		}
		eventKind = model.EventProductConfirmed
		recipient = sponsorship.SponsorID
	case model.SponsorshipStatusCancelled:
		if actingUserID != process.BuyerID && actingUserID != sponsorship.SponsorID {
			return nil, domainErrors.ErrNotAuthorized
		}
		eventKind = model.EventProcessCancelled
		recipient = sponsorship.SponsorID
		if actingUserID == sponsorship.SponsorID {
			recipient = process.BuyerID
		}
	default:
		return nil, fmt.Errorf("%w: %s -> %s", domainErrors.ErrInvalidTransition, process.Status, target)
	}

	if err := u.processes.UpdateStatus(ctx, process.ID, target); err != nil {
		return nil, err
	}
	process.Status = target

	if eventKind != "" {
		if err := emitEvent(ctx, u.outbox, eventKind, recipient, process.ID, process); err != nil {
			u.logger.Error("emit sponsorship event failed", slog.String("kind", string(eventKind)), slog.String("error", err.Error()))
		}
	}

	return process, nil
}

// Verify records the sponsor's delivery proof and moves the process to
// DELIVERED. The image reference comes from the upload pipeline; only its
// location is stored here.
func (u *SponsorshipUseCase) Verify(ctx context.Context, actingUserID, processID int64, image string) (*model.SponsorshipProcess, error) {
	if actingUserID <= 0 || processID <= 0 || strings.TrimSpace(image) == "" {
		return nil, domainErrors.ErrMissingField
	}

	process, err := u.processes.GetByID(ctx, processID)
	if err != nil {
		return nil, err
	}
	sponsorship, err := u.sponsorships.GetByID(ctx, process.SponsorshipID)
	if err != nil {
		return nil, err
	}
	if actingUserID != sponsorship.SponsorID {
		return nil, domainErrors.ErrNotAuthorized
	}
	if !process.Status.CanTransitionTo(model.SponsorshipStatusDelivered) {
		return nil, fmt.Errorf("%w: %s -> %s", domainErrors.ErrInvalidTransition, process.Status, model.SponsorshipStatusDelivered)
	}

	if err := u.processes.SetVerificationImage(ctx, process.ID, image); err != nil {
		return nil, err
	}
	if err := u.processes.UpdateStatus(ctx, process.ID, model.SponsorshipStatusDelivered); err != nil {
		return nil, err
	}
	process.Status = model.SponsorshipStatusDelivered
	process.VerificationImage = image

	if err := emitEvent(ctx, u.outbox, model.EventVerificationSubmitted, process.BuyerID, process.ID, process); err != nil {
		u.logger.Error("emit verification event failed", slog.String("error", err.Error()))
	}

	return process, nil
}

// RequestNewPhoto rejects the current proof: the process returns to PAID
// and the sponsor is asked for another photo.
func (u *SponsorshipUseCase) RequestNewPhoto(ctx context.Context, actingUserID, processID int64) (*model.SponsorshipProcess, error) {
	if actingUserID <= 0 || processID <= 0 {
		return nil, domainErrors.ErrMissingField
	}

	process, err := u.processes.GetByID(ctx, processID)
	if err != nil {
		return nil, err
	}
	if actingUserID != process.BuyerID {
		return nil, domainErrors.ErrNotAuthorized
	}
	if !process.Status.CanTransitionTo(model.SponsorshipStatusPaid) {
		return nil, fmt.Errorf("%w: %s -> %s", domainErrors.ErrInvalidTransition, process.Status, model.SponsorshipStatusPaid)
	}

	sponsorship, err := u.sponsorships.GetByID(ctx, process.SponsorshipID)
	if err != nil {
		return nil, err
	}

	if err := u.processes.UpdateStatus(ctx, process.ID, model.SponsorshipStatusPaid); err != nil {
		return nil, err
	}
	process.Status = model.SponsorshipStatusPaid

	if err := emitEvent(ctx, u.outbox, model.EventRequestNewPhoto, sponsorship.SponsorID, process.ID, process); err != nil {
		u.logger.Error("emit new photo event failed", slog.String("error", err.Error()))
	}

	return process, nil
}

// Get returns one sponsorship process.
func (u *SponsorshipUseCase) Get(ctx context.Context, id int64) (*model.SponsorshipProcess, error) {
	return u.processes.GetByID(ctx, id)
}

// ListActive returns sponsorships open for purchase.
func (u *SponsorshipUseCase) ListActive(ctx context.Context) ([]model.Sponsorship, error) {
	return u.sponsorships.ListActive(ctx)
}
