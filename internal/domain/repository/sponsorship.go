package repository

import (
	"context"

	"github.com/wassalha/wassalha/internal/domain/model"
)

// SponsorshipRepository describes persistence operations with sponsorship listings.
type SponsorshipRepository interface {
	Create(ctx context.Context, s *model.Sponsorship) (*model.Sponsorship, error)
	GetByID(ctx context.Context, id int64) (*model.Sponsorship, error)
	ListActive(ctx context.Context) ([]model.Sponsorship, error)
}

// SponsorshipProcessRepository describes persistence operations with sponsorship purchases.
type SponsorshipProcessRepository interface {
	Create(ctx context.Context, sponsorshipID, buyerID int64) (*model.SponsorshipProcess, error)
	GetByID(ctx context.Context, id int64) (*model.SponsorshipProcess, error)
	UpdateStatus(ctx context.Context, id int64, status model.SponsorshipStatus) error
	SetVerificationImage(ctx context.Context, id int64, image string) error
}
