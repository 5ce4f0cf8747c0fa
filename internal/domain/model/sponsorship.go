package model

import "time"

// Sponsorship is a digital-service access sale listed by a sponsor.
type Sponsorship struct {
	ID          int64
	SponsorID   int64
	Platform    string
	Description string
	Price       float64
	Active      bool
	CreatedAt   time.Time
}

// SponsorshipProcess tracks one buyer's purchase of a sponsorship.
// Linked sponsorship and user records are fetched separately, not embedded.
type SponsorshipProcess struct {
	ID            int64
	SponsorshipID int64
	BuyerID       int64
	Status        SponsorshipStatus
	// VerificationImage references the delivery proof uploaded by the sponsor.
	VerificationImage string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
