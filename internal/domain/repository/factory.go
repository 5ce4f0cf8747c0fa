package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Requests() RequestRepository
	Offers() OfferRepository
	Orders() OrderRepository
	Processes() ProcessRepository
	Pickups() PickupRepository
	Sponsorships() SponsorshipRepository
	SponsorshipProcesses() SponsorshipProcessRepository
	Notifications() NotificationRepository
	Outbox() OutboxRepository
}
