package model

// ProcessStatus describes the delivery lifecycle of a goods order.
type ProcessStatus string

const (
	ProcessStatusPreinitialized ProcessStatus = "PREINITIALIZED"
	ProcessStatusInitialized    ProcessStatus = "INITIALIZED"
	ProcessStatusConfirmed      ProcessStatus = "CONFIRMED"
	ProcessStatusPaid           ProcessStatus = "PAID"
	ProcessStatusInTransit      ProcessStatus = "IN_TRANSIT"
	ProcessStatusPickupMeet     ProcessStatus = "PICKUP_MEET"
	ProcessStatusFinalized      ProcessStatus = "FINALIZED"
	ProcessStatusCancelled      ProcessStatus = "CANCELLED"
)

// forwardTransitions is the single source of truth for advancing a process.
// CANCELLED is reachable from any non-terminal status through an explicit
// cancel action and therefore never appears as a value here.
var forwardTransitions = map[ProcessStatus]ProcessStatus{
	ProcessStatusPreinitialized: ProcessStatusInitialized,
	ProcessStatusInitialized:    ProcessStatusConfirmed,
	ProcessStatusConfirmed:      ProcessStatusPaid,
	ProcessStatusPaid:           ProcessStatusInTransit,
	ProcessStatusInTransit:      ProcessStatusPickupMeet,
	ProcessStatusPickupMeet:     ProcessStatusFinalized,
}

// Next returns the designated next status. Terminal and unknown statuses
// have no next status.
func (s ProcessStatus) Next() (ProcessStatus, bool) {
	next, ok := forwardTransitions[s]
	return next, ok
}

// Terminal reports whether no further transitions are possible.
func (s ProcessStatus) Terminal() bool {
	return s == ProcessStatusFinalized || s == ProcessStatusCancelled
}

// Cancellable reports whether an explicit cancel action is still allowed.
func (s ProcessStatus) Cancellable() bool {
	return s.Valid() && !s.Terminal()
}

// Valid reports whether the status belongs to the defined set.
func (s ProcessStatus) Valid() bool {
	switch s {
	case ProcessStatusPreinitialized, ProcessStatusInitialized, ProcessStatusConfirmed,
		ProcessStatusPaid, ProcessStatusInTransit, ProcessStatusPickupMeet,
		ProcessStatusFinalized, ProcessStatusCancelled:
		return true
	}
	return false
}

// ProcessStatuses lists every status in forward order, cancelled last.
func ProcessStatuses() []ProcessStatus {
	return []ProcessStatus{
		ProcessStatusPreinitialized,
		ProcessStatusInitialized,
		ProcessStatusConfirmed,
		ProcessStatusPaid,
		ProcessStatusInTransit,
		ProcessStatusPickupMeet,
		ProcessStatusFinalized,
		ProcessStatusCancelled,
	}
}

// SponsorshipStatus describes the lifecycle of a sponsorship purchase.
// It is a separate value space from ProcessStatus: the two marketplace
// verticals run parallel, not unified, workflows.
type SponsorshipStatus string

const (
	SponsorshipStatusInitialized SponsorshipStatus = "INITIALIZED"
	SponsorshipStatusAccepted    SponsorshipStatus = "ACCEPTED"
	SponsorshipStatusRejected    SponsorshipStatus = "REJECTED"
	SponsorshipStatusPaid        SponsorshipStatus = "PAID"
	SponsorshipStatusDelivered   SponsorshipStatus = "DELIVERED"
	SponsorshipStatusConfirmed   SponsorshipStatus = "CONFIRMED"
	SponsorshipStatusCancelled   SponsorshipStatus = "CANCELLED"
)

var sponsorshipTransitions = map[SponsorshipStatus][]SponsorshipStatus{
	SponsorshipStatusInitialized: {SponsorshipStatusAccepted, SponsorshipStatusRejected, SponsorshipStatusCancelled},
	SponsorshipStatusAccepted:    {SponsorshipStatusPaid, SponsorshipStatusCancelled},
	SponsorshipStatusPaid:        {SponsorshipStatusDelivered, SponsorshipStatusCancelled},
	SponsorshipStatusDelivered:   {SponsorshipStatusConfirmed, SponsorshipStatusPaid, SponsorshipStatusCancelled},
	SponsorshipStatusConfirmed:   {},
	SponsorshipStatusRejected:    {},
	SponsorshipStatusCancelled:   {},
}

// CanTransitionTo reports whether moving to the target status is allowed.
func (s SponsorshipStatus) CanTransitionTo(target SponsorshipStatus) bool {
	for _, allowed := range sponsorshipTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Terminal reports whether the sponsorship flow has ended.
func (s SponsorshipStatus) Terminal() bool {
	return s == SponsorshipStatusConfirmed || s == SponsorshipStatusRejected || s == SponsorshipStatusCancelled
}

// RequestStatus describes a shopper's delivery request state.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusAccepted  RequestStatus = "ACCEPTED"
	RequestStatusCancelled RequestStatus = "CANCELLED"
	RequestStatusRejected  RequestStatus = "REJECTED"
)

// OfferStatus describes a traveler's bid state.
type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "PENDING"
	OfferStatusAccepted OfferStatus = "ACCEPTED"
	OfferStatusRejected OfferStatus = "REJECTED"
)

// OrderStatus describes the coarse order state.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// PaymentStatus describes how funds for an order are held.
type PaymentStatus string

const (
	PaymentStatusOnHold   PaymentStatus = "ON_HOLD"
	PaymentStatusCaptured PaymentStatus = "CAPTURED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// PickupStatus describes the state of an in-person handoff.
type PickupStatus string

const (
	PickupStatusScheduled PickupStatus = "SCHEDULED"
	PickupStatusCompleted PickupStatus = "COMPLETED"
	PickupStatusCancelled PickupStatus = "CANCELLED"
)
