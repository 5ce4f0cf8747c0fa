package model

import "time"

// EventKind names a lifecycle event emitted through the outbox.
type EventKind string

const (
	EventOfferMade             EventKind = "OFFER_MADE"
	EventOfferAccepted         EventKind = "OFFER_ACCEPTED"
	EventOfferRejected         EventKind = "OFFER_REJECTED"
	EventOfferCancelled        EventKind = "OFFER_CANCELLED"
	EventOrderCancelled        EventKind = "ORDER_CANCELLED"
	EventVerificationSubmitted EventKind = "VERIFICATION_PHOTO_SUBMITTED"
	EventProductConfirmed      EventKind = "PRODUCT_CONFIRMED"
	EventRequestNewPhoto       EventKind = "REQUEST_NEW_PHOTO"
	EventProcessCancelled      EventKind = "PROCESS_CANCELLED"
	// EventProcessStatusChanged is broadcast-only: it drives realtime
	// process tracking but never produces a notification record.
	EventProcessStatusChanged EventKind = "PROCESS_STATUS_CHANGED"
	EventNewRequest           EventKind = "NEW_REQUEST"
)

// OutboxEvent is a pending fan-out record written in the same transaction
// as the state change it describes. The relay worker drains these.
type OutboxEvent struct {
	ID   int64
	Kind EventKind
	// RecipientID is the user the event concerns; zero for broadcast-only kinds.
	RecipientID int64
	// ProcessID keys the realtime room the event is pushed to.
	ProcessID   int64
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// Notification is the client-visible record synthesized from an event.
type Notification struct {
	ID        int64
	UserID    int64
	Type      EventKind
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}

// notificationTexts maps notifiable event kinds to user-facing copy.
var notificationTexts = map[EventKind][2]string{
	EventOfferMade:             {"New offer", "A traveler made an offer on your request"},
	EventOfferAccepted:         {"Offer accepted", "Your offer was accepted"},
	EventOfferRejected:         {"Offer rejected", "Your offer was rejected"},
	EventOfferCancelled:        {"Offer cancelled", "An offer on your request was cancelled"},
	EventOrderCancelled:        {"Order cancelled", "The order was cancelled; the request is open for new offers"},
	EventVerificationSubmitted: {"Delivery photo submitted", "The sponsor submitted a verification photo"},
	EventProductConfirmed:      {"Product confirmed", "The buyer confirmed the delivered product"},
	EventRequestNewPhoto:       {"New photo requested", "The buyer requested another verification photo"},
	EventProcessCancelled:      {"Process cancelled", "The sponsorship process was cancelled"},
}

// NotificationText returns the title and message for a kind, and whether
// the kind produces a notification at all.
func NotificationText(kind EventKind) (title, message string, ok bool) {
	texts, ok := notificationTexts[kind]
	if !ok {
		return "", "", false
	}
	return texts[0], texts[1], true
}
