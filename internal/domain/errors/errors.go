package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNotAuthorized       = errors.New("not authorized for this transaction")
	ErrTerminalStatus      = errors.New("status is terminal")
	ErrInvalidTransition   = errors.New("transition not allowed")
	ErrRequestNotOfferable = errors.New("request is not open for offers")
	ErrOfferNotPending     = errors.New("offer is not pending")
	ErrMalformedQRPayload  = errors.New("malformed QR payload")
	ErrPickupMismatch      = errors.New("scanned pickup does not match order")
	ErrPickupCompleted     = errors.New("pickup already completed")
	ErrMissingField        = errors.New("required field missing")
	ErrPaymentDeclined     = errors.New("payment declined")
)

// OfferAcceptIncompleteError reports the partial failure of the two-phase
// accept-offer operation: the order was created but the offer could not be
// marked accepted. Callers must surface this distinctly from a total
// failure so clients can retry the second phase against the created order.
type OfferAcceptIncompleteError struct {
	OfferID int64
	OrderID int64
	Err     error
}

func (e *OfferAcceptIncompleteError) Error() string {
	return fmt.Sprintf("order %d created but offer %d not marked accepted: %v", e.OrderID, e.OfferID, e.Err)
}

func (e *OfferAcceptIncompleteError) Unwrap() error { return e.Err }
