package model

// Role is the viewer's relation to a delivery transaction.
type Role string

const (
	RoleRequester Role = "requester"
	RoleTraveler  Role = "traveler"
	RoleNone      Role = "none"
)

// ResolveRole derives the viewer's role from the request and order records.
// It is the only place role is computed; callers must not compare IDs inline.
func ResolveRole(userID int64, request *Request, order *Order) Role {
	if request != nil && request.UserID == userID {
		return RoleRequester
	}
	if order != nil && order.TravelerID == userID {
		return RoleTraveler
	}
	return RoleNone
}

// Route names the client destination for a (status, role) pair.
type Route string

const (
	RouteInitialization      Route = "initialization"
	RouteVerification        Route = "verification"
	RoutePayment             Route = "payment"
	RoutePaymentConfirmation Route = "payment-confirmation"
	RoutePickup              Route = "pickup"
	RouteHome                Route = "home"
	// RouteUnimplemented marks (status, role) pairs whose real destination
	// has not been wired yet. Kept explicit so clients can distinguish
	// "nothing to do here" from a missing table entry.
	RouteUnimplemented Route = "unimplemented"
)

// processRoutes is a two-dimensional lookup: the same status deliberately
// routes each role to a different task (at PAID the requester reviews the
// payment while the traveler prepares the pickup), so the table must not be
// collapsed into a single status dimension.
var processRoutes = map[Role]map[ProcessStatus]Route{
	RoleRequester: {
		ProcessStatusPreinitialized: RouteInitialization,
		ProcessStatusInitialized:    RouteVerification,
		ProcessStatusConfirmed:      RoutePayment,
		ProcessStatusPaid:           RoutePaymentConfirmation,
		ProcessStatusInTransit:      RouteUnimplemented,
		ProcessStatusPickupMeet:     RoutePickup,
		ProcessStatusFinalized:      RouteUnimplemented,
		ProcessStatusCancelled:      RouteUnimplemented,
	},
	RoleTraveler: {
		ProcessStatusPreinitialized: RouteInitialization,
		ProcessStatusInitialized:    RouteVerification,
		ProcessStatusConfirmed:      RouteUnimplemented,
		ProcessStatusPaid:           RoutePickup,
		ProcessStatusInTransit:      RouteUnimplemented,
		ProcessStatusPickupMeet:     RoutePickup,
		ProcessStatusFinalized:      RouteUnimplemented,
		ProcessStatusCancelled:      RouteUnimplemented,
	},
}

// RouteFor returns the destination for the viewer at the given status.
// Viewers with no role, and statuses missing from the table, land on home.
func RouteFor(status ProcessStatus, role Role) Route {
	byStatus, ok := processRoutes[role]
	if !ok {
		return RouteHome
	}
	route, ok := byStatus[status]
	if !ok {
		return RouteHome
	}
	return route
}
