package model

import "time"

// User represents a registered marketplace participant. The same account
// may act as requester, traveler, sponsor or buyer depending on the
// transaction it is viewed against.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
