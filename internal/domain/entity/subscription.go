package entity

import (
	"time"
)

// Subscription registers one recipient's interest in a flight key. The
// (RecipientID, Key) pair is the composite primary key: re-subscribing
// replaces the row instead of duplicating it. Recipient identifiers are
// opaque to the core; the transport layer owns their addressing scheme.
type Subscription struct {
	RecipientID string
	Key         FlightKey
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SubscriptionGroup is the set of recipients sharing one flight key. Groups
// are derived at query time so that exactly one upstream check serves every
// subscriber of a flight; they are never stored.
type SubscriptionGroup struct {
	Key        FlightKey
	Recipients []string
}
