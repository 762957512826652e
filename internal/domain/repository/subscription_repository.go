package repository

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
)

// SubscriptionRepository defines the interface for subscription storage
// operations. It is the only shared mutable state in the system.
type SubscriptionRepository interface {
	// Upsert inserts or replaces a subscription by its composite
	// (recipient, key) primary key. Calling twice with identical arguments
	// leaves state unchanged. Malformed keys are rejected with
	// entity.ErrInvalidKey; I/O failures wrap entity.ErrStoreUnavailable.
	Upsert(ctx context.Context, sub *entity.Subscription) error

	// RecipientsFor returns every recipient currently subscribed to exactly
	// that key, the caller's own just-inserted subscription included.
	RecipientsFor(ctx context.Context, key entity.FlightKey) ([]string, error)

	// GroupedActive returns one group per distinct key whose date is on or
	// after asOf, each with its full recipient set, ordered
	// lexicographically by key components.
	GroupedActive(ctx context.Context, asOf time.Time) ([]*entity.SubscriptionGroup, error)

	// Delete removes one subscription row. Deleting an absent row is not an
	// error.
	Delete(ctx context.Context, recipientID string, key entity.FlightKey) error
}
