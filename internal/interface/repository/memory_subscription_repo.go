package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
)

type memoryRow struct {
	recipientID string
	key         entity.FlightKey
}

// MemorySubscriptionRepository is a mutex-guarded in-memory implementation
// of SubscriptionRepository with the same contract as the Mongo one. It
// backs local runs without a database and the usecase tests.
type MemorySubscriptionRepository struct {
	mu   sync.RWMutex
	rows map[memoryRow]*entity.Subscription
}

// NewMemorySubscriptionRepository creates an empty in-memory repository
func NewMemorySubscriptionRepository() *MemorySubscriptionRepository {
	return &MemorySubscriptionRepository{
		rows: make(map[memoryRow]*entity.Subscription),
	}
}

// Upsert creates or replaces a subscription by its composite primary key
func (r *MemorySubscriptionRepository) Upsert(ctx context.Context, sub *entity.Subscription) error {
	if err := sub.Key.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := memoryRow{recipientID: sub.RecipientID, key: sub.Key}
	now := time.Now()
	if existing, ok := r.rows[id]; ok {
		r.rows[id] = &entity.Subscription{
			RecipientID: sub.RecipientID,
			Key:         sub.Key,
			CreatedAt:   existing.CreatedAt,
			UpdatedAt:   now,
		}
		return nil
	}
	r.rows[id] = &entity.Subscription{
		RecipientID: sub.RecipientID,
		Key:         sub.Key,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return nil
}

// RecipientsFor returns every recipient subscribed to exactly that key
func (r *MemorySubscriptionRepository) RecipientsFor(ctx context.Context, key entity.FlightKey) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var recipients []string
	for id := range r.rows {
		if id.key == key {
			recipients = append(recipients, id.recipientID)
		}
	}
	sort.Strings(recipients)
	return recipients, nil
}

// GroupedActive returns one group per distinct key with date >= asOf,
// ordered lexicographically by key components
func (r *MemorySubscriptionRepository) GroupedActive(ctx context.Context, asOf time.Time) ([]*entity.SubscriptionGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byKey := make(map[entity.FlightKey][]string)
	for id := range r.rows {
		if id.key.ActiveOn(asOf) {
			byKey[id.key] = append(byKey[id.key], id.recipientID)
		}
	}

	keys := make([]entity.FlightKey, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Airline != b.Airline {
			return a.Airline < b.Airline
		}
		if a.FlightNumber != b.FlightNumber {
			return a.FlightNumber < b.FlightNumber
		}
		return a.FlightDate < b.FlightDate
	})

	groups := make([]*entity.SubscriptionGroup, 0, len(keys))
	for _, key := range keys {
		recipients := byKey[key]
		sort.Strings(recipients)
		groups = append(groups, &entity.SubscriptionGroup{Key: key, Recipients: recipients})
	}
	return groups, nil
}

// Delete removes one subscription row
func (r *MemorySubscriptionRepository) Delete(ctx context.Context, recipientID string, key entity.FlightKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, memoryRow{recipientID: recipientID, key: key})
	return nil
}

var _ repository.SubscriptionRepository = (*MemorySubscriptionRepository)(nil)
