package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/pkg/metrics"
)

// Prometheus collectors register globally, so every test in this package
// shares one metrics instance.
var testMetrics = metrics.NewMetrics("flightwatch_test")

// fakeMessenger records sends and can be told to fail for chosen recipients.
type fakeMessenger struct {
	mu      sync.Mutex
	sent    map[string][]string
	failFor map[string]bool
}

func newFakeMessenger(failFor ...string) *fakeMessenger {
	fail := make(map[string]bool, len(failFor))
	for _, id := range failFor {
		fail[id] = true
	}
	return &fakeMessenger{
		sent:    make(map[string][]string),
		failFor: fail,
	}
}

func (m *fakeMessenger) SendText(ctx context.Context, recipientID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[recipientID] {
		return errors.New("send rejected")
	}
	m.sent[recipientID] = append(m.sent[recipientID], text)
	return nil
}

func (m *fakeMessenger) sentTo(recipientID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent[recipientID]...)
}

// fakeFetcher returns a canned outcome and records the keys it was asked
// about. When blockUntil is set, Fetch waits on it, which lets tests hold a
// poll cycle open.
type fakeFetcher struct {
	mu         sync.Mutex
	outcome    entity.StatusOutcome
	calls      []entity.FlightKey
	started    chan struct{}
	blockUntil chan struct{}
}

func (f *fakeFetcher) Fetch(ctx context.Context, key entity.FlightKey) entity.StatusOutcome {
	f.mu.Lock()
	f.calls = append(f.calls, key)
	started := f.started
	f.started = nil
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if f.blockUntil != nil {
		<-f.blockUntil
	}

	outcome := f.outcome
	outcome.Key = key
	return outcome
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func scheduledOutcome() entity.StatusOutcome {
	return entity.StatusOutcome{
		Category:  entity.StatusScheduled,
		RawStatus: "On Time, Scheduled",
		Departure: entity.FlightLeg{Airport: "JFK", ScheduledTime: "08:30"},
		Arrival:   entity.FlightLeg{Airport: "LAX", ScheduledTime: "11:45"},
	}
}

// failingSubscriptionRepo simulates a persistence outage.
type failingSubscriptionRepo struct{}

func (failingSubscriptionRepo) Upsert(ctx context.Context, sub *entity.Subscription) error {
	if err := sub.Key.Validate(); err != nil {
		return err
	}
	return entity.ErrStoreUnavailable
}

func (failingSubscriptionRepo) RecipientsFor(ctx context.Context, key entity.FlightKey) ([]string, error) {
	return nil, entity.ErrStoreUnavailable
}

func (failingSubscriptionRepo) GroupedActive(ctx context.Context, asOf time.Time) ([]*entity.SubscriptionGroup, error) {
	return nil, entity.ErrStoreUnavailable
}

func (failingSubscriptionRepo) Delete(ctx context.Context, recipientID string, key entity.FlightKey) error {
	return entity.ErrStoreUnavailable
}

// fakeAirlineRepo resolves a fixed code/name table.
type fakeAirlineRepo struct {
	byCode map[string]string
	byName map[string]string
}

func (r *fakeAirlineRepo) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	if name, ok := r.byCode[code]; ok {
		return &entity.Airline{Code: code, Name: name}, nil
	}
	return nil, errors.New("airline not found")
}

func (r *fakeAirlineRepo) GetByName(ctx context.Context, name string) (*entity.Airline, error) {
	if canonical, ok := r.byName[name]; ok {
		return &entity.Airline{Name: canonical}, nil
	}
	return nil, errors.New("airline not found")
}
