package usecase

import (
	"context"
	"strings"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
)

// Tracker is the core engine behind the subscribe path: it persists the
// subscription, then runs the immediate status check so the new subscriber
// gets feedback without waiting for the next scheduled cycle.
type Tracker struct {
	subscriptionRepo repository.SubscriptionRepository
	airlineRepo      repository.AirlineRepository
	fetcher          StatusFetcher
	notifier         *Notifier
	logger           logger.Logger
}

// NewTracker creates a new tracker. airlineRepo may be nil when no master
// data source is configured; airline names then pass through unchanged.
func NewTracker(
	subscriptionRepo repository.SubscriptionRepository,
	airlineRepo repository.AirlineRepository,
	fetcher StatusFetcher,
	notifier *Notifier,
	logger logger.Logger,
) *Tracker {
	return &Tracker{
		subscriptionRepo: subscriptionRepo,
		airlineRepo:      airlineRepo,
		fetcher:          fetcher,
		notifier:         notifier,
		logger:           logger,
	}
}

// SubmitSubscription validates and stores one (recipient, flight) pair, then
// checks the flight once and notifies everyone tracking it, the new
// subscriber included. Only invalid input and store failures surface as
// errors; an upstream failure reaches recipients as a readable message.
func (t *Tracker) SubmitSubscription(ctx context.Context, recipientID, airline, flightNumber, date string) (entity.DeliveryReport, error) {
	key, err := entity.NewFlightKey(t.resolveAirline(ctx, airline), flightNumber, date)
	if err != nil {
		return entity.DeliveryReport{}, err
	}

	sub := &entity.Subscription{RecipientID: recipientID, Key: key}
	if err := t.subscriptionRepo.Upsert(ctx, sub); err != nil {
		return entity.DeliveryReport{}, err
	}

	recipients, err := t.subscriptionRepo.RecipientsFor(ctx, key)
	if err != nil {
		return entity.DeliveryReport{}, err
	}

	t.logger.Info("Subscription stored",
		"recipient", recipientID,
		"flight", key.String(),
		"recipients", len(recipients))

	outcome := t.fetcher.Fetch(ctx, key)
	return t.notifier.Deliver(ctx, recipients, outcome), nil
}

// Unsubscribe removes one tracked flight for a recipient. Removing a flight
// that was never tracked is not an error.
func (t *Tracker) Unsubscribe(ctx context.Context, recipientID, airline, flightNumber, date string) error {
	key, err := entity.NewFlightKey(t.resolveAirline(ctx, airline), flightNumber, date)
	if err != nil {
		return err
	}
	if err := t.subscriptionRepo.Delete(ctx, recipientID, key); err != nil {
		return err
	}
	t.logger.Info("Subscription removed", "recipient", recipientID, "flight", key.String())
	return nil
}

// resolveAirline normalizes the airline the user typed against the master
// table: a known IATA code or name becomes the canonical airline name. Any
// lookup miss falls back to the raw input; enrichment never blocks a
// subscription.
func (t *Tracker) resolveAirline(ctx context.Context, raw string) string {
	raw = strings.TrimSpace(raw)
	if t.airlineRepo == nil || raw == "" {
		return raw
	}
	if len(raw) <= 3 {
		if airline, err := t.airlineRepo.GetByCode(ctx, strings.ToUpper(raw)); err == nil && airline != nil {
			return airline.Name
		}
	}
	if airline, err := t.airlineRepo.GetByName(ctx, raw); err == nil && airline != nil {
		return airline.Name
	}
	return raw
}
