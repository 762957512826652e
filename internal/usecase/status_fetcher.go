package usecase

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// StatusFetcher performs exactly one upstream lookup per flight key. Failure
// is expressed in the outcome, never as an error: a broken upstream must not
// take down a poll cycle.
type StatusFetcher interface {
	Fetch(ctx context.Context, key entity.FlightKey) entity.StatusOutcome
}
