package flightapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/pkg/logger"
)

// Client performs upstream flight status lookups. One Fetch is exactly one
// HTTP call: deduplication already happened at the grouping stage, so the
// client does no caching and no retries. Every failure degrades to a
// failure-kind outcome so callers never need error handling around a check.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     logger.Logger
}

// NewClient creates a new flight status API client
func NewClient(baseURL, apiKey string, timeout time.Duration, logger logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// flightLeg mirrors the upstream response field names, colons included.
type flightLeg struct {
	Airport       string `json:"Airport:"`
	ScheduledTime string `json:"Scheduled Time:"`
	Status        string `json:"status"`
}

// flightSegment is one element of the upstream response array: element 0
// carries the departure records, element 1 the arrival records.
type flightSegment struct {
	Departure []flightLeg `json:"departure"`
	Arrival   []flightLeg `json:"arrival"`
}

// Fetch performs one upstream status check for the key
func (c *Client) Fetch(ctx context.Context, key entity.FlightKey) entity.StatusOutcome {
	query := url.Values{}
	query.Set("num", key.FlightNumber)
	query.Set("name", key.Airline)
	query.Set("date", key.FlightDate)
	endpoint := fmt.Sprintf("%s/airline/%s?%s", c.baseURL, c.apiKey, query.Encode())

	c.logger.Info("Checking flight status",
		"airline", key.Airline,
		"flight", key.FlightNumber,
		"date", key.FlightDate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Error("Failed to build status request", "error", err)
		return failureOutcome(key, entity.UpstreamUnreachable, 0)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Flight status request failed", "flight", key.String(), "error", err)
		return failureOutcome(key, entity.UpstreamUnreachable, 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Flight status request returned error",
			"flight", key.String(),
			"status", resp.StatusCode)
		return failureOutcome(key, entity.UpstreamError, resp.StatusCode)
	}

	var segments []flightSegment
	if err := json.NewDecoder(resp.Body).Decode(&segments); err != nil {
		c.logger.Error("Failed to decode flight status response", "flight", key.String(), "error", err)
		return failureOutcome(key, entity.UnparsableResponse, 0)
	}

	outcome, err := normalize(key, segments)
	if err != nil {
		c.logger.Error("Unexpected flight status response shape", "flight", key.String(), "error", err)
		return failureOutcome(key, entity.UnparsableResponse, 0)
	}

	c.logger.Info("Successfully fetched flight status",
		"flight", key.String(),
		"category", string(outcome.Category))
	return outcome
}

// normalize converts the upstream shape into an outcome. A structural
// surprise in the response must degrade to a "status unavailable" message,
// not crash the poll cycle.
func normalize(key entity.FlightKey, segments []flightSegment) (entity.StatusOutcome, error) {
	if len(segments) < 2 || len(segments[0].Departure) == 0 || len(segments[1].Arrival) == 0 {
		return entity.StatusOutcome{}, errors.New("missing departure or arrival record")
	}
	departure := segments[0].Departure[0]
	arrival := segments[1].Arrival[0]
	if departure.Airport == "" || departure.ScheduledTime == "" || arrival.Airport == "" || arrival.ScheduledTime == "" {
		return entity.StatusOutcome{}, errors.New("missing airport or scheduled time field")
	}

	raw := departure.Status
	if raw == "" {
		raw = "Unknown"
	}

	return entity.StatusOutcome{
		Key:       key,
		Category:  entity.CategorizeStatus(raw),
		RawStatus: raw,
		Departure: entity.FlightLeg{Airport: departure.Airport, ScheduledTime: departure.ScheduledTime},
		Arrival:   entity.FlightLeg{Airport: arrival.Airport, ScheduledTime: arrival.ScheduledTime},
	}, nil
}

func failureOutcome(key entity.FlightKey, kind entity.FailureKind, code int) entity.StatusOutcome {
	return entity.StatusOutcome{
		Key:        key,
		Category:   entity.StatusUnknown,
		Failure:    kind,
		StatusCode: code,
	}
}
