package entity

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical YYYYMMDD form flight dates are stored in.
const DateLayout = "20060102"

// FlightKey identifies one real-world flight instance: an airline, a flight
// number and a departure date. It is both the upstream lookup key and the
// grouping key for fan-out, so equality is structural.
type FlightKey struct {
	Airline      string
	FlightNumber string
	FlightDate   string
}

// NewFlightKey validates raw front-end input and builds a key with the date
// normalized to canonical form
func NewFlightKey(airline, flightNumber, date string) (FlightKey, error) {
	airline = strings.TrimSpace(airline)
	flightNumber = strings.TrimSpace(flightNumber)
	if airline == "" {
		return FlightKey{}, fmt.Errorf("%w: airline is empty", ErrInvalidKey)
	}
	if flightNumber == "" {
		return FlightKey{}, fmt.Errorf("%w: flight number is empty", ErrInvalidKey)
	}
	canonical, err := NormalizeFlightDate(date)
	if err != nil {
		return FlightKey{}, err
	}
	return FlightKey{
		Airline:      airline,
		FlightNumber: flightNumber,
		FlightDate:   canonical,
	}, nil
}

// NormalizeFlightDate converts a user-entered date to canonical YYYYMMDD
// form. YYYYMMDD and YYYY-MM-DD inputs are accepted.
func NormalizeFlightDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	for _, layout := range []string{DateLayout, "2006-01-02"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a calendar date", ErrInvalidKey, date)
}

// Validate checks that the key is well formed: non-empty airline and flight
// number, date already in canonical form.
func (k FlightKey) Validate() error {
	if strings.TrimSpace(k.Airline) == "" {
		return fmt.Errorf("%w: airline is empty", ErrInvalidKey)
	}
	if strings.TrimSpace(k.FlightNumber) == "" {
		return fmt.Errorf("%w: flight number is empty", ErrInvalidKey)
	}
	if t, err := time.Parse(DateLayout, k.FlightDate); err != nil || t.Format(DateLayout) != k.FlightDate {
		return fmt.Errorf("%w: date %q is not in YYYYMMDD form", ErrInvalidKey, k.FlightDate)
	}
	return nil
}

// ActiveOn reports whether the flight date is on or after the given poll
// time's calendar day. Canonical dates compare lexicographically.
func (k FlightKey) ActiveOn(asOf time.Time) bool {
	return k.FlightDate >= asOf.Format(DateLayout)
}

// String returns a human-readable form used in logs and user messages.
func (k FlightKey) String() string {
	return fmt.Sprintf("%s %s on %s", k.Airline, k.FlightNumber, k.FlightDate)
}
