package entity

import "strings"

// StatusCategory buckets the free-text status strings the upstream API
// returns into a small fixed set.
type StatusCategory string

const (
	StatusScheduled StatusCategory = "scheduled"
	StatusEnRoute   StatusCategory = "en-route"
	StatusLanded    StatusCategory = "landed"
	StatusDelayed   StatusCategory = "delayed"
	StatusCancelled StatusCategory = "cancelled"
	StatusUnknown   StatusCategory = "unknown"
)

// FailureKind classifies why an upstream check produced no usable status.
type FailureKind string

const (
	FailureNone         FailureKind = ""
	UpstreamUnreachable FailureKind = "upstream_unreachable"
	UpstreamError       FailureKind = "upstream_error"
	UnparsableResponse  FailureKind = "unparsable_response"
)

// FlightLeg carries the airport and scheduled time of one departure or
// arrival record.
type FlightLeg struct {
	Airport       string
	ScheduledTime string
}

// StatusOutcome is the normalized result of one upstream status check:
// either a categorized status with departure and arrival info, or a failure
// descriptor. It is consumed immediately by delivery and never persisted.
type StatusOutcome struct {
	Key       FlightKey
	Category  StatusCategory
	RawStatus string
	Departure FlightLeg
	Arrival   FlightLeg

	Failure    FailureKind
	StatusCode int // HTTP code, set for UpstreamError
}

// OK reports whether the check produced a usable status.
func (o StatusOutcome) OK() bool {
	return o.Failure == FailureNone
}

// CategorizeStatus maps a free-text status to a category by case-insensitive
// substring matching. The match order is the tie-break and must stay fixed:
// a string containing both "scheduled" and "delayed" categorizes as
// scheduled.
func CategorizeStatus(raw string) StatusCategory {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "scheduled"):
		return StatusScheduled
	case strings.Contains(s, "en route"), strings.Contains(s, "active"):
		return StatusEnRoute
	case strings.Contains(s, "landed"):
		return StatusLanded
	case strings.Contains(s, "delayed"):
		return StatusDelayed
	case strings.Contains(s, "cancelled"):
		return StatusCancelled
	default:
		return StatusUnknown
	}
}
