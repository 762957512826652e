package templates

import (
	"fmt"

	"flightwatch-service/internal/domain/entity"
)

// CategoryEmoji returns the visual indicator for a status category.
func CategoryEmoji(category entity.StatusCategory) string {
	switch category {
	case entity.StatusScheduled:
		return "📅"
	case entity.StatusEnRoute:
		return "✈️"
	case entity.StatusLanded:
		return "🛬"
	case entity.StatusDelayed:
		return "⏰"
	case entity.StatusCancelled:
		return "❌"
	default:
		return "❓"
	}
}

// RenderOutcome renders one status outcome as the text delivered to every
// recipient in a group. Rendering is pure; delivery happens in the notifier.
func RenderOutcome(outcome entity.StatusOutcome) string {
	if !outcome.OK() {
		return renderFailure(outcome)
	}
	return fmt.Sprintf(
		"✈️ Flight %s %s\n\n"+
			"Status: %s %s\n\n"+
			"Departure:\n"+
			"🌍 %s\n"+
			"🕒 %s\n\n"+
			"Arrival:\n"+
			"📍 %s\n"+
			"🕒 %s",
		outcome.Key.Airline, outcome.Key.FlightNumber,
		CategoryEmoji(outcome.Category), outcome.RawStatus,
		outcome.Departure.Airport, outcome.Departure.ScheduledTime,
		outcome.Arrival.Airport, outcome.Arrival.ScheduledTime,
	)
}

// renderFailure turns an upstream failure into the short readable line
// subscribers see instead of silence or a crash trace.
func renderFailure(outcome entity.StatusOutcome) string {
	switch outcome.Failure {
	case entity.UpstreamError:
		return fmt.Sprintf("Flight status unavailable for %s: the status service returned code %d.",
			outcome.Key, outcome.StatusCode)
	case entity.UnparsableResponse:
		return fmt.Sprintf("Flight status unavailable for %s: could not parse the flight information.",
			outcome.Key)
	default:
		return fmt.Sprintf("Flight status unavailable for %s: could not connect to the status service.",
			outcome.Key)
	}
}

// RenderConfirmation renders the acknowledgement sent right after a tracking
// request is stored, before the immediate status check runs.
func RenderConfirmation(airline, flightNumber, date string) string {
	return fmt.Sprintf("Flight tracking set up for:\nAirline: %s\nFlight: %s\nDate: %s",
		airline, flightNumber, date)
}
