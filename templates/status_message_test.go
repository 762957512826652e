package templates

import (
	"strings"
	"testing"

	"flightwatch-service/internal/domain/entity"
)

var testKey = entity.FlightKey{Airline: "Delta", FlightNumber: "123", FlightDate: "20250601"}

func TestRenderOutcomeSuccess(t *testing.T) {
	t.Parallel()
	outcome := entity.StatusOutcome{
		Key:       testKey,
		Category:  entity.StatusScheduled,
		RawStatus: "On Time, Scheduled",
		Departure: entity.FlightLeg{Airport: "JFK", ScheduledTime: "08:30"},
		Arrival:   entity.FlightLeg{Airport: "LAX", ScheduledTime: "11:45"},
	}

	text := RenderOutcome(outcome)
	for _, want := range []string{"Delta 123", "📅", "On Time, Scheduled", "JFK", "08:30", "LAX", "11:45"} {
		if !strings.Contains(text, want) {
			t.Fatalf("rendered message missing %q:\n%s", want, text)
		}
	}
}

func TestRenderOutcomeFailures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		outcome entity.StatusOutcome
		want    string
	}{
		{
			name:    "upstream error carries the code",
			outcome: entity.StatusOutcome{Key: testKey, Failure: entity.UpstreamError, StatusCode: 500},
			want:    "returned code 500",
		},
		{
			name:    "unparsable response says parsing failed",
			outcome: entity.StatusOutcome{Key: testKey, Failure: entity.UnparsableResponse},
			want:    "could not parse",
		},
		{
			name:    "unreachable upstream",
			outcome: entity.StatusOutcome{Key: testKey, Failure: entity.UpstreamUnreachable},
			want:    "could not connect",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			text := RenderOutcome(tt.outcome)
			if !strings.Contains(text, "status unavailable") {
				t.Fatalf("failure message missing 'status unavailable': %q", text)
			}
			if !strings.Contains(text, tt.want) {
				t.Fatalf("failure message missing %q: %q", tt.want, text)
			}
			if !strings.Contains(text, "Delta 123 on 20250601") {
				t.Fatalf("failure message missing flight key: %q", text)
			}
		})
	}
}

func TestCategoryEmoji(t *testing.T) {
	t.Parallel()
	tests := []struct {
		category entity.StatusCategory
		want     string
	}{
		{category: entity.StatusScheduled, want: "📅"},
		{category: entity.StatusEnRoute, want: "✈️"},
		{category: entity.StatusLanded, want: "🛬"},
		{category: entity.StatusDelayed, want: "⏰"},
		{category: entity.StatusCancelled, want: "❌"},
		{category: entity.StatusUnknown, want: "❓"},
	}
	for _, tt := range tests {
		if got := CategoryEmoji(tt.category); got != tt.want {
			t.Fatalf("CategoryEmoji(%s) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestRenderConfirmation(t *testing.T) {
	t.Parallel()
	text := RenderConfirmation("Delta", "123", "20250601")
	for _, want := range []string{"Airline: Delta", "Flight: 123", "Date: 20250601"} {
		if !strings.Contains(text, want) {
			t.Fatalf("confirmation missing %q: %q", want, text)
		}
	}
}
