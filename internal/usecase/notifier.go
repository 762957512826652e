package usecase

import (
	"context"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"
	"flightwatch-service/templates"
)

// Notifier fans one status outcome out to a recipient set. A failed send to
// one recipient never prevents attempts to the remaining recipients.
type Notifier struct {
	messenger repository.MessengerRepository
	metrics   *metrics.Metrics
	logger    logger.Logger
}

// NewNotifier creates a new notifier
func NewNotifier(messenger repository.MessengerRepository, m *metrics.Metrics, logger logger.Logger) *Notifier {
	return &Notifier{
		messenger: messenger,
		metrics:   m,
		logger:    logger,
	}
}

// Deliver renders the outcome once and attempts one send per recipient.
// Per-recipient failures are recorded in the report instead of propagating;
// partial failure is a normal result, not an error.
func (n *Notifier) Deliver(ctx context.Context, recipients []string, outcome entity.StatusOutcome) entity.DeliveryReport {
	text := templates.RenderOutcome(outcome)
	report := entity.NewDeliveryReport()

	for _, recipient := range recipients {
		if err := n.messenger.SendText(ctx, recipient, text); err != nil {
			n.logger.Error("Failed to send status update",
				"recipient", recipient,
				"flight", outcome.Key.String(),
				"error", err)
			report.Failed[recipient] = err.Error()
			n.metrics.NotificationFailures.Inc()
			continue
		}
		report.Delivered = append(report.Delivered, recipient)
		n.metrics.NotificationsSent.Inc()
	}

	return report
}
