package repository

import (
	"context"
)

// MessengerRepository defines the interface for the outbound delivery
// channel. Recipient identifiers are opaque to the core.
type MessengerRepository interface {
	// SendText delivers one rendered message to one recipient.
	SendText(ctx context.Context, recipientID, text string) error
}
