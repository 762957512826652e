package telegram

import (
	"context"
	"fmt"
	"strconv"

	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"

	tele "gopkg.in/telebot.v4"
)

// Messenger implements the MessengerRepository interface over Telegram.
// Recipient identifiers are the decimal chat IDs the front-end records.
type Messenger struct {
	bot    *tele.Bot
	logger logger.Logger
}

// NewMessenger creates a new Telegram messenger
func NewMessenger(bot *tele.Bot, logger logger.Logger) repository.MessengerRepository {
	return &Messenger{
		bot:    bot,
		logger: logger,
	}
}

// SendText delivers one message to one chat
func (m *Messenger) SendText(ctx context.Context, recipientID, text string) error {
	chatID, err := strconv.ParseInt(recipientID, 10, 64)
	if err != nil {
		return fmt.Errorf("malformed recipient id %q: %w", recipientID, err)
	}
	if _, err := m.bot.Send(tele.ChatID(chatID), text); err != nil {
		return fmt.Errorf("telegram send to %d: %w", chatID, err)
	}
	m.logger.Debug("Sent status update", "chat_id", chatID)
	return nil
}
