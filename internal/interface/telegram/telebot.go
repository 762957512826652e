package telegram

import (
	"errors"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"
)

// NewTelebot creates the long-polling Telegram bot shared by the front-end
// conversation and the outbound messenger.
func NewTelebot(token string) (*tele.Bot, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	return tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
}
