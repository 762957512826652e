package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/usecase"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/templates"

	tele "gopkg.in/telebot.v4"
)

const welcomeMessage = "👋 Welcome to Flight Tracker Bot!\n\n" +
	"I can help you track flights and provide real-time updates on their status.\n\n" +
	"✈️ Track Flights\n" +
	"• Monitor flight status in real-time\n" +
	"• Get automatic status updates\n" +
	"• Track multiple flights simultaneously\n\n" +
	"To get started, use /flight to track a flight, or /help to see all commands."

const helpMessage = "🤖 Available Commands:\n\n" +
	"/start - Start the bot\n" +
	"/help - Show this help message\n" +
	"/flight - Track a flight\n" +
	"  • Enter airline name\n" +
	"  • Enter flight number\n" +
	"  • Select flight date\n" +
	"/cancel - Cancel the current setup\n\n" +
	"The bot checks every tracked flight on a schedule and sends you status updates automatically."

// submitTimeout bounds the immediate check triggered by a completed
// conversation: one upstream fetch plus the fan-out sends.
const submitTimeout = time.Minute

// Bot is the Telegram front-end: it collects (airline, flight number, date)
// turn by turn and hands the completed tuple to the tracker. Everything the
// core engine needs from Telegram lives behind the tracker boundary; the bot
// owns only conversation state.
type Bot struct {
	bot           *tele.Bot
	tracker       *usecase.Tracker
	conversations *conversationStore
	logger        logger.Logger

	dateMenu    *tele.ReplyMarkup
	btnToday    tele.Btn
	btnTomorrow tele.Btn
}

// NewBot creates the front-end and registers its handlers on the shared
// telebot instance.
func NewBot(b *tele.Bot, tracker *usecase.Tracker, logger logger.Logger) *Bot {
	bot := &Bot{
		bot:           b,
		tracker:       tracker,
		conversations: newConversationStore(),
		logger:        logger,
	}

	bot.dateMenu = &tele.ReplyMarkup{}
	bot.btnToday = bot.dateMenu.Data("Today", "flight_date_today")
	bot.btnTomorrow = bot.dateMenu.Data("Tomorrow", "flight_date_tomorrow")
	bot.dateMenu.Inline(
		bot.dateMenu.Row(bot.btnToday),
		bot.dateMenu.Row(bot.btnTomorrow),
	)

	b.Handle("/start", bot.handleStart)
	b.Handle("/help", bot.handleHelp)
	b.Handle("/flight", bot.handleFlight)
	b.Handle("/cancel", bot.handleCancel)
	b.Handle(tele.OnText, bot.handleText)
	b.Handle(&bot.btnToday, bot.handleDateToday)
	b.Handle(&bot.btnTomorrow, bot.handleDateTomorrow)

	return bot
}

// Start begins long polling and blocks until Stop is called.
func (b *Bot) Start() {
	b.logger.Info("Telegram polling started")
	b.bot.Start()
}

// Stop halts long polling.
func (b *Bot) Stop() {
	b.bot.Stop()
	b.logger.Info("Telegram polling stopped")
}

func (b *Bot) handleStart(c tele.Context) error {
	return c.Send(welcomeMessage)
}

func (b *Bot) handleHelp(c tele.Context) error {
	return c.Send(helpMessage)
}

func (b *Bot) handleFlight(c tele.Context) error {
	b.conversations.begin(c.Chat().ID)
	return c.Send("Please enter the airline name (e.g., 'United', 'Delta', 'American'):")
}

func (b *Bot) handleCancel(c tele.Context) error {
	b.conversations.end(c.Chat().ID)
	return c.Send("Flight tracking setup cancelled.")
}

// handleText advances an in-progress conversation one step. Text outside a
// conversation gets the help message, like any unknown command.
func (b *Bot) handleText(c tele.Context) error {
	chatID := c.Chat().ID
	conv, ok := b.conversations.get(chatID)
	if !ok {
		return b.handleHelp(c)
	}

	text := strings.TrimSpace(c.Text())
	switch conv.state {
	case awaitingAirline:
		conv.airline = text
		conv.state = awaitingFlightNumber
		b.conversations.put(chatID, conv)
		return c.Send("Please enter the flight number:")
	case awaitingFlightNumber:
		conv.flightNumber = text
		conv.state = awaitingDate
		b.conversations.put(chatID, conv)
		return c.Send("Please select the flight date, or type it as YYYYMMDD:", b.dateMenu)
	case awaitingDate:
		return b.completeSubscription(c, conv, text)
	}
	return nil
}

func (b *Bot) handleDateToday(c tele.Context) error {
	return b.finishDateButton(c, time.Now())
}

func (b *Bot) handleDateTomorrow(c tele.Context) error {
	return b.finishDateButton(c, time.Now().AddDate(0, 0, 1))
}

func (b *Bot) finishDateButton(c tele.Context, day time.Time) error {
	if err := c.Respond(); err != nil {
		b.logger.Debug("Callback respond failed", "error", err)
	}
	conv, ok := b.conversations.get(c.Chat().ID)
	if !ok || conv.state != awaitingDate {
		// stale button from a finished or cancelled conversation
		return nil
	}
	return b.completeSubscription(c, conv, day.Format(entity.DateLayout))
}

// completeSubscription finishes the conversation and runs the immediate
// check path: upsert, recipients lookup, one fetch, fan-out delivery.
func (b *Bot) completeSubscription(c tele.Context, conv conversation, date string) error {
	chatID := c.Chat().ID

	canonical, err := entity.NormalizeFlightDate(date)
	if err != nil {
		return c.Send("That doesn't look like a valid date. Please type it as YYYYMMDD (e.g., 20250601):")
	}

	b.conversations.end(chatID)

	if err := c.Send(templates.RenderConfirmation(conv.airline, conv.flightNumber, canonical)); err != nil {
		b.logger.Warn("Failed to send tracking confirmation", "chat_id", chatID, "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()

	recipientID := strconv.FormatInt(chatID, 10)
	report, err := b.tracker.SubmitSubscription(ctx, recipientID, conv.airline, conv.flightNumber, canonical)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidKey) {
			return c.Send("Those flight details look incomplete. Use /flight to start over.")
		}
		b.logger.Error("Failed to submit subscription", "chat_id", chatID, "error", err)
		return c.Send("Something went wrong setting up tracking. Please try again later.")
	}

	b.logger.Info("Flight tracking set up",
		"chat_id", chatID,
		"delivered", len(report.Delivered),
		"failed", len(report.Failed))
	return nil
}
