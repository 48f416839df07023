package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Sender delivers scheduler messages over the Bot API. All outbound traffic
// shares one limiter so a large batch (morning prayer alerts, report hour)
// does not trip Telegram's global ~30 msg/s ceiling.
type Sender struct {
	bot *tgbotapi.BotAPI
	lim *rate.Limiter
}

// NewSender builds a sender capped at msgsPerSec outbound messages.
func NewSender(bot *tgbotapi.BotAPI, msgsPerSec float64) *Sender {
	if msgsPerSec <= 0 {
		msgsPerSec = 25
	}
	return &Sender{
		bot: bot,
		lim: rate.NewLimiter(rate.Limit(msgsPerSec), 1),
	}
}

// Send delivers a plain text message. The context bounds the limiter wait;
// the HTTP round trip is bounded by the bot's client timeout.
func (s *Sender) Send(ctx context.Context, chatID int64, text string) error {
	if err := s.lim.Wait(ctx); err != nil {
		return err
	}
	_, err := s.bot.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return fmt.Errorf("send to %d: %w", chatID, err)
	}
	return nil
}

// SendTaskReminder delivers a reminder with the done/snooze inline actions.
func (s *Sender) SendTaskReminder(ctx context.Context, chatID int64, text, taskID string) error {
	if err := s.lim.Wait(ctx); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = reminderActionsKeyboard(taskID)
	_, err := s.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("send reminder to %d: %w", chatID, err)
	}
	return nil
}
