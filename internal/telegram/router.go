package telegram

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/store"
)

// snoozeIncrement is how far a snoozed reminder moves into the future.
const snoozeIncrement = time.Hour

// Router handles the inbound updates the notification core owns: /start
// bootstrap and the done/snooze actions attached to task reminders. The
// conversational data-entry menus live outside this module.
type Router struct {
	bot    *tgbotapi.BotAPI
	log    *zap.Logger
	repo   store.Repo
	sender *Sender
}

// NewRouter creates a router over the shared sender.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, repo store.Repo, sender *Sender) *Router {
	return &Router{bot: bot, log: log, repo: repo, sender: sender}
}

// HandleUpdate routes a single update.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		msg := upd.Message
		if strings.HasPrefix(strings.TrimSpace(msg.Text), "/start") {
			r.handleStart(ctx, msg.Chat.ID)
		}
		return
	}

	if upd.CallbackQuery != nil {
		cb := upd.CallbackQuery
		if cb.Message == nil {
			return
		}
		switch {
		case strings.HasPrefix(cb.Data, cbDone):
			r.handleDone(ctx, strings.TrimPrefix(cb.Data, cbDone), cb.ID)
		case strings.HasPrefix(cb.Data, cbSnooze):
			r.handleSnooze(ctx, strings.TrimPrefix(cb.Data, cbSnooze), cb.ID)
		default:
			// Unknown callback — ignore silently
		}
	}
}

// handleStart ensures the chat has a preference row so the report checks see
// the user from day one.
func (r *Router) handleStart(ctx context.Context, chatID int64) {
	if _, err := r.repo.EnsurePreference(ctx, chatID); err != nil {
		r.log.Error("ensure preference failed", zap.Error(err), zap.Int64("chatID", chatID))
	}
	if err := r.sender.Send(ctx, chatID, startText); err != nil {
		r.log.Warn("start reply failed", zap.Error(err), zap.Int64("chatID", chatID))
	}
}

func (r *Router) handleDone(ctx context.Context, taskID, cbID string) {
	if err := r.repo.CompleteTask(ctx, taskID); err != nil {
		r.log.Error("complete task failed", zap.Error(err), zap.String("taskID", taskID))
		r.answerCallback(cbID, actionFail)
		return
	}
	r.answerCallback(cbID, doneAck)
}

// handleSnooze re-arms the reminder: a new future time and a cleared sent
// flag, good for exactly one more delivery.
func (r *Router) handleSnooze(ctx context.Context, taskID, cbID string) {
	at := time.Now().UTC().Add(snoozeIncrement)
	if err := r.repo.RescheduleReminder(ctx, taskID, at); err != nil {
		r.log.Error("snooze task failed", zap.Error(err), zap.String("taskID", taskID))
		r.answerCallback(cbID, actionFail)
		return
	}
	r.answerCallback(cbID, snoozeAck)
}

func (r *Router) answerCallback(id, text string) {
	if _, err := r.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		r.log.Debug("answer callback failed", zap.Error(err))
	}
}
