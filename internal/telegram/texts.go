package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// UI texts in English
const (
	startText = "👋 Assalomu alaykum! I keep your day on track.\n\n" +
		"I remind you about tasks, send daily and weekly summaries of your " +
		"tasks, spending and goals, and ping you before prayer times.\n\n" +
		"Manage tasks and settings from the app menu; reminders arrive here."
	doneAck    = "Marked as done ✅"
	snoozeAck  = "Snoozed for 1 hour ⏳"
	actionFail = "Could not update the task, please try again."
)

// Callback data prefixes for reminder actions.
const (
	cbDone   = "done:"
	cbSnooze = "snooze:"
)

// reminderActionsKeyboard attaches done/snooze buttons to a task reminder.
func reminderActionsKeyboard(taskID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Done", cbDone+taskID),
			tgbotapi.NewInlineKeyboardButtonData("⏳ +1h", cbSnooze+taskID),
		),
	)
}
