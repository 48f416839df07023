package scheduler

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// CheckTaskReminders delivers reminders for tasks whose reminder time has
// passed. The persisted reminder_sent flag is the dedup mechanism here: it is
// set only after a successful delivery, so a failed send retries next cycle.
// Users without entitlement are skipped with no state change — the task stays
// pending and becomes deliverable the moment they are entitled again.
func (s *Scheduler) CheckTaskReminders(ctx context.Context) {
	now := s.clk.Now()

	tasks, err := s.repo.ListDueReminders(ctx, now.UTC())
	if err != nil {
		s.log.Error("list due reminders failed", zap.Error(err))
		return
	}

	for _, t := range tasks {
		if !s.entitled(ctx, t.ChatID, now) {
			continue
		}

		text := fmt.Sprintf("⏰ Reminder: %s", t.Text)
		if err := s.sender.SendTaskReminder(ctx, t.ChatID, text, t.ID); err != nil {
			s.log.Warn("reminder send failed",
				zap.Error(err),
				zap.Int64("chatID", t.ChatID),
				zap.String("taskID", t.ID),
			)
			continue
		}
		if err := s.repo.MarkReminderSent(ctx, t.ID); err != nil {
			// Delivered but not flagged: next cycle may redeliver. Better a
			// duplicate than a silent loss.
			s.log.Error("mark reminder sent failed",
				zap.Error(err),
				zap.String("taskID", t.ID),
			)
		}
	}
}
