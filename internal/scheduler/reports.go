package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/domain"
	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/report"
)

// CheckDailyReports sends the daily summary to every user whose preferred
// time equals the current minute in the target timezone. The ledger key
// (chat, daily, date) makes repeated evaluations of the same minute
// harmless; stale entries from previous days are swept each cycle.
func (s *Scheduler) CheckDailyReports(ctx context.Context) {
	now := s.clk.Now()
	minute := domain.MinuteOfDay(now)
	day := domain.DayKey(now)

	s.ledger.PruneKind(kindDaily, day)

	prefs, err := s.repo.ListDailyReportUsers(ctx)
	if err != nil {
		s.log.Error("list daily report users failed", zap.Error(err))
		return
	}

	for _, p := range prefs {
		if p.DailyAtM != minute {
			continue
		}
		// No ledger write on entitlement denial: a user entitled later in
		// the same period has lost nothing.
		if !s.entitled(ctx, p.ChatID, now) {
			continue
		}
		// Claim the key before sending: checks may be invoked twice for the
		// same minute when a cycle runs long, and only the claim winner
		// delivers. A failed delivery releases the claim for the next cycle.
		key := Key{ChatID: p.ChatID, Kind: kindDaily, Marker: day}
		if !s.ledger.MarkIfAbsent(key) {
			continue
		}

		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		snap, err := s.snapshot(ctx, p.ChatID, midnight)
		if err != nil {
			s.log.Warn("daily snapshot failed", zap.Error(err), zap.Int64("chatID", p.ChatID))
			s.ledger.Drop(key)
			continue
		}
		if err := s.sender.Send(ctx, p.ChatID, report.Daily(snap, now)); err != nil {
			s.log.Warn("daily report send failed", zap.Error(err), zap.Int64("chatID", p.ChatID))
			s.ledger.Drop(key)
			continue
		}
	}
}

// CheckWeeklyReports is the same pattern keyed by ISO week, additionally
// gated on the user's preferred weekday.
func (s *Scheduler) CheckWeeklyReports(ctx context.Context) {
	now := s.clk.Now()
	minute := domain.MinuteOfDay(now)
	week := domain.WeekKey(now)

	s.ledger.PruneKind(kindWeekly, week)

	prefs, err := s.repo.ListWeeklyReportUsers(ctx)
	if err != nil {
		s.log.Error("list weekly report users failed", zap.Error(err))
		return
	}

	for _, p := range prefs {
		if p.WeeklyDay != now.Weekday() || p.WeeklyAtM != minute {
			continue
		}
		if !s.entitled(ctx, p.ChatID, now) {
			continue
		}
		key := Key{ChatID: p.ChatID, Kind: kindWeekly, Marker: week}
		if !s.ledger.MarkIfAbsent(key) {
			continue
		}

		snap, err := s.snapshot(ctx, p.ChatID, weekStart(now))
		if err != nil {
			s.log.Warn("weekly snapshot failed", zap.Error(err), zap.Int64("chatID", p.ChatID))
			s.ledger.Drop(key)
			continue
		}
		if err := s.sender.Send(ctx, p.ChatID, report.Weekly(snap, now)); err != nil {
			s.log.Warn("weekly report send failed", zap.Error(err), zap.Int64("chatID", p.ChatID))
			s.ledger.Drop(key)
			continue
		}
	}
}

// snapshot collects the read-only report input for one chat.
func (s *Scheduler) snapshot(ctx context.Context, chatID int64, since time.Time) (report.Snapshot, error) {
	tasks, err := s.repo.TasksSince(ctx, chatID, since.UTC())
	if err != nil {
		return report.Snapshot{}, err
	}
	expenses, err := s.repo.ExpensesSince(ctx, chatID, since.UTC())
	if err != nil {
		return report.Snapshot{}, err
	}
	goals, err := s.repo.ActiveGoals(ctx, chatID)
	if err != nil {
		return report.Snapshot{}, err
	}
	return report.Snapshot{Tasks: tasks, Expenses: expenses, Goals: goals}, nil
}

// weekStart returns the local Monday 00:00 of t's ISO week.
func weekStart(t time.Time) time.Time {
	days := int(t.Weekday()-time.Monday+7) % 7
	monday := t.AddDate(0, 0, -days)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}
