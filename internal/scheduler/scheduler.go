// Package scheduler is the notification core: five independent periodic
// checks (task reminders, daily reports, weekly reports, prayer reminders,
// subscription expiry) driven by in-process timers. Each check is idempotent
// per invocation — a persisted sent-flag or a ledger entry guards every send —
// and isolates per-user failures so one bad delivery never aborts a batch.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/clock"
	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/prayer"
	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/store"
)

// Ledger kinds. Prayer kinds share the "prayer:" prefix for the midnight
// bulk reset.
const (
	kindDaily        = "daily"
	kindWeekly       = "weekly"
	kindPrayerPrefix = "prayer:"
	kindExpiryPrefix = "expiry:"
	kindExpiredNote  = "expired"
)

// Check cadence. The minute checks match on exact minute-of-day, so they must
// run at least once per minute.
const (
	minuteCheckEvery = "@every 1m"
	expiryCheckEvery = "@every 1h"
	initialDelay     = 5 * time.Second
	cycleTimeout     = 55 * time.Second
)

// Sender delivers messages to a chat. The context bounds the delivery,
// including any rate-limiter wait. Delivery errors are returned to the caller
// for per-recipient logging, never propagated further.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
	// SendTaskReminder attaches the done/snooze actions for the task.
	SendTaskReminder(ctx context.Context, chatID int64, text, taskID string) error
}

// Entitler is the monetization gate every check consults before sending.
type Entitler interface {
	Entitled(ctx context.Context, chatID int64, now time.Time) (bool, error)
}

// Scheduler orchestrates the five checks.
type Scheduler struct {
	log    *zap.Logger
	clk    clock.Clock
	repo   store.Repo
	gate   Entitler
	times  prayer.Provider
	sender Sender
	ledger Ledger

	cron *cron.Cron
}

// New wires a scheduler. The ledger may be shared with nothing else.
func New(log *zap.Logger, clk clock.Clock, repo store.Repo, gate Entitler, times prayer.Provider, sender Sender, ledger Ledger) *Scheduler {
	return &Scheduler{
		log:    log,
		clk:    clk,
		repo:   repo,
		gate:   gate,
		times:  times,
		sender: sender,
		ledger: ledger,
	}
}

// Run installs the periodic checks and blocks until ctx is canceled. Each
// check runs on its own cron entry; entries may overlap in wall-clock time
// but operate on disjoint data, with the ledger as the only shared state.
func (s *Scheduler) Run(ctx context.Context) error {
	// SkipIfStillRunning drops a firing while the previous invocation of the
	// same entry is in flight; the ledger claims cover whatever still overlaps
	// (the initial boot pass, prior skipped minutes).
	s.cron = cron.New(
		cron.WithLocation(s.clk.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(zap.NewStdLog(s.log)))),
	)

	entries := []struct {
		spec  string
		name  string
		check func(context.Context)
	}{
		{minuteCheckEvery, "task_reminders", s.CheckTaskReminders},
		{minuteCheckEvery, "daily_reports", s.CheckDailyReports},
		{minuteCheckEvery, "weekly_reports", s.CheckWeeklyReports},
		{minuteCheckEvery, "prayer_reminders", s.CheckPrayerReminders},
		{expiryCheckEvery, "subscription_expiry", s.CheckSubscriptions},
	}
	for _, e := range entries {
		e := e
		if _, err := s.cron.AddFunc(e.spec, func() { s.runCheck(ctx, e.name, e.check) }); err != nil {
			return err
		}
	}
	s.cron.Start()
	s.log.Info("scheduler started",
		zap.String("tz", s.clk.Location().String()),
	)

	// Do not sit idle for a full interval right after boot: reminders and
	// prayer alerts may already be due.
	initial := time.AfterFunc(initialDelay, func() {
		s.runCheck(ctx, "task_reminders", s.CheckTaskReminders)
		s.runCheck(ctx, "prayer_reminders", s.CheckPrayerReminders)
		s.runCheck(ctx, "subscription_expiry", s.CheckSubscriptions)
	})

	<-ctx.Done()
	initial.Stop()
	stopCtx := s.cron.Stop()
	// In-flight sends may finish or not; no graceful drain is promised.
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}
	s.log.Info("scheduler stopped")
	return nil
}

// runCheck gives every cycle a bounded context so a hung external call in one
// check cannot starve the others past a single interval.
func (s *Scheduler) runCheck(ctx context.Context, name string, check func(context.Context)) {
	if ctx.Err() != nil {
		return
	}
	cctx, cancel := context.WithTimeout(ctx, cycleTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("check panicked", zap.String("check", name), zap.Any("panic", r))
		}
	}()
	check(cctx)
}

// entitled wraps the gate with error logging; on gate failure the user is
// skipped this cycle (transient store trouble reads as "not entitled now").
func (s *Scheduler) entitled(ctx context.Context, chatID int64, now time.Time) bool {
	ok, err := s.gate.Entitled(ctx, chatID, now)
	if err != nil {
		s.log.Warn("entitlement check failed", zap.Error(err), zap.Int64("chatID", chatID))
		return false
	}
	return ok
}
