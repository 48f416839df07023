package store

import (
	"context"
	"time"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/domain"
)

// TaskRepo covers task CRUD plus the reminder operations the scheduler drives.
type TaskRepo interface {
	CreateTask(ctx context.Context, t *domain.Task) error
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context, chatID int64) ([]domain.Task, error)
	CompleteTask(ctx context.Context, id string) error

	// ListDueReminders returns tasks with reminder_at <= now, reminder_sent = 0
	// and completed = 0, ordered by reminder_at.
	ListDueReminders(ctx context.Context, now time.Time) ([]domain.Task, error)
	MarkReminderSent(ctx context.Context, id string) error
	// RescheduleReminder re-arms the task: sets a new reminder_at and clears
	// the sent flag.
	RescheduleReminder(ctx context.Context, id string, at time.Time) error
}

// PrefsRepo manages per-chat report preferences.
type PrefsRepo interface {
	EnsurePreference(ctx context.Context, chatID int64) (*domain.NotificationPreference, error)
	UpsertPreference(ctx context.Context, p *domain.NotificationPreference) error
	ListDailyReportUsers(ctx context.Context) ([]domain.NotificationPreference, error)
	ListWeeklyReportUsers(ctx context.Context) ([]domain.NotificationPreference, error)
}

// PrayerRepo manages per-chat prayer reminder settings.
type PrayerRepo interface {
	UpsertPrayerPreference(ctx context.Context, p *domain.PrayerPreference) error
	ListPrayerPreferences(ctx context.Context) ([]domain.PrayerPreference, error)
}

// SubscriptionRepo manages plan records and the queries the expiry sweep needs.
type SubscriptionRepo interface {
	UpsertSubscription(ctx context.Context, s *domain.Subscription) error
	GetSubscription(ctx context.Context, chatID int64) (*domain.Subscription, error)
	// ListExpiring returns trial/active subscriptions ending within daysLeft
	// days (but not before daysLeft-1 days) from now.
	ListExpiring(ctx context.Context, now time.Time, daysLeft int) ([]domain.Subscription, error)
	// ListExpired returns subscriptions whose ends_at has passed but whose
	// status has not been transitioned to expired yet.
	ListExpired(ctx context.Context, now time.Time) ([]domain.Subscription, error)
	SetSubscriptionStatus(ctx context.Context, chatID int64, status string) error
}

// SnapshotRepo provides the read-only views report generation consumes.
type SnapshotRepo interface {
	TasksSince(ctx context.Context, chatID int64, since time.Time) ([]domain.Task, error)
	ExpensesSince(ctx context.Context, chatID int64, since time.Time) ([]domain.Expense, error)
	ActiveGoals(ctx context.Context, chatID int64) ([]domain.Goal, error)
	CreateExpense(ctx context.Context, e *domain.Expense) error
	CreateGoal(ctx context.Context, g *domain.Goal) error
}

// Repo aggregates all storage interfaces behind a single handle.
type Repo interface {
	TaskRepo
	PrefsRepo
	PrayerRepo
	SubscriptionRepo
	SnapshotRepo
	Close() error
}
