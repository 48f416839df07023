package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/domain"
)

func openTestRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestTasks_DueReminderLifecycle(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	now := time.Date(2025, time.May, 5, 10, 0, 0, 0, time.UTC)

	due := now.Add(-time.Minute)
	notDue := now.Add(time.Hour)
	req := []*domain.Task{
		{ChatID: 1, Text: "due", ReminderAt: &due},
		{ChatID: 1, Text: "future", ReminderAt: &notDue},
		{ChatID: 1, Text: "no reminder"},
	}
	for _, task := range req {
		require.NoError(t, repo.CreateTask(ctx, task))
		assert.NotEmpty(t, task.ID, "CreateTask assigns an ID")
	}

	got, err := repo.ListDueReminders(ctx, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "due", got[0].Text)

	// Sent flag removes it from the due set.
	require.NoError(t, repo.MarkReminderSent(ctx, got[0].ID))
	got, err = repo.ListDueReminders(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Snooze re-arms it once the new time passes.
	require.NoError(t, repo.RescheduleReminder(ctx, req[0].ID, now.Add(time.Hour)))
	got, err = repo.ListDueReminders(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, got)
	got, err = repo.ListDueReminders(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].ReminderSent)

	// Completing hides it for good.
	require.NoError(t, repo.CompleteTask(ctx, req[0].ID))
	got, err = repo.ListDueReminders(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPrefs_EnsureCreatesDefaultsOnce(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	p1, err := repo.EnsurePreference(ctx, 42)
	require.NoError(t, err)
	assert.True(t, p1.DailyEnabled)
	assert.Equal(t, 20*60, p1.DailyAtM)

	// Second call returns the stored row, not a new one.
	p1.DailyAtM = 8 * 60
	require.NoError(t, repo.UpsertPreference(ctx, p1))
	p2, err := repo.EnsurePreference(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 8*60, p2.DailyAtM)

	daily, err := repo.ListDailyReportUsers(ctx)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, int64(42), daily[0].ChatID)
}

func TestPrayerPrefs_RoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	lat, lon := 41.31, 69.28
	p := &domain.PrayerPreference{
		ChatID:           5,
		Lat:              &lat,
		Lon:              &lon,
		Enabled:          [5]bool{true, false, true, false, true},
		AdvanceMin:       15,
		PreDawnEnabled:   true,
		PreDawnOffsetMin: 25,
	}
	require.NoError(t, repo.UpsertPrayerPreference(ctx, p))

	got, err := repo.ListPrayerPreferences(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].HasCoordinates())
	assert.Equal(t, p.Enabled, got[0].Enabled)
	assert.Equal(t, 15, got[0].AdvanceMin)
	assert.True(t, got[0].PreDawnEnabled)
	assert.False(t, got[0].SunsetEnabled)
}

func TestSubscriptions_ExpiryQueries(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	now := time.Date(2025, time.May, 5, 9, 0, 0, 0, time.UTC)

	subs := []*domain.Subscription{
		{ChatID: 1, Status: domain.SubStatusActive, EndsAt: now.Add(20 * time.Hour)},  // 1-day bucket
		{ChatID: 2, Status: domain.SubStatusTrial, EndsAt: now.Add(60 * time.Hour)},   // 3-day bucket
		{ChatID: 3, Status: domain.SubStatusActive, EndsAt: now.Add(200 * time.Hour)}, // far out
		{ChatID: 4, Status: domain.SubStatusActive, EndsAt: now.Add(-time.Hour)},      // overdue
		{ChatID: 5, Status: domain.SubStatusExpired, EndsAt: now.Add(-time.Hour)},     // already transitioned
	}
	for _, s := range subs {
		s.StartsAt = now.Add(-30 * 24 * time.Hour)
		require.NoError(t, repo.UpsertSubscription(ctx, s))
	}

	oneDay, err := repo.ListExpiring(ctx, now, 1)
	require.NoError(t, err)
	require.Len(t, oneDay, 1)
	assert.Equal(t, int64(1), oneDay[0].ChatID)

	threeDay, err := repo.ListExpiring(ctx, now, 3)
	require.NoError(t, err)
	require.Len(t, threeDay, 1)
	assert.Equal(t, int64(2), threeDay[0].ChatID)

	expired, err := repo.ListExpired(ctx, now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, int64(4), expired[0].ChatID)

	// Transition makes the sweep idempotent at the storage level.
	require.NoError(t, repo.SetSubscriptionStatus(ctx, 4, domain.SubStatusExpired))
	expired, err = repo.ListExpired(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, expired)

	got, err := repo.GetSubscription(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, domain.SubStatusExpired, got.Status)

	_, err = repo.GetSubscription(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshots_SinceFilters(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	midnight := time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)

	old := &domain.Expense{ChatID: 7, Amount: 10, Category: "food", SpentAt: midnight.Add(-2 * time.Hour)}
	fresh := &domain.Expense{ChatID: 7, Amount: 20, Category: "food", SpentAt: midnight.Add(2 * time.Hour)}
	require.NoError(t, repo.CreateExpense(ctx, old))
	require.NoError(t, repo.CreateExpense(ctx, fresh))

	got, err := repo.ExpensesSince(ctx, 7, midnight)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 20.0, got[0].Amount)

	require.NoError(t, repo.CreateGoal(ctx, &domain.Goal{ChatID: 7, Title: "fund", Target: 100, Progress: 30, Active: true}))
	require.NoError(t, repo.CreateGoal(ctx, &domain.Goal{ChatID: 7, Title: "done goal", Target: 100, Progress: 100}))

	goals, err := repo.ActiveGoals(ctx, 7)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "fund", goals[0].Title)
}
