package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/domain"
)

const prefColumns = `chat_id, daily_enabled, daily_at_m, weekly_enabled, weekly_day, weekly_at_m, created_at`

func scanPref(row interface{ Scan(...any) error }) (domain.NotificationPreference, error) {
	var (
		p          domain.NotificationPreference
		daily      int
		weekly     int
		weekDay    int
		createdSec int64
	)
	if err := row.Scan(&p.ChatID, &daily, &p.DailyAtM, &weekly, &weekDay, &p.WeeklyAtM, &createdSec); err != nil {
		return domain.NotificationPreference{}, err
	}
	p.DailyEnabled = daily != 0
	p.WeeklyEnabled = weekly != 0
	p.WeeklyDay = time.Weekday(weekDay)
	p.CreatedAt = time.Unix(createdSec, 0).UTC()
	return p, nil
}

// EnsurePreference returns the chat's preference row, creating it with
// defaults (daily 20:00, weekly Sunday 20:00) on first interaction.
func (r *SQLiteRepo) EnsurePreference(ctx context.Context, chatID int64) (*domain.NotificationPreference, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+prefColumns+` FROM notification_prefs WHERE chat_id = ?`, chatID)
	p, err := scanPref(row)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	p = domain.NotificationPreference{
		ChatID:        chatID,
		DailyEnabled:  true,
		DailyAtM:      20 * 60,
		WeeklyEnabled: true,
		WeeklyDay:     time.Sunday,
		WeeklyAtM:     20 * 60,
		CreatedAt:     time.Now().UTC(),
	}
	if err := r.UpsertPreference(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertPreference inserts or updates a chat's report settings.
func (r *SQLiteRepo) UpsertPreference(ctx context.Context, p *domain.NotificationPreference) error {
	if p == nil {
		return errors.New("nil preference")
	}
	created := p.CreatedAt.UTC().Unix()
	if p.CreatedAt.IsZero() {
		created = time.Now().UTC().Unix()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notification_prefs (
			chat_id, daily_enabled, daily_at_m, weekly_enabled, weekly_day, weekly_at_m, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			daily_enabled  = excluded.daily_enabled,
			daily_at_m     = excluded.daily_at_m,
			weekly_enabled = excluded.weekly_enabled,
			weekly_day     = excluded.weekly_day,
			weekly_at_m    = excluded.weekly_at_m`,
		p.ChatID, boolToInt(p.DailyEnabled), p.DailyAtM,
		boolToInt(p.WeeklyEnabled), int(p.WeeklyDay), p.WeeklyAtM, created,
	)
	return err
}

// ListDailyReportUsers returns preferences with daily reports enabled.
func (r *SQLiteRepo) ListDailyReportUsers(ctx context.Context) ([]domain.NotificationPreference, error) {
	return r.listPrefs(ctx,
		`SELECT `+prefColumns+` FROM notification_prefs WHERE daily_enabled = 1`)
}

// ListWeeklyReportUsers returns preferences with weekly reports enabled.
func (r *SQLiteRepo) ListWeeklyReportUsers(ctx context.Context) ([]domain.NotificationPreference, error) {
	return r.listPrefs(ctx,
		`SELECT `+prefColumns+` FROM notification_prefs WHERE weekly_enabled = 1`)
}

func (r *SQLiteRepo) listPrefs(ctx context.Context, query string) ([]domain.NotificationPreference, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.NotificationPreference
	for rows.Next() {
		p, err := scanPref(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}
