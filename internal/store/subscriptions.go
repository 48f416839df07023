package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/domain"
)

const subColumns = `chat_id, status, plan, starts_at, ends_at`

func scanSub(row interface{ Scan(...any) error }) (domain.Subscription, error) {
	var (
		s        domain.Subscription
		startSec int64
		endSec   int64
	)
	if err := row.Scan(&s.ChatID, &s.Status, &s.Plan, &startSec, &endSec); err != nil {
		return domain.Subscription{}, err
	}
	s.StartsAt = time.Unix(startSec, 0).UTC()
	s.EndsAt = time.Unix(endSec, 0).UTC()
	return s, nil
}

// UpsertSubscription inserts or replaces a chat's plan record.
func (r *SQLiteRepo) UpsertSubscription(ctx context.Context, s *domain.Subscription) error {
	if s == nil {
		return errors.New("nil subscription")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions (chat_id, status, plan, starts_at, ends_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			status    = excluded.status,
			plan      = excluded.plan,
			starts_at = excluded.starts_at,
			ends_at   = excluded.ends_at`,
		s.ChatID, s.Status, s.Plan, s.StartsAt.UTC().Unix(), s.EndsAt.UTC().Unix(),
	)
	return err
}

// GetSubscription returns the chat's subscription or ErrNotFound.
func (r *SQLiteRepo) GetSubscription(ctx context.Context, chatID int64) (*domain.Subscription, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+subColumns+` FROM subscriptions WHERE chat_id = ?`, chatID)
	s, err := scanSub(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListExpiring returns live subscriptions whose ends_at falls inside the
// daysLeft-day bucket: (now + daysLeft-1 days, now + daysLeft days].
func (r *SQLiteRepo) ListExpiring(ctx context.Context, now time.Time, daysLeft int) ([]domain.Subscription, error) {
	lo := now.Add(time.Duration(daysLeft-1) * 24 * time.Hour).UTC().Unix()
	hi := now.Add(time.Duration(daysLeft) * 24 * time.Hour).UTC().Unix()
	return r.listSubs(ctx, `
		SELECT `+subColumns+`
		FROM subscriptions
		WHERE status IN ('trial', 'active')
		  AND ends_at > ?
		  AND ends_at <= ?
		ORDER BY ends_at ASC`, lo, hi)
}

// ListExpired returns subscriptions past their end that still carry a live
// status. The sweep transitions them; re-running returns nothing.
func (r *SQLiteRepo) ListExpired(ctx context.Context, now time.Time) ([]domain.Subscription, error) {
	return r.listSubs(ctx, `
		SELECT `+subColumns+`
		FROM subscriptions
		WHERE ends_at <= ?
		  AND status != 'expired'
		ORDER BY ends_at ASC`, now.UTC().Unix())
}

// SetSubscriptionStatus updates only the status column.
func (r *SQLiteRepo) SetSubscriptionStatus(ctx context.Context, chatID int64, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET status = ? WHERE chat_id = ?`, status, chatID)
	return err
}

func (r *SQLiteRepo) listSubs(ctx context.Context, query string, args ...any) ([]domain.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Subscription
	for rows.Next() {
		s, err := scanSub(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}
