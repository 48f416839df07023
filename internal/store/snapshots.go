package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/domain"
)

// TasksSince returns tasks created at or after since, for report snapshots.
func (r *SQLiteRepo) TasksSince(ctx context.Context, chatID int64, since time.Time) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE chat_id = ? AND created_at >= ?
		ORDER BY created_at ASC`,
		chatID, since.UTC().Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

// ExpensesSince returns expenses spent at or after since.
func (r *SQLiteRepo) ExpensesSince(ctx context.Context, chatID int64, since time.Time) ([]domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chat_id, amount, category, note, spent_at
		FROM expenses
		WHERE chat_id = ? AND spent_at >= ?
		ORDER BY spent_at ASC`,
		chatID, since.UTC().Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Expense
	for rows.Next() {
		var (
			e        domain.Expense
			spentSec int64
		)
		if err := rows.Scan(&e.ID, &e.ChatID, &e.Amount, &e.Category, &e.Note, &spentSec); err != nil {
			return nil, err
		}
		e.SpentAt = time.Unix(spentSec, 0).UTC()
		res = append(res, e)
	}
	return res, rows.Err()
}

// ActiveGoals returns the chat's goals still being tracked.
func (r *SQLiteRepo) ActiveGoals(ctx context.Context, chatID int64) ([]domain.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chat_id, title, target, progress, active
		FROM goals
		WHERE chat_id = ? AND active = 1
		ORDER BY title ASC`,
		chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Goal
	for rows.Next() {
		var (
			g      domain.Goal
			active int
		)
		if err := rows.Scan(&g.ID, &g.ChatID, &g.Title, &g.Target, &g.Progress, &active); err != nil {
			return nil, err
		}
		g.Active = active != 0
		res = append(res, g)
	}
	return res, rows.Err()
}

// CreateExpense inserts a spending entry, assigning an ID when missing.
func (r *SQLiteRepo) CreateExpense(ctx context.Context, e *domain.Expense) error {
	if e == nil {
		return errors.New("nil expense")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.SpentAt.IsZero() {
		e.SpentAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, chat_id, amount, category, note, spent_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.ChatID, e.Amount, e.Category, e.Note, e.SpentAt.UTC().Unix())
	return err
}

// CreateGoal inserts a goal, assigning an ID when missing.
func (r *SQLiteRepo) CreateGoal(ctx context.Context, g *domain.Goal) error {
	if g == nil {
		return errors.New("nil goal")
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, chat_id, title, target, progress, active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.ChatID, g.Title, g.Target, g.Progress, boolToInt(g.Active))
	return err
}
