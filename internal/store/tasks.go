package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

const taskColumns = `id, chat_id, text, completed, reminder_at, reminder_sent, created_at`

func scanTask(row interface{ Scan(...any) error }) (domain.Task, error) {
	var (
		t          domain.Task
		completed  int
		remNS      sql.NullInt64
		remSent    int
		createdSec int64
	)
	if err := row.Scan(&t.ID, &t.ChatID, &t.Text, &completed, &remNS, &remSent, &createdSec); err != nil {
		return domain.Task{}, err
	}
	t.Completed = completed != 0
	t.ReminderAt = fromNullInt64(remNS)
	t.ReminderSent = remSent != 0
	t.CreatedAt = time.Unix(createdSec, 0).UTC()
	return t, nil
}

// CreateTask inserts a new task, assigning an ID when missing.
func (r *SQLiteRepo) CreateTask(ctx context.Context, t *domain.Task) error {
	if t == nil {
		return errors.New("nil task")
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, chat_id, text, completed, reminder_at, reminder_sent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ChatID, t.Text, boolToInt(t.Completed),
		toNullInt64(t.ReminderAt), boolToInt(t.ReminderSent), t.CreatedAt.UTC().Unix(),
	)
	return err
}

// GetTask returns a task by id or ErrNotFound.
func (r *SQLiteRepo) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTasks returns all tasks for a chat, newest first.
func (r *SQLiteRepo) ListTasks(ctx context.Context, chatID int64) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE chat_id = ? ORDER BY created_at DESC`, chatID)
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

// CompleteTask marks a task done. A completed task never reminds.
func (r *SQLiteRepo) CompleteTask(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET completed = 1 WHERE id = ?`, id)
	return err
}

// ListDueReminders returns pending reminder candidates ordered by due time.
func (r *SQLiteRepo) ListDueReminders(ctx context.Context, now time.Time) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE reminder_at IS NOT NULL
		  AND reminder_at <= ?
		  AND reminder_sent = 0
		  AND completed = 0
		ORDER BY reminder_at ASC`,
		now.UTC().Unix(),
	)
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

// MarkReminderSent records a successful delivery; the task will not fire again
// unless rescheduled.
func (r *SQLiteRepo) MarkReminderSent(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET reminder_sent = 1 WHERE id = ?`, id)
	return err
}

// RescheduleReminder re-arms a task for exactly one future delivery.
func (r *SQLiteRepo) RescheduleReminder(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET reminder_at = ?, reminder_sent = 0 WHERE id = ?`,
		at.UTC().Unix(), id)
	return err
}
