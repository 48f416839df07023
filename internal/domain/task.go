package domain

import "time"

// Task is a user to-do item with an optional one-shot reminder.
type Task struct {
	ID         string
	ChatID     int64
	Text       string
	Completed  bool
	ReminderAt *time.Time // UTC, nullable; nil means no reminder
	// ReminderSent goes false→true only after a successful delivery.
	// Snooze resets it to false together with a new future ReminderAt.
	ReminderSent bool
	CreatedAt    time.Time // UTC
}

// ReminderDue reports whether the task's reminder should fire at nowUTC.
func (t *Task) ReminderDue(nowUTC time.Time) bool {
	return t.ReminderAt != nil &&
		!t.ReminderAt.After(nowUTC) &&
		!t.ReminderSent &&
		!t.Completed
}

// Expense is a single recorded spending entry.
type Expense struct {
	ID       string
	ChatID   int64
	Amount   float64
	Category string
	Note     string
	SpentAt  time.Time // UTC
}

// Goal is a savings/progress goal tracked by the user.
type Goal struct {
	ID       string
	ChatID   int64
	Title    string
	Target   float64
	Progress float64
	Active   bool
}

// Percent returns progress toward target as a whole percentage, clamped to
// 0..100. A goal without a positive target reports 0.
func (g *Goal) Percent() int {
	if g.Target <= 0 {
		return 0
	}
	p := int(g.Progress / g.Target * 100)
	if p > 100 {
		p = 100
	}
	if p < 0 {
		p = 0
	}
	return p
}
