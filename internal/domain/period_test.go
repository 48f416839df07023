package domain

import (
	"errors"
	"testing"
	"time"
)

func mustLoc(t *testing.T, tz string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	return loc
}

func TestDayKey(t *testing.T) {
	loc := mustLoc(t, "Asia/Tashkent")
	lt := time.Date(2025, time.May, 5, 0, 30, 0, 0, loc)
	if got := DayKey(lt); got != "2025-05-05" {
		t.Fatalf("want 2025-05-05, got %s", got)
	}
}

func TestWeekKey_YearBoundary(t *testing.T) {
	loc := mustLoc(t, "Asia/Tashkent")
	// 2024-12-30 belongs to ISO week 1 of 2025.
	lt := time.Date(2024, time.December, 30, 12, 0, 0, 0, loc)
	if got := WeekKey(lt); got != "2025-W01" {
		t.Fatalf("want 2025-W01, got %s", got)
	}
}

func TestMinuteOfDay(t *testing.T) {
	loc := mustLoc(t, "Asia/Tashkent")
	lt := time.Date(2025, time.May, 5, 20, 0, 0, 0, loc)
	if got := MinuteOfDay(lt); got != 1200 {
		t.Fatalf("want 1200, got %d", got)
	}
}

func TestParseHHMM(t *testing.T) {
	got, err := ParseHHMM("20:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != 1200 {
		t.Fatalf("want 1200, got %d", got)
	}
}

func TestParseHHMM_Invalid(t *testing.T) {
	for _, s := range []string{"", "24:00", "12:60", "noon", "12"} {
		if _, err := ParseHHMM(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
	if _, err := ParseHHMM(""); !errors.Is(err, ErrEmptyTime) {
		t.Fatalf("want ErrEmptyTime, got %v", err)
	}
}

func TestFormatMinutes(t *testing.T) {
	if got := FormatMinutes(290); got != "04:50" {
		t.Fatalf("want 04:50, got %s", got)
	}
}

func TestTaskReminderDue(t *testing.T) {
	now := time.Date(2025, time.May, 5, 10, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	due := Task{ReminderAt: &past}
	if !due.ReminderDue(now) {
		t.Fatal("past unsent reminder should be due")
	}
	sent := Task{ReminderAt: &past, ReminderSent: true}
	if sent.ReminderDue(now) {
		t.Fatal("sent reminder must not fire again")
	}
	completed := Task{ReminderAt: &past, Completed: true}
	if completed.ReminderDue(now) {
		t.Fatal("completed task must not remind")
	}
	notYet := Task{ReminderAt: &future}
	if notYet.ReminderDue(now) {
		t.Fatal("future reminder is not due")
	}
}

func TestSubscriptionValid(t *testing.T) {
	now := time.Date(2025, time.May, 5, 10, 0, 0, 0, time.UTC)

	active := &Subscription{Status: SubStatusActive, EndsAt: now.Add(24 * time.Hour)}
	if !active.Valid(now) {
		t.Fatal("active with future end must be valid")
	}
	trial := &Subscription{Status: SubStatusTrial, EndsAt: now.Add(time.Minute)}
	if !trial.Valid(now) {
		t.Fatal("trial with future end must be valid")
	}
	stale := &Subscription{Status: SubStatusActive, EndsAt: now}
	if stale.Valid(now) {
		t.Fatal("end at now is no longer valid")
	}
	expired := &Subscription{Status: SubStatusExpired, EndsAt: now.Add(24 * time.Hour)}
	if expired.Valid(now) {
		t.Fatal("expired status never entitles")
	}
	var nilSub *Subscription
	if nilSub.Valid(now) {
		t.Fatal("nil subscription is not valid")
	}
}
