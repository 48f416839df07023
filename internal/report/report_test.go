package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/domain"
)

func TestDaily_Content(t *testing.T) {
	date := time.Date(2025, time.May, 5, 20, 0, 0, 0, time.UTC)
	s := Snapshot{
		Tasks: []domain.Task{
			{Text: "pay rent", Completed: true},
			{Text: "call mom"},
			{Text: "gym"},
		},
		Expenses: []domain.Expense{
			{Amount: 50000, Category: "food"},
			{Amount: 20000, Category: "food"},
			{Amount: 15000, Category: "transport"},
		},
		Goals: []domain.Goal{
			{Title: "Emergency fund", Target: 1000, Progress: 250, Active: true},
		},
	}

	out := Daily(s, date)
	assert.Contains(t, out, "1 done, 2 open")
	assert.Contains(t, out, "85000 across 3 entries")
	assert.Contains(t, out, "food: 70000")
	assert.Contains(t, out, "Emergency fund — 25%")
}

func TestDaily_EmptySnapshot(t *testing.T) {
	out := Daily(Snapshot{}, time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, out, "0 done, 0 open")
	assert.Contains(t, out, "nothing recorded")
	assert.NotContains(t, out, "Goals")
}

func TestWeekly_HeaderUsesISOWeek(t *testing.T) {
	weekOf := time.Date(2025, time.May, 5, 12, 0, 0, 0, time.UTC)
	out := Weekly(Snapshot{}, weekOf)
	assert.Contains(t, out, "2025-W19")
}

func TestExpenses_TopCategoriesCapped(t *testing.T) {
	s := Snapshot{Expenses: []domain.Expense{
		{Amount: 4, Category: "a"},
		{Amount: 3, Category: "b"},
		{Amount: 2, Category: "c"},
		{Amount: 1, Category: "d"},
	}}
	out := Daily(s, time.Now())
	assert.Contains(t, out, "a: 4")
	assert.Contains(t, out, "c: 2")
	assert.False(t, strings.Contains(out, "d: 1"), "only top three categories are shown")
}

func TestExpenses_UncategorizedGrouped(t *testing.T) {
	s := Snapshot{Expenses: []domain.Expense{{Amount: 10}}}
	out := Daily(s, time.Now())
	assert.Contains(t, out, "other: 10")
}
