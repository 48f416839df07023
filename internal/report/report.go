// Package report turns a user's task/expense/goal snapshot into the summary
// texts the scheduler delivers. Everything here is pure: callers fetch the
// snapshot and pick the period, the package only formats.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/domain"
)

// Snapshot is the read-only input for one user's report.
type Snapshot struct {
	Tasks    []domain.Task
	Expenses []domain.Expense
	Goals    []domain.Goal
}

// Daily renders the end-of-day summary for the given local date.
func Daily(s Snapshot, date time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Daily summary — %s\n\n", date.Format("Mon, 02 Jan"))
	writeTasks(&b, s.Tasks)
	writeExpenses(&b, s.Expenses)
	writeGoals(&b, s.Goals)
	b.WriteString("\nHave a calm evening 🌙")
	return b.String()
}

// Weekly renders the week-in-review summary. weekOf is any local instant
// inside the reported week.
func Weekly(s Snapshot, weekOf time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗓 Weekly review — %s\n\n", domain.WeekKey(weekOf))
	writeTasks(&b, s.Tasks)
	writeExpenses(&b, s.Expenses)
	writeGoals(&b, s.Goals)
	b.WriteString("\nNew week, fresh start 💪")
	return b.String()
}

func writeTasks(b *strings.Builder, tasks []domain.Task) {
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	fmt.Fprintf(b, "✅ Tasks: %d done, %d open\n", done, len(tasks)-done)
}

func writeExpenses(b *strings.Builder, expenses []domain.Expense) {
	if len(expenses) == 0 {
		b.WriteString("💸 Spending: nothing recorded\n")
		return
	}
	var total float64
	byCategory := map[string]float64{}
	for _, e := range expenses {
		total += e.Amount
		cat := e.Category
		if cat == "" {
			cat = "other"
		}
		byCategory[cat] += e.Amount
	}
	fmt.Fprintf(b, "💸 Spending: %s across %d entries\n", formatAmount(total), len(expenses))

	// Top categories, highest first; ties broken by name for stable output.
	type catSum struct {
		name string
		sum  float64
	}
	cats := make([]catSum, 0, len(byCategory))
	for name, sum := range byCategory {
		cats = append(cats, catSum{name, sum})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].sum != cats[j].sum {
			return cats[i].sum > cats[j].sum
		}
		return cats[i].name < cats[j].name
	})
	if len(cats) > 3 {
		cats = cats[:3]
	}
	for _, c := range cats {
		fmt.Fprintf(b, "   • %s: %s\n", c.name, formatAmount(c.sum))
	}
}

func writeGoals(b *strings.Builder, goals []domain.Goal) {
	if len(goals) == 0 {
		return
	}
	b.WriteString("🎯 Goals:\n")
	for _, g := range goals {
		fmt.Fprintf(b, "   • %s — %d%%\n", g.Title, g.Percent())
	}
}

func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
