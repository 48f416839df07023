// Package prayer resolves the day's prayer times for a region or a custom
// location. Lookups go to an external Aladhan-compatible API; results are
// cached per region+date for the current day.
package prayer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/domain"
)

// Times holds one day's canonical prayer times as minutes since local
// midnight, in PrayerNames order: fajr, dhuhr, asr, maghrib, isha.
type Times struct {
	Minutes [5]int
}

// Minute returns the minute-of-day for the named prayer, or -1 when unknown.
func (t *Times) Minute(name string) int {
	for i, n := range domain.PrayerNames {
		if n == name {
			return t.Minutes[i]
		}
	}
	return -1
}

// Fajr and Maghrib anchor the auxiliary fasting reminders.
func (t *Times) Fajr() int    { return t.Minutes[0] }
func (t *Times) Maghrib() int { return t.Minutes[3] }

// Provider resolves prayer times for a date. Implementations return an error
// on lookup failure; callers skip the user for that cycle and retry next one.
type Provider interface {
	ForRegion(ctx context.Context, region string, date time.Time) (*Times, error)
	ForCoordinates(ctx context.Context, lat, lon float64, date time.Time) (*Times, error)
}

// parseTimes converts an API timings map ("HH:MM", sometimes with a
// " (+05)" timezone suffix) into minute-of-day values for the five canonical
// prayers. Extra entries such as Sunrise or Imsak are ignored.
func parseTimes(timings map[string]string) (*Times, error) {
	keys := [5]string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}
	var t Times
	for i, k := range keys {
		raw, ok := timings[k]
		if !ok {
			return nil, fmt.Errorf("timings missing %s", k)
		}
		// "05:12 (+05)" → "05:12"
		if idx := strings.IndexByte(raw, ' '); idx > 0 {
			raw = raw[:idx]
		}
		m, err := domain.ParseHHMM(raw)
		if err != nil {
			return nil, fmt.Errorf("timings %s: %w", k, err)
		}
		t.Minutes[i] = m
	}
	return &t, nil
}
