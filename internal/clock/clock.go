// Package clock abstracts "now" in the bot's target civil timezone so the
// scheduler can be driven by a manual clock in tests. All wall-clock reads in
// the scheduling core go through this interface; the host machine's local
// timezone is never consulted.
package clock

import (
	"sync"
	"time"
)

// Clock yields the current time.
type Clock interface {
	// Now returns the current instant in the target location.
	Now() time.Time
	// Location returns the target location.
	Location() *time.Location
}

// Real is the production clock pinned to one IANA location.
type Real struct {
	loc *time.Location
}

// NewReal builds a real clock for the given IANA timezone name.
func NewReal(tz string) (*Real, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	return &Real{loc: loc}, nil
}

func (r *Real) Now() time.Time           { return time.Now().In(r.loc) }
func (r *Real) Location() *time.Location { return r.loc }

// Manual is a settable clock for tests.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual builds a manual clock starting at t.
func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Location() *time.Location {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now.Location()
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
