package scheduler

import (
	"strings"
	"sync"
)

// Key identifies one notification instance: a chat, an event kind and the
// period marker (day or ISO week) the instance belongs to.
type Key struct {
	ChatID int64
	Kind   string
	Marker string
}

// Ledger records which notification instances were already delivered within
// their period. It is process-local: entries do not survive a restart, which
// is the documented tradeoff — a restart near a matching minute may redeliver
// a task reminder or skip one report for that period.
type Ledger interface {
	// Seen reports whether the instance was already recorded.
	Seen(k Key) bool
	// MarkIfAbsent records the instance; returns false if already present.
	// The winning caller owns the claim and is the only one allowed to send.
	MarkIfAbsent(k Key) bool
	// Drop releases a claim after a failed delivery so the next cycle retries.
	Drop(k Key)
	// PruneKind drops entries of the kind whose marker differs from keep.
	PruneKind(kind, keep string)
	// ResetKindPrefix drops every entry whose kind starts with prefix.
	ResetKindPrefix(prefix string)
	// Len returns the number of recorded entries.
	Len() int
}

// MemoryLedger is the in-process Ledger used in production. Checks may run on
// overlapping goroutines, so access is mutex-guarded.
type MemoryLedger struct {
	mu   sync.Mutex
	sent map[Key]struct{}
}

// NewMemoryLedger builds an empty ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{sent: make(map[Key]struct{})}
}

func (l *MemoryLedger) Seen(k Key) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.sent[k]
	return ok
}

func (l *MemoryLedger) MarkIfAbsent(k Key) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.sent[k]; ok {
		return false
	}
	l.sent[k] = struct{}{}
	return true
}

func (l *MemoryLedger) Drop(k Key) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sent, k)
}

func (l *MemoryLedger) PruneKind(kind, keep string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k := range l.sent {
		if k.Kind == kind && k.Marker != keep {
			delete(l.sent, k)
		}
	}
}

func (l *MemoryLedger) ResetKindPrefix(prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k := range l.sent {
		if strings.HasPrefix(k.Kind, prefix) {
			delete(l.sent, k)
		}
	}
}

func (l *MemoryLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sent)
}
