// Package billing decides whether a user may receive notifications. Every
// delivery path goes through Gate.Entitled — it is the single monetization
// chokepoint, so the rule lives here and nowhere else.
package billing

import (
	"context"
	"errors"
	"time"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/store"
)

// Gate evaluates entitlement against the subscription store.
type Gate struct {
	subs store.SubscriptionRepo
	// promoUntil: before this instant everyone is entitled (launch promo).
	// Zero disables the promotional window.
	promoUntil time.Time
}

// NewGate builds an entitlement gate.
func NewGate(subs store.SubscriptionRepo, promoUntil time.Time) *Gate {
	return &Gate{subs: subs, promoUntil: promoUntil}
}

// Entitled reports whether the chat may receive notifications at now.
// True when now is inside the promotional window, or when the chat holds a
// trial/active subscription ending in the future. A missing subscription row
// is a plain "not entitled", not an error.
func (g *Gate) Entitled(ctx context.Context, chatID int64, now time.Time) (bool, error) {
	if !g.promoUntil.IsZero() && now.Before(g.promoUntil) {
		return true, nil
	}
	sub, err := g.subs.GetSubscription(ctx, chatID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return sub.Valid(now.UTC()), nil
}
