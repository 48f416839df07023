package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/domain"
	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/store"
)

type fakeSubs struct {
	store.SubscriptionRepo
	subs map[int64]*domain.Subscription
}

func (f *fakeSubs) GetSubscription(_ context.Context, chatID int64) (*domain.Subscription, error) {
	s, ok := f.subs[chatID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return s, nil
}

func TestEntitled_PromoWindow(t *testing.T) {
	now := time.Date(2025, time.May, 5, 10, 0, 0, 0, time.UTC)
	g := NewGate(&fakeSubs{subs: map[int64]*domain.Subscription{}}, now.Add(time.Hour))

	ok, err := g.Entitled(context.Background(), 1, now)
	require.NoError(t, err)
	require.True(t, ok, "everyone is entitled before the promo cutoff")

	ok, err = g.Entitled(context.Background(), 1, now.Add(2*time.Hour))
	require.NoError(t, err)
	require.False(t, ok, "promo over, no subscription")
}

func TestEntitled_Subscription(t *testing.T) {
	now := time.Date(2025, time.May, 5, 10, 0, 0, 0, time.UTC)
	subs := &fakeSubs{subs: map[int64]*domain.Subscription{
		1: {ChatID: 1, Status: domain.SubStatusActive, EndsAt: now.Add(24 * time.Hour)},
		2: {ChatID: 2, Status: domain.SubStatusTrial, EndsAt: now.Add(time.Minute)},
		3: {ChatID: 3, Status: domain.SubStatusExpired, EndsAt: now.Add(24 * time.Hour)},
		4: {ChatID: 4, Status: domain.SubStatusActive, EndsAt: now.Add(-time.Minute)},
	}}
	g := NewGate(subs, time.Time{}) // no promo

	cases := []struct {
		chatID int64
		want   bool
	}{
		{1, true},
		{2, true},
		{3, false}, // expired status never entitles
		{4, false}, // past end date
		{9, false}, // no record at all
	}
	for _, c := range cases {
		ok, err := g.Entitled(context.Background(), c.chatID, now)
		require.NoError(t, err)
		require.Equalf(t, c.want, ok, "chat %d", c.chatID)
	}
}
