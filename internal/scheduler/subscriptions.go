package scheduler

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/domain"
)

// expiryWarning returns the escalating warning text for daysLeft ∈ 1..3.
func expiryWarning(daysLeft int, plan string) string {
	switch daysLeft {
	case 1:
		return fmt.Sprintf("🚨 Your %s subscription expires TOMORROW. Renew now to keep your reminders and reports.", planLabel(plan))
	case 2:
		return fmt.Sprintf("⚠️ Your %s subscription expires in 2 days.", planLabel(plan))
	default:
		return fmt.Sprintf("ℹ️ Your %s subscription expires in %d days.", planLabel(plan), daysLeft)
	}
}

func planLabel(plan string) string {
	if plan == "" {
		return "current"
	}
	return plan
}

const expiredNotice = "❌ Your subscription has expired. Reminders, reports and prayer alerts are paused until you renew."

// CheckSubscriptions runs hourly: it warns users whose subscription ends
// within 1, 2 or 3 days (once per threshold per day) and transitions
// overdue subscriptions to expired with a one-time notice. The transition is
// the idempotence mechanism — an already-expired row is never selected again,
// so re-running the sweep resends nothing.
func (s *Scheduler) CheckSubscriptions(ctx context.Context) {
	now := s.clk.Now()
	day := domain.DayKey(now)

	for daysLeft := 1; daysLeft <= 3; daysLeft++ {
		kind := fmt.Sprintf("%s%dd", kindExpiryPrefix, daysLeft)
		s.ledger.PruneKind(kind, day)

		subs, err := s.repo.ListExpiring(ctx, now.UTC(), daysLeft)
		if err != nil {
			s.log.Error("list expiring subscriptions failed",
				zap.Error(err), zap.Int("daysLeft", daysLeft))
			continue
		}
		for _, sub := range subs {
			key := Key{ChatID: sub.ChatID, Kind: kind, Marker: day}
			if !s.ledger.MarkIfAbsent(key) {
				continue
			}
			if err := s.sender.Send(ctx, sub.ChatID, expiryWarning(daysLeft, sub.Plan)); err != nil {
				s.log.Warn("expiry warning send failed",
					zap.Error(err), zap.Int64("chatID", sub.ChatID))
				s.ledger.Drop(key)
			}
		}
	}
	s.ledger.PruneKind(kindExpiredNote, day)

	expired, err := s.repo.ListExpired(ctx, now.UTC())
	if err != nil {
		s.log.Error("list expired subscriptions failed", zap.Error(err))
		return
	}
	for _, sub := range expired {
		// Transition first: once the row reads expired it can never be
		// selected again, which makes the notice one-time even across
		// restarts. A crash between transition and send loses the notice,
		// never duplicates it.
		if err := s.repo.SetSubscriptionStatus(ctx, sub.ChatID, domain.SubStatusExpired); err != nil {
			s.log.Error("expire subscription failed",
				zap.Error(err), zap.Int64("chatID", sub.ChatID))
			continue
		}
		key := Key{ChatID: sub.ChatID, Kind: kindExpiredNote, Marker: day}
		if !s.ledger.MarkIfAbsent(key) {
			continue
		}
		if err := s.sender.Send(ctx, sub.ChatID, expiredNotice); err != nil {
			s.log.Warn("expired notice send failed",
				zap.Error(err), zap.Int64("chatID", sub.ChatID))
		}
		s.log.Info("subscription expired",
			zap.Int64("chatID", sub.ChatID), zap.String("plan", sub.Plan))
	}
}
