package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/domain"
	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/prayer"
)

// Display names for prayer alerts (local names first, as users know them).
var prayerTitles = map[string]string{
	domain.PrayerFajr:    "Bomdod (Fajr)",
	domain.PrayerDhuhr:   "Peshin (Dhuhr)",
	domain.PrayerAsr:     "Asr",
	domain.PrayerMaghrib: "Shom (Maghrib)",
	domain.PrayerIsha:    "Xufton (Isha)",
}

// CheckPrayerReminders fires prayer alerts on exact minute match:
// reminderMinute = prayerMinute - advance. Exact matching avoids
// double-delivery across consecutive cycles without persisted per-prayer
// flags; the ledger guards repeated evaluations of the same minute, and the
// whole prayer ledger is cleared once a day at local midnight.
func (s *Scheduler) CheckPrayerReminders(ctx context.Context) {
	now := s.clk.Now()
	minute := domain.MinuteOfDay(now)
	day := domain.DayKey(now)

	if now.Hour() == 0 && now.Minute() == 0 {
		s.ledger.ResetKindPrefix(kindPrayerPrefix)
	}

	prefs, err := s.repo.ListPrayerPreferences(ctx)
	if err != nil {
		s.log.Error("list prayer preferences failed", zap.Error(err))
		return
	}

	for i := range prefs {
		p := &prefs[i]
		if !wantsAnyPrayer(p) {
			continue
		}
		if !s.entitled(ctx, p.ChatID, now) {
			continue
		}

		times, err := s.resolveTimes(ctx, p, now)
		if err != nil {
			// Provider down or misconfigured location: skip this user this
			// cycle, nothing is marked, next cycle retries.
			s.log.Warn("prayer times lookup failed",
				zap.Error(err),
				zap.Int64("chatID", p.ChatID),
			)
			continue
		}

		for _, name := range domain.PrayerNames {
			if !p.EnabledFor(name) {
				continue
			}
			target := times.Minute(name) - p.AdvanceMin
			if target < 0 || minute != target {
				continue
			}
			// Claim before sending; overlapping invocations of the same
			// minute reach MarkIfAbsent and only one wins.
			key := Key{ChatID: p.ChatID, Kind: kindPrayerPrefix + name, Marker: day}
			if !s.ledger.MarkIfAbsent(key) {
				continue
			}
			text := fmt.Sprintf("🕌 %s in %d min (%s)",
				prayerTitles[name], p.AdvanceMin, domain.FormatMinutes(times.Minute(name)))
			if p.AdvanceMin == 0 {
				text = fmt.Sprintf("🕌 %s — it is time (%s)",
					prayerTitles[name], domain.FormatMinutes(times.Minute(name)))
			}
			if err := s.sender.Send(ctx, p.ChatID, text); err != nil {
				s.log.Warn("prayer reminder send failed", zap.Error(err), zap.Int64("chatID", p.ChatID))
				s.ledger.Drop(key)
			}
		}

		// Saharlik: last call before dawn during fasting.
		if p.PreDawnEnabled {
			target := times.Fajr() - p.PreDawnOffsetMin
			if target >= 0 && minute == target {
				key := Key{ChatID: p.ChatID, Kind: kindPrayerPrefix + "predawn", Marker: day}
				if s.ledger.MarkIfAbsent(key) {
					text := fmt.Sprintf("🌅 Saharlik: last call — dawn at %s (%d min left)",
						domain.FormatMinutes(times.Fajr()), p.PreDawnOffsetMin)
					if err := s.sender.Send(ctx, p.ChatID, text); err != nil {
						s.log.Warn("saharlik send failed", zap.Error(err), zap.Int64("chatID", p.ChatID))
						s.ledger.Drop(key)
					}
				}
			}
		}

		// Iftorlik: breaking fast at sunset.
		if p.SunsetEnabled {
			target := times.Maghrib() - p.SunsetOffsetMin
			if target >= 0 && minute == target {
				key := Key{ChatID: p.ChatID, Kind: kindPrayerPrefix + "sunset", Marker: day}
				if s.ledger.MarkIfAbsent(key) {
					text := fmt.Sprintf("🌇 Iftorlik: sunset at %s — time to break the fast",
						domain.FormatMinutes(times.Maghrib()))
					if err := s.sender.Send(ctx, p.ChatID, text); err != nil {
						s.log.Warn("iftorlik send failed", zap.Error(err), zap.Int64("chatID", p.ChatID))
						s.ledger.Drop(key)
					}
				}
			}
		}
	}
}

func wantsAnyPrayer(p *domain.PrayerPreference) bool {
	for _, on := range p.Enabled {
		if on {
			return true
		}
	}
	return p.PreDawnEnabled || p.SunsetEnabled
}

func (s *Scheduler) resolveTimes(ctx context.Context, p *domain.PrayerPreference, now time.Time) (*prayer.Times, error) {
	if p.HasCoordinates() {
		return s.times.ForCoordinates(ctx, *p.Lat, *p.Lon, now)
	}
	if p.RegionCode == "" {
		return nil, fmt.Errorf("chat %d has neither region nor coordinates", p.ChatID)
	}
	return s.times.ForRegion(ctx, p.RegionCode, now)
}
