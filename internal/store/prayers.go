package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/domain"
)

// UpsertPrayerPreference inserts or updates a chat's prayer reminder settings.
func (r *SQLiteRepo) UpsertPrayerPreference(ctx context.Context, p *domain.PrayerPreference) error {
	if p == nil {
		return errors.New("nil prayer preference")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO prayer_prefs (
			chat_id, region_code, lat, lon,
			fajr_enabled, dhuhr_enabled, asr_enabled, maghrib_enabled, isha_enabled,
			advance_min, predawn_enabled, predawn_offset_min, sunset_enabled, sunset_offset_min
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			region_code        = excluded.region_code,
			lat                = excluded.lat,
			lon                = excluded.lon,
			fajr_enabled       = excluded.fajr_enabled,
			dhuhr_enabled      = excluded.dhuhr_enabled,
			asr_enabled        = excluded.asr_enabled,
			maghrib_enabled    = excluded.maghrib_enabled,
			isha_enabled       = excluded.isha_enabled,
			advance_min        = excluded.advance_min,
			predawn_enabled    = excluded.predawn_enabled,
			predawn_offset_min = excluded.predawn_offset_min,
			sunset_enabled     = excluded.sunset_enabled,
			sunset_offset_min  = excluded.sunset_offset_min`,
		p.ChatID, p.RegionCode, toNullFloat64(p.Lat), toNullFloat64(p.Lon),
		boolToInt(p.Enabled[0]), boolToInt(p.Enabled[1]), boolToInt(p.Enabled[2]),
		boolToInt(p.Enabled[3]), boolToInt(p.Enabled[4]),
		p.AdvanceMin, boolToInt(p.PreDawnEnabled), p.PreDawnOffsetMin,
		boolToInt(p.SunsetEnabled), p.SunsetOffsetMin,
	)
	return err
}

// ListPrayerPreferences returns every chat's prayer settings. The prayer check
// filters disabled entries itself.
func (r *SQLiteRepo) ListPrayerPreferences(ctx context.Context) ([]domain.PrayerPreference, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT chat_id, region_code, lat, lon,
		       fajr_enabled, dhuhr_enabled, asr_enabled, maghrib_enabled, isha_enabled,
		       advance_min, predawn_enabled, predawn_offset_min, sunset_enabled, sunset_offset_min
		FROM prayer_prefs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.PrayerPreference
	for rows.Next() {
		var (
			p        domain.PrayerPreference
			lat, lon sql.NullFloat64
			en       [5]int
			preDawn  int
			sunset   int
		)
		if err := rows.Scan(
			&p.ChatID, &p.RegionCode, &lat, &lon,
			&en[0], &en[1], &en[2], &en[3], &en[4],
			&p.AdvanceMin, &preDawn, &p.PreDawnOffsetMin, &sunset, &p.SunsetOffsetMin,
		); err != nil {
			return nil, err
		}
		p.Lat = fromNullFloat64(lat)
		p.Lon = fromNullFloat64(lon)
		for i := range en {
			p.Enabled[i] = en[i] != 0
		}
		p.PreDawnEnabled = preDawn != 0
		p.SunsetEnabled = sunset != 0
		res = append(res, p)
	}
	return res, rows.Err()
}
