package domain

import "time"

// NotificationPreference stores per-chat report settings.
// One row per chat; created with defaults on first interaction.
type NotificationPreference struct {
	ChatID        int64
	DailyEnabled  bool
	DailyAtM      int // minutes from midnight (0..1439), target TZ
	WeeklyEnabled bool
	WeeklyDay     time.Weekday
	WeeklyAtM     int
	CreatedAt     time.Time // UTC
}

// Canonical prayer names, in daily order. These double as dedup-key parts,
// so they must stay stable.
const (
	PrayerFajr    = "fajr"    // Bomdod
	PrayerDhuhr   = "dhuhr"   // Peshin
	PrayerAsr     = "asr"     // Asr
	PrayerMaghrib = "maghrib" // Shom
	PrayerIsha    = "isha"    // Xufton
)

// PrayerNames lists the five canonical prayers in order.
var PrayerNames = []string{PrayerFajr, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha}

// PrayerPreference stores per-chat prayer reminder settings.
// Location is either a region code or custom coordinates (Lat/Lon non-nil).
type PrayerPreference struct {
	ChatID     int64
	RegionCode string
	Lat        *float64
	Lon        *float64

	// Per-prayer enable flags, index-aligned with PrayerNames.
	Enabled    [5]bool
	AdvanceMin int // lead time before each enabled prayer

	// Saharlik: last-call reminder before Fajr during fasting.
	PreDawnEnabled   bool
	PreDawnOffsetMin int
	// Iftorlik: breaking-fast reminder relative to Maghrib.
	SunsetEnabled   bool
	SunsetOffsetMin int
}

// EnabledFor reports whether the reminder for the named prayer is on.
func (p *PrayerPreference) EnabledFor(name string) bool {
	for i, n := range PrayerNames {
		if n == name {
			return p.Enabled[i]
		}
	}
	return false
}

// HasCoordinates reports whether the user configured a custom location
// instead of a region code.
func (p *PrayerPreference) HasCoordinates() bool {
	return p.Lat != nil && p.Lon != nil
}
