package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/domain"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken string `envconfig:"BOT_TOKEN" required:"true"`
	DBPath   string `envconfig:"DB_PATH" default:"./data/barakalivaqt.db"`
	// TargetTZ is the single civil timezone every schedule is evaluated in,
	// regardless of where the process runs.
	TargetTZ string `envconfig:"TARGET_TZ" default:"Asia/Tashkent"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`  // debug|info|warn|error
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"` // healthz

	// PromoUntil: before this instant every user is entitled regardless of
	// subscription state (launch promotion). RFC3339; zero value disables it.
	PromoUntil time.Time `envconfig:"PROMO_UNTIL"`

	// PrayerAPIBase is the Aladhan-compatible endpoint for prayer times.
	PrayerAPIBase    string        `envconfig:"PRAYER_API_BASE" default:"https://api.aladhan.com/v1"`
	PrayerAPITimeout time.Duration `envconfig:"PRAYER_API_TIMEOUT" default:"10s"`

	// SendRate limits outbound Telegram messages per second across all checks.
	SendRate float64 `envconfig:"SEND_RATE" default:"25"`
}

// Load reads environment variables into Config. A timezone the IANA database
// does not know is a startup error, not something to discover mid-schedule.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if _, err := domain.ValidateTZ(cfg.TargetTZ); err != nil {
		return cfg, fmt.Errorf("TARGET_TZ %q: %w", cfg.TargetTZ, err)
	}
	return cfg, nil
}
