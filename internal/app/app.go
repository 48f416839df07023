package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/billing"
	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/clock"
	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/config"
	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/prayer"
	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/scheduler"
	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/store"
	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/telegram"
)

// App owns process lifecycle: storage, the notification scheduler, the
// Telegram update loop and the healthz endpoint.
type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	clk     *clock.Real
	httpSrv *http.Server
	repo    store.Repo
	router  *telegram.Router
	sched   *scheduler.Scheduler
}

// New validates config-level dependencies: the bot token and the target
// timezone. Storage is opened in Run.
func New(cfg config.Config, log *zap.Logger) (*App, error) {
	// The client timeout bounds every Bot API call; it must outlive the 30s
	// update long poll.
	httpc := &http.Client{Timeout: 50 * time.Second}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, httpc)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	clk, err := clock.NewReal(cfg.TargetTZ)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, clk: clk, httpSrv: srv}, nil
}

// Run wires the remaining components and blocks until a shutdown signal.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting barakalivaqt-bot",
		zap.String("tz", a.cfg.TargetTZ),
		zap.String("http", a.cfg.HTTPAddr),
	)

	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready")

	sender := telegram.NewSender(a.bot, a.cfg.SendRate)
	a.router = telegram.NewRouter(a.bot, a.log, a.repo, sender)

	gate := billing.NewGate(a.repo, a.cfg.PromoUntil)
	times := prayer.NewCache(prayer.NewClient(a.cfg.PrayerAPIBase, a.cfg.PrayerAPITimeout))
	a.sched = scheduler.New(
		a.log.Named("scheduler"),
		a.clk,
		a.repo,
		gate,
		times,
		sender,
		scheduler.NewMemoryLedger(),
	)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := a.sched.Run(ctx); err != nil {
			a.log.Error("scheduler error", zap.Error(err))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")

			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()

			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			if a.repo != nil {
				_ = a.repo.Close()
			}
			return nil

		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}
