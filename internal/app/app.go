// Package app assembles the fitness tracker from configuration: the
// user store, the goal calculator with its weather source, the food
// lookup chain and the Telegram surface.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/m3rciful/fitbot/core/cmd"
	"github.com/m3rciful/fitbot/core/database"
	"github.com/m3rciful/fitbot/core/logger"
	coretelegram "github.com/m3rciful/fitbot/core/telegram"
	"github.com/m3rciful/fitbot/core/telegram/state"
	"github.com/m3rciful/fitbot/internal/bot"
	"github.com/m3rciful/fitbot/internal/config"
	"github.com/m3rciful/fitbot/internal/food"
	"github.com/m3rciful/fitbot/internal/goals"
	"github.com/m3rciful/fitbot/internal/storage"
	"github.com/m3rciful/fitbot/internal/tracker"
	"github.com/m3rciful/fitbot/internal/weather"

	tele "gopkg.in/telebot.v4"
)

const initTimeout = 30 * time.Second

// App holds the assembled services for the lifetime of the process.
type App struct {
	cfg *config.Config
	bot *bot.Bot
}

// New builds the service graph from configuration and initializes the
// store.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}

	if err := logger.Init(cfg.CoreConfig()); err != nil {
		return nil, fmt.Errorf("app: logger init: %w", err)
	}

	store, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("app: init store: %w", err)
	}

	calc := goals.New(goals.Params{
		WaterPerKg:       cfg.Goals.WaterPerKg,
		WaterPerActivity: cfg.Goals.WaterPerActivity,
		HotBonusML:       cfg.Goals.HotBonusML,
		HotThresholdC:    cfg.Goals.HotThresholdC,
	}, weather.NewClient(cfg.Weather.APIKey))

	svc := tracker.New(store, calc, buildFoodLookup(cfg))

	return &App{
		cfg: cfg,
		bot: bot.New(svc, state.NewMemoryManager()),
	}, nil
}

func buildStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return storage.NewFileStore(cfg.Storage.File), nil
	case config.BackendSQL:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("app: connect database: %w", err)
		}
		return storage.NewSQLStore(db, cfg.Database), nil
	default:
		return nil, fmt.Errorf("app: unknown storage backend %q", cfg.Storage.Backend)
	}
}

func buildFoodLookup(cfg *config.Config) food.Lookup {
	lookups := []food.Lookup{food.NewOpenFoodFacts()}
	if !cfg.Food.DisableLLM && cfg.Food.OpenAIKey != "" {
		lookups = append(lookups, food.NewLLM(cfg.Food.OpenAIKey))
	}
	return food.NewChain(lookups...)
}

// TelegramRunOptions implements cmd.TelegramApp.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	core := a.cfg.CoreConfig()

	return coretelegram.RunOptions{
		Config:      core,
		Registry:    a.bot.Registry(),
		Middlewares: coretelegram.DefaultMiddlewares(core, nil),
		Routes:      a.bot.Routes(core.Telegram.AdminID),
		OnStart:     a.notifyAdmin("fitbot is up."),
		OnStop:      a.notifyAdmin("fitbot is shutting down."),
	}, nil
}

// notifyAdmin sends a lifecycle note to the configured admin chat.
// Delivery failures are logged and never abort startup or shutdown.
func (a *App) notifyAdmin(text string) func(ctx context.Context, rt coretelegram.Runtime) error {
	adminID := a.cfg.CoreConfig().Telegram.AdminID
	if adminID == 0 {
		return nil
	}
	return func(ctx context.Context, rt coretelegram.Runtime) error {
		if rt.Bot == nil {
			return nil
		}
		if _, err := rt.Bot.Send(&tele.User{ID: adminID}, text); err != nil {
			logger.Warn(ctx, "tg", "admin.notify.fail", slog.String("err", err.Error()))
		}
		return nil
	}
}

var _ cmd.TelegramApp = (*App)(nil)
