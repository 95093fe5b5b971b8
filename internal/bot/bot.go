package bot

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/m3rciful/fitbot/core/logger"
	tg "github.com/m3rciful/fitbot/core/telegram"
	"github.com/m3rciful/fitbot/core/telegram/commands"
	"github.com/m3rciful/fitbot/core/telegram/helpers"
	"github.com/m3rciful/fitbot/core/telegram/router"
	"github.com/m3rciful/fitbot/core/telegram/state"
	"github.com/m3rciful/fitbot/internal/storage"
	"github.com/m3rciful/fitbot/internal/tracker"
	"github.com/m3rciful/fitbot/internal/weather"

	tele "gopkg.in/telebot.v4"
)

// Bot wires the tracking service into Telegram commands, dialog states
// and callbacks.
type Bot struct {
	svc *tracker.Service
	fsm state.Manager
	reg *tg.Registry
}

// New builds a Bot with all commands, dialog handlers and callbacks
// registered.
func New(svc *tracker.Service, fsm state.Manager) *Bot {
	b := &Bot{
		svc: svc,
		fsm: fsm,
		reg: tg.NewRegistry(),
	}
	b.registerCommands()
	b.registerStates()
	b.registerCallbacks()
	b.reg.SetTextFallback(b.handleUnknownText)
	return b
}

// Registry exposes the command registry for command menu setup.
func (b *Bot) Registry() *tg.Registry {
	return b.reg
}

// Routes assembles the full route table for RunTelegram.
func (b *Bot) Routes(adminID int64) []tg.Route {
	routes := router.CommandRoutes(b.reg, router.CommandRouteOptions{AdminID: adminID})
	routes = append(routes, router.CallbackRoute(b.reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(b.fsm, b.reg, router.TextOptions{})...)
	return routes
}

func (b *Bot) registerCommands() {
	b.reg.RegisterCommand("/start", commands.Command{
		Handler:     b.handleStart,
		Description: "Greeting and a short intro",
	})
	b.reg.RegisterCommand("/help", commands.Command{
		Handler:     b.handleHelp,
		Description: "List available commands",
	})
	b.reg.RegisterCommand("/set_profile", commands.Command{
		Handler:     b.startProfile,
		Description: "Set up your profile",
	})
	b.reg.RegisterCommand("/log_water", commands.Command{
		Handler:     b.startWater,
		Description: "Log drunk water",
	})
	b.reg.RegisterCommand("/log_food", commands.Command{
		Handler:     b.startFood,
		Description: "Log eaten food",
	})
	b.reg.RegisterCommand("/log_workout", commands.Command{
		Handler:     b.startWorkout,
		Description: "Log a workout",
	})
	b.reg.RegisterCommand("/check_progress", commands.Command{
		Handler:     b.handleProgress,
		Description: "Water and calorie progress for today",
	})
	b.reg.RegisterCommand("/cancel", commands.Command{
		Handler:     b.handleCancel,
		Description: "Cancel the current dialog",
		Hidden:      true,
	})
	b.reg.RegisterCommand("/status", commands.Command{
		Handler:     b.handleStatus,
		Description: "Build and uptime info",
		AdminOnly:   true,
		Hidden:      true,
	})
}

func (b *Bot) registerStates() {
	state.RegisterHandler(StateProfileWeight, b.profileWeight)
	state.RegisterHandler(StateProfileHeight, b.profileHeight)
	state.RegisterHandler(StateProfileAge, b.profileAge)
	state.RegisterHandler(StateProfileActivity, b.profileActivity)
	state.RegisterHandler(StateProfileCity, b.profileCity)

	state.RegisterHandler(StateWaterVolume, b.waterVolume)

	state.RegisterHandler(StateFoodName, b.foodName)
	state.RegisterHandler(StateFoodGrams, b.foodGrams)

	state.RegisterHandler(StateWorkoutType, b.workoutType)
	state.RegisterHandler(StateWorkoutDuration, b.workoutDuration)
}

func (b *Bot) registerCallbacks() {
	mustRegisterCallback(b.reg, "plot_water", b.plotWater)
	mustRegisterCallback(b.reg, "plot_food", b.plotCalories)
	mustRegisterCallback(b.reg, "progress_refresh", b.refreshProgress)
}

func mustRegisterCallback(reg *tg.Registry, key string, h tele.HandlerFunc) {
	if err := reg.RegisterCallback(key, h); err != nil {
		panic(err)
	}
}

// parsePositiveInt accepts plain positive integers typed by the user.
func parsePositiveInt(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// requireProfile gates flow entry points. When it returns false the
// user has already been answered: a setup prompt for a missing record,
// a retry message for a failing store.
func (b *Bot) requireProfile(c tele.Context) (bool, error) {
	ok, err := b.svc.HasProfile(helpers.BuildContext(c), c.Sender().ID)
	if err != nil {
		return false, b.replyServiceError(c, "profile.check", err)
	}
	if !ok {
		return false, helpers.SendText(c, msgNoProfile)
	}
	return true, nil
}

// replyServiceError maps service failures to user-facing replies. The
// original error is logged, the user always gets an answer.
func (b *Bot) replyServiceError(c tele.Context, op string, err error) error {
	ctx := helpers.BuildContext(c)
	logger.Error(ctx, "tg", "bot."+op, slog.String("err", err.Error()))

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return helpers.SendText(c, msgNoProfile)
	case errors.Is(err, weather.ErrCityNotFound):
		return helpers.SendText(c, msgCityNotFound)
	case errors.Is(err, weather.ErrUnavailable):
		return helpers.SendText(c, msgWeatherDown)
	case errors.Is(err, tracker.ErrInvalidProfile):
		return helpers.SendText(c, msgNoProfile)
	default:
		return helpers.SendText(c, msgInternalError)
	}
}
