package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/m3rciful/fitbot/core/buildinfo"
	"github.com/m3rciful/fitbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

var startedAt = time.Now()

const (
	msgNoProfile     = "You have not set up a profile yet. Use /set_profile first."
	msgCityNotFound  = "I could not find your city in the weather service. Check the city name in /set_profile."
	msgWeatherDown   = "The weather service is not responding right now, try again in a minute."
	msgInternalError = "Something went wrong, please try again."
	msgNumberWanted  = "Please send a positive whole number."
	msgNothingToStop = "Nothing to cancel."
	msgCancelled     = "Cancelled. The numbers you already logged are kept."
)

const startText = "Hi! I am a fitness tracker bot.\n" +
	"I count your water and calories for the day and compare them with personal goals.\n\n" +
	"Start with /set_profile, then log entries with /log_water, /log_food and /log_workout.\n" +
	"Check where you stand with /check_progress. /help lists everything."

func (b *Bot) handleStart(c tele.Context) error {
	return helpers.SendText(c, startText)
}

func (b *Bot) handleHelp(c tele.Context) error {
	var sb strings.Builder
	sb.WriteString("Available commands:\n")
	for _, cmd := range b.reg.ListCommands(true) {
		fmt.Fprintf(&sb, "%s - %s\n", cmd.Text, cmd.Description)
	}
	sb.WriteString("\nSend /cancel at any point to abort the current dialog.")
	return helpers.SendText(c, sb.String())
}

func (b *Bot) handleCancel(c tele.Context) error {
	userID := c.Sender().ID
	if !b.fsm.InProgress(userID) {
		return helpers.SendText(c, msgNothingToStop)
	}
	b.fsm.Clear(userID)
	return helpers.SendText(c, msgCancelled)
}

func (b *Bot) handleStatus(c tele.Context) error {
	return helpers.SendText(c, fmt.Sprintf(
		"fitbot %s (%s)\nup for %s",
		buildinfo.Version, buildinfo.Commit,
		time.Since(startedAt).Round(time.Second)))
}

func (b *Bot) handleUnknownText(c tele.Context) error {
	return helpers.SendText(c, "I did not get that. Send /help to see what I can do.")
}
