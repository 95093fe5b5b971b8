package bot

import (
	"fmt"
	"strings"

	"github.com/m3rciful/fitbot/core/telegram/helpers"
	"github.com/m3rciful/fitbot/internal/model"

	tele "gopkg.in/telebot.v4"
)

func (b *Bot) startProfile(c tele.Context) error {
	b.fsm.Clear(c.Sender().ID)
	b.fsm.SetState(c.Sender().ID, StateProfileWeight)
	return helpers.SendText(c, "What is your weight in kilograms?")
}

func (b *Bot) profileWeight(c tele.Context) error {
	weight, ok := parsePositiveInt(c.Text())
	if !ok {
		return helpers.SendText(c, msgNumberWanted)
	}
	userID := c.Sender().ID
	b.fsm.SetTemp(userID, tempWeight, weight)
	b.fsm.SetState(userID, StateProfileHeight)
	return helpers.SendText(c, "What is your height in centimeters?")
}

func (b *Bot) profileHeight(c tele.Context) error {
	height, ok := parsePositiveInt(c.Text())
	if !ok {
		return helpers.SendText(c, msgNumberWanted)
	}
	userID := c.Sender().ID
	b.fsm.SetTemp(userID, tempHeight, height)
	b.fsm.SetState(userID, StateProfileAge)
	return helpers.SendText(c, "How old are you?")
}

func (b *Bot) profileAge(c tele.Context) error {
	age, ok := parsePositiveInt(c.Text())
	if !ok {
		return helpers.SendText(c, msgNumberWanted)
	}
	userID := c.Sender().ID
	b.fsm.SetTemp(userID, tempAge, age)
	b.fsm.SetState(userID, StateProfileActivity)
	return helpers.SendText(c, "How many minutes of activity do you get on a normal day?")
}

func (b *Bot) profileActivity(c tele.Context) error {
	activity, ok := parsePositiveInt(c.Text())
	if !ok {
		return helpers.SendText(c, msgNumberWanted)
	}
	userID := c.Sender().ID
	b.fsm.SetTemp(userID, tempActivity, activity)
	b.fsm.SetState(userID, StateProfileCity)
	return helpers.SendText(c, "Which city do you live in? I use it for the weather.")
}

func (b *Bot) profileCity(c tele.Context) error {
	city := strings.TrimSpace(c.Text())
	if city == "" {
		return helpers.SendText(c, "Please send your city name.")
	}

	userID := c.Sender().ID
	weight, _ := b.fsm.GetTempInt(userID, tempWeight)
	height, _ := b.fsm.GetTempInt(userID, tempHeight)
	age, _ := b.fsm.GetTempInt(userID, tempAge)
	activity, _ := b.fsm.GetTempInt(userID, tempActivity)
	b.fsm.Clear(userID)

	profile := model.Profile{
		Weight:   weight,
		Height:   height,
		Age:      age,
		Activity: activity,
		City:     city,
	}
	ctx := helpers.BuildContext(c)
	if err := b.svc.SaveProfile(ctx, userID, profile); err != nil {
		return b.replyServiceError(c, "profile.save", err)
	}

	report, err := b.svc.Progress(ctx, userID)
	if err != nil {
		// The profile is stored; only the weather-dependent goal is
		// missing from the confirmation.
		return helpers.SendText(c, "Profile saved. I could not reach the weather service for your water goal, check back with /check_progress.")
	}

	return helpers.SendText(c, fmt.Sprintf(
		"Profile saved.\nDaily water goal: %d ml.\nDaily calorie goal: %d kcal.",
		report.WaterGoal, report.CalorieGoal))
}
