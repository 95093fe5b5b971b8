package bot

import (
	"fmt"
	"strings"

	"github.com/m3rciful/fitbot/core/telegram/helpers"
	"github.com/m3rciful/fitbot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

func (b *Bot) startWorkout(c tele.Context) error {
	if ok, err := b.requireProfile(c); !ok {
		return err
	}
	userID := c.Sender().ID
	b.fsm.Clear(userID)
	b.fsm.SetState(userID, StateWorkoutType)
	return helpers.SendText(c, "What kind of workout was it?", &tele.SendOptions{
		ReplyMarkup: keyboard.ReplyButtons(
			[]string{"Running", "Cycling"},
			[]string{"Swimming", "Strength"},
		),
	})
}

func (b *Bot) workoutType(c tele.Context) error {
	kind := strings.TrimSpace(c.Text())
	if kind == "" {
		return helpers.SendText(c, "Please send the workout type.")
	}
	userID := c.Sender().ID
	b.fsm.SetTemp(userID, tempWorkoutType, kind)
	b.fsm.SetState(userID, StateWorkoutDuration)
	return helpers.SendText(c, "How many minutes did it take?", &tele.SendOptions{
		ReplyMarkup: keyboard.RemoveKeyboard(),
	})
}

func (b *Bot) workoutDuration(c tele.Context) error {
	minutes, ok := parsePositiveInt(c.Text())
	if !ok {
		return helpers.SendText(c, msgNumberWanted)
	}

	userID := c.Sender().ID
	kind, _ := b.fsm.GetTempString(userID, tempWorkoutType)
	b.fsm.Clear(userID)

	ctx := helpers.BuildContext(c)
	kcal, water, err := b.svc.LogWorkout(ctx, userID, minutes)
	if err != nil {
		return b.replyServiceError(c, "workout.log", err)
	}

	return helpers.SendText(c, fmt.Sprintf(
		"%s for %d minutes: burned %d kcal. Drink an extra %d ml of water.",
		kind, minutes, kcal, water))
}
