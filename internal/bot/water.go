package bot

import (
	"fmt"

	"github.com/m3rciful/fitbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

func (b *Bot) startWater(c tele.Context) error {
	if ok, err := b.requireProfile(c); !ok {
		return err
	}
	userID := c.Sender().ID
	b.fsm.Clear(userID)
	b.fsm.SetState(userID, StateWaterVolume)
	return helpers.SendText(c, "How much water did you drink, in milliliters?")
}

func (b *Bot) waterVolume(c tele.Context) error {
	ml, ok := parsePositiveInt(c.Text())
	if !ok {
		return helpers.SendText(c, msgNumberWanted)
	}

	userID := c.Sender().ID
	b.fsm.Clear(userID)

	ctx := helpers.BuildContext(c)
	if err := b.svc.LogWater(ctx, userID, ml); err != nil {
		return b.replyServiceError(c, "water.log", err)
	}

	report, err := b.svc.Progress(ctx, userID)
	if err != nil {
		return helpers.SendText(c, fmt.Sprintf("Logged %d ml of water.", ml))
	}
	return helpers.SendText(c, fmt.Sprintf(
		"Logged %d ml of water. %d ml left until today's goal.",
		ml, report.RemainingWater))
}
