package bot

import (
	"fmt"
	"strings"

	"github.com/m3rciful/fitbot/core/telegram/helpers"
	"github.com/m3rciful/fitbot/internal/suggest"

	tele "gopkg.in/telebot.v4"
)

func (b *Bot) startFood(c tele.Context) error {
	if ok, err := b.requireProfile(c); !ok {
		return err
	}
	userID := c.Sender().ID
	b.fsm.Clear(userID)
	b.fsm.SetState(userID, StateFoodName)
	return helpers.SendText(c, "What did you eat?")
}

func (b *Bot) foodName(c tele.Context) error {
	product := strings.TrimSpace(c.Text())
	if product == "" {
		return helpers.SendText(c, "Please send the product name.")
	}

	userID := c.Sender().ID
	ctx := helpers.BuildContext(c)
	kcal, err := b.svc.FoodInfo(ctx, product)
	if err != nil {
		return b.replyServiceError(c, "food.info", err)
	}

	b.fsm.SetTemp(userID, tempProduct, product)
	b.fsm.SetTemp(userID, tempKcalPer100g, kcal)
	b.fsm.SetState(userID, StateFoodGrams)
	return helpers.SendText(c, fmt.Sprintf(
		"%s has about %d kcal per 100 g. How many grams did you eat?",
		product, kcal))
}

func (b *Bot) foodGrams(c tele.Context) error {
	grams, ok := parsePositiveInt(c.Text())
	if !ok {
		return helpers.SendText(c, msgNumberWanted)
	}

	userID := c.Sender().ID
	kcalPer100g, _ := b.fsm.GetTempInt(userID, tempKcalPer100g)
	product, _ := b.fsm.GetTempString(userID, tempProduct)
	b.fsm.Clear(userID)

	ctx := helpers.BuildContext(c)
	logged, err := b.svc.LogFood(ctx, userID, grams, kcalPer100g)
	if err != nil {
		return b.replyServiceError(c, "food.log", err)
	}

	reply := fmt.Sprintf("Logged %d kcal of %s.", logged, product)
	if kcalPer100g > suggest.HeavyFoodThreshold {
		reply += fmt.Sprintf(" That one is on the heavy side. A lighter option next time: %s.", suggest.DietFood())
	}
	return helpers.SendText(c, reply)
}
