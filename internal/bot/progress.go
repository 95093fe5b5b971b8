package bot

import (
	"fmt"
	"strings"

	"github.com/m3rciful/fitbot/core/telegram/helpers"
	"github.com/m3rciful/fitbot/core/telegram/keyboard"
	"github.com/m3rciful/fitbot/internal/chart"
	"github.com/m3rciful/fitbot/internal/suggest"
	"github.com/m3rciful/fitbot/internal/tracker"

	tele "gopkg.in/telebot.v4"
)

func progressMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtonsNPerRow([]keyboard.InlineBtn{
		{Text: "Water chart", Unique: "plot_water"},
		{Text: "Calorie chart", Unique: "plot_food"},
		{Text: "Refresh", Unique: "progress_refresh"},
	}, 2)
}

func progressText(report tracker.Report) string {
	var sb strings.Builder
	sb.WriteString("Today so far:\n\n")
	fmt.Fprintf(&sb, "Water:\n- Drunk: %d ml of %d ml.\n", report.LoggedWater, report.DayWater())
	if report.RemainingWater > 0 {
		fmt.Fprintf(&sb, "- Left to drink: %d ml.\n", report.RemainingWater)
	} else {
		sb.WriteString("- Water goal reached.\n")
	}
	fmt.Fprintf(&sb, "\nCalories:\n- Eaten: %d kcal of %d kcal.\n", report.LoggedCal, report.CalorieGoal)
	fmt.Fprintf(&sb, "- Burned: %d kcal.\n", report.BurnedCal)
	fmt.Fprintf(&sb, "- Balance: %d kcal.\n", report.CalorieBalance)

	if report.CalorieBalance > report.CalorieGoal {
		fmt.Fprintf(&sb, "\nYou are over your calorie goal. How about some exercise? For example: %s.", suggest.Training())
	}
	return sb.String()
}

func (b *Bot) handleProgress(c tele.Context) error {
	report, err := b.svc.Progress(helpers.BuildContext(c), c.Sender().ID)
	if err != nil {
		return b.replyServiceError(c, "progress", err)
	}
	return helpers.SendMD(c, progressText(report), progressMarkup())
}

func (b *Bot) refreshProgress(c tele.Context) error {
	report, err := b.svc.Progress(helpers.BuildContext(c), c.Sender().ID)
	if err != nil {
		return b.replyServiceError(c, "progress.refresh", err)
	}
	return helpers.EditOrSendMD(c, progressText(report), progressMarkup())
}

func (b *Bot) plotWater(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	logged, burned, goal, err := b.svc.WaterPlot(ctx, c.Sender().ID)
	if err != nil {
		return b.replyServiceError(c, "plot.water", err)
	}
	img, err := chart.Render("Water today", "ml", logged, burned, goal)
	if err != nil {
		return b.replyServiceError(c, "plot.water", err)
	}
	return helpers.SendPhoto(c, img, "Cumulative water intake against today's goal.")
}

func (b *Bot) plotCalories(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	logged, burned, goal, err := b.svc.CaloriePlot(ctx, c.Sender().ID)
	if err != nil {
		return b.replyServiceError(c, "plot.food", err)
	}
	img, err := chart.Render("Calories today", "kcal", logged, burned, goal)
	if err != nil {
		return b.replyServiceError(c, "plot.food", err)
	}
	return helpers.SendPhoto(c, img, "Calorie balance against today's goal.")
}
