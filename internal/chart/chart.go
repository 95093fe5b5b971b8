// Package chart renders intraday progress plots from ledger buckets.
package chart

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/m3rciful/fitbot/internal/ledger"
)

// Render draws the cumulative net intake per hour (logged minus burned)
// against a dashed goal line and returns the PNG bytes. Pure: the input
// buckets are not modified.
func Render(title, unit string, logged, burned []int, goal int) ([]byte, error) {
	hours := make([]float64, ledger.HoursPerDay)
	net := make([]float64, ledger.HoursPerDay)
	goalLine := make([]float64, ledger.HoursPerDay)

	running := 0
	for h := 0; h < ledger.HoursPerDay; h++ {
		hours[h] = float64(h)
		if h < len(logged) {
			running += logged[h]
		}
		if h < len(burned) {
			running -= burned[h]
		}
		net[h] = float64(running)
		goalLine[h] = float64(goal)
	}

	graph := chart.Chart{
		Title: title,
		XAxis: chart.XAxis{
			Name: "Hour of day",
		},
		YAxis: chart.YAxis{
			Name: unit,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Intake",
				XValues: hours,
				YValues: net,
				Style: chart.Style{
					StrokeColor: drawing.ColorBlue,
					StrokeWidth: 2,
				},
			},
			chart.ContinuousSeries{
				Name:    "Goal",
				XValues: hours,
				YValues: goalLine,
				Style: chart.Style{
					StrokeColor:     drawing.ColorRed,
					StrokeWidth:     1.5,
					StrokeDashArray: []float64{5, 5},
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart: render: %w", err)
	}
	return buf.Bytes(), nil
}
