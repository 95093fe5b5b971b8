// Package suggest serves random diet and workout suggestions from
// embedded lists. Suggestions are a non-critical enrichment; callers
// treat an empty result as "no suggestion".
package suggest

import (
	_ "embed"
	"math/rand"
	"strings"
)

//go:embed diet_food.txt
var dietFoodRaw string

//go:embed trainings.txt
var trainingsRaw string

// HeavyFoodThreshold is the caloric density (kcal per 100 g) above which
// a lighter dish is suggested after logging food.
const HeavyFoodThreshold = 200

var (
	dietFoods = splitLines(dietFoodRaw)
	trainings = splitLines(trainingsRaw)
)

func splitLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func pick(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[rand.Intn(len(list))]
}

// DietFood returns a random light dish.
func DietFood() string {
	return pick(dietFoods)
}

// Training returns a random workout.
func Training() string {
	return pick(trainings)
}
