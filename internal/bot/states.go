package bot

import "github.com/m3rciful/fitbot/core/telegram/state"

// Dialog states, one linear chain per flow.
const (
	StateProfileWeight   = state.State("profile.weight")
	StateProfileHeight   = state.State("profile.height")
	StateProfileAge      = state.State("profile.age")
	StateProfileActivity = state.State("profile.activity")
	StateProfileCity     = state.State("profile.city")

	StateWaterVolume = state.State("water.volume")

	StateFoodName  = state.State("food.name")
	StateFoodGrams = state.State("food.grams")

	StateWorkoutType     = state.State("workout.type")
	StateWorkoutDuration = state.State("workout.duration")
)

// TempData keys carried between flow steps.
const (
	tempWeight      = "weight"
	tempHeight      = "height"
	tempAge         = "age"
	tempActivity    = "activity"
	tempProduct     = "product"
	tempKcalPer100g = "kcal_per_100g"
	tempWorkoutType = "workout_type"
)
