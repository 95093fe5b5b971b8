// Package model defines the durable user record shared by storage and services.
package model

// Profile holds the physiological data collected during setup.
// All numeric fields are positive integers; City is non-empty.
type Profile struct {
	Weight   int    `json:"weight"`
	Height   int    `json:"height"`
	Age      int    `json:"age"`
	Activity int    `json:"activity"`
	City     string `json:"city"`
}

// User is the stored record: profile plus the daily activity ledger,
// keyed by the Telegram user id.
type User struct {
	ID          int64            `json:"id"`
	Profile     Profile          `json:"profile"`
	LoggedWater map[string][]int `json:"logged_water"`
	BurnedWater map[string][]int `json:"burned_water"`
	LoggedCal   map[string][]int `json:"logged_calories"`
	BurnedCal   map[string][]int `json:"burned_calories"`
}

// NewUser returns a user with an empty ledger.
func NewUser(id int64, p Profile) *User {
	return &User{
		ID:          id,
		Profile:     p,
		LoggedWater: make(map[string][]int),
		BurnedWater: make(map[string][]int),
		LoggedCal:   make(map[string][]int),
		BurnedCal:   make(map[string][]int),
	}
}
