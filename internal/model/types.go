package model

import (
	"time"

	"cloud.google.com/go/civil"
)

// FoodLog is a single logged food as stored by the log store.
type FoodLog struct {
	ID        int64
	Name      string
	Grams     float64
	ProteinG  float64
	FatG      float64
	CarbsG    float64
	Calories  float64
	Date      civil.Date
	CreatedAt time.Time
}

// LogEntry is the per-day record handed to the trends engine.
// Protein, fat and carbs are grams, calories are kcal.
type LogEntry struct {
	Date      civil.Date `json:"date"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	Protein   float64    `json:"protein"`
	Fat       float64    `json:"fat"`
	Carbs     float64    `json:"carbs"`
	Calories  float64    `json:"calories"`
}

// Sanitized returns a copy with NaN and infinite values replaced by 0.
func (e LogEntry) Sanitized() LogEntry {
	e.Protein = finiteOrZero(e.Protein)
	e.Fat = finiteOrZero(e.Fat)
	e.Carbs = finiteOrZero(e.Carbs)
	e.Calories = finiteOrZero(e.Calories)
	return e
}
