package models

import (
	"math"
	"time"
)

// MatrixScore is the last computed balance score for a user. Scores are kept
// unrounded because they seed the next day's computation. Seed is the value
// Scores was computed from, so a second run on the same day starts from the
// same place.
type MatrixScore struct {
	UserID     string         `json:"user_id"`
	Seed       CategoryScores `json:"seed"`
	Scores     CategoryScores `json:"scores"`
	ComputedAt time.Time      `json:"computed_at"`
}

// Display returns the per-category scores rounded for presentation
func (m MatrixScore) Display() map[Category]int {
	out := make(map[Category]int, NumCategories)
	for i, c := range Categories {
		out[c] = int(math.Round(m.Scores[i]))
	}
	return out
}

// Total is the mean of the unrounded category scores, rounded after averaging
func (m MatrixScore) Total() int {
	sum := 0.0
	for _, v := range m.Scores {
		sum += v
	}
	return int(math.Round(sum / NumCategories))
}
