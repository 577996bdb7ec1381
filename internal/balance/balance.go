package balance

import (
	"fmt"
	"math"

	"github.com/julianstephens/habitcore/internal/calendar"
	"github.com/julianstephens/habitcore/internal/completion"
	"github.com/julianstephens/habitcore/internal/constants"
	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/recurrence"
)

// Config tunes the smoothing
type Config struct {
	Alpha  float64 // weight of the newest day's score, 0 < Alpha <= 1
	Window int     // lookback days, including today
}

// DefaultConfig returns the built-in smoothing parameters
func DefaultConfig() Config {
	return Config{
		Alpha:  constants.BalanceAlpha,
		Window: constants.BalanceWindowDays,
	}
}

func (c Config) Validate() error {
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in (0, 1], got %v", c.Alpha)
	}
	if c.Window < 1 {
		return fmt.Errorf("window must be at least 1 day, got %d", c.Window)
	}
	return nil
}

// Result holds the smoothed scores after the most recent window day
type Result struct {
	Scores models.CategoryScores
	// Days records each day's performance score per category, oldest first.
	// A NoScheduledHabits entry marks a day the score carried over.
	Days []DayScores
}

// DayScores is one window day's DPS per category
type DayScores struct {
	Day    calendar.Day
	Scores models.CategoryScores
}

// Display returns the scores rounded per category
func (r Result) Display() map[models.Category]int {
	return models.MatrixScore{Scores: r.Scores}.Display()
}

// Total is the mean of the unrounded scores, rounded once
func (r Result) Total() int {
	return models.MatrixScore{Scores: r.Scores}.Total()
}

// Calculate smooths each category's daily performance over the window ending
// at today, starting from seed. Every category shares one pass over the days.
// A day with nothing scheduled in a category leaves that category's score
// untouched.
func Calculate(habits []models.Habit, completions []models.HabitCompletion, seed models.CategoryScores, today calendar.Day, frame calendar.Frame, cfg Config) Result {
	return CalculateIndexed(habits, completion.NewIndex(completions), seed, today, frame, cfg)
}

// CalculateIndexed is Calculate over a prebuilt index.
func CalculateIndexed(habits []models.Habit, ix *completion.Index, seed models.CategoryScores, today calendar.Day, frame calendar.Frame, cfg Config) Result {
	res := Result{Scores: seed}
	if !today.IsValid() || cfg.Window < 1 {
		return res
	}

	res.Days = make([]DayScores, 0, cfg.Window)
	for i := cfg.Window - 1; i >= 0; i-- {
		day := today.AddDays(-i)
		dps := DailyPerformance(habits, ix, day, frame)
		for c, v := range dps {
			if v == constants.NoScheduledHabits {
				continue
			}
			res.Scores[c] = cfg.Alpha*v + (1-cfg.Alpha)*res.Scores[c]
		}
		res.Days = append(res.Days, DayScores{Day: day, Scores: dps})
	}
	return res
}

// DailyPerformance scores one day per category. Each scheduled habit that
// was not skipped is worth an equal share of 100 when completed. A category
// with no such habits gets NoScheduledHabits.
func DailyPerformance(habits []models.Habit, ix *completion.Index, day calendar.Day, frame calendar.Frame) models.CategoryScores {
	var active, done [models.NumCategories]int
	for _, h := range habits {
		c := h.Category.Index()
		if c < 0 || !recurrence.IsActiveOn(h, day, frame) {
			continue
		}
		status := ix.Status(h.ID, day)
		if status == models.StatusSkipped {
			continue
		}
		active[c]++
		if status == models.StatusCompleted {
			done[c]++
		}
	}

	var out models.CategoryScores
	for c := range out {
		if active[c] == 0 {
			out[c] = constants.NoScheduledHabits
			continue
		}
		share := constants.MaxDailyScore / float64(active[c])
		out[c] = math.Min(float64(done[c])*share, constants.MaxDailyScore)
	}
	return out
}

// ConvergenceBound is the fraction of the distance to a constant daily
// score that one window of smoothing covers.
func ConvergenceBound(cfg Config) float64 {
	return 1 - math.Pow(1-cfg.Alpha, float64(cfg.Window))
}
