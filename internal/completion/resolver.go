package completion

import (
	"sort"

	"github.com/julianstephens/habitcore/internal/calendar"
	"github.com/julianstephens/habitcore/internal/models"
)

// Key identifies the single logical completion for a habit on a day
type Key struct {
	HabitID string
	Day     string // YYYY-MM-DD
}

// Result is the resolved state of a habit on a day
type Result struct {
	Status models.CompletionStatus
	Value  float64
	Record models.HabitCompletion
}

// preferred reports whether a wins over b when both claim the same key:
// the most recently created record wins, ties go to the greater ID.
func preferred(a, b models.HabitCompletion) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func toResult(c models.HabitCompletion) Result {
	status := c.Status
	if !status.IsValid() {
		status = models.StatusNotStarted
	}
	value := c.Value
	if value < 0 || value != value {
		value = 0
	}
	return Result{Status: status, Value: value, Record: c}
}

// Resolve finds the completion for habitID on day. ok is false when there is
// none; that is a normal outcome, not an error.
func Resolve(completions []models.HabitCompletion, habitID string, day calendar.Day) (Result, bool) {
	if !day.IsValid() {
		return Result{}, false
	}

	var best models.HabitCompletion
	found := false
	for _, c := range completions {
		if c.HabitID != habitID || !calendar.IsSameDay(calendar.ParseDay(c.CompletionDate), day) {
			continue
		}
		if !found || preferred(c, best) {
			best = c
			found = true
		}
	}
	if !found {
		return Result{}, false
	}
	return toResult(best), true
}

// Index is a snapshot of completions keyed by (habit, day). Build it once per
// calculation; it never changes after construction.
type Index struct {
	records map[Key]models.HabitCompletion
	counts  map[Key]int
}

// NewIndex indexes completions. Records whose date is not a canonical day
// are ignored.
func NewIndex(completions []models.HabitCompletion) *Index {
	ix := &Index{
		records: make(map[Key]models.HabitCompletion, len(completions)),
		counts:  make(map[Key]int, len(completions)),
	}
	for _, c := range completions {
		day := calendar.ParseDay(c.CompletionDate)
		if !day.IsValid() {
			continue
		}
		k := Key{HabitID: c.HabitID, Day: day.String()}
		ix.counts[k]++
		if cur, ok := ix.records[k]; !ok || preferred(c, cur) {
			ix.records[k] = c
		}
	}
	return ix
}

// Lookup returns the resolved completion for habitID on day.
func (ix *Index) Lookup(habitID string, day calendar.Day) (Result, bool) {
	if ix == nil || !day.IsValid() {
		return Result{}, false
	}
	c, ok := ix.records[Key{HabitID: habitID, Day: day.String()}]
	if !ok {
		return Result{}, false
	}
	return toResult(c), true
}

// Status returns the status for habitID on day, not_started when absent.
func (ix *Index) Status(habitID string, day calendar.Day) models.CompletionStatus {
	r, ok := ix.Lookup(habitID, day)
	if !ok {
		return models.StatusNotStarted
	}
	return r.Status
}

// Duplicates lists the keys that had more than one record, sorted.
func (ix *Index) Duplicates() []Key {
	if ix == nil {
		return nil
	}
	var out []Key
	for k, n := range ix.counts {
		if n > 1 {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].HabitID < out[j].HabitID
	})
	return out
}

// Len is the number of distinct (habit, day) keys
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.records)
}
