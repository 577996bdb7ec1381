package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitcore/internal/constants"
)

// Day is a calendar date without a time of day. The zero value is the
// invalid sentinel: it is never equal to, before, or after any other Day.
type Day struct {
	t  time.Time // midnight UTC of the date
	ok bool
}

// Invalid is the sentinel returned for unparseable input.
var Invalid = Day{}

// Date builds a Day from its parts. Out-of-range parts are normalized the
// way time.Date normalizes them.
func Date(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), ok: true}
}

// instantLayouts are the timestamp forms Normalize accepts besides a plain day.
// Layouts without an offset are read as wall-clock time in the frame.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseDay parses a canonical YYYY-MM-DD string. Anything else is Invalid.
func ParseDay(s string) Day {
	t, err := time.Parse(constants.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return Invalid
	}
	return Date(t.Date())
}

// Normalize resolves a day string or timestamp string to a Day in frame f.
// A canonical day string is already a calendar day and is returned as is;
// a timestamp is converted to f before its date is taken.
func Normalize(s string, f Frame) Day {
	s = strings.TrimSpace(s)
	if len(s) == len(constants.DateFormat) {
		return ParseDay(s)
	}
	for _, layout := range instantLayouts {
		t, err := time.ParseInLocation(layout, s, f.Location())
		if err == nil {
			return NormalizeTime(t, f)
		}
	}
	return Invalid
}

// NormalizeTime returns the calendar day of instant t in frame f.
// The zero time is Invalid.
func NormalizeTime(t time.Time, f Frame) Day {
	if t.IsZero() {
		return Invalid
	}
	return Date(t.In(f.Location()).Date())
}

// Today returns the current day in frame f.
func Today(f Frame) Day {
	return TodayAt(f, time.Now())
}

// TodayAt returns the day that now falls on in frame f.
func TodayAt(f Frame, now time.Time) Day {
	return NormalizeTime(now, f)
}

// FormatDay returns the canonical YYYY-MM-DD form, or "" for Invalid.
func FormatDay(d Day) string {
	return d.String()
}

func (d Day) IsValid() bool {
	return d.ok
}

func (d Day) String() string {
	if !d.ok {
		return ""
	}
	return d.t.Format(constants.DateFormat)
}

// MarshalText encodes the canonical form; Invalid encodes as "".
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts the canonical form. "" decodes to Invalid.
func (d *Day) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Invalid
		return nil
	}
	parsed := ParseDay(string(b))
	if !parsed.IsValid() {
		return fmt.Errorf("invalid day %q (expected YYYY-MM-DD)", b)
	}
	*d = parsed
	return nil
}

// Weekday returns the day of the week (0=Sunday). Invalid returns -1,
// which matches no weekday.
func (d Day) Weekday() time.Weekday {
	if !d.ok {
		return -1
	}
	return d.t.Weekday()
}

// AddDays moves n calendar days. Invalid stays Invalid.
func (d Day) AddDays(n int) Day {
	if !d.ok {
		return Invalid
	}
	return Day{t: d.t.AddDate(0, 0, n), ok: true}
}

// SubtractDays moves n calendar days back.
func (d Day) SubtractDays(n int) Day {
	return d.AddDays(-n)
}

// Start returns the instant the day begins in frame f.
func (d Day) Start(f Frame) time.Time {
	if !d.ok {
		return time.Time{}
	}
	y, m, dd := d.t.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, f.Location())
}

// At combines the day with a wall-clock time (minutes from midnight) in frame f.
func (d Day) At(minutes int, f Frame) time.Time {
	if !d.ok {
		return time.Time{}
	}
	y, m, dd := d.t.Date()
	return time.Date(y, m, dd, minutes/60, minutes%60, 0, 0, f.Location())
}

// IsSameDay reports whether a and b are the same valid day.
func IsSameDay(a, b Day) bool {
	return a.ok && b.ok && a.t.Equal(b.t)
}

// IsBeforeDay reports whether a is strictly before b. False if either is Invalid.
func IsBeforeDay(a, b Day) bool {
	return a.ok && b.ok && a.t.Before(b.t)
}

// IsAfterDay reports whether a is strictly after b. False if either is Invalid.
func IsAfterDay(a, b Day) bool {
	return a.ok && b.ok && a.t.After(b.t)
}

// DaysBetween returns the number of days from a to b (negative when b is
// earlier). ok is false if either day is Invalid.
func DaysBetween(a, b Day) (days int, ok bool) {
	if !a.ok || !b.ok {
		return 0, false
	}
	// Both are UTC midnights, so the difference is an exact multiple of 24h.
	return int(b.t.Sub(a.t).Hours() / 24), true
}
