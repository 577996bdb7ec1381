package calendar

import (
	"fmt"
	"time"
)

// Frame is the reference frame that decides where a day boundary falls for
// an instant. The zero Frame is UTC.
type Frame struct {
	loc *time.Location
}

// UTC is the server-default frame.
var UTC = Frame{loc: time.UTC}

// Local returns a frame whose day boundaries follow loc.
// A nil loc yields the UTC frame.
func Local(loc *time.Location) Frame {
	if loc == nil {
		return UTC
	}
	return Frame{loc: loc}
}

// LoadFrame builds a frame from an IANA timezone name.
// If the timezone is "Local" or empty, the process's local timezone is used.
// This is the only place the ambient timezone is consulted; callers resolve a
// frame once at the boundary and pass it down.
func LoadFrame(timezone string) (Frame, error) {
	if timezone == "" || timezone == "Local" {
		return Local(time.Local), nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Frame{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return Local(loc), nil
}

// Location returns the frame's timezone
func (f Frame) Location() *time.Location {
	if f.loc == nil {
		return time.UTC
	}
	return f.loc
}

// IsUTC reports whether day boundaries fall at UTC midnight
func (f Frame) IsUTC() bool {
	return f.Location() == time.UTC
}

func (f Frame) String() string {
	return f.Location().String()
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadFrame(timezone)
	return err == nil
}
