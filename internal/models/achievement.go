package models

import "sort"

// Achievements maps a streak milestone (in days) to whether it is unlocked
type Achievements map[int]bool

// Clone returns an independent copy
func (a Achievements) Clone() Achievements {
	out := make(Achievements, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Unlocked returns the unlocked thresholds in ascending order
func (a Achievements) Unlocked() []int {
	var out []int
	for t, ok := range a {
		if ok {
			out = append(out, t)
		}
	}
	sort.Ints(out)
	return out
}
