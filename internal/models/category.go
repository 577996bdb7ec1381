package models

import (
	"fmt"
	"strings"
)

// Category is one of the five life-balance categories
type Category string

const (
	CategoryHealth  Category = "health"
	CategoryMind    Category = "mind"
	CategorySocial  Category = "social"
	CategoryCareer  Category = "career"
	CategoryLeisure Category = "leisure"
)

// NumCategories is the size of the closed category set
const NumCategories = 5

// Categories lists every category in display order
var Categories = [NumCategories]Category{
	CategoryHealth,
	CategoryMind,
	CategorySocial,
	CategoryCareer,
	CategoryLeisure,
}

// Index returns the position of c in Categories, or -1 if c is unknown
func (c Category) Index() int {
	switch c {
	case CategoryHealth:
		return 0
	case CategoryMind:
		return 1
	case CategorySocial:
		return 2
	case CategoryCareer:
		return 3
	case CategoryLeisure:
		return 4
	default:
		return -1
	}
}

func (c Category) IsValid() bool {
	return c.Index() >= 0
}

// ParseCategory parses a category name. The legacy positional keys
// cat1..cat5 map onto Categories in order.
func ParseCategory(input string) (Category, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if len(s) == 4 && strings.HasPrefix(s, "cat") && s[3] >= '1' && s[3] <= '5' {
		return Categories[s[3]-'1'], nil
	}
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %q", input)
	}
	return c, nil
}

// CategoryScores holds one score per category, indexed by Category.Index
type CategoryScores [NumCategories]float64

// Get returns the score for c (0 for an unknown category)
func (s CategoryScores) Get(c Category) float64 {
	i := c.Index()
	if i < 0 {
		return 0
	}
	return s[i]
}

// Uniform returns scores with every category set to v
func Uniform(v float64) CategoryScores {
	var s CategoryScores
	for i := range s {
		s[i] = v
	}
	return s
}
