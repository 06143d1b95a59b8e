package habit

import "fmt"

// Category is the habit type a daily reminder belongs to.
type Category string

const (
	CategoryWater    Category = "water"
	CategoryExercise Category = "exercise"
	CategorySleep    Category = "sleep"
	CategoryRead     Category = "read"
	// CategoryCustom carries a user-supplied free-text label instead of a template pool.
	CategoryCustom Category = "custom"
)

// KnownCategories lists every category a user can pick from the menu.
var KnownCategories = []Category{
	CategoryWater,
	CategoryExercise,
	CategorySleep,
	CategoryRead,
	CategoryCustom,
}

// ParseCategory validates a raw string (e.g. from callback data) against the closed set.
func ParseCategory(raw string) (Category, error) {
	for _, c := range KnownCategories {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown habit category: %q", raw)
}

// IsKnown reports whether c belongs to the closed category set.
func (c Category) IsKnown() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}
