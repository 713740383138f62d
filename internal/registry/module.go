package registry

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when parsing a category name that is not
// part of the fixed enumeration.
var ErrUnknownCategory = errors.New("unknown category")

// Category groups training modules on the dashboard.
type Category string

const (
	CategoryFundamentals Category = "fundamentals"
	CategoryCriticalCare Category = "critical-care"
	CategoryEmergency    Category = "emergency"
	CategorySpecialty    Category = "specialty"
)

// AllCategories returns the categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryFundamentals,
		CategoryCriticalCare,
		CategoryEmergency,
		CategorySpecialty,
	}
}

// DisplayName returns the badge label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryFundamentals:
		return "Fundamentals"
	case CategoryCriticalCare:
		return "Critical Care"
	case CategoryEmergency:
		return "Emergency Care"
	case CategorySpecialty:
		return "Specialty"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// DefaultPassingScore is the pass threshold used by every built-in module.
const DefaultPassingScore = 80

// Module is the static descriptor of a training module.
type Module struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Category         Category `json:"category"`
	EstimatedMinutes int      `json:"estimatedMinutes"`
	QuestionCount    int      `json:"questionCount"`
	PassingScore     int      `json:"passingScore"`
	Route            string   `json:"route"`
	Topics           []string `json:"topics,omitempty"`
	Icon             string   `json:"icon,omitempty"`
	Color            string   `json:"color,omitempty"` // hex, e.g. "#2563EB"
}

// Passed reports whether score meets the module's passing threshold.
func (m Module) Passed(score int) bool {
	return score >= m.PassingScore
}
