package suitability

import (
	"fmt"
	"strings"

	"github.com/tripscheduler/tripscheduler/internal/types"
)

// Condition is a weather label from the model's closed vocabulary. Any
// other label is an invalid feature, never silently substituted, since
// substitution would corrupt scoring semantics.
type Condition string

const (
	ConditionSunny  Condition = "sunny"
	ConditionCloudy Condition = "cloudy"
	ConditionRainy  Condition = "rainy"
	ConditionSnowy  Condition = "snowy"
	ConditionWindy  Condition = "windy"
)

// conditionCodes assigns each label its numeric feature encoding: the
// index of the label in the alphabetically sorted vocabulary.
var conditionCodes = map[Condition]float64{
	ConditionCloudy: 0,
	ConditionRainy:  1,
	ConditionSnowy:  2,
	ConditionSunny:  3,
	ConditionWindy:  4,
}

// Vocabulary returns the supported weather labels in encoding order.
func Vocabulary() []Condition {
	return []Condition{ConditionCloudy, ConditionRainy, ConditionSnowy, ConditionSunny, ConditionWindy}
}

// ParseCondition lowercases and validates a raw weather label against
// the vocabulary. Unknown labels return types.ErrInvalidFeature.
func ParseCondition(raw string) (Condition, error) {
	c := Condition(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := conditionCodes[c]; !ok {
		return "", fmt.Errorf("weather condition %q: %w", raw, types.ErrInvalidFeature)
	}
	return c, nil
}

// IsWet reports whether the condition confines a day's candidates to
// indoor attractions.
func (c Condition) IsWet() bool {
	return c == ConditionRainy || c == ConditionSnowy
}

func (c Condition) code() (float64, error) {
	code, ok := conditionCodes[c]
	if !ok {
		return 0, fmt.Errorf("weather condition %q: %w", string(c), types.ErrInvalidFeature)
	}
	return code, nil
}
