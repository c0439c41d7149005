package domain

import (
	"fmt"
	"math"
)

// Validate checks a candidate against every settings invariant and reports
// all violations at once. It never adjusts values.
//
// Rules, in order: every value finite, bed dimensions within
// [MinDimension, MaxDimension], feed rate within [MinFeedRate, MaxFeedRate],
// and pen_down_position <= pen_up_position <= safe_z.
func Validate(f SettingsFields) error {
	var violations []Violation

	violations = append(violations, checkFinite(f)...)
	violations = append(violations, checkDimensions(f)...)
	violations = append(violations, checkFeedRate(f)...)
	violations = append(violations, checkZOrder(f)...)

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func checkFinite(f SettingsFields) []Violation {
	var out []Violation
	for _, key := range settingsKeys {
		v := *f.field(key)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out = append(out, Violation{
				Rule:    RuleFinite,
				Fields:  []string{key},
				Values:  []float64{v},
				Message: fmt.Sprintf("%s must be a finite number, got %v", key, v),
			})
		}
	}
	return out
}

func checkDimensions(f SettingsFields) []Violation {
	var out []Violation
	for _, d := range []struct {
		key   string
		label string
		value float64
	}{
		{KeyBedWidth, "bed width", f.BedWidth},
		{KeyBedHeight, "bed height", f.BedHeight},
	} {
		if !inRange(d.value, MinDimension, MaxDimension) {
			out = append(out, Violation{
				Rule:   RuleDimension,
				Fields: []string{d.key},
				Values: []float64{d.value},
				Message: fmt.Sprintf("%s must be between %v and %vmm, got %v",
					d.label, MinDimension, MaxDimension, d.value),
			})
		}
	}
	return out
}

func checkFeedRate(f SettingsFields) []Violation {
	if inRange(f.FeedRate, MinFeedRate, MaxFeedRate) {
		return nil
	}
	return []Violation{{
		Rule:   RuleFeedRate,
		Fields: []string{KeyFeedRate},
		Values: []float64{f.FeedRate},
		Message: fmt.Sprintf("feed rate must be between %v and %vmm/min, got %v",
			MinFeedRate, MaxFeedRate, f.FeedRate),
	}}
}

// checkZOrder enforces pen_down <= pen_up <= safe_z; equal heights are allowed
func checkZOrder(f SettingsFields) []Violation {
	var out []Violation
	if f.PenDownPosition > f.PenUpPosition {
		out = append(out, Violation{
			Rule:   RuleZOrder,
			Fields: []string{KeyPenDownPosition, KeyPenUpPosition},
			Values: []float64{f.PenDownPosition, f.PenUpPosition},
			Message: fmt.Sprintf("pen down position (%v) must not be above pen up position (%v)",
				f.PenDownPosition, f.PenUpPosition),
		})
	}
	if f.SafeZ < f.PenUpPosition {
		out = append(out, Violation{
			Rule:   RuleZOrder,
			Fields: []string{KeySafeZ, KeyPenUpPosition},
			Values: []float64{f.SafeZ, f.PenUpPosition},
			Message: fmt.Sprintf("safe Z (%v) must not be below pen up position (%v)",
				f.SafeZ, f.PenUpPosition),
		})
	}
	return out
}

// inRange is false for NaN
func inRange(v, lo, hi float64) bool {
	return lo <= v && v <= hi
}
