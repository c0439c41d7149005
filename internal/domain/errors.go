package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classifying settings failures with errors.Is
var (
	ErrInvalidSettings = errors.New("invalid machine settings")
	ErrMissingFields   = errors.New("missing settings fields")
	ErrTypeMismatch    = errors.New("settings value is not numeric")
	ErrUnknownKey      = errors.New("unknown settings key")
)

// Rule identifies which invariant a violation broke
type Rule string

const (
	RuleFinite    Rule = "finite"
	RuleDimension Rule = "dimension"
	RuleFeedRate  Rule = "feed_rate"
	RuleZOrder    Rule = "z_order"
)

// Violation describes one failed invariant
type Violation struct {
	Rule    Rule      `json:"rule"`
	Fields  []string  `json:"fields"`
	Values  []float64 `json:"values"`
	Message string    `json:"message"`
}

func (v Violation) String() string {
	return v.Message
}

// ValidationError carries every violation found in a candidate
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidSettings, strings.Join(msgs, "; "))
}

// Is matches ErrInvalidSettings
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidSettings
}

// HasRule reports whether any violation is for the given rule
func (e *ValidationError) HasRule(rule Rule) bool {
	for _, v := range e.Violations {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

// MissingFieldsError names the required keys absent from a mapping
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFields, strings.Join(e.Fields, ", "))
}

// Is matches ErrMissingFields
func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingFields
}

// TypeMismatchError reports a value that cannot be read as a number
type TypeMismatchError struct {
	Field string
	Value any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: %s = %#v", ErrTypeMismatch, e.Field, e.Value)
}

// Is matches ErrTypeMismatch
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// UnknownKeyError is returned when editing a key that is not a settings field
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("%s %q (valid keys: %s)", ErrUnknownKey, e.Key, strings.Join(settingsKeys, ", "))
}

// Is matches ErrUnknownKey
func (e *UnknownKeyError) Is(target error) bool {
	return target == ErrUnknownKey
}
