package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ToMap returns the six settings as a flat key/value mapping
func (s MachineSettings) ToMap() map[string]float64 {
	m := make(map[string]float64, len(settingsKeys))
	for _, key := range settingsKeys {
		m[key] = *s.f.field(key)
	}
	return m
}

// FromMap builds settings from a decoded document.
//
// All six keys are required; unknown keys are ignored. Numbers may arrive
// as any Go numeric type, json.Number, or numeric text. Decode problems are
// reported as *MissingFieldsError or *TypeMismatchError; a well-formed
// mapping that breaks an invariant yields *ValidationError.
func FromMap(m map[string]any) (MachineSettings, error) {
	var missing []string
	for _, key := range settingsKeys {
		if _, ok := m[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return MachineSettings{}, &MissingFieldsError{Fields: missing}
	}

	var f SettingsFields
	for _, key := range settingsKeys {
		v, ok := toFloat(m[key])
		if !ok {
			return MachineSettings{}, &TypeMismatchError{Field: key, Value: m[key]}
		}
		*f.field(key) = v
	}

	return NewMachineSettings(f)
}

// FromFloatMap is FromMap for an already numeric mapping
func FromFloatMap(m map[string]float64) (MachineSettings, error) {
	generic := make(map[string]any, len(m))
	for k, v := range m {
		generic[k] = v
	}
	return FromMap(generic)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		return parseNumericText(string(n))
	case string:
		return parseNumericText(n)
	default:
		return 0, false
	}
}

// parseNumericText accepts decimal text such as "200" or " 1.5 ". Numbers
// too large for float64 come back as ±Inf for Validate to reject.
func parseNumericText(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// MarshalJSON encodes the settings as a flat object in canonical key order
func (s MachineSettings) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.f)
}

// UnmarshalJSON decodes and validates a flat settings object
func (s *MachineSettings) UnmarshalJSON(data []byte) error {
	var m map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return err
	}
	parsed, err := FromMap(m)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
