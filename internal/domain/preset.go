package domain

import (
	"fmt"
	"sort"
)

// Built-in preset names
const (
	PresetStandard  = "standard"
	PresetClearance = "clearance"
)

// standardFields is the canonical default: pen touches down at Z=0 and
// lifts 1mm, with transit at pen-up height.
var standardFields = SettingsFields{
	BedWidth:        200.0,
	BedHeight:       200.0,
	FeedRate:        1000.0,
	PenUpPosition:   1.0,
	PenDownPosition: 0.0,
	SafeZ:           1.0,
}

// clearanceFields lifts higher for uneven media and travels at 10mm
var clearanceFields = SettingsFields{
	BedWidth:        200.0,
	BedHeight:       200.0,
	FeedRate:        1000.0,
	PenUpPosition:   5.0,
	PenDownPosition: 0.0,
	SafeZ:           10.0,
}

var presets = map[string]SettingsFields{
	PresetStandard:  standardFields,
	PresetClearance: clearanceFields,
}

// PresetNames returns the built-in preset names, sorted
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns the named built-in settings
func Preset(name string) (MachineSettings, error) {
	f, ok := presets[name]
	if !ok {
		return MachineSettings{}, fmt.Errorf("unknown preset %q (available: %v)", name, PresetNames())
	}
	return NewMachineSettings(f)
}

// IsPreset reports whether name is a built-in preset
func IsPreset(name string) bool {
	_, ok := presets[name]
	return ok
}
