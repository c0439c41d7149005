package domain

// Physical limits for a pen plotter. Bounds are inclusive.
const (
	MinDimension = 0.1    // mm
	MaxDimension = 1000.0 // mm
	MinFeedRate  = 1.0    // mm/min
	MaxFeedRate  = 5000.0 // mm/min
)

// Settings keys as they appear in persisted documents
const (
	KeyBedWidth        = "bed_width"
	KeyBedHeight       = "bed_height"
	KeyFeedRate        = "feed_rate"
	KeyPenUpPosition   = "pen_up_position"
	KeyPenDownPosition = "pen_down_position"
	KeySafeZ           = "safe_z"
)

var settingsKeys = []string{
	KeyBedWidth,
	KeyBedHeight,
	KeyFeedRate,
	KeyPenUpPosition,
	KeyPenDownPosition,
	KeySafeZ,
}

// Keys returns the settings keys in canonical document order
func Keys() []string {
	keys := make([]string, len(settingsKeys))
	copy(keys, settingsKeys)
	return keys
}

// SettingsFields is the raw six-value candidate for a MachineSettings.
// A SettingsFields value carries no guarantee; it only becomes a
// MachineSettings through NewMachineSettings.
type SettingsFields struct {
	BedWidth        float64 `json:"bed_width" yaml:"bed_width" toml:"bed_width"`
	BedHeight       float64 `json:"bed_height" yaml:"bed_height" toml:"bed_height"`
	FeedRate        float64 `json:"feed_rate" yaml:"feed_rate" toml:"feed_rate"`
	PenUpPosition   float64 `json:"pen_up_position" yaml:"pen_up_position" toml:"pen_up_position"`
	PenDownPosition float64 `json:"pen_down_position" yaml:"pen_down_position" toml:"pen_down_position"`
	SafeZ           float64 `json:"safe_z" yaml:"safe_z" toml:"safe_z"`
}

// field returns a pointer to the named field, or nil for an unknown key
func (f *SettingsFields) field(key string) *float64 {
	switch key {
	case KeyBedWidth:
		return &f.BedWidth
	case KeyBedHeight:
		return &f.BedHeight
	case KeyFeedRate:
		return &f.FeedRate
	case KeyPenUpPosition:
		return &f.PenUpPosition
	case KeyPenDownPosition:
		return &f.PenDownPosition
	case KeySafeZ:
		return &f.SafeZ
	default:
		return nil
	}
}

// MachineSettings is a validated plotter configuration.
//
// Values are immutable: every way of obtaining one (NewMachineSettings,
// DefaultMachineSettings, FromMap, With, Set) runs Validate first, so a
// MachineSettings returned without error always satisfies the bounds and
// pen_down <= pen_up <= safe_z. The zero value is not a valid configuration;
// IsZero reports it.
type MachineSettings struct {
	f SettingsFields
}

// NewMachineSettings validates the candidate and returns it as settings
func NewMachineSettings(f SettingsFields) (MachineSettings, error) {
	if err := Validate(f); err != nil {
		return MachineSettings{}, err
	}
	return MachineSettings{f: f}, nil
}

// DefaultMachineSettings returns the standard preset
func DefaultMachineSettings() MachineSettings {
	return MachineSettings{f: standardFields}
}

// Fields returns a copy of the underlying values
func (s MachineSettings) Fields() SettingsFields {
	return s.f
}

func (s MachineSettings) BedWidth() float64        { return s.f.BedWidth }
func (s MachineSettings) BedHeight() float64       { return s.f.BedHeight }
func (s MachineSettings) FeedRate() float64        { return s.f.FeedRate }
func (s MachineSettings) PenUpPosition() float64   { return s.f.PenUpPosition }
func (s MachineSettings) PenDownPosition() float64 { return s.f.PenDownPosition }
func (s MachineSettings) SafeZ() float64           { return s.f.SafeZ }

// IsZero reports whether s is the unconstructed zero value
func (s MachineSettings) IsZero() bool {
	return s.f == SettingsFields{}
}

// Get returns the value stored under a settings key
func (s MachineSettings) Get(key string) (float64, bool) {
	p := s.f.field(key)
	if p == nil {
		return 0, false
	}
	return *p, true
}

// With applies edit to a copy of the fields and validates the result.
// The receiver is never modified.
func (s MachineSettings) With(edit func(*SettingsFields)) (MachineSettings, error) {
	f := s.f
	edit(&f)
	return NewMachineSettings(f)
}

// Set returns a copy with one key replaced
func (s MachineSettings) Set(key string, value float64) (MachineSettings, error) {
	f := s.f
	p := f.field(key)
	if p == nil {
		return MachineSettings{}, &UnknownKeyError{Key: key}
	}
	*p = value
	return NewMachineSettings(f)
}

// Equal reports field-for-field equality
func (s MachineSettings) Equal(other MachineSettings) bool {
	return s.f == other.f
}
