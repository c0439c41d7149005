package domain

import (
	"errors"
	"math"
	"testing"
)

func validFields() SettingsFields {
	return SettingsFields{
		BedWidth:        300,
		BedHeight:       200,
		FeedRate:        1500,
		PenUpPosition:   2,
		PenDownPosition: 0,
		SafeZ:           5,
	}
}

func TestDefaultMachineSettings(t *testing.T) {
	s := DefaultMachineSettings()

	if s.BedWidth() != 200.0 || s.BedHeight() != 200.0 {
		t.Errorf("expected 200x200 bed, got %vx%v", s.BedWidth(), s.BedHeight())
	}
	if s.FeedRate() != 1000.0 {
		t.Errorf("expected feed rate 1000, got %v", s.FeedRate())
	}
	if s.PenUpPosition() != 1.0 {
		t.Errorf("expected pen up 1.0, got %v", s.PenUpPosition())
	}
	if s.PenDownPosition() != 0.0 {
		t.Errorf("expected pen down 0.0, got %v", s.PenDownPosition())
	}
	if s.SafeZ() != 1.0 {
		t.Errorf("expected safe Z 1.0, got %v", s.SafeZ())
	}
	if err := Validate(s.Fields()); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if s.IsZero() {
		t.Error("defaults should not be the zero value")
	}
}

func TestBedDimensionBounds(t *testing.T) {
	tests := []struct {
		name    string
		width   float64
		height  float64
		wantErr bool
	}{
		{"minimum width", MinDimension, 200, false},
		{"maximum width", MaxDimension, 200, false},
		{"minimum height", 200, MinDimension, false},
		{"maximum height", 200, MaxDimension, false},
		{"width just below minimum", 0.099, 200, true},
		{"width just above maximum", 1000.01, 200, true},
		{"height just below minimum", 200, 0.099, true},
		{"height just above maximum", 200, 1000.01, true},
		{"zero width", 0, 200, true},
		{"negative height", 200, -10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			f.BedWidth = tt.width
			f.BedHeight = tt.height

			_, err := NewMachineSettings(f)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSettings) {
					t.Fatalf("expected ErrInvalidSettings, got %v", err)
				}
				var ve *ValidationError
				if !errors.As(err, &ve) || !ve.HasRule(RuleDimension) {
					t.Errorf("expected a dimension violation, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFeedRateBounds(t *testing.T) {
	tests := []struct {
		rate    float64
		wantErr bool
	}{
		{MinFeedRate, false},
		{MaxFeedRate, false},
		{2500, false},
		{0.99, true},
		{5000.01, true},
		{0, true},
	}

	for _, tt := range tests {
		f := validFields()
		f.FeedRate = tt.rate
		err := Validate(f)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(feed_rate=%v) error = %v, wantErr %v", tt.rate, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidSettings) {
			t.Errorf("expected ErrInvalidSettings for feed_rate=%v, got %v", tt.rate, err)
		}
	}
}

func TestZOrdering(t *testing.T) {
	t.Run("pen down above pen up fails", func(t *testing.T) {
		f := validFields()
		f.PenDownPosition = 5.0
		f.PenUpPosition = 1.0
		f.SafeZ = 10.0

		_, err := NewMachineSettings(f)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected *ValidationError, got %v", err)
		}
		if !ve.HasRule(RuleZOrder) {
			t.Errorf("expected z_order violation, got %v", ve.Violations)
		}
	})

	t.Run("safe Z below pen up fails", func(t *testing.T) {
		f := validFields()
		f.PenUpPosition = 3.0
		f.SafeZ = 2.0

		if err := Validate(f); !errors.Is(err, ErrInvalidSettings) {
			t.Errorf("expected ErrInvalidSettings, got %v", err)
		}
	})

	t.Run("all heights equal is valid", func(t *testing.T) {
		f := validFields()
		f.PenDownPosition = 1.0
		f.PenUpPosition = 1.0
		f.SafeZ = 1.0

		if _, err := NewMachineSettings(f); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("negative heights keep ordering", func(t *testing.T) {
		f := validFields()
		f.PenDownPosition = -2.0
		f.PenUpPosition = -1.0
		f.SafeZ = 0.0

		if _, err := NewMachineSettings(f); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestValidateAccumulatesViolations(t *testing.T) {
	f := SettingsFields{
		BedWidth:        0,
		BedHeight:       2000,
		FeedRate:        0,
		PenUpPosition:   1,
		PenDownPosition: 2,
		SafeZ:           0,
	}

	err := Validate(f)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	// width, height, feed rate, pen down > pen up, safe Z < pen up
	if len(ve.Violations) != 5 {
		t.Fatalf("expected 5 violations, got %d: %v", len(ve.Violations), ve.Violations)
	}

	wantOrder := []Rule{RuleDimension, RuleDimension, RuleFeedRate, RuleZOrder, RuleZOrder}
	for i, rule := range wantOrder {
		if ve.Violations[i].Rule != rule {
			t.Errorf("violation %d: expected rule %s, got %s", i, rule, ve.Violations[i].Rule)
		}
	}

	if ve.Violations[0].Fields[0] != KeyBedWidth || ve.Violations[0].Values[0] != 0 {
		t.Errorf("expected first violation to name bed_width=0, got %+v", ve.Violations[0])
	}
}

func TestValidateRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name string
		edit func(*SettingsFields)
	}{
		{"NaN pen down", func(f *SettingsFields) { f.PenDownPosition = math.NaN() }},
		{"NaN safe Z", func(f *SettingsFields) { f.SafeZ = math.NaN() }},
		{"infinite safe Z", func(f *SettingsFields) { f.SafeZ = math.Inf(1) }},
		{"NaN bed width", func(f *SettingsFields) { f.BedWidth = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			tt.edit(&f)

			err := Validate(f)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if !ve.HasRule(RuleFinite) {
				t.Errorf("expected finite violation, got %v", ve.Violations)
			}
		})
	}
}

func TestWithCopiesAndValidates(t *testing.T) {
	original := DefaultMachineSettings()

	t.Run("valid edit returns new value", func(t *testing.T) {
		edited, err := original.With(func(f *SettingsFields) {
			f.PenUpPosition = 3
			f.SafeZ = 8
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if edited.PenUpPosition() != 3 || edited.SafeZ() != 8 {
			t.Errorf("expected edited heights 3/8, got %v/%v", edited.PenUpPosition(), edited.SafeZ())
		}
		if original.PenUpPosition() != 1 {
			t.Errorf("original was modified: pen up = %v", original.PenUpPosition())
		}
	})

	t.Run("invalid edit is rejected", func(t *testing.T) {
		edited, err := original.With(func(f *SettingsFields) {
			f.PenUpPosition = 5 // above safe Z
		})
		if !errors.Is(err, ErrInvalidSettings) {
			t.Fatalf("expected ErrInvalidSettings, got %v", err)
		}
		if !edited.IsZero() {
			t.Error("expected zero value on failure")
		}
		if !original.Equal(DefaultMachineSettings()) {
			t.Error("original should be unchanged")
		}
	})
}

func TestSet(t *testing.T) {
	s := DefaultMachineSettings()

	updated, err := s.Set(KeyFeedRate, 2400)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := updated.Get(KeyFeedRate); !ok || v != 2400 {
		t.Errorf("expected feed_rate 2400, got %v (ok=%v)", v, ok)
	}

	if _, err := s.Set(KeyBedWidth, 1000.01); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings, got %v", err)
	}

	if _, err := s.Set("nozzle_temp", 200); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}

	if _, ok := s.Get("nozzle_temp"); ok {
		t.Error("Get should report unknown keys")
	}
}

func TestKeysIsACopy(t *testing.T) {
	keys := Keys()
	if len(keys) != 6 {
		t.Fatalf("expected 6 keys, got %d", len(keys))
	}
	keys[0] = "changed"
	if Keys()[0] != KeyBedWidth {
		t.Error("Keys() should return a copy")
	}
}

func TestPresets(t *testing.T) {
	names := PresetNames()
	if len(names) != 2 || names[0] != PresetClearance || names[1] != PresetStandard {
		t.Fatalf("expected [clearance standard], got %v", names)
	}

	standard, err := Preset(PresetStandard)
	if err != nil {
		t.Fatalf("Preset(standard) error: %v", err)
	}
	if !standard.Equal(DefaultMachineSettings()) {
		t.Error("standard preset should equal the defaults")
	}

	clearance, err := Preset(PresetClearance)
	if err != nil {
		t.Fatalf("Preset(clearance) error: %v", err)
	}
	if clearance.PenUpPosition() != 5.0 || clearance.SafeZ() != 10.0 {
		t.Errorf("expected clearance 5/10, got %v/%v", clearance.PenUpPosition(), clearance.SafeZ())
	}

	if _, err := Preset("turbo"); err == nil {
		t.Error("expected error for unknown preset")
	}
	if IsPreset("turbo") || !IsPreset(PresetStandard) {
		t.Error("IsPreset returned wrong result")
	}
}

func TestFingerprint(t *testing.T) {
	a := DefaultMachineSettings()
	b := DefaultMachineSettings()

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("equal settings should share a fingerprint")
	}
	if len(a.Fingerprint()) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a.Fingerprint()))
	}

	c, err := a.Set(KeySafeZ, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different settings should not share a fingerprint")
	}

	negZero, err := a.Set(KeyPenDownPosition, math.Copysign(0, -1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !negZero.Equal(a) || negZero.Fingerprint() != a.Fingerprint() {
		t.Error("-0 and +0 should be equal and share a fingerprint")
	}
}
