package domain

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestToMap(t *testing.T) {
	s := DefaultMachineSettings()
	m := s.ToMap()

	want := map[string]float64{
		"bed_width":         200,
		"bed_height":        200,
		"feed_rate":         1000,
		"pen_up_position":   1,
		"pen_down_position": 0,
		"safe_z":            1,
	}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("ToMap() = %v, want %v", m, want)
	}
}

func TestMapRoundTrip(t *testing.T) {
	cases := []SettingsFields{
		standardFields,
		clearanceFields,
		{BedWidth: MinDimension, BedHeight: MaxDimension, FeedRate: MinFeedRate, PenUpPosition: 0.25, PenDownPosition: -0.5, SafeZ: 0.25},
		{BedWidth: 297, BedHeight: 420, FeedRate: MaxFeedRate, PenUpPosition: 1.0 / 3.0, PenDownPosition: 1.0 / 3.0, SafeZ: 12.125},
	}

	for _, f := range cases {
		s, err := NewMachineSettings(f)
		if err != nil {
			t.Fatalf("NewMachineSettings(%+v) error: %v", f, err)
		}

		back, err := FromFloatMap(s.ToMap())
		if err != nil {
			t.Fatalf("FromFloatMap error: %v", err)
		}
		if !back.Equal(s) {
			t.Errorf("round trip mismatch: got %+v, want %+v", back.Fields(), s.Fields())
		}
	}
}

func TestFromMapMissingFields(t *testing.T) {
	t.Run("missing safe_z", func(t *testing.T) {
		m := map[string]any{
			"bed_width":         200.0,
			"bed_height":        200.0,
			"feed_rate":         1000.0,
			"pen_up_position":   1.0,
			"pen_down_position": 0.0,
		}

		_, err := FromMap(m)
		if !errors.Is(err, ErrMissingFields) {
			t.Fatalf("expected ErrMissingFields, got %v", err)
		}
		var mf *MissingFieldsError
		if !errors.As(err, &mf) {
			t.Fatalf("expected *MissingFieldsError, got %T", err)
		}
		if !reflect.DeepEqual(mf.Fields, []string{"safe_z"}) {
			t.Errorf("expected [safe_z], got %v", mf.Fields)
		}
		if errors.Is(err, ErrInvalidSettings) {
			t.Error("missing fields must not be reported as invalid settings")
		}
	})

	t.Run("empty mapping names every key in order", func(t *testing.T) {
		_, err := FromMap(map[string]any{})
		var mf *MissingFieldsError
		if !errors.As(err, &mf) {
			t.Fatalf("expected *MissingFieldsError, got %v", err)
		}
		if !reflect.DeepEqual(mf.Fields, Keys()) {
			t.Errorf("expected %v, got %v", Keys(), mf.Fields)
		}
	})
}

func TestFromMapTypeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"non-numeric text", "wide"},
		{"empty text", ""},
		{"bool", true},
		{"null", nil},
		{"nested object", map[string]any{"mm": 200}},
		{"list", []any{200.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultMachineSettings().ToMap()
			generic := make(map[string]any, len(m))
			for k, v := range m {
				generic[k] = v
			}
			generic[KeyBedWidth] = tt.value

			_, err := FromMap(generic)
			if !errors.Is(err, ErrTypeMismatch) {
				t.Fatalf("expected ErrTypeMismatch, got %v", err)
			}
			var tm *TypeMismatchError
			if errors.As(err, &tm) && tm.Field != KeyBedWidth {
				t.Errorf("expected field bed_width, got %s", tm.Field)
			}
		})
	}
}

func TestFromMapNumericForms(t *testing.T) {
	m := map[string]any{
		"bed_width":         int64(300),
		"bed_height":        json.Number("210.5"),
		"feed_rate":         "1200",
		"pen_up_position":   float32(2),
		"pen_down_position": 0,
		"safe_z":            " 4.5 ",
	}

	s, err := FromMap(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := SettingsFields{
		BedWidth:        300,
		BedHeight:       210.5,
		FeedRate:        1200,
		PenUpPosition:   2,
		PenDownPosition: 0,
		SafeZ:           4.5,
	}
	if s.Fields() != want {
		t.Errorf("got %+v, want %+v", s.Fields(), want)
	}
}

func TestFromMapOverflowIsInvalidNotMismatch(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"json number", json.Number("1e400")},
		{"negative json number", json.Number("-1e400")},
		{"text", "1e400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultMachineSettings().ToMap()
			doc := make(map[string]any, len(m))
			for k, v := range m {
				doc[k] = v
			}
			doc[KeyBedWidth] = tt.value

			_, err := FromMap(doc)
			if errors.Is(err, ErrTypeMismatch) {
				t.Fatalf("overflowing number reported as type mismatch: %v", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if !ve.HasRule(RuleFinite) {
				t.Errorf("expected a finite violation, got %v", ve.Violations)
			}
		})
	}
}

func TestFromMapIgnoresUnknownKeys(t *testing.T) {
	m := map[string]any{
		"bed_width":         200.0,
		"bed_height":        200.0,
		"feed_rate":         1000.0,
		"pen_up_position":   1.0,
		"pen_down_position": 0.0,
		"safe_z":            1.0,
		"grid_size":         20,
		"theme":             "dark",
	}

	s, err := FromMap(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Equal(DefaultMachineSettings()) {
		t.Errorf("expected defaults, got %+v", s.Fields())
	}
}

func TestFromMapPhysicallyInvalid(t *testing.T) {
	m := map[string]any{
		"bed_width":         200.0,
		"bed_height":        200.0,
		"feed_rate":         1000.0,
		"pen_up_position":   1.0,
		"pen_down_position": 5.0,
		"safe_z":            10.0,
	}

	_, err := FromMap(m)
	if !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
	if errors.Is(err, ErrMissingFields) || errors.Is(err, ErrTypeMismatch) {
		t.Error("invalid settings must be distinguishable from decode errors")
	}
}

func TestMachineSettingsJSON(t *testing.T) {
	s, err := Preset(PresetClearance)
	if err != nil {
		t.Fatalf("Preset error: %v", err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var back MachineSettings
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !back.Equal(s) {
		t.Errorf("expected %+v, got %+v", s.Fields(), back.Fields())
	}

	bad := []byte(`{"bed_width":200,"bed_height":200,"feed_rate":1000,"pen_up_position":1,"pen_down_position":3,"safe_z":1}`)
	if err := json.Unmarshal(bad, &back); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings, got %v", err)
	}
}
