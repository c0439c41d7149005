package domain

import "time"

// Profile is a named, stored set of machine settings
type Profile struct {
	Name        string          `json:"name"`
	Settings    MachineSettings `json:"settings"`
	Fingerprint string          `json:"fingerprint"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewProfile creates a profile stamped with the settings fingerprint
func NewProfile(name string, s MachineSettings, updatedAt time.Time) *Profile {
	return &Profile{
		Name:        name,
		Settings:    s,
		Fingerprint: s.Fingerprint(),
		UpdatedAt:   updatedAt,
	}
}
