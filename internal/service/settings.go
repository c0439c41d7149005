package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gcodegen/internal/domain"
	"gcodegen/internal/logging"
	"gcodegen/internal/repository"
	"gcodegen/internal/settings"
)

// ErrNoProfiles is returned by profile operations when no profile
// repository is configured
var ErrNoProfiles = errors.New("profile storage not configured")

// SettingsService provides business logic for the machine settings file
type SettingsService struct {
	mu       sync.Mutex
	store    *settings.Store
	profiles repository.ProfileRepository
	eventBus *EventBus
	current  domain.MachineSettings
}

// NewSettingsService creates a new settings service. profiles may be nil,
// in which case profile operations return ErrNoProfiles.
func NewSettingsService(store *settings.Store, profiles repository.ProfileRepository, eventBus *EventBus) *SettingsService {
	if eventBus == nil {
		eventBus = NewEventBus()
	}
	return &SettingsService{
		store:    store,
		profiles: profiles,
		eventBus: eventBus,
		current:  store.Defaults(),
	}
}

// EventBus returns the bus the service publishes on
func (s *SettingsService) EventBus() *EventBus {
	return s.eventBus
}

// Path returns the settings file location
func (s *SettingsService) Path() string {
	return s.store.Path()
}

// Current returns the settings held by the service
func (s *SettingsService) Current() domain.MachineSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Load reads the settings file and makes it current
func (s *SettingsService) Load() (domain.MachineSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded, err := s.store.Load()
	if err != nil {
		return domain.MachineSettings{}, err
	}
	s.current = loaded

	s.publish(EventSettingsLoaded, loaded)
	return loaded, nil
}

// Update applies edit to a copy of the current settings, validates and
// saves the result. On error the current value is unchanged.
func (s *SettingsService) Update(edit func(*domain.SettingsFields)) (domain.MachineSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.current.With(edit)
	if err != nil {
		return domain.MachineSettings{}, err
	}
	return next, s.commit(next)
}

// Set changes one field by key and saves the result
func (s *SettingsService) Set(key string, value float64) (domain.MachineSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.current.Set(key, value)
	if err != nil {
		return domain.MachineSettings{}, err
	}
	return next, s.commit(next)
}

// Replace saves next as the current settings
func (s *SettingsService) Replace(next domain.MachineSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(next)
}

// Reset replaces the current settings with a built-in preset
func (s *SettingsService) Reset(preset string) (domain.MachineSettings, error) {
	next, err := domain.Preset(preset)
	if err != nil {
		return domain.MachineSettings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return next, s.commit(next)
}

// Reload re-reads the settings file after an external change. It reports
// whether the current value changed. A file that fails to load is rejected
// and the previous value is kept.
func (s *SettingsService) Reload() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded, err := s.store.Load()
	if err != nil {
		logging.L().Warn("rejected settings file change, keeping previous settings",
			"path", s.store.Path(), "error", err)
		s.eventBus.Publish(Event{
			Type: EventSettingsRejected,
			Payload: map[string]string{
				"path":  s.store.Path(),
				"error": err.Error(),
			},
		})
		return false, err
	}

	if loaded.Equal(s.current) {
		return false, nil
	}
	s.current = loaded

	s.publish(EventSettingsReloaded, loaded)
	return true, nil
}

// commit saves next and makes it current. Callers hold s.mu.
func (s *SettingsService) commit(next domain.MachineSettings) error {
	if err := s.store.Save(next); err != nil {
		return err
	}
	s.current = next

	s.publish(EventSettingsSaved, next)
	return nil
}

func (s *SettingsService) publish(t EventType, v domain.MachineSettings) {
	s.eventBus.Publish(Event{
		Type: t,
		Payload: map[string]string{
			"path":        s.store.Path(),
			"fingerprint": v.Fingerprint(),
		},
	})
}

// ============================================================================
// Profiles
// ============================================================================

// SaveProfile stores the current settings under name
func (s *SettingsService) SaveProfile(ctx context.Context, name string) (bool, error) {
	if s.profiles == nil {
		return false, ErrNoProfiles
	}

	current := s.Current()
	changed, err := s.profiles.SaveProfile(ctx, name, current)
	if err != nil {
		return false, err
	}

	if changed {
		s.eventBus.Publish(Event{
			Type:    EventProfileSaved,
			Payload: map[string]string{"profile": name, "fingerprint": current.Fingerprint()},
		})
	}
	return changed, nil
}

// ApplyProfile makes a stored profile the current settings and saves it
func (s *SettingsService) ApplyProfile(ctx context.Context, name string) (domain.MachineSettings, error) {
	if s.profiles == nil {
		return domain.MachineSettings{}, ErrNoProfiles
	}

	p, err := s.profiles.GetProfile(ctx, name)
	if err != nil {
		return domain.MachineSettings{}, err
	}
	if p == nil {
		return domain.MachineSettings{}, fmt.Errorf("%w: %s", repository.ErrNotFound, name)
	}

	if err := s.Replace(p.Settings); err != nil {
		return domain.MachineSettings{}, err
	}

	s.eventBus.Publish(Event{
		Type:    EventProfileApplied,
		Payload: map[string]string{"profile": p.Name, "fingerprint": p.Fingerprint},
	})
	return p.Settings, nil
}

// ListProfiles returns all stored profiles
func (s *SettingsService) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	if s.profiles == nil {
		return nil, ErrNoProfiles
	}
	return s.profiles.ListProfiles(ctx)
}

// DeleteProfile removes a stored profile
func (s *SettingsService) DeleteProfile(ctx context.Context, name string) error {
	if s.profiles == nil {
		return ErrNoProfiles
	}

	if err := s.profiles.DeleteProfile(ctx, name); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventProfileDeleted,
		Payload: map[string]string{"profile": name},
	})
	return nil
}
