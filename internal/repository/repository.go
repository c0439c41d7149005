package repository

import (
	"context"
	"errors"

	"gcodegen/internal/domain"
)

// ErrNotFound is returned when deleting a profile that does not exist
var ErrNotFound = errors.New("profile not found")

// ErrInvalidName is returned for empty or whitespace-only profile names
var ErrInvalidName = errors.New("invalid profile name")

// ProfileRepository defines storage for named machine settings profiles
type ProfileRepository interface {
	// SaveProfile stores settings under name. It reports false when the
	// stored profile already held identical settings.
	SaveProfile(ctx context.Context, name string, s domain.MachineSettings) (bool, error)

	// GetProfile returns nil, nil when no profile has that name
	GetProfile(ctx context.Context, name string) (*domain.Profile, error)

	ListProfiles(ctx context.Context) ([]domain.Profile, error)
	DeleteProfile(ctx context.Context, name string) error

	// Close releases resources
	Close() error
}
