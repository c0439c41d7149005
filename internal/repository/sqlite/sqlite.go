package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"gcodegen/internal/domain"
	"gcodegen/internal/logging"
	"gcodegen/internal/repository"

	_ "modernc.org/sqlite"
)

// Repository implements repository.ProfileRepository using SQLite
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

var _ repository.ProfileRepository = (*Repository)(nil)

// Option configures a Repository
type Option func(*Repository)

// WithNow overrides the clock used for timestamps
func WithNow(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// New opens (creating if needed) the profile database at dbPath.
// ":memory:" opens a private in-memory database.
func New(dbPath string, opts ...Option) (*Repository, error) {
	inMemory := dbPath == ":memory:"
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps an in-memory database alive and serializes writers
	db.SetMaxOpenConns(1)

	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if !inMemory {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	repo := &Repository{db: db, now: time.Now}
	for _, opt := range opts {
		opt(repo)
	}

	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		name TEXT PRIMARY KEY,
		bed_width REAL NOT NULL,
		bed_height REAL NOT NULL,
		feed_rate REAL NOT NULL,
		pen_up_position REAL NOT NULL,
		pen_down_position REAL NOT NULL,
		safe_z REAL NOT NULL,
		fingerprint TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_profiles_fingerprint ON profiles(fingerprint);
	`

	_, err := r.db.Exec(schema)
	return err
}

// normalizeName trims a profile name and rejects empty or control-character names
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is empty", repository.ErrInvalidName)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: %q contains control characters", repository.ErrInvalidName, name)
		}
	}
	return name, nil
}

// SaveProfile inserts or replaces a profile. Saving identical settings
// leaves the row untouched and returns false.
func (r *Repository) SaveProfile(ctx context.Context, name string, s domain.MachineSettings) (bool, error) {
	name, err := normalizeName(name)
	if err != nil {
		return false, err
	}
	if err := domain.Validate(s.Fields()); err != nil {
		return false, err
	}

	var existing string
	err = r.db.QueryRowContext(ctx, `SELECT fingerprint FROM profiles WHERE name = ?`, name).Scan(&existing)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("failed to query profile: %w", err)
	}
	if existing == s.Fingerprint() {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			bed_width = excluded.bed_width,
			bed_height = excluded.bed_height,
			feed_rate = excluded.feed_rate,
			pen_up_position = excluded.pen_up_position,
			pen_down_position = excluded.pen_down_position,
			safe_z = excluded.safe_z,
			fingerprint = excluded.fingerprint,
			updated_at = excluded.updated_at
	`, profileInsertArgs(name, s, r.now())...)
	if err != nil {
		return false, fmt.Errorf("failed to upsert profile: %w", err)
	}

	logging.L().Info("profile saved", "profile", name, "fingerprint", s.Fingerprint()[:12])
	return true, nil
}

// GetProfile retrieves a single profile by name
func (r *Repository) GetProfile(ctx context.Context, name string) (*domain.Profile, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	var row profileRow
	err = r.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles WHERE name = ?
	`, name).Scan(row.scanArgs()...)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	return row.toDomain()
}

// ListProfiles returns all profiles ordered by name
func (r *Repository) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]domain.Profile, 0)
	for rows.Next() {
		var row profileRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}

		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}

	return profiles, nil
}

// DeleteProfile removes a profile by name
func (r *Repository) DeleteProfile(ctx context.Context, name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, name)
	}

	logging.L().Info("profile deleted", "profile", name)
	return nil
}
