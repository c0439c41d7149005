package sqlite

import (
	"fmt"
	"time"

	"gcodegen/internal/domain"
)

// ============================================================================
// Time Conversion Helpers
// ============================================================================

// Timestamps are stored as Unix nanoseconds in UTC so that reads do not
// depend on the driver's DATETIME parsing.

func timeToUnix(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func unixToTime(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

// ============================================================================
// Schema Evolution Guide
// ============================================================================
//
// To add a new column to the profiles table:
// 1. Add field to profileRow struct (below)
// 2. Update scanArgs() - APPEND to end to match column order
// 3. Update profileColumns constant - APPEND to end
// 4. Update toDomain() to map the new field
// 5. Update profileInsertArgs() if column should be writable
// 6. Add an ALTER TABLE step to migrate() in sqlite.go
//
// CRITICAL: Column order must match between profileColumns, scanArgs()
// and every SELECT using profileColumns.

// ============================================================================
// Profile Row Scanner
// ============================================================================

// profileRow holds all columns from a profile query for scanning
type profileRow struct {
	Name            string
	BedWidth        float64
	BedHeight       float64
	FeedRate        float64
	PenUpPosition   float64
	PenDownPosition float64
	SafeZ           float64
	Fingerprint     string
	CreatedAt       int64
	UpdatedAt       int64
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match profileColumns order exactly:
// name, bed_width, bed_height, feed_rate, pen_up_position,
// pen_down_position, safe_z, fingerprint, created_at, updated_at
func (r *profileRow) scanArgs() []interface{} {
	return []interface{}{
		&r.Name,            // 1
		&r.BedWidth,        // 2
		&r.BedHeight,       // 3
		&r.FeedRate,        // 4
		&r.PenUpPosition,   // 5
		&r.PenDownPosition, // 6
		&r.SafeZ,           // 7
		&r.Fingerprint,     // 8
		&r.CreatedAt,       // 9
		&r.UpdatedAt,       // 10
	}
}

// toDomain converts the scanned row to a domain.Profile, re-validating the
// stored values
func (r *profileRow) toDomain() (*domain.Profile, error) {
	s, err := domain.NewMachineSettings(domain.SettingsFields{
		BedWidth:        r.BedWidth,
		BedHeight:       r.BedHeight,
		FeedRate:        r.FeedRate,
		PenUpPosition:   r.PenUpPosition,
		PenDownPosition: r.PenDownPosition,
		SafeZ:           r.SafeZ,
	})
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", r.Name, err)
	}

	return domain.NewProfile(r.Name, s, unixToTime(r.UpdatedAt)), nil
}

// profileColumns returns the SELECT column list for profile queries
const profileColumns = `name, bed_width, bed_height, feed_rate, pen_up_position,
	pen_down_position, safe_z, fingerprint, created_at, updated_at`

// ============================================================================
// Profile Write Helpers
// ============================================================================

// profileInsertArgs prepares arguments for profile UPSERT
// Returns: name, bed_width, bed_height, feed_rate, pen_up_position,
//          pen_down_position, safe_z, fingerprint, created_at, updated_at
func profileInsertArgs(name string, s domain.MachineSettings, now time.Time) []interface{} {
	f := s.Fields()
	ts := timeToUnix(now)
	return []interface{}{
		name,
		f.BedWidth,
		f.BedHeight,
		f.FeedRate,
		f.PenUpPosition,
		f.PenDownPosition,
		f.SafeZ,
		s.Fingerprint(),
		ts,
		ts,
	}
}
