// Package settings persists machine settings to a text file.
//
// Load treats a missing file as first run and returns defaults. Every other
// failure (unreadable file, malformed content, missing or non-numeric
// fields, physically inconsistent values) is returned to the caller as an
// *OpError; nothing is silently replaced with defaults.
package settings

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gcodegen/internal/codec"
	"gcodegen/internal/domain"
	"gcodegen/internal/logging"
)

// DefaultFileName is used when no location is given
const DefaultFileName = "settings.json"

// Store reads and writes one settings file
type Store struct {
	path     string
	codec    codec.Codec
	defaults domain.MachineSettings
}

// Option configures a Store
type Option func(*Store)

// WithDefaults sets the settings returned when the file does not exist
func WithDefaults(s domain.MachineSettings) Option {
	return func(st *Store) { st.defaults = s }
}

// WithCodec overrides the extension-based format choice
func WithCodec(c codec.Codec) Option {
	return func(st *Store) { st.codec = c }
}

// NewStore creates a store for path. An empty path means DefaultFileName.
func NewStore(path string, opts ...Option) *Store {
	if path == "" {
		path = DefaultFileName
	}

	st := &Store{
		path:     path,
		codec:    codec.ForPath(path),
		defaults: domain.DefaultMachineSettings(),
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// Path returns the backing file location
func (st *Store) Path() string {
	return st.path
}

// Format returns the document format used for the file
func (st *Store) Format() string {
	return st.codec.Format()
}

// Defaults returns the settings used when the file is absent
func (st *Store) Defaults() domain.MachineSettings {
	return st.defaults
}

// Exists reports whether the backing file is present
func (st *Store) Exists() bool {
	_, err := os.Stat(st.path)
	return err == nil
}

// Load reads and validates the file. It never caches: each call re-reads.
func (st *Store) Load() (domain.MachineSettings, error) {
	log := logging.L().With("path", st.path)

	data, err := os.ReadFile(st.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("settings file not found, using defaults")
		return st.defaults, nil
	}
	if err != nil {
		log.Error("failed to read settings", "error", err)
		return domain.MachineSettings{}, &OpError{Op: "settings.read", Kind: KindIO, Path: st.path, Err: err}
	}

	doc, err := st.codec.Decode(bytes.NewReader(data))
	if err != nil {
		log.Error("malformed settings file", "format", st.codec.Format(), "error", err)
		return domain.MachineSettings{}, &OpError{Op: "settings.parse", Kind: KindParse, Path: st.path, Err: err}
	}

	s, err := domain.FromMap(doc)
	if err != nil {
		log.Error("invalid settings in file", "error", err)
		return domain.MachineSettings{}, &OpError{Op: "settings.decode", Kind: KindDecode, Path: st.path, Err: err}
	}

	log.Info("settings loaded")
	return s, nil
}

// Save writes s to the file, creating parent directories and replacing any
// existing content.
func (st *Store) Save(s domain.MachineSettings) error {
	log := logging.L().With("path", st.path)

	if err := domain.Validate(s.Fields()); err != nil {
		return &OpError{Op: "settings.validate", Kind: KindDecode, Path: st.path, Err: err}
	}

	if err := EnsureDir(st.path); err != nil {
		log.Error("failed to create settings directory", "error", err)
		return &OpError{Op: "settings.mkdir", Kind: KindIO, Path: filepath.Dir(st.path), Err: err}
	}

	var buf bytes.Buffer
	if err := st.codec.Encode(s.Fields(), &buf); err != nil {
		return &OpError{Op: "settings.encode", Kind: KindIO, Path: st.path, Err: err}
	}

	if err := writeFile(st.path, buf.Bytes()); err != nil {
		log.Error("failed to save settings", "error", err)
		return err
	}

	log.Info("settings saved", "format", st.codec.Format())
	return nil
}

// writeFile writes to a uniquely named sibling temp file and renames it over
// path. Concurrent writers each rename a complete file; the last one wins.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return &OpError{Op: "settings.write", Kind: KindIO, Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return &OpError{Op: "settings.write", Kind: KindIO, Path: tmpName, Err: err}
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return &OpError{Op: "settings.write", Kind: KindIO, Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &OpError{Op: "settings.write", Kind: KindIO, Path: tmpName, Err: err}
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &OpError{Op: "settings.rename", Kind: KindIO, Path: path, Err: err}
	}
	return nil
}

// EnsureDir creates the directory that will hold path
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}

// Load reads settings from path using the default store options
func Load(path string) (domain.MachineSettings, error) {
	return NewStore(path).Load()
}

// Save writes settings to path using the default store options
func Save(s domain.MachineSettings, path string) error {
	return NewStore(path).Save(s)
}
