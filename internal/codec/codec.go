// Package codec reads and writes flat settings documents in the text
// formats the application accepts. The format is chosen by file extension;
// JSON is the default.
package codec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// ErrSyntax marks content that is not a well-formed key/value document
var ErrSyntax = errors.New("malformed document")

// Decoder reads a document into a generic string-keyed mapping
type Decoder interface {
	Decode(r io.Reader) (map[string]any, error)
	Format() string
}

// Encoder writes a value as indented text
type Encoder interface {
	Encode(v any, w io.Writer) error
	Format() string
}

// Codec reads and writes one format
type Codec interface {
	Decoder
	Encoder
	Extensions() []string
}

var registry = []Codec{
	NewJSONCodec(),
	NewYAMLCodec(),
	NewTOMLCodec(),
}

// Default returns the JSON codec
func Default() Codec {
	return registry[0]
}

// ForPath picks a codec by file extension, falling back to JSON
func ForPath(path string) Codec {
	ext := strings.ToLower(filepath.Ext(path))
	for _, c := range registry {
		for _, e := range c.Extensions() {
			if e == ext {
				return c
			}
		}
	}
	return Default()
}

// ForFormat looks up a codec by format name
func ForFormat(format string) (Codec, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "yml" {
		format = "yaml"
	}
	for _, c := range registry {
		if c.Format() == format {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unsupported format %q (supported: %s)", format, strings.Join(Formats(), ", "))
}

// Formats lists the supported format names, sorted
func Formats() []string {
	names := make([]string, 0, len(registry))
	for _, c := range registry {
		names = append(names, c.Format())
	}
	sort.Strings(names)
	return names
}

// syntaxError wraps a decoder failure so callers can match ErrSyntax
func syntaxError(format string, err error) error {
	return fmt.Errorf("%w: failed to parse %s: %w", ErrSyntax, strings.ToUpper(format), err)
}
