package codec

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// TOMLCodec handles TOML documents
type TOMLCodec struct{}

// NewTOMLCodec creates a new TOML codec
func NewTOMLCodec() *TOMLCodec {
	return &TOMLCodec{}
}

// Format returns the codec format identifier
func (c *TOMLCodec) Format() string {
	return "toml"
}

// Extensions returns the file extensions handled by this codec
func (c *TOMLCodec) Extensions() []string {
	return []string{".toml"}
}

// Decode reads a TOML document's top-level table
func (c *TOMLCodec) Decode(r io.Reader) (map[string]any, error) {
	doc := make(map[string]any)
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, syntaxError(c.Format(), err)
	}

	return doc, nil
}

// Encode writes v as TOML
func (c *TOMLCodec) Encode(v any, w io.Writer) error {
	encoder := toml.NewEncoder(w)
	encoder.Indent = "  "

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode TOML: %w", err)
	}

	return nil
}
