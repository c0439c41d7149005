package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// JSONCodec handles JSON documents
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Extensions returns the file extensions handled by this codec
func (c *JSONCodec) Extensions() []string {
	return []string{".json"}
}

// Decode reads exactly one JSON object. Numbers are kept as json.Number.
func (c *JSONCodec) Decode(r io.Reader) (map[string]any, error) {
	var doc map[string]any
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return nil, syntaxError(c.Format(), err)
	}
	if doc == nil {
		return nil, syntaxError(c.Format(), errors.New("document is not an object"))
	}

	// Anything after the object is corruption, not a second document
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, syntaxError(c.Format(), errors.New("unexpected data after object"))
	}

	return doc, nil
}

// Encode writes v as two-space indented JSON
func (c *JSONCodec) Encode(v any, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
