package codec

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML documents
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Extensions returns the file extensions handled by this codec
func (c *YAMLCodec) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Decode reads exactly one YAML mapping
func (c *YAMLCodec) Decode(r io.Reader) (map[string]any, error) {
	var doc map[string]any
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, syntaxError(c.Format(), errors.New("empty document"))
		}
		return nil, syntaxError(c.Format(), err)
	}
	if doc == nil {
		return nil, syntaxError(c.Format(), errors.New("document is not a mapping"))
	}

	// A settings file holds one document; anything after it is corruption
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, syntaxError(c.Format(), errors.New("unexpected document after mapping"))
		}
		return nil, syntaxError(c.Format(), err)
	}

	return doc, nil
}

// Encode writes v as YAML indented by two spaces
func (c *YAMLCodec) Encode(v any, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
