package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Decode converts generic YAML or frontmatter data into a Definition.
// Unknown keys are rejected.
func Decode(raw any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// ParseYAML reads a catalog definition.
func ParseYAML(r io.Reader) (Definition, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return Definition{}, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}
	var def Definition
	if err := Decode(raw, &def); err != nil {
		return Definition{}, fmt.Errorf("invalid catalog definition: %w", err)
	}
	return def, nil
}

// LoadYAML reads and builds a catalog.
func LoadYAML(r io.Reader) (*Catalog, error) {
	def, err := ParseYAML(r)
	if err != nil {
		return nil, err
	}
	return def.Build()
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer f.Close()
	c, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// MarshalYAML renders the catalog as a YAML definition.
func MarshalYAML(c *Catalog) ([]byte, error) {
	return yaml.Marshal(Describe(c))
}

// Default returns the built-in sample catalog.
func Default() *Catalog {
	c, err := LoadYAML(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}
