// Package presets ships the curated quick-pick shortcuts shown above the
// catalog: one label plus a canned query string each.
package presets

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsRawData []byte

// Preset is one quick-pick shortcut.
type Preset struct {
	ID          string `yaml:"id" json:"id"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description,omitempty"`
	// Query is the catalog query string the preset applies, in the same
	// format the URL codec produces.
	Query string `yaml:"query" json:"query"`
}

// presetsFile is the top-level structure of the embedded YAML.
type presetsFile struct {
	Presets []Preset `yaml:"presets"`
}

// Catalog provides lazy-loaded access to the embedded presets.
type Catalog struct {
	once    sync.Once
	presets []Preset
	err     error
}

// NewCatalog creates a Catalog that parses the embedded YAML on first access.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Presets returns a copy of all quick picks in display order.
func (c *Catalog) Presets() ([]Preset, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	cp := make([]Preset, len(c.presets))
	copy(cp, c.presets)
	return cp, nil
}

func (c *Catalog) load() {
	var f presetsFile
	if err := yaml.Unmarshal(presetsRawData, &f); err != nil {
		c.err = fmt.Errorf("presets: parse yaml: %w", err)
		return
	}
	c.presets = f.Presets
}
