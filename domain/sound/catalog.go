// Package sound resolves alarm sound ids to display names and platform beeps.
package sound

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/soocke/countdown-go/assets"
)

// FallbackName labels the default sound when a catalog does not name one.
const FallbackName = "Default"

// Entry is one selectable sound.
type Entry struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
	Beep uint32 `yaml:"beep"`
}

type catalogFile struct {
	Default string  `yaml:"default"`
	Sounds  []Entry `yaml:"sounds"`
}

// Catalog is an ordered, read-only set of sounds.
type Catalog struct {
	defaultName string
	entries     []Entry
	byID        map[int]Entry
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse sound catalog: %w", err)
	}
	c := &Catalog{defaultName: f.Default, byID: make(map[int]Entry, len(f.Sounds))}
	if c.defaultName == "" {
		c.defaultName = FallbackName
	}
	for _, e := range f.Sounds {
		if e.Name == "" {
			return nil, fmt.Errorf("sound %d has no name", e.ID)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate sound id %d", e.ID)
		}
		c.byID[e.ID] = e
		c.entries = append(c.entries, e)
	}
	if len(c.entries) == 0 {
		return nil, errors.New("sound catalog is empty")
	}
	return c, nil
}

// Builtin returns the catalog embedded in the binary.
func Builtin() *Catalog {
	c, err := Parse(assets.SoundsYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// NameFor returns the name of id. A nil id or an unknown id reports false.
func (c *Catalog) NameFor(id *int) (string, bool) {
	if c == nil || id == nil {
		return "", false
	}
	e, ok := c.byID[*id]
	return e.Name, ok
}

// DefaultName labels the nil sound.
func (c *Catalog) DefaultName() string {
	if c == nil {
		return FallbackName
	}
	return c.defaultName
}

// Entries returns the sounds in catalog order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Beep returns the platform beep code for id; ok is false for the default.
func (c *Catalog) Beep(id *int) (uint32, bool) {
	if c == nil || id == nil {
		return 0, false
	}
	e, ok := c.byID[*id]
	return e.Beep, ok
}
