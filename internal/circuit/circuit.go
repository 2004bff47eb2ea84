// Package circuit holds the circuit-model catalog: the technology and
// switching structure of every multiplexer model an architecture declares.
package circuit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/tilegen/internal/fabricerr"
)

// Technology is the device technology of a circuit model.
type Technology int

const (
	TechnologyUnknown Technology = iota
	CMOS
	RRAM
)

func (t Technology) String() string {
	switch t {
	case CMOS:
		return "cmos"
	case RRAM:
		return "rram"
	}
	return "unknown"
}

// ParseTechnology maps a technology name. Unknown names are not an error
// here; they are rejected when a bitstream is requested for the model.
func ParseTechnology(name string) Technology {
	switch strings.ToLower(name) {
	case "cmos":
		return CMOS
	case "rram":
		return RRAM
	}
	return TechnologyUnknown
}

// Structure is the switching network of a multiplexer.
type Structure int

const (
	OneLevel Structure = iota
	Tree
	MultiLevel
)

func (s Structure) String() string {
	switch s {
	case OneLevel:
		return "one_level"
	case Tree:
		return "tree"
	case MultiLevel:
		return "multi_level"
	}
	return fmt.Sprintf("structure(%d)", int(s))
}

// ParseStructure maps a structure name from an architecture file.
func ParseStructure(name string) (Structure, error) {
	switch strings.ToLower(name) {
	case "one_level", "onelevel":
		return OneLevel, nil
	case "tree":
		return Tree, nil
	case "multi_level", "multilevel":
		return MultiLevel, nil
	}
	return OneLevel, fabricerr.Config("circuit.ParseStructure", name, "unsupported mux structure")
}

// Model is one multiplexer circuit model.
type Model struct {
	Name              string
	Technology        Technology
	TechnologyName    string
	Structure         Structure
	NumLevels         int
	AddsConstantInput bool
}

// ImplementedSize is the number of inputs the built multiplexer really has:
// one more than declared when the model ties off an extra constant input.
func (m Model) ImplementedSize(declared int) int {
	if m.AddsConstantInput {
		return declared + 1
	}
	return declared
}

// Catalog maps model names to models.
type Catalog struct {
	models map[string]Model
}

// NewCatalog indexes models by name. Duplicate names are a configuration
// error.
func NewCatalog(models ...Model) (*Catalog, error) {
	c := &Catalog{models: make(map[string]Model, len(models))}
	for _, m := range models {
		if _, dup := c.models[m.Name]; dup {
			return nil, fabricerr.Config("circuit.NewCatalog", m.Name, "circuit model declared twice")
		}
		if m.Structure == MultiLevel && m.NumLevels < 1 {
			return nil, fabricerr.Config("circuit.NewCatalog", m.Name, "multi-level model needs num_levels >= 1")
		}
		c.models[m.Name] = m
	}
	return c, nil
}

// Lookup returns the model with the given name.
func (c *Catalog) Lookup(name string) (Model, error) {
	m, ok := c.models[name]
	if !ok {
		return Model{}, fabricerr.Config("circuit.Catalog.Lookup", name, "undefined circuit model")
	}
	return m, nil
}

// Names lists every model name in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.models))
	for n := range c.models {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
