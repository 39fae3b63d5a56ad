package lattice

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Definitions is a set of named grid configurations, usually loaded from a YAML file:
//
//	grids:
//	  inventory:
//	    cell_size: {x: 32, y: 32}
//	    cell_gap: {x: 2, y: 2}
//	    width: 8
//
// An omitted width or height leaves that axis unbounded.
type Definitions struct {
	Grids map[string]GridDefinition `yaml:"grids"`
}

type GridDefinition struct {
	CellSize Vec2    `yaml:"cell_size"`
	CellGap  Vec2    `yaml:"cell_gap"`
	Offset   Vec2    `yaml:"offset"`
	Width    *uint32 `yaml:"width,omitempty"`
	Height   *uint32 `yaml:"height,omitempty"`
}

// Grid converts the definition and validates the result
func (d GridDefinition) Grid() (Grid, error) {
	grid := Grid{
		CellSize: d.CellSize,
		CellGap:  d.CellGap,
		Offset:   d.Offset,
		Dimensions: Dimensions{
			X: boundFrom(d.Width),
			Y: boundFrom(d.Height),
		},
	}
	if err := grid.Validate(); err != nil {
		return Grid{}, err
	}
	return grid, nil
}

func boundFrom(n *uint32) Bound {
	if n == nil {
		return Unbounded()
	}
	return BoundedTo(*n)
}

func ParseDefinitions(data []byte) (*Definitions, error) {
	var defs Definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse grid definitions: %w", err)
	}
	return &defs, nil
}

func LoadDefinitions(path string) (*Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid definitions: %w", err)
	}
	return ParseDefinitions(data)
}

// Names returns the defined grid names in sorted order
func (d *Definitions) Names() []string {
	names := make([]string, 0, len(d.Grids))
	for name := range d.Grids {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Library validates every definition and registers the grids by name, in sorted name order
func (d *Definitions) Library() (Cache[Grid], error) {
	lib := FactoryNewCache[Grid](len(d.Grids))
	for _, name := range d.Names() {
		grid, err := d.Grids[name].Grid()
		if err != nil {
			return nil, fmt.Errorf("grid %q: %w", name, err)
		}
		if _, err := lib.Register(name, grid); err != nil {
			return nil, fmt.Errorf("grid %q: %w", name, err)
		}
	}
	return lib, nil
}
