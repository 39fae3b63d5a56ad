package lattice

import "github.com/TheBitDrifter/table"

// DefaultOverlayExtent is the number of outlines drawn along an unbounded grid axis
const DefaultOverlayExtent uint32 = 100

// Config holds global configuration for storages and overlays
var Config config = config{
	overlayExtent: DefaultOverlayExtent,
}

type config struct {
	tableEvents   table.TableEvents
	overlayExtent uint32
}

// SetTableEvents configures the table event callbacks used by archetypes created afterwards
func (c *config) SetTableEvents(te table.TableEvents) {
	c.tableEvents = te
}

// SetOverlayExtent sets how many outlines the debug overlay draws along unbounded axes
func (c *config) SetOverlayExtent(n uint32) {
	c.overlayExtent = n
}

func (c *config) OverlayExtent() uint32 {
	return c.overlayExtent
}
