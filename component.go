package lattice

import (
	"github.com/TheBitDrifter/table"
)

// Component represents a data attribute/state that can be attached to entities
// Components can be used to create queries for entities
type Component interface {
	table.ElementType
}

// Transform holds an entity's world-space translation
type Transform struct {
	Translation Vec3
}

// GridCell marks an entity as lattice-aligned. Its Coordinate is only meaningful
// relative to the grid it is attached to.
type GridCell struct {
	Coordinate Coordinate
}

// CellOutline is the debug overlay marker for one cell of a grid
type CellOutline struct {
	Grid       EntityID
	Coordinate Coordinate
	Size       Vec2
}

// handle stores the owning entity's ID alongside its other components so rows reached
// through a cursor can be resolved back to entities
type handle struct {
	id EntityID
}

// Components holds the accessors for every component the grid systems read or write
var Components = struct {
	Transform AccessibleComponent[Transform]
	Grid      AccessibleComponent[Grid]
	Cell      AccessibleComponent[GridCell]
	Outline   AccessibleComponent[CellOutline]
}{
	Transform: FactoryNewComponent[Transform](),
	Grid:      FactoryNewComponent[Grid](),
	Cell:      FactoryNewComponent[GridCell](),
	Outline:   FactoryNewComponent[CellOutline](),
}

var handleComponent = FactoryNewComponent[handle]()
