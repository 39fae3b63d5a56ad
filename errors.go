package lattice

import "fmt"

type LockedStorageError struct{}

func (e LockedStorageError) Error() string {
	return "storage is currently locked"
}

type InvalidGridError struct {
	Axis  string
	Pitch float64
}

func (e InvalidGridError) Error() string {
	return fmt.Sprintf("grid pitch (cell size + gap) on %s axis must be positive and finite, got %v", e.Axis, e.Pitch)
}

type EntityNotFoundError struct {
	ID EntityID
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %d does not exist", e.ID)
}

type GridNotFoundError struct {
	ID EntityID
}

func (e GridNotFoundError) Error() string {
	return fmt.Sprintf("entity %d is not a grid", e.ID)
}

type CellNotFoundError struct {
	ID EntityID
}

func (e CellNotFoundError) Error() string {
	return fmt.Sprintf("entity %d is not a grid cell", e.ID)
}

type EntityRelationError struct {
	Child  EntityID
	Parent EntityID
}

func (e EntityRelationError) Error() string {
	return fmt.Sprintf("entity %d cannot be attached to entity %d", e.Child, e.Parent)
}

type ComponentExistsError struct {
	Component Component
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity: %T", e.Component)
}

type ComponentNotFoundError struct {
	Component Component
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity: %T", e.Component)
}

type CacheCapacityError struct {
	Capacity int
}

func (e CacheCapacityError) Error() string {
	return fmt.Sprintf("cache at maximum capacity (%d)", e.Capacity)
}
