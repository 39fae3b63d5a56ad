package lattice

import (
	"iter"

	"github.com/TheBitDrifter/table"
)

type EntityID uint32

type TransformStore interface {
	Translation(EntityID) (Vec3, bool)
	SetTranslation(EntityID, Vec3) bool
}

type AttachmentStore interface {
	GridOf(cell EntityID) (EntityID, bool)
	CellsOf(grid EntityID) []EntityID
	Grids() []EntityID
}

type World interface {
	TransformStore
	AttachmentStore
	Grid(EntityID) (*Grid, bool)
	Cell(EntityID) (*GridCell, bool)
	Changes() ChangeSet
	ClearChanges()
}

type Storage interface {
	World
	Entity(EntityID) (Entity, error)
	NewEntities(int, ...Component) ([]Entity, error)
	EnqueueNewEntities(int, ...Component) error
	DestroyEntities(...Entity) error
	EnqueueDestroyEntities(...Entity) error
	NewGrid(Grid, Vec3) (Entity, error)
	SetGrid(EntityID, Grid) error
	NewCell(Coordinate, Vec3) (Entity, error)
	Attach(cell, grid EntityID) error
	Detach(cell EntityID)
	RowIndexFor(Component) uint32
	Locked() bool
	Lock()
	Unlock()
	AddLock(bit uint32)
	RemoveLock(bit uint32)
}

// EntityDestroyCallback runs after an entity has been removed from its storage
type EntityDestroyCallback func(Entity) error

type Entity interface {
	ID() EntityID
	Index() int
	Table() table.Table
	Storage() Storage
	Valid() bool
	Parent() (Entity, bool)
	SetParent(parent Entity) error
	AddDestroyCallback(EntityDestroyCallback)
	Components() []Component
	AddComponent(Component) error
	RemoveComponent(Component) error
	EnqueueAddComponent(Component) error
	EnqueueRemoveComponent(Component) error
}

type Archetype interface {
	ID() uint32
	Table() table.Table
}

type Query interface {
	QueryNode
	And(items ...any) QueryNode
	Or(items ...any) QueryNode
	Not(items ...any) QueryNode
}

type QueryNode interface {
	Evaluate(archetype Archetype, storage Storage) bool
}

type iCursor interface {
	Entities() iter.Seq[EntityID]
	EntityID() EntityID
	Next() bool
	Reset()
}

type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	GetItem32(uint32) *T
	Lookup(string) (*T, bool)
	Register(string, T) (int, error)
	Len() int
}

// ChangeSet lists the grids touched since the last ClearChanges, each at most once and
// in the order of their first change
type ChangeSet struct {
	Moved        []EntityID
	Reconfigured []EntityID
	Destroyed    []EntityID
}

// Warning: internal Dependencies abound!
type Cursor struct {
	// The query to filter entities
	query QueryNode

	// The storage to iterate over
	storage Storage

	// Current iteration state
	currentArchetype archetype
	storageIndex     int
	entityIndex      int
	remaining        int

	// Initialization state
	initialized     bool
	holdsLock       bool
	matchedStorages []archetype
}

type AccessibleComponent[T any] struct {
	Component
	table.Accessor[T] // concrete.
}

type SimpleCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}
