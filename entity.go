package lattice

import (
	"fmt"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
	iter_util "github.com/TheBitDrifter/util/iter"
)

var _ Entity = &entity{}

type entity struct {
	id            EntityID
	entryID       table.EntryID
	last          table.Entry
	sto           *storage
	relationships relationships
}

type relationships struct {
	onDestroy []EntityDestroyCallback
}

func (e *entity) ID() EntityID {
	return e.id
}

// entry resolves the entity's current row. Rows move when a table swap-removes another
// entry or when the entity changes archetype, so the entry index is consulted on every
// access. Destroyed entities keep the last entry they resolved to.
func (e *entity) entry() table.Entry {
	if !e.Valid() {
		return e.last
	}
	en, err := mainIndex.Entry(int(e.entryID) - 1)
	if err != nil {
		return e.last
	}
	e.last = en
	return en
}

func (e *entity) Index() int {
	return e.entry().Index()
}

func (e *entity) Table() table.Table {
	return e.entry().Table()
}

func (e *entity) Storage() Storage {
	return e.sto
}

// Valid reports whether the entity is still alive in its storage
func (e *entity) Valid() bool {
	live, ok := e.sto.entities[e.id]
	return ok && live == e
}

// Parent returns the grid the entity is attached to
func (e *entity) Parent() (Entity, bool) {
	grid, ok := e.sto.GridOf(e.id)
	if !ok {
		return nil, false
	}
	parent, ok := e.sto.entities[grid]
	return parent, ok
}

// SetParent attaches the entity, which must be a cell, to parent, which must be a grid
// in the same storage
func (e *entity) SetParent(parent Entity) error {
	if parent == nil || parent.Storage() != e.Storage() {
		var parentID EntityID
		if parent != nil {
			parentID = parent.ID()
		}
		return EntityRelationError{Child: e.id, Parent: parentID}
	}
	return e.sto.Attach(e.id, parent.ID())
}

// AddDestroyCallback registers a callback run once the entity has been destroyed.
// Callbacks run in registration order.
func (e *entity) AddDestroyCallback(callback EntityDestroyCallback) {
	e.relationships.onDestroy = append(e.relationships.onDestroy, callback)
}

// Components lists the entity's components, excluding internal bookkeeping
func (e *entity) Components() []Component {
	handleRow := e.sto.schema.RowIndexFor(handleComponent)
	var comps []Component
	for _, et := range iter_util.Collect(e.Table().ElementTypes()) {
		if e.sto.schema.RowIndexFor(et) == handleRow {
			continue
		}
		comps = append(comps, et)
	}
	return comps
}

func (e *entity) AddComponent(c Component) error {
	if e.sto.Locked() {
		return LockedStorageError{}
	}
	originTable := e.Table()
	if originTable.Contains(c) {
		return ComponentExistsError{Component: c}
	}
	e.sto.schema.Register(c)

	destMask := originTable.(mask.Maskable).Mask()
	destMask.Mark(e.sto.schema.RowIndexFor(c))

	comps := e.currentComponents()
	comps = append(comps, c)
	return e.moveTo(destMask, comps)
}

func (e *entity) RemoveComponent(c Component) error {
	if e.sto.Locked() {
		return LockedStorageError{}
	}
	originTable := e.Table()
	if !originTable.Contains(c) {
		return ComponentNotFoundError{Component: c}
	}

	removedRow := e.sto.schema.RowIndexFor(c)
	destMask := originTable.(mask.Maskable).Mask()
	destMask.Unmark(removedRow)

	current := e.currentComponents()
	comps := make([]Component, 0, len(current))
	for _, comp := range current {
		if e.sto.schema.RowIndexFor(comp) != removedRow {
			comps = append(comps, comp)
		}
	}
	return e.moveTo(destMask, comps)
}

func (e *entity) currentComponents() []Component {
	ets := iter_util.Collect(e.Table().ElementTypes())
	comps := make([]Component, len(ets), len(ets)+1)
	for i, et := range ets {
		comps[i] = et
	}
	return comps
}

// moveTo transfers the entity's row into the archetype for destMask. The transferred
// row may come back under a different entry ID, so it is read back from the destination.
func (e *entity) moveTo(destMask mask.Mask, comps []Component) error {
	destArchetype, err := e.sto.archetypes.forMask(e.sto.schema, destMask, comps)
	if err != nil {
		return fmt.Errorf("failed to get/create archetype: %w", err)
	}
	dest := destArchetype.table
	row := dest.Length()
	if err := e.Table().TransferEntries(dest, e.Index()); err != nil {
		return fmt.Errorf("failed to transfer entity: %w", err)
	}
	moved, err := dest.Entry(row)
	if err != nil {
		return fmt.Errorf("failed to locate transferred entity: %w", err)
	}
	e.entryID = moved.ID()
	e.last = moved
	return nil
}

func (e *entity) EnqueueAddComponent(c Component) error {
	if !e.sto.Locked() {
		return e.AddComponent(c)
	}
	e.sto.opQueue.enqueueComponentOp(opAddComponent, e.id, c)
	return nil
}

func (e *entity) EnqueueRemoveComponent(c Component) error {
	if !e.sto.Locked() {
		return e.RemoveComponent(c)
	}
	e.sto.opQueue.enqueueComponentOp(opRemoveComponent, e.id, c)
	return nil
}
