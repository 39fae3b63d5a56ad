package lattice

import (
	"fmt"
	"slices"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

var _ Storage = &storage{}

var mainIndex = table.Factory.NewEntryIndex()

// cursorLockBit is the lock taken by Lock/Unlock and by cursors while iterating
const cursorLockBit uint32 = 0

type storage struct {
	locks       mask.Mask
	schema      table.Schema
	archetypes  *archetypes
	opQueue     opQueue
	nextID      EntityID
	entities    map[EntityID]*entity
	attachments attachments
	changes     changeTracker
}

func newStorage(schema table.Schema) Storage {
	storage := &storage{
		archetypes:  newArchetypes(),
		schema:      schema,
		opQueue:     newOpQueue(),
		nextID:      1,
		entities:    make(map[EntityID]*entity),
		attachments: newAttachments(),
	}
	return storage
}

func (sto *storage) Entity(id EntityID) (Entity, error) {
	en, ok := sto.entities[id]
	if !ok {
		return nil, EntityNotFoundError{ID: id}
	}
	return en, nil
}

func (sto *storage) NewEntities(n int, components ...Component) ([]Entity, error) {
	if sto.Locked() {
		return nil, LockedStorageError{}
	}
	components = sto.withHandle(components)
	var entityMask mask.Mask
	for _, component := range components {
		sto.schema.Register(component)
		entityMask.Mark(sto.schema.RowIndexFor(component))
	}
	entityArchetype, err := sto.archetypes.forMask(sto.schema, entityMask, components)
	if err != nil {
		return nil, err
	}
	entries, err := entityArchetype.table.NewEntries(n)
	if err != nil {
		return nil, err
	}

	entities := make([]Entity, n)
	for i, entry := range entries {
		en := &entity{
			id:      sto.nextID,
			entryID: entry.ID(),
			last:    entry,
			sto:     sto,
		}
		sto.nextID++
		sto.entities[en.id] = en
		handleComponent.GetFromEntity(en).id = en.id
		entities[i] = en
	}
	return entities, nil
}

// withHandle prepends the handle component and drops duplicate components
func (sto *storage) withHandle(components []Component) []Component {
	out := make([]Component, 0, len(components)+1)
	out = append(out, handleComponent)
	for _, c := range components {
		if !sto.containsComponent(out, c) {
			out = append(out, c)
		}
	}
	return out
}

func (sto *storage) containsComponent(components []Component, c Component) bool {
	sto.schema.Register(c)
	row := sto.schema.RowIndexFor(c)
	for _, existing := range components {
		sto.schema.Register(existing)
		if sto.schema.RowIndexFor(existing) == row {
			return true
		}
	}
	return false
}

// RowIndexFor registers c if needed, so queries may name components no entity has yet
func (sto *storage) RowIndexFor(c Component) uint32 {
	sto.schema.Register(c)
	return sto.schema.RowIndexFor(c)
}

func (sto *storage) Locked() bool {
	var unlocked mask.Mask
	return sto.locks != unlocked
}

func (sto *storage) Lock() {
	sto.AddLock(cursorLockBit)
}

func (sto *storage) Unlock() {
	sto.RemoveLock(cursorLockBit)
}

func (sto *storage) AddLock(bit uint32) {
	sto.locks.Mark(bit)
}

// RemoveLock releases one lock bit. Once no bits remain, queued operations run; a failing
// queued operation panics since there is no caller left to report it to.
func (sto *storage) RemoveLock(bit uint32) {
	sto.locks.Unmark(bit)
	if sto.Locked() {
		return
	}
	if err := sto.processOperationQueue(); err != nil {
		panic(err)
	}
}

func (sto *storage) EnqueueNewEntities(amount int, components ...Component) error {
	if !sto.Locked() {
		_, err := sto.NewEntities(amount, components...)
		if err != nil {
			return fmt.Errorf("failed to create entities directly: %w", err)
		}
		return nil
	}
	sto.opQueue.enqueueOp(operation{
		typ:    opCreate,
		amount: amount,
		comps:  components,
	})
	return nil
}

// DestroyEntities removes entities table by table. An entity leaves the attachment index
// only once its row is gone; destroy callbacks run after every table has been updated.
func (sto *storage) DestroyEntities(entities ...Entity) error {
	if sto.Locked() {
		return LockedStorageError{}
	}
	type dying struct {
		en   *entity
		grid bool
	}
	type tableGroup struct {
		rows  []int
		dying []dying
	}
	groups := make(map[table.Table]*tableGroup)
	var order []table.Table
	seen := make(map[EntityID]struct{}, len(entities))

	for _, en := range entities {
		if en == nil {
			continue
		}
		live, ok := sto.entities[en.ID()]
		if !ok {
			continue
		}
		if _, dup := seen[live.id]; dup {
			continue
		}
		seen[live.id] = struct{}{}

		entry := live.entry()
		tbl := entry.Table()
		group, ok := groups[tbl]
		if !ok {
			group = &tableGroup{}
			groups[tbl] = group
			order = append(order, tbl)
		}
		group.rows = append(group.rows, entry.Index())
		group.dying = append(group.dying, dying{en: live, grid: Components.Grid.CheckEntity(live)})
	}

	var destroyed []*entity
	for _, tbl := range order {
		group := groups[tbl]
		if _, err := tbl.DeleteEntries(group.rows...); err != nil {
			return fmt.Errorf("failed to delete entries: %w", err)
		}
		for _, d := range group.dying {
			sto.unlink(d.en, d.grid)
			delete(sto.entities, d.en.id)
			destroyed = append(destroyed, d.en)
		}
	}

	for _, en := range destroyed {
		for _, callback := range en.relationships.onDestroy {
			if err := callback(en); err != nil {
				return fmt.Errorf("destroy callback for entity %d: %w", en.id, err)
			}
		}
	}
	return nil
}

// unlink removes a destroyed entity from the attachment index and records grid removal
func (sto *storage) unlink(en *entity, grid bool) {
	sto.attachments.detach(en.id)
	if _, attached := sto.attachments.cellsOf[en.id]; attached || grid {
		sto.attachments.dropGrid(en.id)
		sto.changes.destroyed.add(en.id)
	}
}

func (sto *storage) EnqueueDestroyEntities(entities ...Entity) error {
	if !sto.Locked() {
		return sto.DestroyEntities(entities...)
	}
	ids := make([]EntityID, 0, len(entities))
	for _, en := range entities {
		if en != nil {
			ids = append(ids, en.ID())
		}
	}
	sto.opQueue.enqueueDestroy(ids)
	return nil
}

func (sto *storage) NewGrid(grid Grid, translation Vec3) (Entity, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	entities, err := sto.NewEntities(1, Components.Transform, Components.Grid)
	if err != nil {
		return nil, fmt.Errorf("failed to create grid: %w", err)
	}
	en := entities[0]
	*Components.Grid.GetFromEntity(en) = grid
	Components.Transform.GetFromEntity(en).Translation = translation
	sto.changes.reconfigured.add(en.ID())
	return en, nil
}

// SetGrid replaces a grid's configuration. Attached cells are resynced on the next update.
func (sto *storage) SetGrid(id EntityID, grid Grid) error {
	if err := grid.Validate(); err != nil {
		return err
	}
	current, ok := sto.Grid(id)
	if !ok {
		return GridNotFoundError{ID: id}
	}
	*current = grid
	sto.changes.reconfigured.add(id)
	return nil
}

func (sto *storage) NewCell(coordinate Coordinate, translation Vec3) (Entity, error) {
	entities, err := sto.NewEntities(1, Components.Transform, Components.Cell)
	if err != nil {
		return nil, fmt.Errorf("failed to create cell: %w", err)
	}
	en := entities[0]
	Components.Cell.GetFromEntity(en).Coordinate = coordinate
	Components.Transform.GetFromEntity(en).Translation = translation
	return en, nil
}

// Attach links a cell to a grid. A cell already attached elsewhere is moved to the end
// of the new grid's cell list. An entity carrying both components cannot be attached to
// itself.
func (sto *storage) Attach(cell, grid EntityID) error {
	if cell == grid {
		return EntityRelationError{Child: cell, Parent: grid}
	}
	if _, ok := sto.Cell(cell); !ok {
		return CellNotFoundError{ID: cell}
	}
	if _, ok := sto.Grid(grid); !ok {
		return GridNotFoundError{ID: grid}
	}
	sto.attachments.attach(cell, grid)
	return nil
}

func (sto *storage) Detach(cell EntityID) {
	sto.attachments.detach(cell)
}

func (sto *storage) GridOf(cell EntityID) (EntityID, bool) {
	grid, ok := sto.attachments.gridOf[cell]
	return grid, ok
}

// CellsOf returns a copy of grid's cells in attach order
func (sto *storage) CellsOf(grid EntityID) []EntityID {
	return slices.Clone(sto.attachments.cellsOf[grid])
}

// Grids lists, in ascending order, every grid with at least one attached cell
func (sto *storage) Grids() []EntityID {
	return sto.attachments.grids()
}

func (sto *storage) Grid(id EntityID) (*Grid, bool) {
	en, ok := sto.entities[id]
	if !ok {
		return nil, false
	}
	ok, grid := Components.Grid.GetFromEntitySafe(en)
	return grid, ok
}

func (sto *storage) Cell(id EntityID) (*GridCell, bool) {
	en, ok := sto.entities[id]
	if !ok {
		return nil, false
	}
	ok, cell := Components.Cell.GetFromEntitySafe(en)
	return cell, ok
}

func (sto *storage) Translation(id EntityID) (Vec3, bool) {
	en, ok := sto.entities[id]
	if !ok {
		return Vec3{}, false
	}
	ok, transform := Components.Transform.GetFromEntitySafe(en)
	if !ok {
		return Vec3{}, false
	}
	return transform.Translation, true
}

// SetTranslation writes an entity's translation. Writes that move a grid are recorded
// for the next update pass.
func (sto *storage) SetTranslation(id EntityID, translation Vec3) bool {
	en, ok := sto.entities[id]
	if !ok {
		return false
	}
	ok, transform := Components.Transform.GetFromEntitySafe(en)
	if !ok {
		return false
	}
	if transform.Translation == translation {
		return true
	}
	transform.Translation = translation
	if Components.Grid.CheckEntity(en) {
		sto.changes.moved.add(id)
	}
	return true
}

func (sto *storage) Changes() ChangeSet {
	return sto.changes.snapshot()
}

func (sto *storage) ClearChanges() {
	sto.changes.reset()
}
