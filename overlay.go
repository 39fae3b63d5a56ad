package lattice

import (
	"fmt"
	"slices"
)

// outlineInset shrinks each outline so neighbouring cells stay visually apart
const outlineInset = 0.2

// Overlay keeps one CellOutline entity per cell of each grid it draws. It only produces
// entities; drawing them is up to the host. Outlines are destroyed together with their grid.
type Overlay struct {
	sto      Storage
	outlines map[EntityID][]EntityID
	hooked   map[EntityID]bool
}

func newOverlay(sto Storage) *Overlay {
	return &Overlay{
		sto:      sto,
		outlines: make(map[EntityID][]EntityID),
		hooked:   make(map[EntityID]bool),
	}
}

// Outlines returns the outline entities currently drawn for grid
func (o *Overlay) Outlines(grid EntityID) []EntityID {
	return slices.Clone(o.outlines[grid])
}

func overlayExtent(b Bound) uint32 {
	if n, ok := b.Limit(); ok {
		return n
	}
	return Config.OverlayExtent()
}

// Redraw replaces grid's outlines. Unbounded axes are drawn Config.OverlayExtent() cells
// long. A missing grid only has its old outlines cleared.
func (o *Overlay) Redraw(gridID EntityID) error {
	if err := o.Clear(gridID); err != nil {
		return err
	}
	g, ok := o.sto.Grid(gridID)
	if !ok {
		return nil
	}
	grid := *g
	at, _ := o.sto.Translation(gridID)

	width := overlayExtent(grid.Dimensions.X)
	height := overlayExtent(grid.Dimensions.Y)
	if width == 0 || height == 0 {
		return nil
	}
	entities, err := o.sto.NewEntities(int(width)*int(height), Components.Transform, Components.Outline)
	if err != nil {
		return fmt.Errorf("failed to spawn outlines for grid %d: %w", gridID, err)
	}

	size := grid.CellSize.Sub(Vec2{outlineInset, outlineInset})
	ids := make([]EntityID, 0, len(entities))
	i := 0
	for x := range width {
		for y := range height {
			en := entities[i]
			i++
			c := Coordinate{X: x, Y: y}
			*Components.Outline.GetFromEntity(en) = CellOutline{
				Grid:       gridID,
				Coordinate: c,
				Size:       size,
			}
			Components.Transform.GetFromEntity(en).Translation = at.Add(grid.CellOffset(c))
			ids = append(ids, en.ID())
		}
	}
	o.outlines[gridID] = ids
	o.hook(gridID)
	return nil
}

// hook clears grid's outlines as soon as the grid itself is destroyed
func (o *Overlay) hook(gridID EntityID) {
	if o.hooked[gridID] {
		return
	}
	en, err := o.sto.Entity(gridID)
	if err != nil {
		return
	}
	en.AddDestroyCallback(func(Entity) error {
		delete(o.hooked, gridID)
		return o.Clear(gridID)
	})
	o.hooked[gridID] = true
}

// RedrawAll redraws the outlines of every grid in the storage
func (o *Overlay) RedrawAll() error {
	cursor := Factory.NewCursor(Factory.NewQuery().And(Components.Grid), o.sto)
	var grids []EntityID
	for id := range cursor.Entities() {
		grids = append(grids, id)
	}
	for _, grid := range grids {
		if err := o.Redraw(grid); err != nil {
			return err
		}
	}
	return nil
}

// Follow moves grid's outlines along with the grid's current translation
func (o *Overlay) Follow(gridID EntityID) {
	g, ok := o.sto.Grid(gridID)
	if !ok {
		return
	}
	at, ok := o.sto.Translation(gridID)
	if !ok {
		return
	}
	for _, id := range o.outlines[gridID] {
		en, err := o.sto.Entity(id)
		if err != nil {
			continue
		}
		outline := Components.Outline.GetFromEntity(en)
		o.sto.SetTranslation(id, at.Add(g.CellOffset(outline.Coordinate)))
	}
}

// Clear despawns grid's outlines
func (o *Overlay) Clear(gridID EntityID) error {
	ids, ok := o.outlines[gridID]
	if !ok {
		return nil
	}
	entities := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if en, err := o.sto.Entity(id); err == nil {
			entities = append(entities, en)
		}
	}
	if err := o.sto.DestroyEntities(entities...); err != nil {
		return fmt.Errorf("failed to clear outlines for grid %d: %w", gridID, err)
	}
	delete(o.outlines, gridID)
	return nil
}

// apply brings the overlay in line with one pass worth of grid changes. Destroyed grids
// need nothing here; their outlines went with them.
func (o *Overlay) apply(changes ChangeSet) error {
	for _, grid := range changes.Reconfigured {
		if err := o.Redraw(grid); err != nil {
			return err
		}
	}
	for _, grid := range changes.Moved {
		if !slices.Contains(changes.Reconfigured, grid) {
			o.Follow(grid)
		}
	}
	return nil
}
