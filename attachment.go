package lattice

import (
	"slices"
)

// attachments indexes the grid/cell relation in both directions. Both maps are always
// updated together.
type attachments struct {
	gridOf  map[EntityID]EntityID
	cellsOf map[EntityID][]EntityID
}

func newAttachments() attachments {
	return attachments{
		gridOf:  make(map[EntityID]EntityID),
		cellsOf: make(map[EntityID][]EntityID),
	}
}

// attach links cell to grid, moving it off any grid it was previously attached to
func (a *attachments) attach(cell, grid EntityID) {
	if current, ok := a.gridOf[cell]; ok {
		if current == grid {
			return
		}
		a.detach(cell)
	}
	a.gridOf[cell] = grid
	a.cellsOf[grid] = append(a.cellsOf[grid], cell)
}

func (a *attachments) detach(cell EntityID) (EntityID, bool) {
	grid, ok := a.gridOf[cell]
	if !ok {
		return 0, false
	}
	delete(a.gridOf, cell)
	cells := a.cellsOf[grid]
	if i := slices.Index(cells, cell); i >= 0 {
		cells = slices.Delete(cells, i, i+1)
	}
	if len(cells) == 0 {
		delete(a.cellsOf, grid)
	} else {
		a.cellsOf[grid] = cells
	}
	return grid, true
}

// dropGrid orphans every cell of grid and returns them in attach order
func (a *attachments) dropGrid(grid EntityID) []EntityID {
	cells := a.cellsOf[grid]
	for _, cell := range cells {
		delete(a.gridOf, cell)
	}
	delete(a.cellsOf, grid)
	return cells
}

func (a *attachments) grids() []EntityID {
	ids := make([]EntityID, 0, len(a.cellsOf))
	for grid := range a.cellsOf {
		ids = append(ids, grid)
	}
	slices.Sort(ids)
	return ids
}
