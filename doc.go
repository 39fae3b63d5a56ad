/*
Package lattice keeps grid-aligned entities ("cells") in sync with the grids they are attached to.

A grid maps integer coordinates to world positions: cell (x, y) sits at
(x, y) * (CellSize + CellGap) + Offset relative to the grid's own translation. Cells store
a coordinate; their translation is derived from it. Moving a grid drags every attached
cell along, and moving a cell by hand can be snapped back onto the lattice.

Core Concepts:

  - Grid: a component holding cell size, gap, offset and optional per-axis bounds.
  - GridCell: a component holding a lattice coordinate.
  - Attachment: the many-to-one link from cells to a grid, kept in attach order.
  - Synchronizer: runs position syncs, snaps and grid-move propagation.
  - SnapPolicy: Clamp always lands somewhere on the grid, Reject refuses positions off it.

Entities live in an archetype storage built on the same table and mask machinery as the
Bappa ECS. Translation writes that move a grid are recorded and picked up by the next
Synchronizer.Update.

Basic Usage:

	schema := table.Factory.NewSchema()
	storage := lattice.Factory.NewStorage(schema)
	sync := lattice.Factory.NewSynchronizer(storage)

	grid, _ := storage.NewGrid(lattice.Grid{
		CellSize: lattice.Vec2{X: 32, Y: 32},
		CellGap:  lattice.Vec2{X: 2, Y: 2},
	}, lattice.Vec3{})

	cell, _ := storage.NewCell(lattice.Coordinate{}, lattice.Vec3{X: 70, Z: 5})
	storage.Attach(cell.ID(), grid.ID())

	// Drop the cell wherever it was dragged to
	sync.Snap(cell.ID(), lattice.Clamp) // coordinate (2,0), translation (68,0,5)

	// Move the grid; the cell follows on the next update
	storage.SetTranslation(grid.ID(), lattice.Vec3{X: 100})
	sync.Update()

Nothing in the synchronization path returns an error. A request for a cell that is gone,
unattached or attached to a missing grid does nothing.
*/
package lattice
