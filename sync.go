package lattice

// Synchronizer keeps cell translations consistent with their coordinates and grids.
//
// Every operation tolerates missing data: a cell that does not exist, is not attached, or
// whose grid is gone is simply left alone. Operations run to completion in the calling
// goroutine; the only nesting is a snap issuing one position sync.
type Synchronizer struct {
	world   World
	queue   requestQueue
	overlay *Overlay
}

func newSynchronizer(world World) *Synchronizer {
	return &Synchronizer{world: world}
}

// SetOverlay installs a debug overlay maintained by Update. Pass nil to remove it.
func (s *Synchronizer) SetOverlay(o *Overlay) {
	s.overlay = o
}

// resolve gathers everything a cell operation needs
func (s *Synchronizer) resolve(cellID EntityID) (cell *GridCell, grid *Grid, gridAt, cellAt Vec3, ok bool) {
	cell, ok = s.world.Cell(cellID)
	if !ok {
		return
	}
	gridID, ok := s.world.GridOf(cellID)
	if !ok {
		return
	}
	grid, ok = s.world.Grid(gridID)
	if !ok {
		return
	}
	gridAt, ok = s.world.Translation(gridID)
	if !ok {
		return
	}
	cellAt, ok = s.world.Translation(cellID)
	return
}

// SyncPosition recomputes a cell's translation from its coordinate. The cell keeps its
// own z; x and y become the grid's translation plus the cell offset.
func (s *Synchronizer) SyncPosition(cellID EntityID) {
	cell, grid, gridAt, cellAt, ok := s.resolve(cellID)
	if !ok {
		return
	}
	s.world.SetTranslation(cellID, gridAt.WithZ(cellAt.Z).Add(grid.CellOffset(cell.Coordinate)))
}

// Snap derives a coordinate from the cell's current translation under policy, stores it
// and resyncs the cell's translation. When the cell cannot be resolved, or policy is
// Reject and the translation is off the grid, nothing changes and ok is false.
func (s *Synchronizer) Snap(cellID EntityID, policy SnapPolicy) (Coordinate, bool) {
	cell, grid, gridAt, cellAt, ok := s.resolve(cellID)
	if !ok {
		return Coordinate{}, false
	}
	coordinate, ok := grid.DeriveCoordinate(gridAt, cellAt, policy)
	if !ok {
		return Coordinate{}, false
	}
	cell.Coordinate = coordinate
	s.SyncPosition(cellID)
	return coordinate, true
}

// GridMoved resyncs every cell attached to grid, in attach order
func (s *Synchronizer) GridMoved(grid EntityID) {
	for _, cell := range s.world.CellsOf(grid) {
		s.SyncPosition(cell)
	}
}

// SyncAll resyncs every attached cell of every grid
func (s *Synchronizer) SyncAll() {
	for _, grid := range s.world.Grids() {
		s.GridMoved(grid)
	}
}

func (s *Synchronizer) RequestPositionSync(cell EntityID) {
	s.queue.push(request{typ: requestPositionSync, target: cell})
}

func (s *Synchronizer) RequestSnap(cell EntityID, policy SnapPolicy) {
	s.queue.push(request{typ: requestSnap, target: cell, policy: policy})
}

func (s *Synchronizer) RequestGridMoved(grid EntityID) {
	s.queue.push(request{typ: requestGridMoved, target: grid})
}

// Pending reports the number of queued requests
func (s *Synchronizer) Pending() int {
	return s.queue.size()
}

// Flush runs queued requests in the order they were made
func (s *Synchronizer) Flush() {
	for i := 0; i < s.queue.size(); i++ {
		req := s.queue.pending[i]
		switch req.typ {
		case requestPositionSync:
			s.SyncPosition(req.target)
		case requestSnap:
			s.Snap(req.target, req.policy)
		case requestGridMoved:
			s.GridMoved(req.target)
		}
	}
	s.queue.reset()
}

// Update runs one pass: grids moved or reconfigured since the previous pass have their
// cells resynced, queued requests are flushed, and the overlay (if any) catches up.
// Errors come only from the overlay.
func (s *Synchronizer) Update() error {
	changes := s.world.Changes()
	s.world.ClearChanges()

	for _, grid := range changes.Resynced() {
		s.GridMoved(grid)
	}
	s.Flush()

	if s.overlay == nil {
		return nil
	}
	return s.overlay.apply(changes)
}
