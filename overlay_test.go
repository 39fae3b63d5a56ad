package lattice

import (
	"testing"
)

func outlineAt(t *testing.T, sto Storage, id EntityID) (CellOutline, Vec3) {
	t.Helper()
	en, err := sto.Entity(id)
	if err != nil {
		t.Fatalf("Outline %d missing: %v", id, err)
	}
	return *Components.Outline.GetFromEntity(en), translationOf(t, sto, id)
}

func TestOverlayRedraw(t *testing.T) {
	sto := newTestStorage()
	overlay := Factory.NewOverlay(sto)
	grid, err := sto.NewGrid(standardGrid(Dimensions{X: BoundedTo(3), Y: BoundedTo(2)}), Vec3{10, 0, 1})
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}

	if err := overlay.Redraw(grid.ID()); err != nil {
		t.Fatalf("Redraw() error = %v", err)
	}
	outlines := overlay.Outlines(grid.ID())
	if len(outlines) != 6 {
		t.Fatalf("Redraw() drew %d outlines, want 6", len(outlines))
	}

	want := []Coordinate{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {2, 1}}
	size := Vec2{32 - outlineInset, 32 - outlineInset}
	for i, id := range outlines {
		outline, at := outlineAt(t, sto, id)
		if outline.Grid != grid.ID() || outline.Coordinate != want[i] || outline.Size != size {
			t.Errorf("Outline %d = %+v", i, outline)
		}
		wantAt := Vec3{10 + float64(want[i].X)*34, float64(want[i].Y) * 34, 1}
		if at != wantAt {
			t.Errorf("Outline %d at %v, want %v", i, at, wantAt)
		}
	}

	// Redrawing replaces rather than adds
	if err := overlay.Redraw(grid.ID()); err != nil {
		t.Fatalf("Redraw() error = %v", err)
	}
	if got := overlay.Outlines(grid.ID()); len(got) != 6 {
		t.Errorf("Second Redraw() left %d outlines, want 6", len(got))
	}
	for _, id := range outlines {
		if _, err := sto.Entity(id); err == nil {
			t.Errorf("Old outline %d survived redraw", id)
		}
	}
}

func TestOverlayUnboundedExtent(t *testing.T) {
	defer Config.SetOverlayExtent(Config.OverlayExtent())
	Config.SetOverlayExtent(4)

	sto := newTestStorage()
	overlay := Factory.NewOverlay(sto)
	grid, err := sto.NewGrid(standardGrid(Dimensions{Y: BoundedTo(2)}), Vec3{})
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}
	if err := overlay.Redraw(grid.ID()); err != nil {
		t.Fatalf("Redraw() error = %v", err)
	}
	if got := len(overlay.Outlines(grid.ID())); got != 8 {
		t.Errorf("Redraw() drew %d outlines, want 8", got)
	}

	// A zero-width axis draws nothing
	if err := sto.SetGrid(grid.ID(), standardGrid(Dimensions{X: BoundedTo(0)})); err != nil {
		t.Fatalf("SetGrid() error = %v", err)
	}
	if err := overlay.Redraw(grid.ID()); err != nil {
		t.Fatalf("Redraw() error = %v", err)
	}
	if got := len(overlay.Outlines(grid.ID())); got != 0 {
		t.Errorf("Redraw() drew %d outlines on an empty grid", got)
	}
}

func TestOverlayFollowsUpdates(t *testing.T) {
	sto := newTestStorage()
	sync := Factory.NewSynchronizer(sto)
	overlay := Factory.NewOverlay(sto)
	sync.SetOverlay(overlay)

	grid, err := sto.NewGrid(standardGrid(Dimensions{X: BoundedTo(2), Y: BoundedTo(2)}), Vec3{})
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}

	// New grids are drawn on the next update
	if err := sync.Update(); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	outlines := overlay.Outlines(grid.ID())
	if len(outlines) != 4 {
		t.Fatalf("Update() drew %d outlines, want 4", len(outlines))
	}

	// Moving the grid moves the same outlines
	sto.SetTranslation(grid.ID(), Vec3{100, 50, 0})
	if err := sync.Update(); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	moved := overlay.Outlines(grid.ID())
	if len(moved) != 4 || moved[3] != outlines[3] {
		t.Fatalf("Move replaced outlines: %v -> %v", outlines, moved)
	}
	if outline, at := outlineAt(t, sto, moved[3]); outline.Coordinate != (Coordinate{1, 1}) || at != (Vec3{134, 84, 0}) {
		t.Errorf("Outline %v at %v, want (1,1) at (134,84,0)", outline.Coordinate, at)
	}

	// Reconfiguring redraws
	if err := sto.SetGrid(grid.ID(), standardGrid(Dimensions{X: BoundedTo(1), Y: BoundedTo(3)})); err != nil {
		t.Fatalf("SetGrid() error = %v", err)
	}
	if err := sync.Update(); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := len(overlay.Outlines(grid.ID())); got != 3 {
		t.Errorf("Reconfigured grid has %d outlines, want 3", got)
	}

	// Destroying clears at once, before any update
	redrawn := overlay.Outlines(grid.ID())
	if err := sto.DestroyEntities(grid); err != nil {
		t.Fatalf("Failed to destroy grid: %v", err)
	}
	if got := overlay.Outlines(grid.ID()); len(got) != 0 {
		t.Errorf("Destroyed grid still has outlines %v", got)
	}
	for _, id := range redrawn {
		if _, err := sto.Entity(id); err == nil {
			t.Errorf("Outline %d survived its grid", id)
		}
	}
	if err := sync.Update(); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
}

func TestOverlayRedrawAll(t *testing.T) {
	sto := newTestStorage()
	overlay := Factory.NewOverlay(sto)

	first, err := sto.NewGrid(standardGrid(Dimensions{X: BoundedTo(2), Y: BoundedTo(1)}), Vec3{})
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}
	second, err := sto.NewGrid(standardGrid(Dimensions{X: BoundedTo(3), Y: BoundedTo(3)}), Vec3{0, 200, 0})
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}

	if err := overlay.RedrawAll(); err != nil {
		t.Fatalf("RedrawAll() error = %v", err)
	}
	if got := len(overlay.Outlines(first.ID())); got != 2 {
		t.Errorf("First grid has %d outlines, want 2", got)
	}
	if got := len(overlay.Outlines(second.ID())); got != 9 {
		t.Errorf("Second grid has %d outlines, want 9", got)
	}
	if sto.Locked() {
		t.Errorf("Storage still locked after RedrawAll()")
	}

	// Outlines are not grids; a second pass must not pick them up
	if err := overlay.RedrawAll(); err != nil {
		t.Fatalf("RedrawAll() error = %v", err)
	}
	cursor := Factory.NewCursor(Factory.NewQuery().And(Components.Outline), sto)
	if total := cursor.TotalMatched(); total != 11 {
		t.Errorf("Storage holds %d outlines, want 11", total)
	}
}
