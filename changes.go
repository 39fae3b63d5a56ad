package lattice

import "slices"

// changeList is an insertion-ordered set of entity IDs
type changeList struct {
	ids  []EntityID
	seen map[EntityID]struct{}
}

func (l *changeList) add(id EntityID) {
	if l.seen == nil {
		l.seen = make(map[EntityID]struct{})
	}
	if _, ok := l.seen[id]; ok {
		return
	}
	l.seen[id] = struct{}{}
	l.ids = append(l.ids, id)
}

func (l *changeList) reset() {
	l.ids = l.ids[:0]
	clear(l.seen)
}

// changeTracker records grid-level changes between two update passes
type changeTracker struct {
	moved        changeList
	reconfigured changeList
	destroyed    changeList
}

func (t *changeTracker) snapshot() ChangeSet {
	return ChangeSet{
		Moved:        slices.Clone(t.moved.ids),
		Reconfigured: slices.Clone(t.reconfigured.ids),
		Destroyed:    slices.Clone(t.destroyed.ids),
	}
}

func (t *changeTracker) reset() {
	t.moved.reset()
	t.reconfigured.reset()
	t.destroyed.reset()
}

// Resynced lists the grids whose cells need their translations recomputed: moved grids
// first, then reconfigured ones not already listed
func (cs ChangeSet) Resynced() []EntityID {
	ids := slices.Clone(cs.Moved)
	for _, id := range cs.Reconfigured {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Empty reports whether nothing changed
func (cs ChangeSet) Empty() bool {
	return len(cs.Moved) == 0 && len(cs.Reconfigured) == 0 && len(cs.Destroyed) == 0
}
