package lattice

import (
	"fmt"
)

type operation struct {
	typ      operationType
	amount   int
	comps    []Component
	entities []EntityID
}

type operationType int

const (
	opCreate operationType = iota
	opDestroy
	opAddComponent
	opRemoveComponent
	opCancelled
)

// opQueue holds structural changes requested while the storage is locked
type opQueue struct {
	createOps      []operation
	componentOps   []operation
	destroyOps     []operation
	pendingDestroy map[EntityID]struct{}
	pendingMods    map[EntityID][]int
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDestroy: make(map[EntityID]struct{}),
		pendingMods:    make(map[EntityID][]int),
	}
}

func (q *opQueue) enqueueOp(op operation) {
	switch op.typ {
	case opCreate:
		q.createOps = append(q.createOps, op)
	case opDestroy:
		q.destroyOps = append(q.destroyOps, op)
	case opAddComponent, opRemoveComponent:
		q.componentOps = append(q.componentOps, op)
	}
}

func (q *opQueue) empty() bool {
	return len(q.createOps) == 0 &&
		len(q.componentOps) == 0 &&
		len(q.destroyOps) == 0
}

func (sto *storage) processOperationQueue() error {
	if sto.opQueue.empty() {
		return nil
	}
	q := sto.opQueue
	sto.opQueue = newOpQueue()

	// Process creates first
	for _, op := range q.createOps {
		if _, err := sto.NewEntities(op.amount, op.comps...); err != nil {
			return fmt.Errorf("failed to process queued entity creation: %w", err)
		}
	}

	// Process component modifications
	for _, op := range q.componentOps {
		if op.typ == opCancelled {
			continue
		}
		en, ok := sto.entities[op.entities[0]]
		if !ok {
			continue
		}
		switch op.typ {
		case opAddComponent:
			if err := en.AddComponent(op.comps[0]); err != nil {
				return fmt.Errorf("failed to add queued component: %w", err)
			}
		case opRemoveComponent:
			if err := en.RemoveComponent(op.comps[0]); err != nil {
				return fmt.Errorf("failed to remove queued component: %w", err)
			}
		}
	}

	// Process destroys last
	for _, op := range q.destroyOps {
		var entities []Entity
		for _, id := range op.entities {
			if en, ok := sto.entities[id]; ok {
				entities = append(entities, en)
			}
		}
		if len(entities) > 0 {
			if err := sto.DestroyEntities(entities...); err != nil {
				return fmt.Errorf("failed to delete queued entries: %w", err)
			}
		}
	}
	return nil
}

func (q *opQueue) enqueueDestroy(ids []EntityID) {
	// Filter out already queued entities
	var fresh []EntityID
	for _, id := range ids {
		if _, exists := q.pendingDestroy[id]; exists {
			continue
		}
		fresh = append(fresh, id)
		q.pendingDestroy[id] = struct{}{}

		// Component changes on an entity about to be destroyed are pointless
		for _, idx := range q.pendingMods[id] {
			q.componentOps[idx].typ = opCancelled
		}
		delete(q.pendingMods, id)
	}

	if len(fresh) > 0 {
		q.enqueueOp(operation{
			typ:      opDestroy,
			entities: fresh,
		})
	}
}

func (q *opQueue) enqueueComponentOp(typ operationType, id EntityID, comp Component) {
	// If entity is pending destroy, ignore component operations
	if _, isDestroyed := q.pendingDestroy[id]; isDestroyed {
		return
	}
	q.pendingMods[id] = append(q.pendingMods[id], len(q.componentOps))
	q.enqueueOp(operation{
		typ:      typ,
		entities: []EntityID{id},
		comps:    []Component{comp},
	})
}
