package lattice

import (
	"iter"
)

var _ iCursor = &Cursor{}

func newCursor(query QueryNode, storage Storage) *Cursor {
	return &Cursor{
		query:   query,
		storage: storage,
	}
}

// Next advances to the next matching entity. The storage stays locked from the first
// call until Next returns false or Reset is called, so structural changes made while
// iterating must go through the Enqueue variants.
func (c *Cursor) Next() bool {
	if !c.initialized {
		c.initialize()
	}
	for c.storageIndex < len(c.matchedStorages) {
		c.currentArchetype = c.matchedStorages[c.storageIndex]
		c.remaining = c.currentArchetype.table.Length()

		if c.entityIndex < c.remaining {
			c.entityIndex++
			return true
		}
		c.storageIndex++
		c.entityIndex = 0
	}
	c.Reset()
	return false
}

// Entities iterates the IDs of all matching entities
func (c *Cursor) Entities() iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		for c.Next() {
			if !yield(c.EntityID()) {
				c.Reset()
				return
			}
		}
	}
}

// EntityID returns the ID of the entity at the cursor position
func (c *Cursor) EntityID() EntityID {
	return handleComponent.GetFromCursor(c).id
}

func (c *Cursor) initialize() {
	if c.initialized {
		return
	}
	c.matchedStorages = c.match()
	c.storage.Lock()
	c.holdsLock = true
	c.initialized = true
}

func (c *Cursor) match() []archetype {
	matched := make([]archetype, 0)
	for _, arch := range c.storage.(*storage).archetypes.asSlice {
		if c.query.Evaluate(arch, c.storage) {
			matched = append(matched, arch)
		}
	}
	return matched
}

// Reset rewinds the cursor and releases its storage lock, running any operations queued
// during iteration
func (c *Cursor) Reset() {
	c.storageIndex = 0
	c.entityIndex = 0
	c.remaining = 0
	c.matchedStorages = nil
	c.initialized = false
	if c.holdsLock {
		c.holdsLock = false
		c.storage.Unlock()
	}
}

func (c *Cursor) RemainingInArchetype() int {
	return c.remaining - c.entityIndex
}

// TotalMatched counts matching entities without starting an iteration
func (c *Cursor) TotalMatched() int {
	total := 0
	for _, arch := range c.match() {
		total += arch.table.Length()
	}
	return total
}
