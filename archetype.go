package lattice

import (
	"fmt"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

var _ Archetype = archetype{}

type archetypeID uint32

// archetype is one table holding every entity with exactly the same component set
type archetype struct {
	id    archetypeID
	table table.Table
}

func (a archetype) ID() uint32 {
	return uint32(a.id)
}

func (a archetype) Table() table.Table {
	return a.table
}

// archetypes registers archetypes by component mask. IDs start at 1 and index asSlice
// at id-1.
type archetypes struct {
	nextID           archetypeID
	asSlice          []archetype
	idsGroupedByMask map[mask.Mask]archetypeID
}

func newArchetypes() *archetypes {
	return &archetypes{
		nextID:           1,
		idsGroupedByMask: make(map[mask.Mask]archetypeID),
	}
}

// forMask returns the archetype registered for m, building its table from components
// when none exists yet
func (a *archetypes) forMask(schema table.Schema, m mask.Mask, components []Component) (archetype, error) {
	if id, found := a.idsGroupedByMask[m]; found {
		return a.asSlice[id-1], nil
	}
	elementTypes := make([]table.ElementType, len(components))
	for i, comp := range components {
		elementTypes[i] = comp
	}
	tbl, err := table.NewTableBuilder().
		WithSchema(schema).
		WithEntryIndex(mainIndex).
		WithElementTypes(elementTypes...).
		WithEvents(Config.tableEvents).
		Build()
	if err != nil {
		return archetype{}, fmt.Errorf("failed to create archetype: %w", err)
	}
	created := archetype{id: a.nextID, table: tbl}
	a.asSlice = append(a.asSlice, created)
	a.idsGroupedByMask[m] = a.nextID
	a.nextID++
	return created, nil
}
