package lattice

import (
	"errors"
	"fmt"
	"testing"
)

// TestCacheBasicOperations tests registering and reading back grids
func TestCacheBasicOperations(t *testing.T) {
	const capacity = 10
	cache := FactoryNewCache[Grid](capacity)

	keys := []string{"board", "inventory", "hotbar"}
	grids := []Grid{
		standardGrid(Dimensions{X: BoundedTo(8), Y: BoundedTo(8)}),
		{CellSize: Vec2{16, 16}, Dimensions: Dimensions{X: BoundedTo(9), Y: BoundedTo(4)}},
		{CellSize: Vec2{24, 24}, CellGap: Vec2{4, 0}, Dimensions: Dimensions{X: BoundedTo(10), Y: BoundedTo(1)}},
	}
	indices := make([]int, len(keys))

	for i, key := range keys {
		index, err := cache.Register(key, grids[i])
		if err != nil {
			t.Errorf("Failed to register grid %s: %v", key, err)
		}
		indices[i] = index

		// Indices start at 0 and increment
		if index != i {
			t.Errorf("Index for grid %s is %d, expected %d", key, index, i)
		}
	}

	for i, key := range keys {
		index, found := cache.GetIndex(key)
		if !found {
			t.Errorf("Grid %s not found in cache", key)
		}
		if index != indices[i] {
			t.Errorf("Index for grid %s is %d, expected %d", key, index, indices[i])
		}
		if got := *cache.GetItem(index); got != grids[i] {
			t.Errorf("Grid at index %d is %+v, expected %+v", index, got, grids[i])
		}
		if got := *cache.GetItem32(uint32(index)); got != grids[i] {
			t.Errorf("Grid at index %d is %+v, expected %+v", index, got, grids[i])
		}
		if got, ok := cache.Lookup(key); !ok || *got != grids[i] {
			t.Errorf("Lookup(%s) = %+v, %v", key, got, ok)
		}
	}

	if _, found := cache.GetIndex("nonexistent"); found {
		t.Errorf("Found non-existent grid in cache")
	}
	if _, found := cache.Lookup("nonexistent"); found {
		t.Errorf("Lookup found non-existent grid in cache")
	}
	if cache.Len() != len(keys) {
		t.Errorf("Len() = %d, expected %d", cache.Len(), len(keys))
	}
}

// TestCacheCapacity tests the cache capacity limits
func TestCacheCapacity(t *testing.T) {
	const capacity = 5
	cache := FactoryNewCache[int](capacity)

	for i := range capacity {
		key := fmt.Sprintf("item%d", i)
		if _, err := cache.Register(key, i); err != nil {
			t.Errorf("Failed to register item %s: %v", key, err)
		}
	}

	_, err := cache.Register("overflow", 100)
	var capErr CacheCapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("Expected CacheCapacityError when exceeding capacity, got %v", err)
	}
	if capErr.Capacity != capacity {
		t.Errorf("CacheCapacityError.Capacity = %d, expected %d", capErr.Capacity, capacity)
	}

	// Replacing an existing key still works when full
	index, err := cache.Register("item2", 42)
	if err != nil {
		t.Fatalf("Failed to replace item at capacity: %v", err)
	}
	if index != 2 || *cache.GetItem(index) != 42 {
		t.Errorf("Replaced item at index %d is %d, expected 42 at 2", index, *cache.GetItem(index))
	}
	if cache.Len() != capacity {
		t.Errorf("Len() = %d after replace, expected %d", cache.Len(), capacity)
	}
}

// TestCacheClear tests the cache clear functionality
func TestCacheClear(t *testing.T) {
	cache := FactoryNewCache[string](10).(*SimpleCache[string])

	items := []string{"item1", "item2", "item3"}
	for _, item := range items {
		if _, err := cache.Register(item, item); err != nil {
			t.Errorf("Failed to register item %s: %v", item, err)
		}
	}

	cache.Clear()

	for _, item := range items {
		if _, found := cache.GetIndex(item); found {
			t.Errorf("Item %s still found after cache clear", item)
		}
	}
	if cache.Len() != 0 {
		t.Errorf("Len() = %d after clear", cache.Len())
	}

	// Indices restart after a clear
	for i, item := range items {
		index, err := cache.Register(item, item)
		if err != nil {
			t.Errorf("Failed to register item %s after clear: %v", item, err)
		}
		if index != i {
			t.Errorf("Index for item %s after clear is %d, expected %d", item, index, i)
		}
	}
}
