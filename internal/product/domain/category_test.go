package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func chainArena() CategoryArena {
	// A -> B -> C, C is the root.
	return NewCategoryArena([]Category{
		{ID: 3, Name: "C"},
		{ID: 2, Name: "B", ParentID: uintPtr(3)},
		{ID: 1, Name: "A", ParentID: uintPtr(2)},
	})
}

func TestPathRootFirst(t *testing.T) {
	path, err := chainArena().Path(1, 32)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, path)
}

func TestPathStopsAtMissingParent(t *testing.T) {
	arena := NewCategoryArena([]Category{
		{ID: 1, Name: "A", ParentID: uintPtr(99)},
	})

	path, err := arena.Path(1, 32)
	assert.True(t, IsNotFoundError(err))
	assert.Equal(t, []string{"A"}, path)
}

func TestPathMissingStartIsEmpty(t *testing.T) {
	path, err := chainArena().Path(42, 32)
	assert.Error(t, err)
	assert.Empty(t, path)

	path, err = chainArena().Path(0, 32)
	assert.NoError(t, err)
	assert.Empty(t, path)
}

func TestPathCycleIsBounded(t *testing.T) {
	arena := NewCategoryArena([]Category{
		{ID: 1, Name: "A", ParentID: uintPtr(2)},
		{ID: 2, Name: "B", ParentID: uintPtr(1)},
	})

	path, err := arena.Path(1, 32)
	assert.True(t, errors.Is(err, ErrCategoryCycle))
	assert.Equal(t, []string{"B", "A"}, path)
}

func TestPathDepthCap(t *testing.T) {
	path, err := chainArena().Path(1, 2)
	assert.True(t, errors.Is(err, ErrCategoryTooDeep))
	assert.Equal(t, []string{"B", "A"}, path)
}

func TestHierarchy(t *testing.T) {
	nodes := Hierarchy([]Category{
		{ID: 1, Name: "Fashion"},
		{ID: 2, Name: "Digital"},
		{ID: 3, Name: "Shirts", ParentID: uintPtr(1)},
		{ID: 4, Name: "Laptops", ParentID: uintPtr(2)},
		{ID: 5, Name: "Dress shirts", ParentID: uintPtr(3)},
	})

	require.Len(t, nodes, 2)
	assert.Equal(t, "Fashion", nodes[0].Name)
	assert.Equal(t, []CategoryLeaf{{ID: 3, Name: "Shirts"}}, nodes[0].Children)
	assert.Equal(t, []CategoryLeaf{{ID: 4, Name: "Laptops"}}, nodes[1].Children)
}
