package domain

import (
	"context"
	"errors"
	"fmt"
)

// Category is a node of the taxonomy. Roots have no parent.
type Category struct {
	ID       uint   `json:"id" gorm:"column:category_id;primaryKey"`
	Name     string `json:"name" gorm:"not null"`
	ParentID *uint  `json:"parentId,omitempty" gorm:"index"`
}

func (Category) TableName() string {
	return "category"
}

// CategoryRepository is read-only to the catalog.
type CategoryRepository interface {
	FindByID(ctx context.Context, id uint) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
}

// ErrCategoryCycle and ErrCategoryTooDeep stop a path walk early.
var (
	ErrCategoryCycle   = errors.New("category parent chain contains a cycle")
	ErrCategoryTooDeep = errors.New("category parent chain exceeds max depth")
)

// CategoryLookup resolves one category by id.
type CategoryLookup func(id uint) (*Category, error)

// ResolveCategoryPath walks from start up to a root and returns the names
// ordered root first. The walk is bounded by maxDepth and by a visited set;
// on a lookup miss, a cycle or the depth cap it returns the partial path
// collected so far together with the reason.
func ResolveCategoryPath(start uint, maxDepth int, lookup CategoryLookup) ([]string, error) {
	path := []string{}
	if start == 0 {
		return path, nil
	}

	visited := make(map[uint]struct{})
	id := start
	for depth := 0; ; depth++ {
		if depth >= maxDepth {
			return path, fmt.Errorf("%w: %d", ErrCategoryTooDeep, maxDepth)
		}
		if _, seen := visited[id]; seen {
			return path, fmt.Errorf("%w at category %d", ErrCategoryCycle, id)
		}
		visited[id] = struct{}{}

		category, err := lookup(id)
		if err != nil {
			return path, err
		}
		path = append([]string{category.Name}, path...)

		if category.ParentID == nil || *category.ParentID == 0 {
			return path, nil
		}
		id = *category.ParentID
	}
}

// CategoryArena is a flat id-indexed table of categories.
type CategoryArena map[uint]Category

func NewCategoryArena(categories []Category) CategoryArena {
	arena := make(CategoryArena, len(categories))
	for _, c := range categories {
		arena[c.ID] = c
	}
	return arena
}

// Lookup implements CategoryLookup over the arena.
func (a CategoryArena) Lookup(id uint) (*Category, error) {
	c, ok := a[id]
	if !ok {
		return nil, NewNotFoundError("category", id)
	}
	return &c, nil
}

// Path resolves a category path without touching the store.
func (a CategoryArena) Path(id uint, maxDepth int) ([]string, error) {
	return ResolveCategoryPath(id, maxDepth, a.Lookup)
}

// CategoryNode is a root of the two-level hierarchy.
type CategoryNode struct {
	ID       uint           `json:"id"`
	Name     string         `json:"name"`
	Children []CategoryLeaf `json:"children"`
}

type CategoryLeaf struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Hierarchy returns the roots, each with its direct children, in the
// order the categories were listed.
func Hierarchy(categories []Category) []CategoryNode {
	roots := []CategoryNode{}
	index := make(map[uint]int)
	for _, c := range categories {
		if c.ParentID == nil || *c.ParentID == 0 {
			index[c.ID] = len(roots)
			roots = append(roots, CategoryNode{ID: c.ID, Name: c.Name, Children: []CategoryLeaf{}})
		}
	}
	for _, c := range categories {
		if c.ParentID == nil {
			continue
		}
		if i, ok := index[*c.ParentID]; ok {
			roots[i].Children = append(roots[i].Children, CategoryLeaf{ID: c.ID, Name: c.Name})
		}
	}
	return roots
}
