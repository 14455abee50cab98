package server

import (
	"sync"

	"github.com/zephyrtronium/gvalop"
)

// cache holds parsed trees by expression text. Trees are never modified by
// evaluation, so a cached tree may be shared by concurrent requests. When
// full, the oldest entry is evicted.
type cache[T any] struct {
	mu    sync.Mutex
	max   int
	trees map[string]*gvalop.Group[T]
	order []string
}

func newCache[T any](max int) *cache[T] {
	return &cache[T]{max: max, trees: make(map[string]*gvalop.Group[T], max)}
}

func (c *cache[T]) get(expr string) (*gvalop.Group[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.trees[expr]
	return g, ok
}

// put adds a tree and returns the number of cached trees.
func (c *cache[T]) put(expr string, g *gvalop.Group[T]) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.max <= 0 {
		return 0
	}
	if _, ok := c.trees[expr]; ok {
		return len(c.trees)
	}
	if len(c.order) >= c.max {
		delete(c.trees, c.order[0])
		c.order = c.order[1:]
	}
	c.trees[expr] = g
	c.order = append(c.order, expr)
	return len(c.trees)
}
