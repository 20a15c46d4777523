package memory

// collection is an insertion-ordered set of records keyed by name.
// It is not safe for concurrent use; CatalogStore serialises access.
type collection[T any] struct {
	items []T
	index map[string]int // name -> position in items
	name  func(T) string
}

func newCollection[T any](name func(T) string) *collection[T] {
	return &collection[T]{
		index: make(map[string]int),
		name:  name,
	}
}

func (c *collection[T]) has(name string) bool {
	_, ok := c.index[name]
	return ok
}

func (c *collection[T]) get(name string) (T, bool) {
	i, ok := c.index[name]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// add appends v. The caller has checked that its name is free.
func (c *collection[T]) add(v T) {
	c.index[c.name(v)] = len(c.items)
	c.items = append(c.items, v)
}

// replace swaps the record stored under name for v, keeping its position.
// v may carry a different name; the caller has checked that it is free.
func (c *collection[T]) replace(name string, v T) {
	i := c.index[name]
	delete(c.index, name)
	c.items[i] = v
	c.index[c.name(v)] = i
}

func (c *collection[T]) remove(name string) {
	i := c.index[name]
	delete(c.index, name)
	c.items = append(c.items[:i], c.items[i+1:]...)
	for j := i; j < len(c.items); j++ {
		c.index[c.name(c.items[j])] = j
	}
}

func (c *collection[T]) len() int {
	return len(c.items)
}

// all returns a copy of the records, mapped through clone.
func (c *collection[T]) all(clone func(T) T) []T {
	out := make([]T, len(c.items))
	for i, v := range c.items {
		out[i] = clone(v)
	}
	return out
}

func (c *collection[T]) clear() {
	c.items = nil
	c.index = make(map[string]int)
}
