// Package cache holds the local, optimistic copy of remote collections.
//
// A Collection keeps items in insertion order and never holds two items with
// the same key. Callers take a Snapshot before an optimistic write and Restore
// it if the remote write fails, or Insert a single removed item back in place.
package cache

// Keyed is implemented by anything stored in a Collection.
type Keyed interface {
	Key() string
}

// Collection is an ordered set of items keyed by Key(). It is not safe for
// concurrent use; owners guard it with their own lock.
type Collection[T Keyed] struct {
	items []T
	index map[string]int
}

// Snapshot is an immutable copy of a Collection's contents.
type Snapshot[T Keyed] struct {
	items []T
}

// New returns a Collection seeded with items, dropping later duplicates.
func New[T Keyed](items ...T) *Collection[T] {
	c := &Collection[T]{}
	c.Replace(items)
	return c
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Items returns a copy of the items in order.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Has reports whether key is present.
func (c *Collection[T]) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}

// Get returns the item stored under key.
func (c *Collection[T]) Get(key string) (T, bool) {
	i, ok := c.index[key]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// Last returns the final item in order.
func (c *Collection[T]) Last() (T, bool) {
	if len(c.items) == 0 {
		var zero T
		return zero, false
	}
	return c.items[len(c.items)-1], true
}

// Replace discards the current contents and loads items, dropping later duplicates.
func (c *Collection[T]) Replace(items []T) {
	c.items = make([]T, 0, len(items))
	c.index = make(map[string]int, len(items))
	c.Merge(items)
}

// Merge appends every item whose key is not yet present and returns how many were added.
func (c *Collection[T]) Merge(items []T) int {
	added := 0
	for _, item := range items {
		if c.Append(item) {
			added++
		}
	}
	return added
}

// Append adds item at the end unless its key is already present.
func (c *Collection[T]) Append(item T) bool {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	key := item.Key()
	if _, ok := c.index[key]; ok {
		return false
	}
	c.index[key] = len(c.items)
	c.items = append(c.items, item)
	return true
}

// Update applies fn to the item under key in place. The key must not change.
func (c *Collection[T]) Update(key string, fn func(T) T) bool {
	i, ok := c.index[key]
	if !ok {
		return false
	}
	c.items[i] = fn(c.items[i])
	return true
}

// Remove deletes the item under key and returns it.
func (c *Collection[T]) Remove(key string) (T, bool) {
	i, ok := c.index[key]
	if !ok {
		var zero T
		return zero, false
	}
	removed := c.items[i]
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	delete(c.index, key)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].Key()] = j
	}
	return removed, true
}

// IndexOf returns the position of the item under key.
func (c *Collection[T]) IndexOf(key string) (int, bool) {
	i, ok := c.index[key]
	return i, ok
}

// Insert places item at position i, clamped to the current bounds, unless its
// key is already present.
func (c *Collection[T]) Insert(i int, item T) bool {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	key := item.Key()
	if _, ok := c.index[key]; ok {
		return false
	}
	i = max(0, min(i, len(c.items)))
	c.items = append(c.items, item)
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = item
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].Key()] = j
	}
	return true
}

// Reset empties the collection.
func (c *Collection[T]) Reset() {
	c.Replace(nil)
}

// Snapshot captures the current contents.
func (c *Collection[T]) Snapshot() Snapshot[T] {
	return Snapshot[T]{items: c.Items()}
}

// Restore replaces the contents with a previously taken snapshot.
func (c *Collection[T]) Restore(s Snapshot[T]) {
	c.Replace(s.items)
}

// MaxBy returns the item for which less reports every other item as smaller.
// Ties keep the later item.
func MaxBy[T Keyed](c *Collection[T], less func(a, b T) bool) (T, bool) {
	var best T
	if c.Len() == 0 {
		return best, false
	}
	best = c.items[0]
	for _, item := range c.items[1:] {
		if !less(item, best) {
			best = item
		}
	}
	return best, true
}
