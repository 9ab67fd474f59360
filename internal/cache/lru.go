// Package cache provides the bounded LRU cache fldraw uses for text
// measurements.
package cache

import "sync"

// Cache is a thread-safe LRU cache holding at most Capacity entries.
// The zero value is not usable; call New.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*node[K, V]
	head     *node[K, V] // most recently used
	tail     *node[K, V] // least recently used
	capacity int

	hits, misses, evictions uint64
}

type node[K comparable, V any] struct {
	key        K
	value      V
	prev, next *node[K, V]
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// New returns a cache bounded to capacity entries. capacity <= 0 means 256.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = 256
	}
	return &Cache[K, V]{
		entries:  make(map[K]*node[K, V], capacity),
		capacity: capacity,
	}
}

// Get returns the value stored for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.moveToFront(n)
	return n.value, true
}

// Put stores value for key, evicting the least recently used entry when
// the cache is full.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n, ok := c.entries[key]; ok {
		n.value = value
		c.moveToFront(n)
		return
	}
	n := &node[K, V]{key: key, value: value}
	c.entries[key] = n
	c.pushFront(n)
	if len(c.entries) > c.capacity {
		old := c.tail
		c.unlink(old)
		delete(c.entries, old.key)
		c.evictions++
	}
}

// GetOrCreate returns the cached value for key, storing the result of
// create on a miss. create runs without the lock held, so two goroutines
// missing at once may both call it; the later Put wins.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := create()
	c.Put(key, v)
	return v
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.entries[key]
	if !ok {
		return false
	}
	c.unlink(n)
	delete(c.entries, key)
	return true
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Len:       len(c.entries),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// Clear removes every entry. Counters are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*node[K, V], c.capacity)
	c.head, c.tail = nil, nil
}

func (c *Cache[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *Cache[K, V]) moveToFront(n *node[K, V]) {
	if c.head == n {
		return
	}
	c.unlink(n)
	c.pushFront(n)
}

func (c *Cache[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
