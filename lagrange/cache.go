package lagrange

import (
	"sort"
	"sync"
)

// CacheKey identifies a permutation
type CacheKey struct {
	Dim, Order int
}

// Cache memoizes permutations by dimension and order. The zero value is ready
// to use and safe for concurrent use.
type Cache struct {
	mu    sync.Mutex
	perms map[CacheKey]*Permutation
}

func NewCache() *Cache {
	return &Cache{perms: make(map[CacheKey]*Permutation)}
}

// Get returns the permutation for (dim, order), building and validating it on
// first use. Callers must not modify the returned permutation.
func (c *Cache) Get(dim, order int) (p *Permutation, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := CacheKey{Dim: dim, Order: order}
	if p = c.perms[key]; p != nil {
		return
	}
	if p, err = NewPermutation(dim, order); err != nil {
		return nil, err
	}
	if err = p.Validate(); err != nil {
		return nil, err
	}
	if c.perms == nil {
		c.perms = make(map[CacheKey]*Permutation)
	}
	c.perms[key] = p
	return
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.perms)
}

// Keys lists the cached entries sorted by dimension then order
func (c *Cache) Keys() (keys []CacheKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.perms {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Dim != keys[j].Dim {
			return keys[i].Dim < keys[j].Dim
		}
		return keys[i].Order < keys[j].Order
	})
	return
}
