package services

import (
	"container/list"
	"fmt"
	"sync"
	"time"

	"stunden/internal/core"
)

// summaryCache is an LRU cache of monthly summaries keyed by year and
// month, with TTL and size-based eviction. Upserts invalidate the
// affected month; settings replacements flush everything, since the
// contract feeds into every month's expected hours.
type summaryCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type summaryItem struct {
	key       string
	summary   core.MonthSummary
	expiresAt time.Time
}

func newSummaryCache(maxSize int, ttl time.Duration) *summaryCache {
	return &summaryCache{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func monthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

func (c *summaryCache) get(year int, month time.Month) (core.MonthSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.items[monthKey(year, month)]
	if !exists {
		return core.MonthSummary{}, false
	}

	item := elem.Value.(*summaryItem)
	if time.Now().After(item.expiresAt) {
		c.removeElement(elem)
		return core.MonthSummary{}, false
	}

	c.lru.MoveToFront(elem)
	return item.summary, true
}

func (c *summaryCache) set(year int, month time.Month, summary core.MonthSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := monthKey(year, month)
	item := &summaryItem{
		key:       key,
		summary:   summary,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	c.items[key] = c.lru.PushFront(item)

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *summaryCache) invalidate(year int, month time.Month) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.items[monthKey(year, month)]; exists {
		c.removeElement(elem)
	}
}

func (c *summaryCache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.lru.Init()
}

func (c *summaryCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *summaryCache) removeElement(elem *list.Element) {
	item := elem.Value.(*summaryItem)
	delete(c.items, item.key)
	c.lru.Remove(elem)
}
