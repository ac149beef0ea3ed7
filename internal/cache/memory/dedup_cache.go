package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/consumer_handler/internal/ports"
	"github.com/Gunvolt24/consumer_handler/pkg/metrics"
)

// Проверка, что DedupCache удовлетворяет интерфейсу MessageCache.
var _ ports.MessageCache = (*DedupCache)(nil)

type entry struct {
	id        string
	expiresAt time.Time
}

// DedupCache — LRU с TTL для идентификаторов обработанных сообщений.
type DedupCache struct {
	capacity int
	ttl      time.Duration

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

// NewDedupCache — capacity <= 0 трактуется как 1; ttl <= 0 — записи не истекают.
func NewDedupCache(capacity int, ttl time.Duration) *DedupCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &DedupCache{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

// Seen — true, если id уже запомнен и не истёк. Попадание продлевает TTL.
func (c *DedupCache) Seen(_ context.Context, id string) bool {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[id]
	if !ok {
		metrics.DedupCacheOps.WithLabelValues("miss").Inc()
		return false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.DedupCacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.DedupCacheSize.Set(float64(len(c.index)))
		return false
	}
	c.ll.MoveToFront(elem)
	ent.expiresAt = c.expiryFrom(now)

	metrics.DedupCacheOps.WithLabelValues("hit").Inc()
	return true
}

// Remember — запоминает id; при переполнении вытесняется самый давний.
func (c *DedupCache) Remember(_ context.Context, id string) {
	if id == "" {
		return
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[id]; ok {
		elem.Value.(*entry).expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return
	}

	c.pruneExpiredFromBack(now)

	c.index[id] = c.ll.PushFront(&entry{id: id, expiresAt: c.expiryFrom(now)})
	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	metrics.DedupCacheSize.Set(float64(len(c.index)))
}

// Len — текущее число записей.
func (c *DedupCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
