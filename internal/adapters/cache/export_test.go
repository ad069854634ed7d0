package cache

import "time"

// SetNowFunc swaps the cache's clock. Test hook.
func (c *Cache[V]) SetNowFunc(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
