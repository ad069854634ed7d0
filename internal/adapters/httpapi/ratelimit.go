package httpapi

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/time/rate"
)

// shardCount stripes the client table to keep lock contention off the hot
// path. Power of two so the modulo compiles to a mask.
const shardCount = 16

// ClientLimiter applies a per-client token bucket. Clients are striped across
// shards by xxhash of their key.
type ClientLimiter struct {
	shards [shardCount]limiterShard
	limit  rate.Limit
	burst  int
}

type limiterShard struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
}

// NewClientLimiter builds a limiter allowing perMinute requests per client,
// with a burst of the full minute budget.
func NewClientLimiter(perMinute int) *ClientLimiter {
	l := &ClientLimiter{
		limit: rate.Limit(float64(perMinute) / 60.0),
		burst: perMinute,
	}
	for i := range l.shards {
		l.shards[i].clients = make(map[string]*rate.Limiter)
	}
	return l
}

// Allow reports whether the client may proceed, consuming one token.
func (l *ClientLimiter) Allow(client string) bool {
	shard := &l.shards[xxhash.Sum64String(client)%shardCount]

	shard.mu.Lock()
	lim, ok := shard.clients[client]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		shard.clients[client] = lim
	}
	shard.mu.Unlock()

	return lim.Allow()
}
