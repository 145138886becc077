// Package cache holds derived per-selection results so repeated requests for
// the same months skip recomputation. Entries never go stale against the
// dataset, which is immutable; the TTL only bounds memory held by rarely
// requested selections.
package cache

import (
	"context"
	"time"

	"salesdash/internal/log"
)

// Cache is the lookup surface used by request handlers.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	GetOrCompute(key string, compute func() (T, error)) (T, error)
	Delete(key string)
	Size() int
}

// Stats is a point-in-time view of cache effectiveness.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Size   int    `json:"size"`
}

// Cleaner is implemented by caches that can drop expired entries.
type Cleaner interface {
	CleanExpired() int
}

// Manager periodically cleans registered caches.
type Manager struct {
	caches []Cleaner
	logger *log.Logger
}

func NewManager(logger *log.Logger) *Manager {
	return &Manager{logger: logger.WithComponent(log.ComponentCache)}
}

// Register adds c to the set of caches cleaned on every tick.
func (m *Manager) Register(c Cleaner) {
	m.caches = append(m.caches, c)
}

// Run cleans every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.CleanAll(); n > 0 {
				m.logger.DebugContext(ctx, "Expired cache entries removed",
					log.FieldCount, n,
					log.FieldOperation, log.OpCleanup)
			}
		case <-ctx.Done():
			return
		}
	}
}

// CleanAll cleans every registered cache once and returns the total removed.
func (m *Manager) CleanAll() int {
	total := 0
	for _, c := range m.caches {
		total += c.CleanExpired()
	}
	return total
}
