package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/storage/memory/v2"
)

// LimiterStore holds the hit counters of every rate limiter in the process.
// Expired counters are swept every GC interval.
type LimiterStore struct {
	*memory.Storage
	once sync.Once
}

func NewLimiterStore(gcInterval time.Duration) *LimiterStore {
	return &LimiterStore{
		Storage: memory.New(memory.Config{GCInterval: gcInterval}),
	}
}

// Close stops the sweeper; calls after the first are no-ops.
func (s *LimiterStore) Close() error {
	var err error
	s.once.Do(func() { err = s.Storage.Close() })
	return err
}
