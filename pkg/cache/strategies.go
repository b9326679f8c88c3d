package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"emphub/pkg/circuitbreaker"
	"emphub/pkg/logger"
	"emphub/pkg/metrics"
)

const (
	EmployeePrefix    = "employee"
	EmployeeByIDKey   = "employee:id:%s"
	DefaultExpiration = 5 * time.Minute
)

// EmployeeCacheKey normalizes id so hex case variants share one entry.
func EmployeeCacheKey(id string) string {
	return fmt.Sprintf(EmployeeByIDKey, strings.ToLower(id))
}

// Manager wraps a Cache with read-through and invalidation helpers. Cache
// failures are logged and swallowed; only the source's errors reach callers.
type Manager struct {
	cache   Cache
	breaker *circuitbreaker.CircuitBreaker
	logger  logger.Logger
}

func NewManager(cache Cache, logger logger.Logger) *Manager {
	return &Manager{
		cache:  cache,
		logger: logger,
		breaker: circuitbreaker.New(circuitbreaker.Settings{
			Name:        "cache",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrCacheMiss)
			},
			OnStateChange: func(name string, from, to circuitbreaker.State) {
				logger.Warn("Circuit breaker state changed", map[string]interface{}{
					"name": name,
					"from": from.String(),
					"to":   to.String(),
				})
			},
		}),
	}
}

// ReadThrough fills dest from the cache, or from fetch on a miss and stores
// the result. fetch must return a value of dest's element type.
func (m *Manager) ReadThrough(ctx context.Context, key string, dest interface{}, fetch func() (interface{}, error), expiration time.Duration) error {
	err := m.breaker.Execute(func() error {
		return m.cache.Get(ctx, key, dest)
	})
	if err == nil {
		metrics.RecordCacheHit()
		return nil
	}
	metrics.RecordCacheMiss()
	if !errors.Is(err, ErrCacheMiss) && !errors.Is(err, circuitbreaker.ErrOpen) {
		m.logger.WarnContext(ctx, "Cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	}

	data, err := fetch()
	if err != nil {
		return err
	}

	if err := m.breaker.Execute(func() error {
		return m.cache.Set(ctx, key, data, expiration)
	}); err != nil {
		m.logger.WarnContext(ctx, "Cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}

	return assign(data, dest)
}

// Invalidate removes keys; failures are logged only.
func (m *Manager) Invalidate(ctx context.Context, keys ...string) {
	if err := m.breaker.Execute(func() error {
		return m.cache.Delete(ctx, keys...)
	}); err != nil {
		m.logger.WarnContext(ctx, "Cache invalidation failed", map[string]interface{}{"keys": keys, "error": err.Error()})
	}
}

func (m *Manager) Ping(ctx context.Context) error {
	return m.cache.Ping(ctx)
}

func (m *Manager) BreakerState() circuitbreaker.State {
	return m.breaker.State()
}

func assign(src, dest interface{}) error {
	if d, ok := dest.(*interface{}); ok {
		*d = src
		return nil
	}
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
