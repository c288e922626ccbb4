package service

import (
	"context"
	"errors"
	"fmt"

	"eviction-cache/internal/core/ports"
	"eviction-cache/internal/observability"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned by Get when a key is absent. Absence is an expected
// outcome; callers should branch on it with errors.Is rather than treat it as
// a failure.
var ErrNotFound = errors.New("key not found")

// Loader fetches a value from the system of record on a cache miss.
type Loader func(ctx context.Context, key string) (string, error)

// ensure implementation
var _ ports.CacheService = (*ServiceImpl)(nil)

// ServiceImpl instruments a Storage with operation metrics and optional
// load-through on miss.
type ServiceImpl struct {
	store  ports.Storage
	loader Loader
	group  singleflight.Group
}

// Option configures a ServiceImpl.
type Option func(*ServiceImpl)

// WithLoader enables GetOrLoad to fetch missing keys via fn.
func WithLoader(fn Loader) Option {
	return func(s *ServiceImpl) {
		s.loader = fn
	}
}

func New(store ports.Storage, opts ...Option) *ServiceImpl {
	s := &ServiceImpl{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ServiceImpl) Get(ctx context.Context, key string) (string, error) {
	timer := prometheus.NewTimer(observability.CacheDurationSeconds.WithLabelValues("get"))
	defer timer.ObserveDuration()

	val, found := s.store.Get(key)
	if !found {
		observability.CacheMissesTotal.Inc()
		observability.CacheOperationsTotal.WithLabelValues("get", "miss").Inc()
		return "", ErrNotFound
	}
	observability.CacheHitsTotal.Inc()
	observability.CacheOperationsTotal.WithLabelValues("get", "hit").Inc()
	return val, nil
}

func (s *ServiceImpl) Set(ctx context.Context, key, value string) error {
	timer := prometheus.NewTimer(observability.CacheDurationSeconds.WithLabelValues("set"))
	defer timer.ObserveDuration()

	s.store.Put(key, value)
	observability.CacheOperationsTotal.WithLabelValues("set", "success").Inc()
	return nil
}

func (s *ServiceImpl) Delete(ctx context.Context, key string) error {
	timer := prometheus.NewTimer(observability.CacheDurationSeconds.WithLabelValues("delete"))
	defer timer.ObserveDuration()

	s.store.Remove(key)
	observability.CacheOperationsTotal.WithLabelValues("delete", "success").Inc()
	return nil
}

// GetOrLoad returns the cached value for key, invoking the configured loader
// on a miss and caching the result. Concurrent loads for the same key are
// collapsed into a single loader call.
func (s *ServiceImpl) GetOrLoad(ctx context.Context, key string) (string, error) {
	val, err := s.Get(ctx, key)
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, ErrNotFound) || s.loader == nil {
		return "", err
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		// Re-check: another flight may have populated the key between the
		// miss above and acquiring the flight.
		if val, found := s.store.Get(key); found {
			return val, nil
		}
		val, err := s.loader(ctx, key)
		if err != nil {
			observability.CacheOperationsTotal.WithLabelValues("load", "error").Inc()
			return "", fmt.Errorf("load %q: %w", key, err)
		}
		s.store.Put(key, val)
		observability.CacheOperationsTotal.WithLabelValues("load", "success").Inc()
		return val, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
