package ports

import "context"

// CacheService maps incoming requests to business logic
type CacheService interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	GetOrLoad(ctx context.Context, key string) (string, error)
}

// Storage defines the interface for the in-memory cache backing the service
type Storage interface {
	Get(key string) (string, bool)
	Put(key, value string)
	Contains(key string) bool
	Remove(key string) bool
	Len() int
}
