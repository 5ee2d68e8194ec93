package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spec-kit/ticket-admin/internal/events"
	"github.com/spec-kit/ticket-admin/internal/persistence"
	"github.com/spec-kit/ticket-admin/internal/repository"
)

// ResourceService wraps a typed collection with the concerns every dashboard
// resource shares: list caching and mutation events. One instance exists per
// collection (events, sectors, lots, coupons, settings).
type ResourceService[T any] struct {
	repo       *repository.Collection[T]
	dispatcher events.Dispatcher
	cache      *persistence.Redis
	cacheTTL   time.Duration
}

// NewResourceService builds the service. cache may be nil.
func NewResourceService[T any](repo *repository.Collection[T], dispatcher events.Dispatcher, cache *persistence.Redis, cacheTTL time.Duration) *ResourceService[T] {
	return &ResourceService[T]{
		repo:       repo,
		dispatcher: dispatcher,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// Name returns the collection name.
func (s *ResourceService[T]) Name() string { return s.repo.Name() }

func (s *ResourceService[T]) cacheKey() string {
	return "cache:" + s.repo.Name()
}

// List returns every document, served from the cache when fresh.
func (s *ResourceService[T]) List(ctx context.Context) ([]T, error) {
	if raw, ok := s.cache.CacheGet(ctx, s.cacheKey()); ok {
		var items []T
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(items); err == nil {
		s.cache.CacheSet(ctx, s.cacheKey(), raw, s.cacheTTL)
	}
	return items, nil
}

// Get returns one document by id.
func (s *ResourceService[T]) Get(ctx context.Context, id string) (T, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new document and returns its stored form.
func (s *ResourceService[T]) Create(ctx context.Context, item T) (T, error) {
	stored, id, err := s.repo.Insert(ctx, item)
	if err != nil {
		var zero T
		return zero, err
	}
	s.invalidate(ctx)
	s.publish(ctx, events.EventResourceCreated, id, stored)
	return stored, nil
}

// Replace swaps the document with the given id.
func (s *ResourceService[T]) Replace(ctx context.Context, id string, item T) (T, error) {
	stored, err := s.repo.Replace(ctx, id, item)
	if err != nil {
		var zero T
		return zero, err
	}
	s.invalidate(ctx)
	s.publish(ctx, events.EventResourceUpdated, id, stored)
	return stored, nil
}

// Delete removes the document with the given id.
func (s *ResourceService[T]) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.publish(ctx, events.EventResourceDeleted, id, nil)
	return nil
}

func (s *ResourceService[T]) invalidate(ctx context.Context) {
	s.cache.CacheDel(ctx, s.cacheKey())
}

func (s *ResourceService[T]) publish(ctx context.Context, eventType events.EventType, id string, doc interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.New(eventType, s.repo.Name(), id,
		events.ResourceChangedPayload{Document: doc}))
}
