package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"badajozrespira/src/domain/entities"
)

const (
	cacheKeyEvents    = "catalog:events"
	cacheKeyResources = "catalog:resources"
	cacheKeyPosts     = "catalog:posts"

	registryEvents    = "registry:events"
	registryResources = "registry:resources"
	registryPosts     = "registry:posts"
)

// Cache é o subconjunto do cliente Redis usado pelo CachedStore.
type Cache interface {
	GetKey(ctx context.Context, key string) (string, bool, error)
	SetWithRegistry(ctx context.Context, cacheKey string, cacheValue string, registryKeys []string) error
	InvalidateRegistries(ctx context.Context, registryKeys []string) error
}

// CachedStore guarda em cache as listagens públicas (agenda, mapa e blog).
// Toda escrita que altera uma dessas coleções invalida o registry dela.
// Erros de cache nunca chegam ao chamador; a leitura cai para o Store.
type CachedStore struct {
	Store
	cache  Cache
	logger *slog.Logger
}

func NewCachedStore(store Store, cache Cache, logger *slog.Logger) *CachedStore {
	return &CachedStore{
		Store:  store,
		cache:  cache,
		logger: logger,
	}
}

func readThrough[T any](
	ctx context.Context,
	s *CachedStore,
	cacheKey string,
	registryKey string,
	load func(ctx context.Context) ([]T, error),
) ([]T, error) {
	cached, found, err := s.cache.GetKey(ctx, cacheKey)
	if err != nil {
		// Log erro de cache mas continua com o store
		s.logger.Warn("Cache error", "key", cacheKey, "error", err)
	}

	if found && err == nil {
		var items []T
		if err := json.Unmarshal([]byte(cached), &items); err == nil {
			s.logger.Debug("Cache HIT", "key", cacheKey)
			return items, nil
		}
		s.logger.Warn("Discarding unreadable cache entry", "key", cacheKey)
	}

	s.logger.Debug("Cache MISS", "key", cacheKey)

	items, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("store query failed: %w", err)
	}

	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Warn("Failed to marshal cache data", "key", cacheKey, "error", err)
		return items, nil
	}

	setCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	if err := s.cache.SetWithRegistry(setCtx, cacheKey, string(data), []string{registryKey}); err != nil {
		s.logger.Warn("Failed to set cache", "key", cacheKey, "error", err)
	}

	return items, nil
}

func (s *CachedStore) invalidate(ctx context.Context, registryKeys ...string) {
	if err := s.cache.InvalidateRegistries(context.WithoutCancel(ctx), registryKeys); err != nil {
		s.logger.Error("Failed to invalidate cache", "registries", registryKeys, "error", err)
		return
	}
	s.logger.Debug("Cache invalidated", "registries", registryKeys)
}

func (s *CachedStore) ListEvents(ctx context.Context) ([]entities.AgendaEvent, error) {
	return readThrough(ctx, s, cacheKeyEvents, registryEvents, s.Store.ListEvents)
}

func (s *CachedStore) SaveEvent(ctx context.Context, event entities.AgendaEvent) error {
	err := s.Store.SaveEvent(ctx, event)
	s.invalidate(ctx, registryEvents)
	return err
}

func (s *CachedStore) DeleteEvent(ctx context.Context, id string) error {
	err := s.Store.DeleteEvent(ctx, id)
	s.invalidate(ctx, registryEvents)
	return err
}

func (s *CachedStore) ListResources(ctx context.Context) ([]entities.Resource, error) {
	return readThrough(ctx, s, cacheKeyResources, registryResources, s.Store.ListResources)
}

func (s *CachedStore) SaveResource(ctx context.Context, resource entities.Resource) error {
	err := s.Store.SaveResource(ctx, resource)
	s.invalidate(ctx, registryResources)
	return err
}

func (s *CachedStore) DeleteResource(ctx context.Context, id string) error {
	err := s.Store.DeleteResource(ctx, id)
	s.invalidate(ctx, registryResources)
	return err
}

func (s *CachedStore) ListPosts(ctx context.Context) ([]entities.BlogPost, error) {
	return readThrough(ctx, s, cacheKeyPosts, registryPosts, s.Store.ListPosts)
}

func (s *CachedStore) SavePost(ctx context.Context, post entities.BlogPost) error {
	err := s.Store.SavePost(ctx, post)
	s.invalidate(ctx, registryPosts)
	return err
}

func (s *CachedStore) EditPost(ctx context.Context, id string, edit func(post *entities.BlogPost) bool) (entities.BlogPost, error) {
	changed := false
	post, err := s.Store.EditPost(ctx, id, func(post *entities.BlogPost) bool {
		changed = edit(post)
		return changed
	})
	if err == nil && changed {
		s.invalidate(ctx, registryPosts)
	}
	return post, err
}

func (s *CachedStore) DeletePost(ctx context.Context, id string) error {
	err := s.Store.DeletePost(ctx, id)
	s.invalidate(ctx, registryPosts)
	return err
}

// Resolve pode criar um evento ou um recurso.
func (s *CachedStore) Resolve(ctx context.Context, resolution ProposalResolution) (entities.Proposal, error) {
	proposal, err := s.Store.Resolve(ctx, resolution)
	if err != nil {
		return proposal, err
	}

	switch {
	case resolution.Event != nil:
		s.invalidate(ctx, registryEvents)
	case resolution.Resource != nil:
		s.invalidate(ctx, registryResources)
	}
	return proposal, nil
}
