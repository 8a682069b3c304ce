package repositories_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"badajozrespira/src/domain/entities"
	"badajozrespira/src/infra/fixtures"
	"badajozrespira/src/repositories"
	"badajozrespira/src/test_artefacts/stubs"
)

type fakeCache struct {
	mu          sync.Mutex
	values      map[string]string
	registries  map[string][]string
	gets        int
	failGets    bool
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}, registries: map[string][]string{}}
}

func (c *fakeCache) GetKey(ctx context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGets {
		return "", false, errors.New("connection refused")
	}
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *fakeCache) SetWithRegistry(ctx context.Context, key string, value string, registryKeys []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	for _, r := range registryKeys {
		c.registries[r] = append(c.registries[r], key)
	}
	return nil
}

func (c *fakeCache) InvalidateRegistries(ctx context.Context, registryKeys []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range registryKeys {
		for _, key := range c.registries[r] {
			delete(c.values, key)
		}
		delete(c.registries, r)
		c.invalidated = append(c.invalidated, r)
	}
	return nil
}

// countingStore conta quantas vezes a listagem chega ao store de verdade.
type countingStore struct {
	repositories.Store
	eventLists int
}

func (s *countingStore) ListEvents(ctx context.Context) ([]entities.AgendaEvent, error) {
	s.eventLists++
	return s.Store.ListEvents(ctx)
}

var _ = Describe("CachedStore", func() {
	var (
		cache   *fakeCache
		backing *countingStore
		store   *repositories.CachedStore
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		seed, err := fixtures.Load(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))
		Expect(err).NotTo(HaveOccurred())

		cache = newFakeCache()
		backing = &countingStore{Store: repositories.NewMemoryStore(seed)}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		store = repositories.NewCachedStore(backing, cache, logger)
	})

	Context("when listing events twice", func() {
		It("serves the second call from the cache", func() {
			first, err := store.ListEvents(ctx)
			Expect(err).NotTo(HaveOccurred())

			second, err := store.ListEvents(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(backing.eventLists).To(Equal(1))
			Expect(second).To(Equal(first))
		})
	})

	Context("when an event is saved", func() {
		It("invalidates the events listing", func() {
			_, _ = store.ListEvents(ctx)

			event := stubs.NewAgendaEventStub().Get()
			Expect(store.SaveEvent(ctx, event)).To(Succeed())

			events, err := store.ListEvents(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(backing.eventLists).To(Equal(2))
			Expect(events[len(events)-1].ID).To(Equal(event.ID))
		})
	})

	Context("when a resolution promotes a resource", func() {
		It("invalidates only the resources registry", func() {
			resource := stubs.NewResourceStub().Get()

			_, err := store.Resolve(ctx, repositories.ProposalResolution{
				ProposalID: "p2",
				From:       []entities.ProposalStatus{entities.StatusPending, entities.StatusInReview},
				To:         entities.StatusValidated,
				Resource:   &resource,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(cache.invalidated).To(Equal([]string{"registry:resources"}))
		})
	})

	Context("when a post is edited", func() {
		It("invalidates the posts listing only when the edit changed the post", func() {
			_, err := store.EditPost(ctx, "b1", func(*entities.BlogPost) bool { return false })
			Expect(err).NotTo(HaveOccurred())
			Expect(cache.invalidated).To(BeEmpty())

			_, err = store.EditPost(ctx, "b1", func(post *entities.BlogPost) bool {
				post.Blocks = post.Blocks[:1]
				return true
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(cache.invalidated).To(Equal([]string{"registry:posts"}))
		})
	})

	Context("when the cache is failing", func() {
		It("falls back to the store", func() {
			cache.failGets = true

			events, err := store.ListEvents(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(events).NotTo(BeEmpty())
			Expect(backing.eventLists).To(Equal(1))
		})
	})
})
