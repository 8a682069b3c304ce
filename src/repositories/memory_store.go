package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"badajozrespira/src/domain"
	"badajozrespira/src/domain/entities"
	"badajozrespira/src/infra/fixtures"
)

// collection mantém a ordem de inserção, como os arrays da página original.
type collection[T any] struct {
	items []T
	id    func(T) string
	clone func(T) T
}

func newCollection[T any](items []T, id func(T) string, clone func(T) T) collection[T] {
	c := collection[T]{id: id, clone: clone}
	for _, item := range items {
		c.items = append(c.items, clone(item))
	}
	return c
}

func (c *collection[T]) list() []T {
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, c.clone(item))
	}
	return out
}

func (c *collection[T]) index(id string) int {
	for i, item := range c.items {
		if c.id(item) == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) get(id string) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.clone(c.items[i]), true
	}
	var zero T
	return zero, false
}

func (c *collection[T]) save(item T) {
	if i := c.index(c.id(item)); i >= 0 {
		c.items[i] = c.clone(item)
		return
	}
	c.items = append(c.items, c.clone(item))
}

func (c *collection[T]) delete(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

func identity[T any](v T) T { return v }

func cloneResource(r entities.Resource) entities.Resource {
	r.Tags = append([]string(nil), r.Tags...)
	return r
}

// MemoryStore é o armazenamento em memória do processo. Um único mutex
// serializa todas as operações, então uma resolução de proposta é atômica.
type MemoryStore struct {
	mu        sync.RWMutex
	events    collection[entities.AgendaEvent]
	resources collection[entities.Resource]
	posts     collection[entities.BlogPost]
	users     collection[entities.User]
	proposals collection[entities.Proposal]
}

func NewMemoryStore(seed fixtures.Seed) *MemoryStore {
	return &MemoryStore{
		events:    newCollection(seed.Events, func(e entities.AgendaEvent) string { return e.ID }, identity[entities.AgendaEvent]),
		resources: newCollection(seed.Resources, func(r entities.Resource) string { return r.ID }, cloneResource),
		posts:     newCollection(seed.Posts, func(p entities.BlogPost) string { return p.ID }, entities.BlogPost.Clone),
		users:     newCollection(seed.Users, func(u entities.User) string { return u.ID }, identity[entities.User]),
		proposals: newCollection(seed.Proposals, func(p entities.Proposal) string { return p.ID }, entities.Proposal.Clone),
	}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, domain.ErrEntityNotFound)
}

// ---- events ----

func (s *MemoryStore) ListEvents(ctx context.Context) ([]entities.AgendaEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events.list(), nil
}

func (s *MemoryStore) GetEvent(ctx context.Context, id string) (entities.AgendaEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events.get(id)
	if !ok {
		return entities.AgendaEvent{}, notFound("event", id)
	}
	return event, nil
}

func (s *MemoryStore) SaveEvent(ctx context.Context, event entities.AgendaEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events.save(event)
	return nil
}

func (s *MemoryStore) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.events.delete(id) {
		return notFound("event", id)
	}
	return nil
}

// ---- resources ----

func (s *MemoryStore) ListResources(ctx context.Context) ([]entities.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resources.list(), nil
}

func (s *MemoryStore) GetResource(ctx context.Context, id string) (entities.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resource, ok := s.resources.get(id)
	if !ok {
		return entities.Resource{}, notFound("resource", id)
	}
	return resource, nil
}

func (s *MemoryStore) SaveResource(ctx context.Context, resource entities.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources.save(resource)
	return nil
}

func (s *MemoryStore) DeleteResource(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.resources.delete(id) {
		return notFound("resource", id)
	}
	return nil
}

// ---- blog ----

func (s *MemoryStore) ListPosts(ctx context.Context) ([]entities.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posts.list(), nil
}

func (s *MemoryStore) GetPost(ctx context.Context, id string) (entities.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts.get(id)
	if !ok {
		return entities.BlogPost{}, notFound("post", id)
	}
	return post, nil
}

func (s *MemoryStore) SavePost(ctx context.Context, post entities.BlogPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts.save(post)
	return nil
}

func (s *MemoryStore) EditPost(ctx context.Context, id string, edit func(post *entities.BlogPost) bool) (entities.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts.get(id)
	if !ok {
		return entities.BlogPost{}, notFound("post", id)
	}
	if edit(&post) {
		s.posts.save(post)
	}
	return post.Clone(), nil
}

func (s *MemoryStore) DeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.posts.delete(id) {
		return notFound("post", id)
	}
	return nil
}

// ---- users ----

func (s *MemoryStore) ListUsers(ctx context.Context) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.list(), nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users.items {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return entities.User{}, domain.ErrUserNotFound
}

// SaveUser recusa um email que já pertence a outro usuário.
func (s *MemoryStore) SaveUser(ctx context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users.items {
		if existing.ID != user.ID && strings.EqualFold(existing.Email, user.Email) {
			return fmt.Errorf("email %s: %w", user.Email, domain.ErrEmailTaken)
		}
	}
	s.users.save(user)
	return nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.users.delete(id) {
		return notFound("user", id)
	}
	return nil
}

// ---- proposals ----

func (s *MemoryStore) ListProposals(ctx context.Context) ([]entities.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.proposals.list(), nil
}

func (s *MemoryStore) GetProposal(ctx context.Context, id string) (entities.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	proposal, ok := s.proposals.get(id)
	if !ok {
		return entities.Proposal{}, fmt.Errorf("%s: %w", id, domain.ErrProposalNotFound)
	}
	return proposal, nil
}

func (s *MemoryStore) SaveProposal(ctx context.Context, proposal entities.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals.save(proposal)
	return nil
}

func (s *MemoryStore) CreateProposal(ctx context.Context, proposal entities.Proposal) (entities.Proposal, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.proposals.index(proposal.ID); i >= 0 {
		return s.proposals.clone(s.proposals.items[i]), false, nil
	}
	s.proposals.save(proposal)
	return proposal.Clone(), true, nil
}

func (s *MemoryStore) IncrementVotes(ctx context.Context, id string) (entities.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.proposals.index(id)
	if i < 0 {
		return entities.Proposal{}, fmt.Errorf("%s: %w", id, domain.ErrProposalNotFound)
	}
	s.proposals.items[i].Votes++
	return s.proposals.clone(s.proposals.items[i]), nil
}

func (s *MemoryStore) SetProposalSummary(ctx context.Context, id string, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.proposals.index(id)
	if i < 0 {
		return fmt.Errorf("%s: %w", id, domain.ErrProposalNotFound)
	}
	s.proposals.items[i].AISummary = summary
	return nil
}

func (s *MemoryStore) Resolve(ctx context.Context, resolution ProposalResolution) (entities.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.proposals.index(resolution.ProposalID)
	if i < 0 {
		return entities.Proposal{}, fmt.Errorf("%s: %w", resolution.ProposalID, domain.ErrProposalNotFound)
	}

	current := s.proposals.items[i]
	if !resolution.allows(current.Status) {
		return entities.Proposal{}, fmt.Errorf("%s is %q: %w", current.ID, current.Status, domain.ErrProposalNotPending)
	}

	if resolution.Event != nil {
		s.events.save(*resolution.Event)
	}
	if resolution.Resource != nil {
		s.resources.save(*resolution.Resource)
	}

	s.proposals.items[i].Status = resolution.To
	return s.proposals.clone(s.proposals.items[i]), nil
}
