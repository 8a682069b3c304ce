package repositories

import (
	"context"

	"badajozrespira/src/domain/entities"
)

type EventRepository interface {
	ListEvents(ctx context.Context) ([]entities.AgendaEvent, error)
	GetEvent(ctx context.Context, id string) (entities.AgendaEvent, error)
	SaveEvent(ctx context.Context, event entities.AgendaEvent) error
	DeleteEvent(ctx context.Context, id string) error
}

type ResourceRepository interface {
	ListResources(ctx context.Context) ([]entities.Resource, error)
	GetResource(ctx context.Context, id string) (entities.Resource, error)
	SaveResource(ctx context.Context, resource entities.Resource) error
	DeleteResource(ctx context.Context, id string) error
}

type BlogPostRepository interface {
	ListPosts(ctx context.Context) ([]entities.BlogPost, error)
	GetPost(ctx context.Context, id string) (entities.BlogPost, error)
	SavePost(ctx context.Context, post entities.BlogPost) error
	DeletePost(ctx context.Context, id string) error
	// EditPost aplica edit ao post atual sem que outra escrita no mesmo post
	// se intercale. O post só é gravado quando edit devolve true.
	EditPost(ctx context.Context, id string, edit func(post *entities.BlogPost) bool) (entities.BlogPost, error)
}

type UserRepository interface {
	ListUsers(ctx context.Context) ([]entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
	SaveUser(ctx context.Context, user entities.User) error
	DeleteUser(ctx context.Context, id string) error
}

// ProposalResolution descreve uma transição de estado de uma proposta.
// Quando Event ou Resource estão presentes, a entidade é criada no mesmo
// passo em que o estado muda, e só se o estado atual estiver em From.
type ProposalResolution struct {
	ProposalID string
	From       []entities.ProposalStatus
	To         entities.ProposalStatus
	Event      *entities.AgendaEvent
	Resource   *entities.Resource
}

func (r ProposalResolution) allows(status entities.ProposalStatus) bool {
	for _, s := range r.From {
		if s == status {
			return true
		}
	}
	return false
}

// PromotedID returns the id of the entity the resolution materializes, if any.
func (r ProposalResolution) PromotedID() string {
	switch {
	case r.Event != nil:
		return r.Event.ID
	case r.Resource != nil:
		return r.Resource.ID
	}
	return ""
}

type ProposalRepository interface {
	ListProposals(ctx context.Context) ([]entities.Proposal, error)
	GetProposal(ctx context.Context, id string) (entities.Proposal, error)
	SaveProposal(ctx context.Context, proposal entities.Proposal) error
	// CreateProposal grava a proposta só se o id ainda não existir. Devolve a
	// proposta armazenada e se ela foi criada agora.
	CreateProposal(ctx context.Context, proposal entities.Proposal) (entities.Proposal, bool, error)
	IncrementVotes(ctx context.Context, id string) (entities.Proposal, error)
	SetProposalSummary(ctx context.Context, id string, summary string) error
	Resolve(ctx context.Context, resolution ProposalResolution) (entities.Proposal, error)
}

// Store reúne todos os repositórios de entidades.
type Store interface {
	EventRepository
	ResourceRepository
	BlogPostRepository
	UserRepository
	ProposalRepository
}
