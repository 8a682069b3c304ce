package proposals

import (
	"context"
	"errors"
	"fmt"

	"badajozrespira/src/domain"
	"badajozrespira/src/domain/entities"
	"badajozrespira/src/repositories"
	"badajozrespira/src/services/events"
)

var openStatuses = []entities.ProposalStatus{entities.StatusPending, entities.StatusInReview}

// Validate aprova a proposta. Propostas de evento ou recurso com detalhes
// viram um AgendaEvent ou um Resource no mesmo passo em que o estado muda.
// Uma proposta que não está aberta devolve ErrProposalNotPending e nada é criado.
func (s *ProposalService) Validate(ctx context.Context, id string) (entities.Proposal, error) {
	current, err := s.repository.GetProposal(ctx, id)
	if err != nil {
		s.recorder.ProposalTransition("validate", outcomeOf(err))
		return entities.Proposal{}, fmt.Errorf("ProposalService.Validate - failed to get proposal: %w", err)
	}

	resolution := repositories.ProposalResolution{
		ProposalID: id,
		From:       openStatuses,
		To:         entities.StatusValidated,
	}

	switch d := current.Details.(type) {
	case entities.EventDetails:
		event := BuildEvent(current, d, s.newID())
		resolution.Event = &event
	case entities.ResourceDetails:
		resource := BuildResource(current, d, s.newID())
		resolution.Resource = &resource
	}

	proposal, err := s.repository.Resolve(ctx, resolution)
	if err != nil {
		s.recorder.ProposalTransition("validate", outcomeOf(err))
		return entities.Proposal{}, fmt.Errorf("ProposalService.Validate - failed to resolve proposal: %w", err)
	}

	s.recorder.ProposalTransition("validate", "ok")
	s.logger.Info("Proposal validated", "proposal_id", id, "promoted_entity_id", resolution.PromotedID())

	published := []domain.DomainEvent{newProposalEvent(domain.EventProposalValidated, proposal)}
	if resolution.Event != nil {
		published = append(published, events.NewDomainEvent(domain.EventEntityCreated, "event", resolution.Event.ID, resolution.Event))
	}
	if resolution.Resource != nil {
		published = append(published, events.NewDomainEvent(domain.EventEntityCreated, "resource", resolution.Resource.ID, resolution.Resource))
	}
	s.publish(ctx, published...)

	return proposal, nil
}

// Reject é irreversível: não existe caminho de volta para Pendiente.
func (s *ProposalService) Reject(ctx context.Context, id string) (entities.Proposal, error) {
	proposal, err := s.repository.Resolve(ctx, repositories.ProposalResolution{
		ProposalID: id,
		From:       openStatuses,
		To:         entities.StatusRejected,
	})
	if err != nil {
		s.recorder.ProposalTransition("reject", outcomeOf(err))
		return entities.Proposal{}, fmt.Errorf("ProposalService.Reject - failed to resolve proposal: %w", err)
	}

	s.recorder.ProposalTransition("reject", "ok")
	s.logger.Info("Proposal rejected", "proposal_id", id)
	s.publish(ctx, newProposalEvent(domain.EventProposalRejected, proposal))

	return proposal, nil
}

// MarkInReview move uma proposta Pendiente para En Revisión.
func (s *ProposalService) MarkInReview(ctx context.Context, id string) (entities.Proposal, error) {
	proposal, err := s.repository.Resolve(ctx, repositories.ProposalResolution{
		ProposalID: id,
		From:       []entities.ProposalStatus{entities.StatusPending},
		To:         entities.StatusInReview,
	})
	if err != nil {
		s.recorder.ProposalTransition("review", outcomeOf(err))
		return entities.Proposal{}, fmt.Errorf("ProposalService.MarkInReview - failed to resolve proposal: %w", err)
	}

	s.recorder.ProposalTransition("review", "ok")
	s.publish(ctx, newProposalEvent(domain.EventProposalInReview, proposal))

	return proposal, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrProposalNotPending):
		return "not_pending"
	case errors.Is(err, domain.ErrEntityNotFound):
		return "not_found"
	}
	return "error"
}

func newProposalEvent(eventType string, proposal entities.Proposal) domain.DomainEvent {
	return events.NewDomainEvent(eventType, entityTypeProposal, proposal.ID, map[string]any{
		"status": proposal.Status,
		"votes":  proposal.Votes,
		"type":   proposal.Type,
	})
}
