package proposals

import (
	"context"
	"fmt"

	"badajozrespira/src/domain"
	"badajozrespira/src/domain/entities"
)

// Vote soma exatamente um voto. Não há identidade de votante: cada chamada conta.
func (s *ProposalService) Vote(ctx context.Context, id string) (entities.Proposal, error) {
	proposal, err := s.repository.IncrementVotes(ctx, id)
	if err != nil {
		s.recorder.ProposalTransition("vote", outcomeOf(err))
		return entities.Proposal{}, fmt.Errorf("ProposalService.Vote - failed to increment votes: %w", err)
	}

	s.recorder.ProposalTransition("vote", "ok")
	s.publish(ctx, newProposalEvent(domain.EventProposalVoted, proposal))
	return proposal, nil
}
