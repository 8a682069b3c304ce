package proposals

import (
	"context"
	"fmt"

	"badajozrespira/src/domain/entities"
)

// Summarize gera o resumo de uma frase na primeira chamada e o guarda em
// aiSummary; as chamadas seguintes devolvem o resumo guardado.
func (s *ProposalService) Summarize(ctx context.Context, id string) (entities.Proposal, error) {
	proposal, err := s.repository.GetProposal(ctx, id)
	if err != nil {
		return entities.Proposal{}, fmt.Errorf("ProposalService.Summarize - failed to get proposal: %w", err)
	}

	if proposal.AISummary != "" || s.summarizer == nil {
		return proposal, nil
	}

	summary := s.summarizer.SummarizeProposal(ctx, proposal.Title, proposal.Description)
	if summary == "" {
		return proposal, nil
	}

	if err := s.repository.SetProposalSummary(ctx, id, summary); err != nil {
		return entities.Proposal{}, fmt.Errorf("ProposalService.Summarize - failed to store summary: %w", err)
	}

	proposal.AISummary = summary
	return proposal, nil
}
