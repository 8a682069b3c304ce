package proposals

import (
	"context"
	"fmt"
	"sort"

	"badajozrespira/src/domain"
	"badajozrespira/src/domain/entities"
)

// List devolve as propostas de uma das abas: mais votadas, recentes ou já
// validadas. Sem ordenação explícita usa as mais votadas.
func (s *ProposalService) List(ctx context.Context, order domain.ProposalSort) ([]entities.Proposal, error) {
	if order == "" {
		order = domain.SortMostVoted
	}

	proposals, err := s.repository.ListProposals(ctx)
	if err != nil {
		return nil, fmt.Errorf("ProposalService.List - failed to list proposals: %w", err)
	}

	switch order {
	case domain.SortMostVoted:
		sort.SliceStable(proposals, func(i, j int) bool {
			return proposals[i].Votes > proposals[j].Votes
		})
	case domain.SortRecent:
		// YYYY-MM-DD ordena lexicograficamente.
		sort.SliceStable(proposals, func(i, j int) bool {
			return proposals[i].Date > proposals[j].Date
		})
	case domain.SortValidated:
		validated := make([]entities.Proposal, 0, len(proposals))
		for _, p := range proposals {
			if p.Status == entities.StatusValidated {
				validated = append(validated, p)
			}
		}
		sort.SliceStable(validated, func(i, j int) bool {
			return validated[i].Votes > validated[j].Votes
		})
		proposals = validated
	default:
		return nil, domain.NewValidationError("sort", fmt.Sprintf("Orden desconocido: %q", order))
	}

	return proposals, nil
}

func (s *ProposalService) Get(ctx context.Context, id string) (entities.Proposal, error) {
	proposal, err := s.repository.GetProposal(ctx, id)
	if err != nil {
		return entities.Proposal{}, fmt.Errorf("ProposalService.Get - failed to get proposal: %w", err)
	}
	return proposal, nil
}
