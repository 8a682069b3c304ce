package http

import (
	"context"
	"net/http"

	"badajozrespira/src/domain"
	"badajozrespira/src/domain/entities"
)

func (s *Server) ListProposals(w http.ResponseWriter, r *http.Request) {
	sort := domain.ProposalSort(r.URL.Query().Get("sort"))

	proposals, err := s.services.Proposals.List(r.Context(), sort)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, proposals)
}

func (s *Server) GetProposal(w http.ResponseWriter, r *http.Request) {
	proposal, err := s.services.Proposals.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, proposal)
}

func (s *Server) SubmitProposal(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitProposalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	proposal, err := s.services.Proposals.Submit(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, proposal)
}

func (s *Server) VoteProposal(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.services.Proposals.Vote)
}

func (s *Server) SummarizeProposal(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.services.Proposals.Summarize)
}

func (s *Server) ValidateProposal(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.services.Proposals.Validate)
}

func (s *Server) RejectProposal(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.services.Proposals.Reject)
}

func (s *Server) ReviewProposal(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.services.Proposals.MarkInReview)
}

// transition executa uma operação de proposta identificada pelo {id} da rota.
func (s *Server) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id string) (entities.Proposal, error),
) {
	proposal, err := op(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, proposal)
}
