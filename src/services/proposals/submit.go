package proposals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"badajozrespira/src/domain"
	"badajozrespira/src/domain/entities"
)

const DefaultAuthor = "Anónimo"

const (
	msgTitleRequired       = "El título es obligatorio."
	msgDateRequired        = "La fecha es obligatoria."
	msgDateInvalid         = "La fecha debe tener el formato AAAA-MM-DD."
	msgStartTimeRequired   = "La hora de inicio es obligatoria."
	msgStartTimeInvalid    = "La hora de inicio debe tener el formato HH:MM."
	msgDescriptionRequired = "La descripción es obligatoria."
	msgCoordinatesRequired = "Indica la ubicación: busca la dirección o márcala en el mapa."
)

// ValidateSubmission aplica as checagens do formulário na ordem
// título → data → hora de início → descrição → coordenadas e devolve a
// primeira que falhar. Propostas general só exigem título e descrição.
func ValidateSubmission(req domain.SubmitProposalRequest) error {
	if err := entities.CheckDetails(req.Type, req.Details); err != nil {
		return domain.NewValidationError("details", err.Error())
	}

	switch req.Type {
	case entities.ProposalEvent:
		d, _ := req.Details.(entities.EventDetails)

		if firstNonBlank(req.Title, d.Title) == "" {
			return domain.NewValidationError("title", msgTitleRequired)
		}
		if strings.TrimSpace(d.Date) == "" {
			return domain.NewValidationError("date", msgDateRequired)
		}
		if _, err := time.Parse(time.DateOnly, strings.TrimSpace(d.Date)); err != nil {
			return domain.NewValidationError("date", msgDateInvalid)
		}
		if strings.TrimSpace(d.StartTime) == "" {
			return domain.NewValidationError("startTime", msgStartTimeRequired)
		}
		if _, err := time.Parse("15:04", strings.TrimSpace(d.StartTime)); err != nil {
			return domain.NewValidationError("startTime", msgStartTimeInvalid)
		}
		if firstNonBlank(req.Description, d.Description) == "" {
			return domain.NewValidationError("description", msgDescriptionRequired)
		}
		if d.Lat == nil || d.Lng == nil {
			return domain.NewValidationError("coordinates", msgCoordinatesRequired)
		}

	case entities.ProposalResource:
		d, _ := req.Details.(entities.ResourceDetails)

		if firstNonBlank(req.Title, d.Name) == "" {
			return domain.NewValidationError("title", msgTitleRequired)
		}
		if firstNonBlank(req.Description, d.Description) == "" {
			return domain.NewValidationError("description", msgDescriptionRequired)
		}
		if d.Lat == nil || d.Lng == nil {
			return domain.NewValidationError("coordinates", msgCoordinatesRequired)
		}

	default:
		if strings.TrimSpace(req.Title) == "" {
			return domain.NewValidationError("title", msgTitleRequired)
		}
		if strings.TrimSpace(req.Description) == "" {
			return domain.NewValidationError("description", msgDescriptionRequired)
		}
	}

	return nil
}

// Submit valida e grava uma proposta nova como Pendiente, com zero votos.
// Se a validação falhar nada é gravado.
func (s *ProposalService) Submit(ctx context.Context, req domain.SubmitProposalRequest) (entities.Proposal, error) {
	return s.submit(ctx, s.newID(), req)
}

// SubmitWithID é o Submit de quem já conhece o id da proposta, como o
// consumer de intake. Reenviar o mesmo id devolve a proposta já gravada.
func (s *ProposalService) SubmitWithID(ctx context.Context, id string, req domain.SubmitProposalRequest) (entities.Proposal, error) {
	return s.submit(ctx, id, req)
}

func (s *ProposalService) submit(ctx context.Context, id string, req domain.SubmitProposalRequest) (entities.Proposal, error) {
	if req.Type == "" {
		req.Type = entities.ProposalGeneral
	}

	if err := ValidateSubmission(req); err != nil {
		s.recorder.ProposalTransition("submit", "invalid")
		return entities.Proposal{}, err
	}

	proposal := entities.Proposal{
		ID:          id,
		Type:        req.Type,
		Author:      firstNonBlank(req.Author, DefaultAuthor),
		Status:      entities.StatusPending,
		Votes:       0,
		Date:        s.today(),
		Details:     req.Details,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
	}

	// O formulário de evento/recurso pode trazer título e descrição só nos detalhes.
	switch d := req.Details.(type) {
	case entities.EventDetails:
		proposal.Title = firstNonBlank(req.Title, d.Title)
		proposal.Description = firstNonBlank(req.Description, d.Description)
	case entities.ResourceDetails:
		proposal.Title = firstNonBlank(req.Title, d.Name)
		proposal.Description = firstNonBlank(req.Description, d.Description)
	}

	stored, created, err := s.repository.CreateProposal(ctx, proposal)
	if err != nil {
		s.recorder.ProposalTransition("submit", "error")
		return entities.Proposal{}, fmt.Errorf("ProposalService.Submit - failed to save proposal: %w", err)
	}
	if !created {
		s.recorder.ProposalTransition("submit", "duplicate")
		s.logger.Info("Proposal already submitted", "proposal_id", stored.ID)
		return stored, nil
	}

	s.recorder.ProposalTransition("submit", "ok")
	s.logger.Info("Proposal submitted", "proposal_id", proposal.ID, "type", proposal.Type)
	s.publish(ctx, newProposalEvent(domain.EventProposalSubmitted, proposal))

	return proposal, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}
