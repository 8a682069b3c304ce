package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"badajozrespira/src/domain/entities"
)

var (
	ErrEntityNotFound = errors.New("entity not found")

	ErrProposalNotFound = fmt.Errorf("proposal %w", ErrEntityNotFound)

	// Validar ou rejeitar uma proposta que já saiu do estado pendente.
	ErrProposalNotPending = errors.New("proposal is no longer pending")

	ErrUserNotFound = errors.New("Usuario no encontrado")

	ErrEmailTaken = errors.New("Ya existe un usuario con ese email.")

	ErrNoGeocodeResults = errors.New("No se encontró la dirección. Márcala manualmente en el mapa.")

	ErrGeocoderUnavailable = errors.New("Error de conexión con el servicio de mapas. Inténtalo de nuevo más tarde.")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

// ValidationError descreve o primeiro campo inválido de um formulário.
type ValidationError struct {
	Field   string
	Message string
	cause   error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Coordinates é um par latitude/longitude WGS84.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BadajozCenter is the fallback point used when a resource has no location.
var BadajozCenter = Coordinates{Lat: 38.8794, Lng: -6.9707}

// ############################################################
// ################ PROPOSTAS CIDADÃS #########################
// ############################################################

// SubmitProposalRequest é o formulário enviado pelo cidadão.
type SubmitProposalRequest struct {
	Type        entities.ProposalType
	Author      string
	Title       string
	Description string
	Details     entities.ProposalDetails
}

type submitProposalJSON struct {
	Type        entities.ProposalType `json:"type"`
	Author      string                `json:"author"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Details     json.RawMessage       `json:"details,omitempty"`
}

func (r *SubmitProposalRequest) UnmarshalJSON(data []byte) error {
	var raw submitProposalJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type == "" {
		raw.Type = entities.ProposalGeneral
	}

	// Tipo e details inválidos viram erro de campo, como no formulário.
	details, err := entities.DecodeDetails(raw.Type, raw.Details)
	if err != nil {
		field := "details"
		if errors.Is(err, entities.ErrUnknownProposalType) {
			field = "type"
		}
		return &ValidationError{Field: field, Message: err.Error(), cause: err}
	}

	*r = SubmitProposalRequest{
		Type:        raw.Type,
		Author:      raw.Author,
		Title:       raw.Title,
		Description: raw.Description,
		Details:     details,
	}
	return nil
}

func (r SubmitProposalRequest) MarshalJSON() ([]byte, error) {
	raw := struct {
		Type        entities.ProposalType    `json:"type"`
		Author      string                   `json:"author"`
		Title       string                   `json:"title"`
		Description string                   `json:"description"`
		Details     entities.ProposalDetails `json:"details,omitempty"`
	}{r.Type, r.Author, r.Title, r.Description, r.Details}
	return json.Marshal(raw)
}

// ProposalSort são as abas da página de propostas.
type ProposalSort string

const (
	SortMostVoted ProposalSort = "votes"
	SortRecent    ProposalSort = "recent"
	SortValidated ProposalSort = "validated"
)

// ############################################################
// ################ EVENTOS DE DOMÍNIO ########################
// ############################################################

const (
	EventProposalSubmitted = "proposal.submitted"
	EventProposalVoted     = "proposal.voted"
	EventProposalInReview  = "proposal.in_review"
	EventProposalValidated = "proposal.validated"
	EventProposalRejected  = "proposal.rejected"
	EventEntityCreated     = "entity.created"
	EventEntityUpdated     = "entity.updated"
	EventEntityDeleted     = "entity.deleted"
)

// DomainEvent é o envelope publicado no tópico de eventos.
type DomainEvent struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data,omitempty"`
}
