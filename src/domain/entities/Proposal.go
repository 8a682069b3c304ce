package entities

import (
	"encoding/json"
	"errors"
	"fmt"
)

type ProposalType string

const (
	ProposalGeneral  ProposalType = "general"
	ProposalEvent    ProposalType = "event"
	ProposalResource ProposalType = "resource"
)

func (t ProposalType) IsValid() bool {
	return t == ProposalGeneral || t == ProposalEvent || t == ProposalResource
}

type ProposalStatus string

const (
	StatusPending   ProposalStatus = "Pendiente"
	StatusInReview  ProposalStatus = "En Revisión"
	StatusValidated ProposalStatus = "Validada"
	StatusRejected  ProposalStatus = "Rechazada"
)

// IsOpen reports whether the proposal can still be validated or rejected.
func (s ProposalStatus) IsOpen() bool {
	return s == StatusPending || s == StatusInReview
}

var (
	ErrUnknownProposalType = errors.New("unknown proposal type")
	ErrDetailsMismatch     = errors.New("proposal details do not match proposal type")
)

// ProposalDetails é a união etiquetada dos formulários de evento e recurso.
// As únicas implementações são EventDetails e ResourceDetails.
type ProposalDetails interface {
	ProposalType() ProposalType
}

// EventDetails é o rascunho parcial de um AgendaEvent enviado pelo cidadão.
type EventDetails struct {
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	Date        string   `json:"date,omitempty" yaml:"date,omitempty"`
	StartTime   string   `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	EndTime     string   `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	Location    string   `json:"location,omitempty" yaml:"location,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Category    Category `json:"category,omitempty" yaml:"category,omitempty"`
	Organizer   string   `json:"organizer,omitempty" yaml:"organizer,omitempty"`
	Email       string   `json:"email,omitempty" yaml:"email,omitempty"`
	Phone       string   `json:"phone,omitempty" yaml:"phone,omitempty"`
	Image       string   `json:"image,omitempty" yaml:"image,omitempty"`
	Lat         *float64 `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty" yaml:"lng,omitempty"`
}

func (EventDetails) ProposalType() ProposalType { return ProposalEvent }

// ResourceDetails é o rascunho parcial de um Resource enviado pelo cidadão.
type ResourceDetails struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Category    Category `json:"category,omitempty" yaml:"category,omitempty"`
	Address     string   `json:"address,omitempty" yaml:"address,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Lat         *float64 `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty" yaml:"lng,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Email       string   `json:"email,omitempty" yaml:"email,omitempty"`
	Phone       string   `json:"phone,omitempty" yaml:"phone,omitempty"`
	Image       string   `json:"image,omitempty" yaml:"image,omitempty"`
}

func (ResourceDetails) ProposalType() ProposalType { return ProposalResource }

type Proposal struct {
	ID          string          `json:"id"`
	Type        ProposalType    `json:"type"`
	Author      string          `json:"author"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Votes       int             `json:"votes"`
	Status      ProposalStatus  `json:"status"`
	Date        string          `json:"date"`
	AISummary   string          `json:"aiSummary,omitempty"`
	Details     ProposalDetails `json:"details,omitempty"`
}

// CheckDetails garante que o payload de Details corresponde ao Type.
func CheckDetails(t ProposalType, details ProposalDetails) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownProposalType, t)
	}
	if details == nil {
		return nil
	}
	if details.ProposalType() != t {
		return fmt.Errorf("%w: %s proposal carries %s details", ErrDetailsMismatch, t, details.ProposalType())
	}
	return nil
}

// EventDetails returns the event payload, if any.
func (p Proposal) EventDetails() (EventDetails, bool) {
	d, ok := p.Details.(EventDetails)
	return d, ok
}

// ResourceDetails returns the resource payload, if any.
func (p Proposal) ResourceDetails() (ResourceDetails, bool) {
	d, ok := p.Details.(ResourceDetails)
	return d, ok
}

// Clone returns a copy that shares no mutable state with p.
func (p Proposal) Clone() Proposal {
	c := p
	if d, ok := p.Details.(ResourceDetails); ok {
		d.Tags = append([]string(nil), d.Tags...)
		c.Details = d
	}
	return c
}

type proposalJSON struct {
	ID          string          `json:"id"`
	Type        ProposalType    `json:"type"`
	Author      string          `json:"author"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Votes       int             `json:"votes"`
	Status      ProposalStatus  `json:"status"`
	Date        string          `json:"date"`
	AISummary   string          `json:"aiSummary,omitempty"`
	Details     json.RawMessage `json:"details,omitempty"`
}

func (p *Proposal) UnmarshalJSON(data []byte) error {
	var raw proposalJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	details, err := DecodeDetails(raw.Type, raw.Details)
	if err != nil {
		return err
	}

	*p = Proposal{
		ID:          raw.ID,
		Type:        raw.Type,
		Author:      raw.Author,
		Title:       raw.Title,
		Description: raw.Description,
		Votes:       raw.Votes,
		Status:      raw.Status,
		Date:        raw.Date,
		AISummary:   raw.AISummary,
		Details:     details,
	}
	return nil
}

// DecodeDetails decodifica o JSON de details de acordo com o tipo da proposta.
// Uma proposta general não aceita details.
func DecodeDetails(t ProposalType, raw json.RawMessage) (ProposalDetails, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProposalType, t)
	}

	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	switch t {
	case ProposalEvent:
		var d EventDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("invalid event details: %w", err)
		}
		return d, nil
	case ProposalResource:
		var d ResourceDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("invalid resource details: %w", err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: general proposals carry no details", ErrDetailsMismatch)
	}
}
