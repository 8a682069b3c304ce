package stubs

import (
	"time"

	"badajozrespira/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type ProposalStub struct {
	proposal entities.Proposal
}

func NewProposalStub() ProposalStub {
	proposal := entities.Proposal{
		ID:          gofakeit.UUID(),
		Type:        entities.ProposalGeneral,
		Author:      gofakeit.Name(),
		Title:       gofakeit.Sentence(5),
		Description: gofakeit.Paragraph(1, 2, 15, " "),
		Votes:       gofakeit.Number(0, 200),
		Status:      entities.StatusPending,
		Date:        gofakeit.PastDate().Format(time.DateOnly),
	}

	return ProposalStub{proposal: proposal}
}

func (s ProposalStub) WithID(id string) ProposalStub {
	s.proposal.ID = id
	return s
}

func (s ProposalStub) WithStatus(status entities.ProposalStatus) ProposalStub {
	s.proposal.Status = status
	return s
}

func (s ProposalStub) WithVotes(votes int) ProposalStub {
	s.proposal.Votes = votes
	return s
}

func (s ProposalStub) WithDate(date string) ProposalStub {
	s.proposal.Date = date
	return s
}

func (s ProposalStub) WithEventDetails(details entities.EventDetails) ProposalStub {
	s.proposal.Type = entities.ProposalEvent
	s.proposal.Details = details
	return s
}

func (s ProposalStub) WithResourceDetails(details entities.ResourceDetails) ProposalStub {
	s.proposal.Type = entities.ProposalResource
	s.proposal.Details = details
	return s
}

func (s ProposalStub) Get() entities.Proposal {
	return s.proposal.Clone()
}
