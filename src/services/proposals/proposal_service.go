package proposals

import (
	"context"
	"log/slog"
	"time"

	"badajozrespira/src/domain"
	"badajozrespira/src/repositories"
	"badajozrespira/src/services/events"

	"github.com/google/uuid"
)

const entityTypeProposal = "proposal"

// Summarizer é implementado por *assistant.Assistant.
type Summarizer interface {
	SummarizeProposal(ctx context.Context, title string, description string) string
}

type Recorder interface {
	ProposalTransition(action string, outcome string)
}

type noopRecorder struct{}

func (noopRecorder) ProposalTransition(string, string) {}

type ProposalService struct {
	logger     *slog.Logger
	repository repositories.ProposalRepository
	publisher  events.Publisher
	summarizer Summarizer
	recorder   Recorder
	now        func() time.Time
	newID      func() string
}

func NewProposalService(
	logger *slog.Logger,
	repository repositories.ProposalRepository,
	publisher events.Publisher,
	summarizer Summarizer,
	recorder Recorder,
) *ProposalService {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &ProposalService{
		logger:     logger,
		repository: repository,
		publisher:  publisher,
		summarizer: summarizer,
		recorder:   recorder,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// WithClock troca o relógio usado para datar propostas novas.
func (s *ProposalService) WithClock(now func() time.Time) *ProposalService {
	s.now = now
	return s
}

func (s *ProposalService) WithIDGenerator(newID func() string) *ProposalService {
	s.newID = newID
	return s
}

func (s *ProposalService) today() string {
	return s.now().Format(time.DateOnly)
}

// publish nunca falha a operação que já foi gravada.
func (s *ProposalService) publish(ctx context.Context, evts ...domain.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evts...); err != nil {
		s.logger.Warn("Failed to publish proposal events", "error", err, "count", len(evts))
	}
}
