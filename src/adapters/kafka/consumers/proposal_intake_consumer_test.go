package consumers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"badajozrespira/src/adapters/kafka/consumers"
	"badajozrespira/src/domain"
	"badajozrespira/src/domain/entities"
	"badajozrespira/src/infra/fixtures"
	"badajozrespira/src/infra/kafka"
	"badajozrespira/src/repositories"
	"badajozrespira/src/services/events"
	"badajozrespira/src/services/proposals"
)

type recordingSubmitter struct {
	requests []domain.SubmitProposalRequest
	ids      []string
	err      error
}

func (s *recordingSubmitter) SubmitWithID(ctx context.Context, id string, req domain.SubmitProposalRequest) (entities.Proposal, error) {
	if s.err != nil {
		return entities.Proposal{}, s.err
	}
	if req.Title == "" {
		return entities.Proposal{}, domain.NewValidationError("title", "El título es obligatorio.")
	}
	s.requests = append(s.requests, req)
	s.ids = append(s.ids, id)
	return entities.Proposal{ID: id, Title: req.Title}, nil
}

// failingOnceStore falha a primeira gravação da proposta com o título dado.
type failingOnceStore struct {
	*repositories.MemoryStore
	failTitle string
	failed    bool
}

func (s *failingOnceStore) CreateProposal(ctx context.Context, proposal entities.Proposal) (entities.Proposal, bool, error) {
	if proposal.Title == s.failTitle && !s.failed {
		s.failed = true
		return entities.Proposal{}, false, errors.New("connection reset")
	}
	return s.MemoryStore.CreateProposal(ctx, proposal)
}

func intakeMessage(offset int64, value string) kafka.Message {
	return kafka.Message{Topic: "proposal-intake", Partition: 0, Offset: offset, Value: []byte(value)}
}

var _ = Describe("ProposalIntakeConsumer", func() {
	var (
		submitter *recordingSubmitter
		consumer  *consumers.ProposalIntakeConsumer
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		submitter = &recordingSubmitter{}
		consumer = consumers.NewProposalIntakeConsumer(slog.New(slog.NewTextHandler(io.Discard, nil)), submitter)
	})

	It("submits every valid message with its details", func() {
		// ARRANGE
		messages := []kafka.Message{
			{Key: "a", Value: []byte(`{"title":"Más sombra","description":"Toldos en la Plaza Alta"}`)},
			{Key: "b", Value: []byte(`{"type":"resource","title":"Fuente","description":"Nueva","details":{"lat":38.88,"lng":-6.97}}`)},
		}

		// ACT
		err := consumer.HandleMessages(ctx, messages)

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(submitter.requests).To(HaveLen(2))
		Expect(submitter.requests[0].Type).To(Equal(entities.ProposalGeneral))
		Expect(submitter.requests[1].Details).To(BeAssignableToTypeOf(entities.ResourceDetails{}))
	})

	It("skips unreadable and invalid messages without failing the batch", func() {
		messages := []kafka.Message{
			{Key: "broken", Value: []byte(`{not json`)},
			{Key: "untitled", Value: []byte(`{"description":"sin título"}`)},
			{Key: "ok", Value: []byte(`{"title":"Carril bici","description":"Hasta la Granadilla"}`)},
		}

		err := consumer.HandleMessages(ctx, messages)

		Expect(err).NotTo(HaveOccurred())
		Expect(submitter.requests).To(HaveLen(1))
		Expect(submitter.requests[0].Title).To(Equal("Carril bici"))
	})

	It("derives the proposal id from the message position", func() {
		messages := []kafka.Message{
			intakeMessage(7, `{"title":"a","description":"b"}`),
			intakeMessage(8, `{"title":"a","description":"b"}`),
		}

		Expect(consumer.HandleMessages(ctx, messages)).To(Succeed())
		Expect(consumer.HandleMessages(ctx, messages[:1])).To(Succeed())

		Expect(submitter.ids).To(HaveLen(3))
		Expect(submitter.ids[0]).NotTo(Equal(submitter.ids[1]))
		Expect(submitter.ids[2]).To(Equal(submitter.ids[0]))
		Expect(submitter.ids[0]).To(Equal(consumers.IntakeProposalID(messages[0])))
	})

	It("skips messages whose details do not match the type", func() {
		err := consumer.HandleMessages(ctx, []kafka.Message{
			{Key: "bad-type", Value: []byte(`{"type":"petition","title":"x","description":"y"}`)},
			{Key: "bad-details", Value: []byte(`{"type":"general","title":"x","description":"y","details":{"name":"z"}}`)},
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(submitter.requests).To(BeEmpty())
	})

	It("fails the batch when the store is unavailable", func() {
		submitter.err = errors.New("connection reset")

		err := consumer.HandleMessages(ctx, []kafka.Message{
			{Key: "k", Value: []byte(`{"title":"x","description":"y"}`)},
		})

		Expect(err).To(MatchError(ContainSubstring("connection reset")))
	})

	It("ignores empty batches", func() {
		Expect(consumer.HandleMessages(ctx, nil)).To(Succeed())
	})
})

var _ = Describe("ProposalIntakeConsumer redelivery", func() {
	It("does not duplicate proposals saved before a mid-batch failure", func() {
		// ARRANGE
		ctx := context.Background()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		seed, err := fixtures.Load(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))
		Expect(err).NotTo(HaveOccurred())

		store := &failingOnceStore{MemoryStore: repositories.NewMemoryStore(seed), failTitle: "Segunda"}
		service := proposals.NewProposalService(logger, store, events.NewLogPublisher(logger), nil, nil)
		consumer := consumers.NewProposalIntakeConsumer(logger, service)

		before, err := store.ListProposals(ctx)
		Expect(err).NotTo(HaveOccurred())

		batch := []kafka.Message{
			intakeMessage(40, `{"title":"Primera","description":"Más árboles en San Roque"}`),
			intakeMessage(41, `{"title":"Segunda","description":"Bancos a la sombra"}`),
		}

		// ACT
		firstErr := consumer.HandleMessages(ctx, batch)
		replayErr := consumer.HandleMessages(ctx, batch)

		// ASSERT
		Expect(firstErr).To(MatchError(ContainSubstring("connection reset")))
		Expect(replayErr).NotTo(HaveOccurred())

		after, err := store.ListProposals(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(after).To(HaveLen(len(before) + 2))

		titles := map[string]int{}
		for _, p := range after {
			titles[p.Title]++
		}
		Expect(titles["Primera"]).To(Equal(1))
		Expect(titles["Segunda"]).To(Equal(1))
	})
})
