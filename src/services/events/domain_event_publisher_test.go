package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"badajozrespira/src/domain"
	"badajozrespira/src/infra/kafka"
	"badajozrespira/src/services/events"
	"badajozrespira/src/test_artefacts/comparer"
)

func headerValue(msg *sarama.ProducerMessage, key string) string {
	for _, h := range msg.Headers {
		if string(h.Key) == key {
			return string(h.Value)
		}
	}
	return ""
}

var _ = Describe("DomainEventPublisher", func() {
	var (
		producer  *mocks.SyncProducer
		publisher *events.DomainEventPublisher
		logger    *slog.Logger
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		producer = mocks.NewSyncProducer(GinkgoT(), sarama.NewConfig())
		client := kafka.NewKafkaProducerClient(logger, producer)
		publisher = events.NewDomainEventPublisher(logger, client, "proposal-events")
	})

	AfterEach(func() {
		_ = producer.Close()
	})

	Context("when publishing a validated proposal", func() {
		It("keys the message by entity and sets the filtering headers", func() {
			// ARRANGE
			event := events.NewDomainEvent(domain.EventProposalValidated, "proposal", "p3", map[string]string{"promoted": "e-1"})

			var sent *sarama.ProducerMessage
			producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
				sent = msg
				return nil
			})

			// ACT
			err := publisher.Publish(ctx, event)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(sent.Topic).To(Equal("proposal-events"))

			key, _ := sent.Key.Encode()
			Expect(string(key)).To(Equal("p3"))
			Expect(headerValue(sent, "event_type")).To(Equal(domain.EventProposalValidated))
			Expect(headerValue(sent, "entity_type")).To(Equal("proposal"))
			Expect(headerValue(sent, "event_id")).To(Equal(event.EventID))
			Expect(headerValue(sent, "schema_version")).To(Equal("v1"))

			value, _ := sent.Value.Encode()
			var decoded domain.DomainEvent
			Expect(json.Unmarshal(value, &decoded)).To(Succeed())
			Expect(decoded.EntityID).To(Equal("p3"))
			Expect(string(decoded.Data)).To(MatchJSON(`{"promoted":"e-1"}`))
		})
	})

	Context("when the broker rejects the message", func() {
		It("returns a wrapped error", func() {
			producer.ExpectSendMessageAndFail(errors.New("broker down"))

			err := publisher.Publish(ctx, events.NewDomainEvent(domain.EventProposalVoted, "proposal", "p1", nil))

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("proposal-events"))
		})
	})

	Context("when there is nothing to publish", func() {
		It("does not touch the producer", func() {
			Expect(publisher.Publish(ctx)).To(Succeed())
		})
	})
})

var _ = Describe("NewDomainEvent", func() {
	It("generates distinct ids and leaves Data empty without payload", func() {
		a := events.NewDomainEvent(domain.EventEntityDeleted, "event", "1", nil)
		b := events.NewDomainEvent(domain.EventEntityDeleted, "event", "1", nil)

		Expect(a.EventID).NotTo(Equal(b.EventID))
		Expect(a.Data).To(BeEmpty())
		Expect(a.OccurredAt).NotTo(BeZero())
	})

	It("wraps the payload in a UTC envelope", func() {
		got := events.NewDomainEvent(domain.EventProposalVoted, "proposal", "p3", map[string]int{"votes": 57})

		want := domain.DomainEvent{
			EventType:  domain.EventProposalVoted,
			EntityType: "proposal",
			EntityID:   "p3",
			OccurredAt: time.Now().UTC(),
			Data:       json.RawMessage(`{ "votes": 57 }`),
		}
		Expect(cmp.Diff(want, got, comparer.DomainEvent(time.Second))).To(BeEmpty())
		Expect(got.OccurredAt.Location()).To(Equal(time.UTC))
	})
})
