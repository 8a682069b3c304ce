package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"badajozrespira/src/domain"
	"badajozrespira/src/infra/kafka"

	"github.com/google/uuid"
)

const (
	sourceService = "badajoz-respira-api"
	schemaVersion = "v1"
)

// Publisher publica eventos de domínio do fluxo de propostas e do catálogo.
type Publisher interface {
	Publish(ctx context.Context, events ...domain.DomainEvent) error
}

// NewDomainEvent monta o envelope com id e horário novos. data é
// serializado como está; um data nil gera um evento sem payload.
func NewDomainEvent(eventType string, entityType string, entityID string, data any) domain.DomainEvent {
	event := domain.DomainEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		EntityType: entityType,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}

	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			event.Data = raw
		}
	}
	return event
}

type kafkaProducer interface {
	Producer(messages []kafka.Message, topic string) error
}

type DomainEventPublisher struct {
	logger      *slog.Logger
	kafkaClient kafkaProducer
	topic       string
}

func NewDomainEventPublisher(
	logger *slog.Logger,
	kafkaClient *kafka.KafkaClient,
	topic string,
) *DomainEventPublisher {
	return &DomainEventPublisher{
		logger:      logger,
		kafkaClient: kafkaClient,
		topic:       topic,
	}
}

// Publish publica um lote de eventos no Kafka, particionado pela entidade.
func (p *DomainEventPublisher) Publish(ctx context.Context, events ...domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	kafkaMessages := make([]kafka.Message, 0, len(events))

	for _, event := range events {
		eventBytes, err := json.Marshal(event)
		if err != nil {
			p.logger.Error("Failed to marshal domain event",
				"error", err,
				"event_id", event.EventID,
				"entity_id", event.EntityID)
			continue
		}

		kafkaMessages = append(kafkaMessages, kafka.Message{
			Key:     event.EntityID, // Partition by entity for ordering
			Value:   eventBytes,
			Headers: createEventHeaders(event),
		})
	}

	if err := p.kafkaClient.Producer(kafkaMessages, p.topic); err != nil {
		p.logger.Error("Failed to publish domain events to Kafka",
			"error", err,
			"topic", p.topic,
			"events_count", len(kafkaMessages))
		return fmt.Errorf("failed to publish domain events to topic %s: %w", p.topic, err)
	}

	p.logger.Info("Published domain events",
		"topic", p.topic,
		"events_count", len(kafkaMessages))

	return nil
}

// createEventHeaders cria os headers usados pelos consumidores para filtrar
// eventos sem decodificar o corpo.
func createEventHeaders(event domain.DomainEvent) map[string]string {
	headers := map[string]string{
		"event_type":     event.EventType,
		"source_service": sourceService,
		"schema_version": schemaVersion,
		"event_id":       event.EventID,
	}

	if event.EntityType != "" {
		headers["entity_type"] = event.EntityType
	}

	return headers
}

// LogPublisher é usado quando KAFKA_BROKERS não está configurado.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...domain.DomainEvent) error {
	for _, event := range events {
		p.logger.Info("Domain event",
			"event_type", event.EventType,
			"entity_type", event.EntityType,
			"entity_id", event.EntityID,
			"event_id", event.EventID)
	}
	return nil
}
