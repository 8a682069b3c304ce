package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"badajozrespira/src/domain"
	"badajozrespira/src/domain/entities"
	"badajozrespira/src/infra/kafka"

	"github.com/google/uuid"
)

// intakeNamespace gera ids de proposta estáveis a partir da posição da
// mensagem no log.
var intakeNamespace = uuid.MustParse("6f1c2a7e-4b1d-5c3e-9a8f-2d7b0e4c1a95")

// Submitter é implementado por *proposals.ProposalService.
type Submitter interface {
	SubmitWithID(ctx context.Context, id string, req domain.SubmitProposalRequest) (entities.Proposal, error)
}

// IntakeProposalID é o id da proposta criada a partir de msg. Uma mensagem
// reentregue gera o mesmo id, então o reprocessamento de um lote não
// duplica propostas.
func IntakeProposalID(msg kafka.Message) string {
	ref := fmt.Sprintf("%s/%d/%d", msg.Topic, msg.Partition, msg.Offset)
	return uuid.NewSHA1(intakeNamespace, []byte(ref)).String()
}

// ProposalIntakeConsumer recebe propostas enviadas por canais externos
// (formulários de parceiros, importações) com o mesmo corpo do POST /v1/proposals.
type ProposalIntakeConsumer struct {
	logger    *slog.Logger
	submitter Submitter
}

func NewProposalIntakeConsumer(logger *slog.Logger, submitter Submitter) *ProposalIntakeConsumer {
	return &ProposalIntakeConsumer{
		logger:    logger,
		submitter: submitter,
	}
}

func (c *ProposalIntakeConsumer) Start(ctx context.Context, kafkaClient *kafka.KafkaClient, topic string) error {
	c.logger.Info("Starting proposal intake consumer", "topic", topic)

	handler := func(messages []kafka.Message) error {
		return c.HandleMessages(ctx, messages)
	}

	return kafkaClient.Consumer(ctx, handler, topic)
}

// HandleMessages grava cada mensagem como proposta. Mensagens ilegíveis ou
// inválidas são descartadas; falhas de armazenamento devolvem erro para que
// o lote não seja confirmado. As mensagens já gravadas antes da falha são
// reconhecidas pelo id na reentrega.
func (c *ProposalIntakeConsumer) HandleMessages(ctx context.Context, messages []kafka.Message) error {
	if len(messages) == 0 {
		return nil
	}

	c.logger.Info("Processing intake batch", "count", len(messages))

	accepted, skipped := 0, 0
	for _, msg := range messages {
		var req domain.SubmitProposalRequest
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			var validationErr *domain.ValidationError
			if errors.As(err, &validationErr) {
				c.logger.Warn("Skipping invalid intake proposal",
					"key", msg.Key,
					"field", validationErr.Field,
					"reason", validationErr.Message)
				skipped++
				continue
			}
			c.logger.Warn("Skipping unreadable intake message",
				"error", err,
				"key", msg.Key,
				"value", string(msg.Value))
			skipped++
			continue
		}

		proposal, err := c.submitter.SubmitWithID(ctx, IntakeProposalID(msg), req)
		if err != nil {
			var validationErr *domain.ValidationError
			if errors.As(err, &validationErr) {
				c.logger.Warn("Skipping invalid intake proposal",
					"key", msg.Key,
					"field", validationErr.Field,
					"reason", validationErr.Message)
				skipped++
				continue
			}

			c.logger.Error("Failed to submit intake proposal", "error", err, "key", msg.Key)
			return fmt.Errorf("failed to submit proposal with key %s: %w", msg.Key, err)
		}

		c.logger.Debug("Intake proposal accepted", "key", msg.Key, "proposal_id", proposal.ID)
		accepted++
	}

	c.logger.Info("Successfully processed intake batch",
		"count", len(messages),
		"accepted", accepted,
		"skipped", skipped)

	return nil
}
