package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"badajozrespira/src/adapters/kafka/consumers"
	"badajozrespira/src/bootstrap"
	"badajozrespira/src/helper/env"
	"badajozrespira/src/infra/kafka"
	"badajozrespira/src/services/proposals"

	"go.uber.org/fx"
)

func main() {
	log.SetOutput(os.Stdout)
	log.Println("Starting Proposal Intake Consumer with Uber Fx...")

	app := fx.New(
		bootstrap.Core,

		// Providers
		fx.Provide(newProposalIntakeConsumer),

		// Invocations
		fx.Invoke(startConsumer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start consumer application: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Shutting down proposal intake consumer...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}

	log.Println("Proposal intake consumer shutdown complete")
}

func newProposalIntakeConsumer(logger *slog.Logger, service *proposals.ProposalService) *consumers.ProposalIntakeConsumer {
	return consumers.NewProposalIntakeConsumer(logger, service)
}

func startConsumer(
	lc fx.Lifecycle,
	logger *slog.Logger,
	kafkaClient *kafka.KafkaClient,
	intakeConsumer *consumers.ProposalIntakeConsumer,
) error {
	if kafkaClient == nil {
		return errors.New("KAFKA_BROKERS must be set for the intake consumer")
	}
	if env.GetString("KAFKA_INTAKE_CONSUMER_GROUP_ID") == "" {
		return errors.New("KAFKA_INTAKE_CONSUMER_GROUP_ID must be set for the intake consumer")
	}

	// O ctx do OnStart expira junto com o timeout de inicialização.
	consumeCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			topic := env.GetString("KAFKA_INTAKE_TOPIC", "proposal-intake")

			go func() {
				if err := intakeConsumer.Start(consumeCtx, kafkaClient, topic); err != nil {
					logger.Error("Consumer failed", "error", err)
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return nil
		},
	})
	return nil
}
