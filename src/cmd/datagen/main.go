// Command datagen gera propostas falsas para testar o fluxo de entrada.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"badajozrespira/src/bootstrap"
	"badajozrespira/src/helper/env"
	"badajozrespira/src/infra/kafka"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	count        int
	batchSize    int
	interval     time.Duration
	invalidRatio float64
	seed         int64
}

func (o *options) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.count, "count", "n", 100, "Number of proposals to generate")
	cmd.Flags().IntVar(&o.batchSize, "batch", 10, "Proposals per batch")
	cmd.Flags().DurationVar(&o.interval, "interval", time.Second, "Pause between batches")
	cmd.Flags().Float64Var(&o.invalidRatio, "invalid-ratio", 0, "Share of proposals sent without a title")
	cmd.Flags().Int64Var(&o.seed, "seed", time.Now().UnixNano(), "Random seed")
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datagen",
		Short: "Fake citizen proposals for Badajoz Respira",
	}

	cmd.AddCommand(intakeCmd(), printCmd())
	return cmd
}

func intakeCmd() *cobra.Command {
	var (
		opts    options
		brokers string
		topic   string
	)

	cmd := &cobra.Command{
		Use:   "intake",
		Short: "Publish fake proposals to the intake topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runIntake(ctx, bootstrap.NewLogger(), opts, brokers, topic)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&brokers, "brokers", env.GetString("KAFKA_BROKERS", "localhost:9092"), "Comma separated Kafka brokers")
	cmd.Flags().StringVar(&topic, "topic", env.GetString("KAFKA_INTAKE_TOPIC", "proposal-intake"), "Intake topic")
	return cmd
}

func printCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print fake proposals as JSON lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := newGenerator(opts.seed, time.Now())
			encoder := json.NewEncoder(cmd.OutOrStdout())
			for _, req := range gen.batch(opts.count, opts.invalidRatio) {
				if err := encoder.Encode(req); err != nil {
					return err
				}
			}
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}

func runIntake(ctx context.Context, logger *slog.Logger, opts options, brokers string, topic string) error {
	client, err := kafka.NewKafkaClient(logger, brokers, "", opts.batchSize)
	if err != nil {
		return err
	}
	defer client.Close()

	gen := newGenerator(opts.seed, time.Now())
	sent := 0
	for sent < opts.count {
		size := min(opts.batchSize, opts.count-sent)

		messages := make([]kafka.Message, 0, size)
		for _, req := range gen.batch(size, opts.invalidRatio) {
			value, err := json.Marshal(req)
			if err != nil {
				return fmt.Errorf("failed to marshal proposal: %w", err)
			}
			messages = append(messages, kafka.Message{
				Key:     fmt.Sprintf("datagen-%d", sent+len(messages)),
				Value:   value,
				Headers: map[string]string{"source_service": "datagen"},
			})
		}

		if err := client.Producer(messages, topic); err != nil {
			return fmt.Errorf("failed to publish batch: %w", err)
		}
		sent += len(messages)
		logger.Info("Batch published", "topic", topic, "batch", len(messages), "sent", sent, "total", opts.count)

		if sent < opts.count {
			select {
			case <-ctx.Done():
				logger.Info("Interrupted", "sent", sent)
				return nil
			case <-time.After(opts.interval):
			}
		}
	}
	return nil
}
