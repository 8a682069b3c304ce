// Package bootstrap reúne os providers fx compartilhados pelos binários.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	apihttp "badajozrespira/src/adapters/http"
	"badajozrespira/src/helper/env"
	"badajozrespira/src/infra/fixtures"
	"badajozrespira/src/infra/gemini"
	"badajozrespira/src/infra/kafka"
	"badajozrespira/src/infra/metrics"
	"badajozrespira/src/infra/postgres"
	"badajozrespira/src/infra/redis"
	"badajozrespira/src/repositories"
	"badajozrespira/src/services/assistant"
	"badajozrespira/src/services/events"
	"badajozrespira/src/services/proposals"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Core fornece logger, métricas, armazenamento, publisher de eventos,
// assistente e o serviço de propostas.
var Core = fx.Options(
	fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
		return &fxevent.SlogLogger{Logger: logger}
	}),
	fx.Provide(
		NewLogger,
		metrics.New,
		newStore,
		newKafkaClient,
		newPublisher,
		newAssistant,
		newProposalService,
	),
)

func NewLogger() *slog.Logger {
	logLevel := env.GetString("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

type storeResult struct {
	fx.Out

	Store  repositories.Store
	Health apihttp.HealthCheck
}

func newStore(lc fx.Lifecycle, logger *slog.Logger) (storeResult, error) {
	seed, err := fixtures.Load(time.Now())
	if err != nil {
		return storeResult{}, fmt.Errorf("failed to load fixtures: %w", err)
	}

	backend := env.GetString("STORE_BACKEND", StoreMemory)
	switch backend {
	case StoreMemory:
		logger.Info("Using in-memory store", "events", len(seed.Events), "proposals", len(seed.Proposals))
		return storeResult{Store: repositories.NewMemoryStore(seed)}, nil

	case StorePostgres:
		return newPostgresStore(lc, logger, seed)

	default:
		return storeResult{}, fmt.Errorf("unknown STORE_BACKEND %q", backend)
	}
}

func newPostgresStore(lc fx.Lifecycle, logger *slog.Logger, seed fixtures.Seed) (storeResult, error) {
	dbWriteHost := env.MustGetString("DB_WRITE_HOST")
	dbReadHost := env.GetString("DB_READ_HOST", dbWriteHost)
	dbReadPort := env.GetString("DB_READ_PORT", "5432")
	dbWritePort := env.GetString("DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	client, err := postgres.NewReadWriteClient(dbReadHost, dbWriteHost, dbReadPort, dbWritePort, dbname, dbUser, dbPassword, maxConnections)
	if err != nil {
		return storeResult{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.EnsureSchema(ctx, client.GetWritePool()); err != nil {
		client.Close()
		return storeResult{}, err
	}

	pgStore := repositories.NewPostgresStore(client.GetReadPool(), client.GetWritePool())
	if err := pgStore.SeedIfEmpty(ctx, seed); err != nil {
		client.Close()
		return storeResult{}, err
	}

	result := storeResult{Store: pgStore, Health: client.Ping}

	var cache *redis.RedisClient
	if redisHosts := env.GetString("REDIS_HOSTS"); redisHosts != "" {
		redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 50)
		redisDefaultTTLSeconds := env.GetInt("REDIS_DEFAULT_TTL_SECONDS", 120)
		redisDefaultTTL := time.Duration(redisDefaultTTLSeconds) * time.Second

		cache = redis.NewRedisClient(redisHosts, redisPoolSize, redisDefaultTTL)
		result.Store = repositories.NewCachedStore(pgStore, cache, logger)
		result.Health = func(ctx context.Context) error {
			if err := client.Ping(ctx); err != nil {
				return err
			}
			return cache.HealthCheck(ctx)
		}
		logger.Info("Catalog cache enabled", "hosts", redisHosts, "ttl", redisDefaultTTL)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing database connections...")
			client.Close()
			if cache != nil {
				return cache.Close()
			}
			return nil
		},
	})

	logger.Info("Using postgres store", "write_host", dbWriteHost, "read_host", dbReadHost)
	return result, nil
}

// newKafkaClient devolve nil quando KAFKA_BROKERS não está definido. O
// consumer group só é criado se KAFKA_INTAKE_CONSUMER_GROUP_ID existir.
func newKafkaClient(lc fx.Lifecycle, logger *slog.Logger) (*kafka.KafkaClient, error) {
	brokers := env.GetString("KAFKA_BROKERS")
	if brokers == "" {
		return nil, nil
	}
	groupID := env.GetString("KAFKA_INTAKE_CONSUMER_GROUP_ID")
	batchSize := env.GetInt("KAFKA_BATCH_SIZE", 50)

	client, err := kafka.NewKafkaClient(logger, brokers, groupID, batchSize)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down Kafka client...")
			if err := client.Close(); err != nil {
				logger.Error("Failed to close Kafka client", "error", err)
				return err
			}
			logger.Info("Kafka client shut down gracefully")
			return nil
		},
	})
	return client, nil
}

func newPublisher(logger *slog.Logger, client *kafka.KafkaClient) events.Publisher {
	if client == nil {
		logger.Info("KAFKA_BROKERS not set, domain events will only be logged")
		return events.NewLogPublisher(logger)
	}
	return events.NewDomainEventPublisher(logger, client, env.GetString("KAFKA_EVENTS_TOPIC", "proposal-events"))
}

func newAssistant(logger *slog.Logger, m *metrics.Metrics) *assistant.Assistant {
	apiKey := env.GetString("API_KEY")
	if apiKey == "" {
		logger.Warn("API_KEY not set, assistant disabled")
		return assistant.NewAssistant(logger, nil, m)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := gemini.NewClient(ctx, apiKey, env.GetString("GEMINI_MODEL", gemini.DefaultModel))
	if err != nil {
		logger.Error("Failed to create Gemini client, assistant disabled", "error", err)
		return assistant.NewAssistant(logger, nil, m)
	}
	return assistant.NewAssistant(logger, client, m)
}

func newProposalService(
	logger *slog.Logger,
	store repositories.Store,
	publisher events.Publisher,
	ai *assistant.Assistant,
	m *metrics.Metrics,
) *proposals.ProposalService {
	return proposals.NewProposalService(logger, store, publisher, ai, m)
}
