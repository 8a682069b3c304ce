package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	apihttp "badajozrespira/src/adapters/http"
	"badajozrespira/src/bootstrap"
	"badajozrespira/src/helper/env"
	"badajozrespira/src/infra/metrics"
	"badajozrespira/src/infra/nominatim"
	"badajozrespira/src/repositories"
	"badajozrespira/src/services/assistant"
	"badajozrespira/src/services/catalog"
	"badajozrespira/src/services/events"
	"badajozrespira/src/services/geocoding"
	"badajozrespira/src/services/proposals"

	"go.uber.org/fx"
)

func main() {
	log.SetOutput(os.Stdout)
	log.Println("Starting Badajoz Respira API with Uber Fx...")

	app := fx.New(
		bootstrap.Core,

		// Providers
		fx.Provide(
			newEventService,
			newResourceService,
			newBlogService,
			newUserService,
			newGeocodingService,
			newServer,
		),

		// Invocations
		fx.Invoke(registerServerHooks),
	)

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wait for app to exit gracefully
	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}
}

func newEventService(logger *slog.Logger, store repositories.Store, publisher events.Publisher) *catalog.EventService {
	return catalog.NewEventService(logger, store, publisher)
}

func newResourceService(logger *slog.Logger, store repositories.Store, publisher events.Publisher) *catalog.ResourceService {
	return catalog.NewResourceService(logger, store, publisher)
}

func newBlogService(logger *slog.Logger, store repositories.Store, publisher events.Publisher) *catalog.BlogService {
	return catalog.NewBlogService(logger, store, publisher)
}

func newUserService(logger *slog.Logger, store repositories.Store, publisher events.Publisher) *catalog.UserService {
	return catalog.NewUserService(logger, store, publisher)
}

func newGeocodingService(logger *slog.Logger, m *metrics.Metrics) *geocoding.GeocodingService {
	baseURL := env.GetString("GEOCODER_BASE_URL", nominatim.DefaultBaseURL)
	userAgent := env.GetString("GEOCODER_USER_AGENT", "badajoz-respira/1.0")
	timeout := env.GetDuration("GEOCODER_TIMEOUT", 10*time.Second)

	return geocoding.NewGeocodingService(logger, nominatim.NewClient(baseURL, userAgent, timeout), m)
}

func newServer(
	logger *slog.Logger,
	eventService *catalog.EventService,
	resourceService *catalog.ResourceService,
	blogService *catalog.BlogService,
	userService *catalog.UserService,
	proposalService *proposals.ProposalService,
	geocodingService *geocoding.GeocodingService,
	ai *assistant.Assistant,
	m *metrics.Metrics,
	healthCheck apihttp.HealthCheck,
) *apihttp.Server {
	addr := env.GetString("SERVER_ADDR", ":8080")
	staticDir := env.GetString("STATIC_DIR", "dist")

	return apihttp.NewServer(logger, addr, staticDir, apihttp.Services{
		Events:    eventService,
		Resources: resourceService,
		Blog:      blogService,
		Users:     userService,
		Proposals: proposalService,
		Geocoder:  geocodingService,
		Assistant: ai,
	}, m, healthCheck)
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, shutdowner fx.Shutdowner, logger *slog.Logger, srv *apihttp.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Start server in a separate goroutine
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					logger.Error("Server failed", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Server forced to shutdown", "error", err)
				return err
			}
			logger.Info("Server exited gracefully")
			return nil
		},
	})
}
