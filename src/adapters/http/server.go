package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"badajozrespira/src/infra/metrics"
	"badajozrespira/src/services/assistant"
	"badajozrespira/src/services/catalog"
	"badajozrespira/src/services/geocoding"
	"badajozrespira/src/services/proposals"
)

// Services são as dependências de domínio expostas pela API.
type Services struct {
	Events    *catalog.EventService
	Resources *catalog.ResourceService
	Blog      *catalog.BlogService
	Users     *catalog.UserService
	Proposals *proposals.ProposalService
	Geocoder  *geocoding.GeocodingService
	Assistant *assistant.Assistant
}

// HealthCheck é chamado pelo /healthz; nil significa sempre saudável.
type HealthCheck func(ctx context.Context) error

// Server representa o servidor HTTP da API e do SPA
type Server struct {
	logger      *slog.Logger
	server      *http.Server
	mux         *http.ServeMux
	addr        string
	staticDir   string
	services    Services
	metrics     *metrics.Metrics
	healthCheck HealthCheck
}

// NewServer cria uma nova instância do servidor
func NewServer(
	logger *slog.Logger,
	addr string,
	staticDir string,
	services Services,
	m *metrics.Metrics,
	healthCheck HealthCheck,
) *Server {
	server := &Server{
		mux:         http.NewServeMux(),
		addr:        addr,
		logger:      logger,
		staticDir:   staticDir,
		services:    services,
		metrics:     m,
		healthCheck: healthCheck,
	}

	server.server = &http.Server{
		Addr:         addr,
		Handler:      server.withObservability(server.mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// Agenda
	s.mux.HandleFunc("GET /v1/events", s.ListEvents)
	s.mux.HandleFunc("GET /v1/events/{id}", s.GetEvent)
	s.mux.HandleFunc("POST /v1/admin/events", s.CreateEvent)
	s.mux.HandleFunc("PUT /v1/admin/events/{id}", s.UpdateEvent)
	s.mux.HandleFunc("DELETE /v1/admin/events/{id}", s.DeleteEvent)

	// Mapa de recursos
	s.mux.HandleFunc("GET /v1/resources", s.ListResources)
	s.mux.HandleFunc("GET /v1/resources/{id}", s.GetResource)
	s.mux.HandleFunc("POST /v1/admin/resources", s.CreateResource)
	s.mux.HandleFunc("PUT /v1/admin/resources/{id}", s.UpdateResource)
	s.mux.HandleFunc("DELETE /v1/admin/resources/{id}", s.DeleteResource)

	// Blog e editor de blocos
	s.mux.HandleFunc("GET /v1/posts", s.ListPosts)
	s.mux.HandleFunc("GET /v1/posts/{id}", s.GetPost)
	s.mux.HandleFunc("POST /v1/admin/posts", s.CreatePost)
	s.mux.HandleFunc("PUT /v1/admin/posts/{id}", s.UpdatePost)
	s.mux.HandleFunc("DELETE /v1/admin/posts/{id}", s.DeletePost)
	s.mux.HandleFunc("POST /v1/admin/posts/{id}/blocks", s.AddBlock)
	s.mux.HandleFunc("POST /v1/admin/posts/{id}/blocks/move", s.MoveBlock)
	s.mux.HandleFunc("PATCH /v1/admin/posts/{id}/blocks/{blockID}", s.UpdateBlock)
	s.mux.HandleFunc("POST /v1/admin/posts/{id}/blocks/{blockID}/image", s.AttachImage)
	s.mux.HandleFunc("DELETE /v1/admin/posts/{id}/blocks/{index}", s.DeleteBlock)

	// Propostas cidadãs
	s.mux.HandleFunc("GET /v1/proposals", s.ListProposals)
	s.mux.HandleFunc("GET /v1/proposals/{id}", s.GetProposal)
	s.mux.HandleFunc("POST /v1/proposals", s.SubmitProposal)
	s.mux.HandleFunc("POST /v1/proposals/{id}/vote", s.VoteProposal)
	s.mux.HandleFunc("POST /v1/proposals/{id}/summary", s.SummarizeProposal)
	s.mux.HandleFunc("POST /v1/admin/proposals/{id}/validate", s.ValidateProposal)
	s.mux.HandleFunc("POST /v1/admin/proposals/{id}/reject", s.RejectProposal)
	s.mux.HandleFunc("POST /v1/admin/proposals/{id}/review", s.ReviewProposal)

	// Serviços externos
	s.mux.HandleFunc("GET /v1/geocode", s.Geocode)
	s.mux.HandleFunc("POST /v1/assistant", s.Ask)

	// Usuários
	s.mux.HandleFunc("POST /v1/login", s.Login)
	s.mux.HandleFunc("GET /v1/admin/users", s.ListUsers)
	s.mux.HandleFunc("POST /v1/admin/users", s.CreateUser)
	s.mux.HandleFunc("DELETE /v1/admin/users/{id}", s.DeleteUser)

	// Operação
	s.mux.HandleFunc("GET /healthz", s.Healthz)
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}

	// Qualquer outra rota da API é 404 em JSON; o resto é do SPA.
	s.mux.HandleFunc("GET /v1/", s.NotFound)
	s.mux.Handle("GET /", newSPAHandler(s.staticDir))
}

// Handler expõe o handler completo (usado nos testes).
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Server started", "addr", s.addr, "static_dir", s.staticDir)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	if s.healthCheck != nil {
		if err := s.healthCheck(r.Context()); err != nil {
			s.logger.Error("Health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "route not found"})
}
