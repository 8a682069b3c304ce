package http

import (
	"net/http"
	"runtime/debug"
	"time"

	"badajozrespira/src/domain"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withObservability registra latência e status por padrão de rota e
// transforma panics em 500.
func (s *Server) withObservability(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if p := recover(); p != nil {
				s.logger.Error("Panic serving request", "panic", p, "path", r.URL.Path, "stack", string(debug.Stack()))
				writeJSON(rec, http.StatusInternalServerError, errorResponse{Error: domain.ErrUnavailableServer.Error()})
			}

			elapsed := time.Since(start)
			// r.Pattern é preenchido pelo ServeMux; vazio quando nada casou.
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			if s.metrics != nil {
				s.metrics.ObserveHTTP(route, rec.status, elapsed)
			}
			s.logger.Debug("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", rec.status,
				"duration_ms", elapsed.Milliseconds())
		}()

		next.ServeHTTP(rec, r)
	})
}
