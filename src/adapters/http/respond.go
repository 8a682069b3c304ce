package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"badajozrespira/src/domain"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("ERROR: Failed to write JSON response: %v", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Message, Field: validationErr.Field})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

// writeError traduz os erros de domínio em status HTTP. Erros inesperados
// são logados e respondidos com uma mensagem genérica.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Message, Field: validationErr.Field})
	case errors.Is(err, domain.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: domain.ErrUserNotFound.Error()})
	case errors.Is(err, domain.ErrProposalNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: domain.ErrProposalNotFound.Error()})
	case errors.Is(err, domain.ErrEntityNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: domain.ErrEntityNotFound.Error()})
	case errors.Is(err, domain.ErrProposalNotPending):
		writeJSON(w, http.StatusConflict, errorResponse{Error: domain.ErrProposalNotPending.Error()})
	case errors.Is(err, domain.ErrNoGeocodeResults):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: domain.ErrNoGeocodeResults.Error()})
	case errors.Is(err, domain.ErrGeocoderUnavailable):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: domain.ErrGeocoderUnavailable.Error()})
	default:
		s.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: domain.ErrUnavailableServer.Error()})
	}
}

func pathIndex(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, fmt.Sprintf("Invalid %s: %q", name, raw))
	}
	return index, nil
}
