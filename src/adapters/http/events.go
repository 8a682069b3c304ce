package http

import (
	"net/http"

	"badajozrespira/src/domain/entities"
)

func (s *Server) ListEvents(w http.ResponseWriter, r *http.Request) {
	category := entities.Category(r.URL.Query().Get("category"))

	events, err := s.services.Events.List(r.Context(), category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.services.Events.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var event entities.AgendaEvent
	if !decodeJSON(w, r, &event) {
		return
	}

	created, err := s.services.Events.Create(r.Context(), event)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var event entities.AgendaEvent
	if !decodeJSON(w, r, &event) {
		return
	}

	updated, err := s.services.Events.Update(r.Context(), r.PathValue("id"), event)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Events.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
