package http

import (
	"net/http"

	"badajozrespira/src/domain/entities"
)

func (s *Server) ListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := s.services.Resources.List(r.Context(), r.URL.Query().Get("tag"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resources)
}

func (s *Server) GetResource(w http.ResponseWriter, r *http.Request) {
	resource, err := s.services.Resources.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resource)
}

func (s *Server) CreateResource(w http.ResponseWriter, r *http.Request) {
	var resource entities.Resource
	if !decodeJSON(w, r, &resource) {
		return
	}

	created, err := s.services.Resources.Create(r.Context(), resource)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) UpdateResource(w http.ResponseWriter, r *http.Request) {
	var resource entities.Resource
	if !decodeJSON(w, r, &resource) {
		return
	}

	updated, err := s.services.Resources.Update(r.Context(), r.PathValue("id"), resource)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) DeleteResource(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Resources.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
