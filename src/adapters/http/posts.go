package http

import (
	"net/http"
	"strings"

	"badajozrespira/src/domain/entities"
	"badajozrespira/src/services/catalog"
)

// ActingUserHeader carrega o nome de quem está logado no painel. Não há
// sessão no servidor; o header só alimenta o autor dos posts.
const ActingUserHeader = "X-Acting-User"

func actingUser(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(ActingUserHeader))
}

func (s *Server) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.services.Blog.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.services.Blog.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) CreatePost(w http.ResponseWriter, r *http.Request) {
	var post entities.BlogPost
	if !decodeJSON(w, r, &post) {
		return
	}

	created, err := s.services.Blog.Create(r.Context(), post, actingUser(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var post entities.BlogPost
	if !decodeJSON(w, r, &post) {
		return
	}

	updated, err := s.services.Blog.Update(r.Context(), r.PathValue("id"), post, actingUser(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Blog.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) AddBlock(w http.ResponseWriter, r *http.Request) {
	var req addBlockRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, block, err := s.services.Blog.AddBlock(r.Context(), r.PathValue("id"), req.Type)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, addBlockResponse{Post: post, Block: block})
}

func (s *Server) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	var update catalog.BlockUpdate
	if !decodeJSON(w, r, &update) {
		return
	}

	post, err := s.services.Blog.UpdateBlock(r.Context(), r.PathValue("id"), r.PathValue("blockID"), update)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) MoveBlock(w http.ResponseWriter, r *http.Request) {
	var req moveBlockRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := s.services.Blog.MoveBlock(r.Context(), r.PathValue("id"), req.Index, req.Direction)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	post, err := s.services.Blog.DeleteBlock(r.Context(), r.PathValue("id"), index)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) AttachImage(w http.ResponseWriter, r *http.Request) {
	var req attachImageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := s.services.Blog.AttachImage(r.Context(), r.PathValue("id"), r.PathValue("blockID"), req.URL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}
