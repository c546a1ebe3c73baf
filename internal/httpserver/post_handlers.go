package httpserver

import (
	"encoding/json"
	"net/http"

	"blogManagement/internal/auth"
	"blogManagement/models"
)

type createPostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if req.Title == "" || req.Body == "" {
		writeError(w, http.StatusBadRequest, "title and body are required")
		return
	}
	// Authorship comes from the verified identity, never the payload.
	post, err := s.Posts.Create(r.Context(), &models.Post{
		Title:    req.Title,
		Body:     req.Body,
		AuthorID: p.UserID,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.Posts.List(r.Context(), 0, 0)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	writeJSON(w, http.StatusOK, map[string][]models.Post{"posts": posts})
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	post, err := s.Posts.GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// requirePostAccess loads the post and completes the owner-or-admin policy:
// the author may modify their own post, an admin may modify any.
func (s *Server) requirePostAccess(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return nil, false
	}
	post, err := s.Posts.GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return nil, false
	}
	p, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing or invalid token")
		return nil, false
	}
	if post.AuthorID != p.UserID && !auth.IsAdmin(r.Context(), s.Users, p) {
		writeError(w, http.StatusForbidden, "author or admin only")
		return nil, false
	}
	return post, true
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	post, ok := s.requirePostAccess(w, r)
	if !ok {
		return
	}
	// Unknown fields are ignored; created and author_id stay immutable.
	var upd models.PostUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if (upd.Title != nil && *upd.Title == "") || (upd.Body != nil && *upd.Body == "") {
		writeError(w, http.StatusBadRequest, "title and body must not be empty")
		return
	}
	updated, err := s.Posts.Update(r.Context(), post.ID, upd)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	post, ok := s.requirePostAccess(w, r)
	if !ok {
		return
	}
	if err := s.Posts.Delete(r.Context(), post.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
