package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"blogManagement/internal/auth"
	"blogManagement/models"
)

// pathID parses the {id} path segment. A non-numeric id behaves like a
// missing resource rather than a malformed request.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type userResponse struct {
	ID       int64        `json:"id"`
	Username string       `json:"username"`
	Active   bool         `json:"active"`
	Role     *models.Role `json:"role,omitempty"`
	Password string       `json:"password,omitempty"`
}

// toUserResponse shapes a user payload. The stored hash is included only
// when the expose-password-hashes policy flag is on; plaintext passwords
// are never stored, so there is nothing worse to leak.
func (s *Server) toUserResponse(u *models.User) userResponse {
	resp := userResponse{
		ID:       u.ID,
		Username: u.Username,
		Active:   u.Active,
		Role:     u.Role,
	}
	if s.exposePasswordHashes {
		resp.Password = u.Password
	}
	return resp
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	RoleID   int64  `json:"role_id"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if req.Username == "" || req.Password == "" || req.RoleID <= 0 {
		writeError(w, http.StatusBadRequest, "username, password and role_id are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if _, err := s.Users.Create(r.Context(), &models.User{
		Username: req.Username,
		Password: hash,
		Active:   true,
		RoleID:   req.RoleID,
	}); err != nil {
		writeStoreError(w, err)
		return
	}
	// The created identity is confirmed without echoing any credential.
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User created!"})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.Users.List(r.Context(), 0, 0)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, s.toUserResponse(&users[i]))
	}
	writeJSON(w, http.StatusOK, map[string][]userResponse{"users": out})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	u, err := s.Users.GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toUserResponse(u))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	// Unknown fields are ignored, absent fields untouched.
	var upd models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if upd.Username != nil && *upd.Username == "" {
		writeError(w, http.StatusBadRequest, "username must not be empty")
		return
	}
	if upd.Password != nil {
		hash, err := auth.HashPassword(*upd.Password)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		upd.Password = &hash
	}
	u, err := s.Users.Update(r.Context(), id, upd)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toUserResponse(u))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err := s.Users.Delete(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
