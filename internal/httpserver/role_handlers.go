package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"blogManagement/models"
	"blogManagement/repository"
)

func (s *Server) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	// Decoded loosely so a wrong-typed name is reported as a validation
	// failure instead of a bare decode error.
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	raw, present := body["name"]
	var name string
	if !present || json.Unmarshal(raw, &name) != nil || name == "" {
		writeError(w, http.StatusBadRequest, "name is required and must be a non-empty string")
		return
	}
	if _, err := s.Roles.Create(r.Context(), name); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Role created successfully"})
}

func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.Roles.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if roles == nil {
		roles = []models.Role{}
	}
	writeJSON(w, http.StatusOK, map[string][]models.Role{"roles": roles})
}

func (s *Server) handleDeleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err := s.Roles.Delete(r.Context(), id); err != nil {
		// A role still referenced by users stays; deletion must not orphan
		// user rows.
		if errors.Is(err, repository.ErrIntegrity) {
			writeError(w, http.StatusConflict, "role is still assigned to users")
			return
		}
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Role deleted"})
}
