package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"blogManagement/internal/auth"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	token, err := auth.Authenticate(r.Context(), s.Users, s.secret, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}
