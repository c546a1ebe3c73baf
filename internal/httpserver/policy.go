package httpserver

import (
	"net/http"

	"blogManagement/internal/auth"
	"blogManagement/models"
)

// accessLevel declares who may reach a route. The gate short-circuits with
// 401/403 before the handler runs.
type accessLevel int

const (
	// accessOpen requires nothing.
	accessOpen accessLevel = iota
	// accessAuthenticated requires a valid bearer token.
	accessAuthenticated
	// accessAdmin additionally requires the caller's current stored role to
	// be admin. The role is re-read from the store on every call.
	accessAdmin
	// accessOwnerOrAdmin requires a valid token here; the owning handler
	// completes the check against the resource's author (see
	// requirePostAccess). Listed as its own level so the table below is the
	// single statement of policy.
	accessOwnerOrAdmin
)

type route struct {
	pattern string
	access  accessLevel
	handler http.HandlerFunc
}

// routes is the access-policy table: one declarative entry per
// resource/action, consulted uniformly before dispatch.
func (s *Server) routes() []route {
	return []route{
		{"POST /auth/login", accessOpen, s.handleLogin},

		{"GET /users/", accessAdmin, s.handleListUsers},
		{"POST /users/", accessAdmin, s.handleCreateUser},
		{"GET /users/{id}", accessOpen, s.handleGetUser},
		{"PATCH /users/{id}", accessAdmin, s.handleUpdateUser},
		{"DELETE /users/{id}", accessAdmin, s.handleDeleteUser},

		{"GET /roles/", accessOpen, s.handleListRoles},
		{"POST /roles/", accessOpen, s.handleCreateRole},
		{"DELETE /roles/{id}", accessOpen, s.handleDeleteRole},

		{"GET /posts/", accessOpen, s.handleListPosts},
		{"POST /posts/", accessAuthenticated, s.handleCreatePost},
		{"GET /posts/{id}", accessOpen, s.handleGetPost},
		{"PATCH /posts/{id}", accessOwnerOrAdmin, s.handleUpdatePost},
		{"DELETE /posts/{id}", accessOwnerOrAdmin, s.handleDeletePost},
	}
}

// guard enforces the access level, injecting the principal into the request
// context for gated routes. It fails closed.
func (s *Server) guard(level accessLevel, next http.HandlerFunc) http.HandlerFunc {
	if level == accessOpen {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := auth.ParseFromRequest(r, s.secret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "missing or invalid token")
			return
		}
		ctx := auth.WithPrincipal(r.Context(), p)
		if level == accessAdmin {
			if _, err := auth.RequireRole(ctx, s.Users, p, models.AdminRoleName); err != nil {
				writeError(w, http.StatusForbidden, "Admin only!")
				return
			}
		}
		next(w, r.WithContext(ctx))
	}
}
