package httpserver

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"blogManagement/internal/config"
	"blogManagement/repository"
)

// Server bundles dependencies and serves the HTTP API.
type Server struct {
	mux    *http.ServeMux
	secret string

	// exposePasswordHashes widens user payloads to include the stored hash.
	// Off by default; see config.APIConfig.
	exposePasswordHashes bool

	Roles repository.RoleRepositoryI
	Users repository.UserRepositoryI
	Posts repository.PostRepositoryI
}

// New builds a server with all routes registered and guarded per the access
// policy table in policy.go.
func New(cfg *config.Config, roles repository.RoleRepositoryI, users repository.UserRepositoryI, posts repository.PostRepositoryI) *Server {
	if cfg == nil {
		panic("config is required")
	}
	s := &Server{
		mux:                  http.NewServeMux(),
		secret:               cfg.Auth.JWTSecret,
		exposePasswordHashes: cfg.API.ExposePasswordHashes,
		Roles:                roles,
		Users:                users,
		Posts:                posts,
	}
	s.registerRoutes()
	return s
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return logRequests(s.mux)
}

// registerRoutes wires the policy table into the mux. Collection patterns
// ending in "/" are registered both with and without the trailing slash so
// clients need not rely on redirects.
func (s *Server) registerRoutes() {
	for _, rt := range s.routes() {
		h := s.guard(rt.access, rt.handler)
		if strings.HasSuffix(rt.pattern, "/") {
			s.mux.HandleFunc(rt.pattern+"{$}", h)
			s.mux.HandleFunc(strings.TrimSuffix(rt.pattern, "/"), h)
			continue
		}
		s.mux.HandleFunc(rt.pattern, h)
	}
}

// Start starts the HTTP server on the configured address and returns a
// shutdown function.
func Start(cfg *config.Config, roles repository.RoleRepositoryI, users repository.UserRepositoryI, posts repository.PostRepositoryI) (func(context.Context) error, error) {
	s := New(cfg, roles, users, posts)

	addr := cfg.HTTP.Address
	if addr == "" {
		addr = ":8080"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http serve: %v", err)
		}
	}()

	return srv.Shutdown, nil
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Printf("%s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
