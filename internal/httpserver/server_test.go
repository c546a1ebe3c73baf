package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"blogManagement/internal/config"
	"blogManagement/internal/testutil"
	"blogManagement/repository"
)

const testSecret = "test-secret"

type testEnv struct {
	t      *testing.T
	server *Server
	roles  *repository.RoleRepository
	users  *repository.UserRepository
	posts  *repository.PostRepository
}

func newTestEnv(t *testing.T, name string) *testEnv {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)
	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: testSecret},
	}
	roles := repository.NewRoleRepository(d)
	users := repository.NewUserRepository(d)
	posts := repository.NewPostRepository(d)
	return &testEnv{
		t:      t,
		server: New(cfg, roles, users, posts),
		roles:  roles,
		users:  users,
		posts:  posts,
	}
}

// do performs a request against the server. A non-empty token is sent as a
// bearer credential; body may be any JSON-encodable value or nil.
func (e *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	if token != "" {
		testutil.SetBearer(r, token)
	}
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, r)
	return w
}

// decode unmarshals the recorded JSON body into out.
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// login returns a bearer token for the given credentials via the real login
// endpoint.
func (e *testEnv) login(username, password string) string {
	e.t.Helper()
	w := e.do(http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(e.t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())
	var resp loginResponse
	decode(e.t, w, &resp)
	require.NotEmpty(e.t, resp.AccessToken)
	return resp.AccessToken
}

func TestStartShutdown(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "start_stop")
	cfg := &config.Config{
		HTTP: config.HTTPConfig{Address: "127.0.0.1:0"},
		Auth: config.AuthConfig{JWTSecret: testSecret},
	}
	shutdown, err := Start(cfg,
		repository.NewRoleRepository(d),
		repository.NewUserRepository(d),
		repository.NewPostRepository(d))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, shutdown(ctx))
}
