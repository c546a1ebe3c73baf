package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogManagement/internal/testutil"
)

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t, "login_ok")
	role := testutil.SeedRole(t, env.roles, "reader")
	testutil.SeedUser(t, env.users, "alice", "s3cret", role.ID)

	w := env.do(http.MethodPost, "/auth/login", map[string]string{
		"username": "alice",
		"password": "s3cret",
	}, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp loginResponse
	decode(t, w, &resp)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin_InvalidCredentialsAreUniform(t *testing.T) {
	env := newTestEnv(t, "login_bad")
	role := testutil.SeedRole(t, env.roles, "reader")
	testutil.SeedUser(t, env.users, "alice", "s3cret", role.ID)

	for name, body := range map[string]map[string]string{
		"wrong password": {"username": "alice", "password": "nope"},
		"unknown user":   {"username": "bob", "password": "s3cret"},
	} {
		w := env.do(http.MethodPost, "/auth/login", body, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, name)
		var resp errorResponse
		decode(t, w, &resp)
		assert.Equal(t, "Invalid username or password", resp.Error, name)
	}
}

func TestLogin_MalformedBody(t *testing.T) {
	env := newTestEnv(t, "login_malformed")
	w := env.do(http.MethodPost, "/auth/login", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
