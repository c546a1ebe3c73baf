package testutil

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"blogManagement/internal/db"
	"blogManagement/models"
	"blogManagement/repository"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The DB is closed automatically via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// Shared cache so multiple connections observe the same in-memory DB.
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// SignToken returns a signed HS256 JWT with the subject claims the app uses.
func SignToken(t *testing.T, secret string, userID int64) string {
	t.Helper()
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// SetBearer attaches an Authorization header carrying the given token.
func SetBearer(r *http.Request, token string) {
	r.Header.Set("Authorization", "Bearer "+token)
}

// HashPassword hashes with a low cost to keep tests fast.
func HashPassword(t *testing.T, plaintext string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(h)
}

// SeedRole creates a role, failing the test on error.
func SeedRole(t *testing.T, roles repository.RoleRepositoryI, name string) *models.Role {
	t.Helper()
	role, err := roles.Create(context.Background(), name)
	if err != nil {
		t.Fatalf("seed role %q: %v", name, err)
	}
	return role
}

// SeedUser creates an active user with a hashed password, failing the test
// on error.
func SeedUser(t *testing.T, users repository.UserRepositoryI, username, password string, roleID int64) *models.User {
	t.Helper()
	u, err := users.Create(context.Background(), &models.User{
		Username: username,
		Password: HashPassword(t, password),
		Active:   true,
		RoleID:   roleID,
	})
	if err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}
	return u
}
