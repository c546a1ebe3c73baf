package auth

import (
	"context"
	"errors"

	"blogManagement/models"
	"blogManagement/repository"
)

// Gate errors. Handlers translate these to 401/403 responses.
var (
	// ErrInvalidCredentials is returned uniformly for unknown usernames and
	// wrong passwords so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrForbidden is returned when the caller's current role does not meet
	// the requirement. The gate fails closed: lookup failures deny too.
	ErrForbidden = errors.New("forbidden")
)

// dummyHash equalizes verification work between unknown-user and
// wrong-password failures.
var dummyHash = func() string {
	h, _ := HashPassword("placeholder")
	return h
}()

// Authenticate verifies the credentials against the store and issues a
// bearer token whose subject is the user id. Inactive users cannot log in.
func Authenticate(ctx context.Context, users repository.UserRepositoryI, secret, username, password string) (string, error) {
	u, err := users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			VerifyPassword(dummyHash, password)
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !u.Active || !VerifyPassword(u.Password, password) {
		return "", ErrInvalidCredentials
	}
	return IssueToken(secret, u.ID)
}

// ResolveUser fetches the authenticated caller's current record from the
// store. Nothing is trusted from the token beyond the user id.
func ResolveUser(ctx context.Context, users repository.UserRepositoryI, p *Principal) (*models.User, error) {
	if p == nil {
		return nil, ErrForbidden
	}
	return users.GetByID(ctx, p.UserID)
}

// RequireRole resolves the caller's user record fresh from the store and
// compares its role name to roleName case-sensitively. Any lookup failure
// or mismatch denies.
func RequireRole(ctx context.Context, users repository.UserRepositoryI, p *Principal, roleName string) (*models.User, error) {
	u, err := ResolveUser(ctx, users, p)
	if err != nil {
		return nil, ErrForbidden
	}
	if u.Role == nil || u.Role.Name != roleName {
		return nil, ErrForbidden
	}
	return u, nil
}

// IsAdmin reports whether the caller's current stored role is the admin
// role. Used for owner-or-admin checks on posts.
func IsAdmin(ctx context.Context, users repository.UserRepositoryI, p *Principal) bool {
	_, err := RequireRole(ctx, users, p, models.AdminRoleName)
	return err == nil
}
