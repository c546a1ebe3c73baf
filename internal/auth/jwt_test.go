package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestIssueAndParse_RoundTrip(t *testing.T) {
	tok, err := IssueToken(testSecret, 7)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	p, err := parseJWT(tok, testSecret)
	if err != nil {
		t.Fatalf("parseJWT: %v", err)
	}
	if p.UserID != 7 {
		t.Fatalf("principal mismatch: %+v", p)
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	tok, err := IssueToken(testSecret, 7)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := parseJWT(tok, "wrong"); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestParseJWT_Expired(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := parseJWT(tok, testSecret); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestParseJWT_BadSubject(t *testing.T) {
	for _, sub := range []string{"", "abc", "-4"} {
		claims := jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		if _, err := parseJWT(tok, testSecret); err == nil {
			t.Fatalf("expected error for subject %q", sub)
		}
	}
}

func TestParseFromRequest(t *testing.T) {
	tok, err := IssueToken(testSecret, 3)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	r := httptest.NewRequest("GET", "/posts/", nil)
	r.Header.Set("Authorization", "Bearer "+tok)
	p, err := ParseFromRequest(r, testSecret)
	if err != nil || p.UserID != 3 {
		t.Fatalf("valid bearer rejected: %v %+v", err, p)
	}

	r = httptest.NewRequest("GET", "/posts/", nil)
	if _, err := ParseFromRequest(r, testSecret); err == nil {
		t.Fatalf("expected error for missing header")
	}

	r = httptest.NewRequest("GET", "/posts/", nil)
	r.Header.Set("Authorization", "Basic "+tok)
	if _, err := ParseFromRequest(r, testSecret); err == nil {
		t.Fatalf("expected error for non-bearer scheme")
	}

	r = httptest.NewRequest("GET", "/posts/", nil)
	r.Header.Set("Authorization", "Bearer garbage")
	if _, err := ParseFromRequest(r, testSecret); err == nil {
		t.Fatalf("expected error for garbage token")
	}
}
