package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT("alice")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	username, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if username != "alice" {
		t.Fatalf("username = %q; want alice", username)
	}
}

func TestParseJWTRejects(t *testing.T) {
	InitJWT("test-secret")

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "alice"})
	foreign, err := other.SignedString([]byte("another-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	past := time.Now().Add(-time.Hour)
	stale := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(past),
	})
	expired, err := stale.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	anon := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{})
	noSubject, err := anon.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	cases := map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"expired":      expired,
		"no subject":   noSubject,
	}
	for name, token := range cases {
		if _, err := ParseJWT(token); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
