// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signTestToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("server-only-key"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "surrounding spaces", header: "  Bearer abc  ", want: "abc"},
		{name: "missing token", header: "Bearer", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
		{name: "empty", header: "", wantErr: true},
		{name: "too many parts", header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidToken) {
					t.Fatalf("expected ErrInvalidToken, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseSubjectFromJWT_Success(t *testing.T) {
	token := signTestToken(t, jwt.RegisteredClaims{Subject: "account-42"})

	sub, err := ParseSubjectFromJWT(token)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if sub != "account-42" {
		t.Errorf("expected account-42, got %s", sub)
	}
}

func TestParseSubjectFromJWT_EmptySubject(t *testing.T) {
	token := signTestToken(t, jwt.RegisteredClaims{Issuer: "server"})

	if _, err := ParseSubjectFromJWT(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseSubjectFromJWT_Garbage(t *testing.T) {
	if _, err := ParseSubjectFromJWT("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name:  "valid in future",
			token: signTestToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}),
			want:  false,
		},
		{
			name:  "expired",
			token: signTestToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))}),
			want:  true,
		},
		{
			name:  "no expiry",
			token: signTestToken(t, jwt.RegisteredClaims{Subject: "a"}),
			want:  false,
		},
		{
			name:  "unparsable",
			token: "garbage",
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenExpired(tt.token, now); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
