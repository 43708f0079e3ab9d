// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token or an authorization header cannot
// be parsed.
var ErrInvalidToken = errors.New("invalid token")

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("%w: invalid authorization header", ErrInvalidToken)
	}
	return parts[1], nil
}

// ParseSubjectFromJWT returns the "sub" claim of tokenString without
// verifying the signature. The daemon does not hold the server signing key;
// it only uses the subject to label logs.
func ParseSubjectFromJWT(tokenString string) (string, error) {
	claims, err := parseUnverified(tokenString)
	if err != nil {
		return "", err
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if sub == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	return sub, nil
}

// TokenExpired reports whether tokenString carries an "exp" claim that is
// not after now. Tokens without an expiry never expire; tokens that cannot
// be parsed are reported as expired.
func TokenExpired(tokenString string, now time.Time) bool {
	claims, err := parseUnverified(tokenString)
	if err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}
	return !exp.After(now)
}

func parseUnverified(tokenString string) (jwt.MapClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", ErrInvalidToken)
	}
	return claims, nil
}
