// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities used across the
// sync daemon: context keys, HMAC hashing, JSON response writing, the resty
// client wrapper, UUIDv7 generation and bearer token inspection.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// CycleIDCtxKey is the key under which the id of the running sync cycle is
// stored. The remote adapter forwards it as the X-Sync-Cycle-ID header.
var CycleIDCtxKey = contextKey("cycleID")

// WithCycleID returns a copy of ctx carrying cycleID.
func WithCycleID(ctx context.Context, cycleID string) context.Context {
	return context.WithValue(ctx, CycleIDCtxKey, cycleID)
}

// GetCycleIDFromContext retrieves the sync cycle id from the context.
//
// Returns the id and an ok flag:
//   - ok == true : value is found and is a non-empty string
//   - ok == false: value is missing, empty or has an unexpected type
func GetCycleIDFromContext(ctx context.Context) (string, bool) {
	cycleID, ok := ctx.Value(CycleIDCtxKey).(string)
	return cycleID, ok && cycleID != ""
}
