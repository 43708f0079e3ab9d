// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestCycleIDCtxKey(t *testing.T) {
	if CycleIDCtxKey.String() != "cycleID" {
		t.Errorf("expected 'cycleID', got '%s'", CycleIDCtxKey.String())
	}
}

func TestGetCycleIDFromContext_Success(t *testing.T) {
	ctx := WithCycleID(context.Background(), "cycle-1")

	cycleID, ok := GetCycleIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if cycleID != "cycle-1" {
		t.Errorf("expected cycle-1, got %s", cycleID)
	}
}

func TestGetCycleIDFromContext_Missing(t *testing.T) {
	cycleID, ok := GetCycleIDFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if cycleID != "" {
		t.Errorf("expected empty id, got %s", cycleID)
	}
}

func TestGetCycleIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), CycleIDCtxKey, 42)

	if _, ok := GetCycleIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetCycleIDFromContext_Empty(t *testing.T) {
	ctx := WithCycleID(context.Background(), "")

	if _, ok := GetCycleIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for empty id, got true")
	}
}

func TestGetCycleIDFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("otherKey"), "cycle-1")

	if _, ok := GetCycleIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}
