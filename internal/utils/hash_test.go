// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"testing"
)

const testHashKey = "test-secret-key"

func TestHash_MatchesHMAC(t *testing.T) {
	InitHasherPool(testHashKey)
	data := []byte(`{"client_id":"c1"}`)

	mac := hmac.New(sha256.New, []byte(testHashKey))
	mac.Write(data)
	expected := mac.Sum(nil)

	if got := Hash(data); !bytes.Equal(got, expected) {
		t.Errorf("expected %x, got %x", expected, got)
	}
}

func TestHash_Deterministic(t *testing.T) {
	InitHasherPool(testHashKey)
	data := []byte("payload")

	if !bytes.Equal(Hash(data), Hash(data)) {
		t.Error("same input must produce same digest")
	}
}

func TestHash_DifferentKeys(t *testing.T) {
	data := []byte("payload")

	InitHasherPool("key-a")
	a := Hash(data)
	InitHasherPool("key-b")
	b := Hash(data)

	if bytes.Equal(a, b) {
		t.Error("different keys must produce different digests")
	}
}

func TestHash_Concurrent(t *testing.T) {
	InitHasherPool(testHashKey)
	data := []byte("concurrent")
	expected := Hash(data)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !bytes.Equal(Hash(data), expected) {
				t.Error("pooled hasher returned a different digest")
			}
		}()
	}
	wg.Wait()
}

func TestHashHex_MatchesHashString(t *testing.T) {
	InitHasherPool(testHashKey)
	data := "body"

	if HashHex([]byte(data)) != HashString(data, testHashKey) {
		t.Error("pooled and one-off hex digests must be equal")
	}
	if HashHex([]byte(data)) != hex.EncodeToString(Hash([]byte(data))) {
		t.Error("HashHex must hex-encode Hash")
	}
}

func TestCanonicalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "sorted keys", in: `{"b":1,"a":2}`, want: `{"a":2,"b":1}`},
		{name: "nested", in: `{"z":{"y":1,"x":[3,{"d":1,"c":2}]}}`, want: `{"z":{"x":[3,{"c":2,"d":1}],"y":1}}`},
		{name: "whitespace", in: " {\n \"a\" : true } ", want: `{"a":true}`},
		{name: "big number kept", in: `{"n":12345678901234567890}`, want: `{"n":12345678901234567890}`},
		{name: "empty", in: "", want: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalJSON([]byte(tt.in))
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

// TestCanonicalJSON_FieldOrderIndependent checks that a payload serialized by
// another client in a different key order hashes to the same value.
func TestCanonicalJSON_FieldOrderIndependent(t *testing.T) {
	InitHasherPool(testHashKey)

	a, err := CanonicalJSON([]byte(`{"metadata":"m","type":1,"data":"blob"}`))
	if err != nil {
		t.Fatal(err)
	}
	b, err := CanonicalJSON([]byte(`{"data":"blob","type":1,"metadata":"m"}`))
	if err != nil {
		t.Fatal(err)
	}

	if HashHex(a) != HashHex(b) {
		t.Error("hashes must be equal after canonicalization")
	}
}

func TestCanonicalJSON_Invalid(t *testing.T) {
	for _, in := range []string{`{"a":`, `{"a":1} {"b":2}`} {
		if _, err := CanonicalJSON([]byte(in)); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestUUIDGenerator_Unique(t *testing.T) {
	g := NewUUIDGenerator()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := g.Generate()
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}
