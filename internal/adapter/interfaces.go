// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the remote sync server.
//
// [RemoteSyncAPI] decouples the sync services from the wire protocol. The
// package ships an HTTP/REST implementation ([NewHTTPRemoteAPI]), an HTTP
// health probe ([NewHTTPConnectivity]) and a websocket live event reader
// ([NewWSEventSource]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrTransport] for network failures and 5xx responses,
// [ErrBadRequest] for payloads the server refused to parse).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-sync-engine/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// RemoteSyncAPI is the server side of synchronisation, one entity type per
// call.
type RemoteSyncAPI interface {
	// PushBatch sends mutations of a single entity type and returns one result
	// per mutation the server processed. Results may be fewer than mutations;
	// unanswered mutations stay pending on the client.
	PushBatch(ctx context.Context, entityType models.EntityType, mutations []models.MutationRequest) ([]models.MutationResult, error)

	// PullChanges returns everything that changed on the server after since.
	PullChanges(ctx context.Context, entityType models.EntityType, since int64) (models.ChangeSet, error)

	// PullFull returns the complete server state of the entity type as
	// Created records. Used for the first sync of a type.
	PullFull(ctx context.Context, entityType models.EntityType) (models.ChangeSet, error)
}

// Connectivity answers whether the server is currently reachable.
type Connectivity interface {
	IsOnline(ctx context.Context) bool
}

// EventSource delivers live server notifications in arrival order. Run blocks
// until ctx is cancelled; a send on out blocks until the consumer is ready.
type EventSource interface {
	Run(ctx context.Context, out chan<- models.LiveEvent) error
}
