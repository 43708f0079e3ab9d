// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// operator API handlers and middleware.
//
// All Msg* constants are human-readable strings written into HTTP response
// bodies.
package app

const (
	// MsgInternalServerError replaces the error text of every 5xx answer
	// caused by local storage, so file paths and SQL never leave the daemon.
	MsgInternalServerError = "internal server error"

	// MsgFailedToReadBody is returned when the request body cannot be read.
	MsgFailedToReadBody = "failed to read request body"

	// MsgSyncQueued is the status of a trigger that was coalesced into the
	// cycle already in progress.
	MsgSyncQueued = "queued"
)
