// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrUnknownEntityType is returned for a {type} path segment that names no
	// known entity type.
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrIntegrityCheckFailed is returned when the HashSHA256 header does not
	// match the request body.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")

	// ErrUnknownSyncMode is returned for a mode query parameter other than
	// "initial" or "incremental".
	ErrUnknownSyncMode = errors.New("unknown sync mode")
)
