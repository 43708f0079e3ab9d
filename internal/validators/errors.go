// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEntityType = errors.New("invalid entity type")
	ErrInvalidClientID   = errors.New("invalid client id")
	ErrInvalidServerID   = errors.New("invalid server id")
	ErrInvalidAction     = errors.New("invalid action")
	ErrInvalidPayload    = errors.New("payload must be a JSON object")
	ErrInvalidStatus     = errors.New("invalid mutation status")
	ErrInvalidResolution = errors.New("invalid conflict resolution")
	ErrInvalidTimestamp  = errors.New("invalid last modified timestamp")

	ErrMissingServerState = errors.New("conflict result without server state")
)
