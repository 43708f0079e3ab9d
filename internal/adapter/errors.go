// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	// ErrTransport covers network failures, timeouts, 5xx responses and
	// response bodies that cannot be decoded. The request may be retried.
	ErrTransport = errors.New("transport error")

	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("client unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")

	ErrInvalidAddress = errors.New("invalid server address")
)
