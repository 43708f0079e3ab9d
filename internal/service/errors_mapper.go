// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/models"
)

// mapAdapterError translates an adapter error into the engine taxonomy so that
// raw transport errors never leave the service layer.
func mapAdapterError(entityType models.EntityType, op string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		return fmt.Errorf("%w: %s %s: %w", ErrValidation, op, entityType, err)
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrForbidden):
		return &TransportError{EntityType: entityType, Op: op, Err: fmt.Errorf("%w: %w", ErrUnauthorized, err)}
	case errors.Is(err, context.Canceled):
		return err
	default:
		// adapter.ErrTransport, timeouts, 404 and 409 on sync endpoints
		return &TransportError{EntityType: entityType, Op: op, Err: err}
	}
}
