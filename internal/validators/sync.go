// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-sync-engine/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldEntityType   = "entity_type"
	FieldClientID     = "client_id"
	FieldServerID     = "server_id"
	FieldAction       = "action"
	FieldPayload      = "payload"
	FieldStatus       = "status"
	FieldResolution   = "resolution"
	FieldLastModified = "last_modified"
	FieldCurrent      = "current"
)

// SyncValidator implements the Validator interface for the models crossing
// the sync engine boundary: LocalMutation, RemoteRecord, MutationResult and
// ResolutionRequest. Both value and pointer forms are accepted.
type SyncValidator struct {
}

// NewSyncValidator constructs a new SyncValidator and returns it as the
// Validator interface.
func NewSyncValidator() Validator {
	return &SyncValidator{}
}

// Validate dispatches validation on the dynamic type of obj. Returns
// ErrUnsupportedType for any other type. When fields is empty a default set
// for the type is validated.
func (v *SyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.LocalMutation:
		return v.validateLocalMutation(ctx, value, fields...)
	case *models.LocalMutation:
		return v.validateLocalMutation(ctx, *value, fields...)

	case models.RemoteRecord:
		return v.validateRemoteRecord(ctx, value, fields...)
	case *models.RemoteRecord:
		return v.validateRemoteRecord(ctx, *value, fields...)

	case models.MutationResult:
		return v.validateMutationResult(ctx, value, fields...)
	case *models.MutationResult:
		return v.validateMutationResult(ctx, *value, fields...)

	case models.ResolutionRequest:
		return v.validateResolution(ctx, value, fields...)
	case *models.ResolutionRequest:
		return v.validateResolution(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateLocalMutation checks a mutation coming from the domain layer.
// Payload is required for create and update and must be absent or a JSON
// object for delete.
func (v *SyncValidator) validateLocalMutation(_ context.Context, m models.LocalMutation, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntityType, FieldClientID, FieldAction, FieldPayload}
	}

	for _, f := range fields {
		switch f {
		case FieldEntityType:
			if !m.EntityType.Valid() {
				return ErrInvalidEntityType
			}
		case FieldClientID:
			if m.ClientID == "" {
				return ErrInvalidClientID
			}
		case FieldAction:
			if !m.Action.Valid() {
				return ErrInvalidAction
			}
		case FieldPayload:
			if m.Action == models.ActionDelete && len(bytes.TrimSpace(m.Payload)) == 0 {
				continue
			}
			if !isJSONObject(m.Payload) {
				return ErrInvalidPayload
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateRemoteRecord checks a record received from the server. Tombstones
// may carry no payload.
func (v *SyncValidator) validateRemoteRecord(_ context.Context, r models.RemoteRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldServerID, FieldPayload, FieldLastModified}
	}

	for _, f := range fields {
		switch f {
		case FieldServerID:
			if r.ServerID == "" {
				return ErrInvalidServerID
			}
		case FieldPayload:
			if r.Deleted {
				continue
			}
			if !isJSONObject(r.Payload) {
				return ErrInvalidPayload
			}
		case FieldLastModified:
			if r.LastModified < 0 {
				return ErrInvalidTimestamp
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateMutationResult checks one push result. An accepted result must name
// the server id the mutation was bound to; a conflict must carry the server
// state it conflicts with.
func (v *SyncValidator) validateMutationResult(_ context.Context, r models.MutationResult, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldClientID, FieldStatus, FieldServerID, FieldCurrent}
	}

	for _, f := range fields {
		switch f {
		case FieldClientID:
			if r.ClientID == "" {
				return ErrInvalidClientID
			}
		case FieldCurrent:
			if r.Status != models.MutationConflict {
				continue
			}
			if r.Current == nil || (!r.Current.Deleted && !isJSONObject(r.Current.Payload)) {
				return ErrMissingServerState
			}
		case FieldStatus:
			switch r.Status {
			case models.MutationAccepted, models.MutationConflict, models.MutationRejected:
			default:
				return ErrInvalidStatus
			}
		case FieldServerID:
			if r.Status == models.MutationAccepted && r.ServerID == "" {
				return ErrInvalidServerID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncValidator) validateResolution(_ context.Context, r models.ResolutionRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldResolution, FieldPayload}
	}

	for _, f := range fields {
		switch f {
		case FieldResolution:
			if !r.Resolution.Valid() {
				return ErrInvalidResolution
			}
		case FieldPayload:
			if r.Resolution == models.ResolutionMerge && !isJSONObject(r.Payload) {
				return ErrInvalidPayload
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// isJSONObject reports whether raw is a syntactically valid JSON object.
func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	return json.Valid(trimmed)
}
