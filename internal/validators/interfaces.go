// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks values crossing the sync daemon's boundaries:
// local mutations issued by the domain layer, records and mutation results
// received from the server, and explicit conflict resolutions.
//
// Validation runs before any local transaction is opened, so a rejected value
// never leaves partial state behind. Failures wrap the sentinels in errors.go.
package validators

import "context"

// Validator checks obj. When fields are given only those fields are checked;
// an unsupported type yields ErrUnsupportedType.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
