// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks survey payloads before they reach the local
// store. Survey content is opaque to the client and the remote API owns the
// business rules, so only the payload shape is checked here.
package validators

import "context"

// Validator validates a value, optionally restricted to the named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
