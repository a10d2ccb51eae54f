// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"
)

// Observation is the envelope of one survey record.
//
// Control metadata lives in dedicated fields and the survey content lives in
// Payload, so a survey field can never shadow sync metadata.
type Observation struct {
	// LogicalID is the local storage key. It never changes once assigned.
	LogicalID string `json:"logicalId"`
	// RemoteID is the canonical identifier assigned by the remote API after
	// the first successful create. Empty until then.
	RemoteID string `json:"remoteId,omitempty"`
	// CreatedAt is set once at creation.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is set on every local or remote mutation.
	UpdatedAt time.Time `json:"updatedAt"`
	// Version is incremented by whichever side performs an update. Never
	// decremented.
	Version int64 `json:"version"`
	// Synced is true only when the local state matches what the remote API
	// last accepted.
	Synced bool `json:"synced"`
	// Payload is the opaque survey content.
	Payload Payload `json:"payload"`
}

// Clone returns a copy of o whose payload map can be modified without
// affecting o. Nested payload values are shared.
func (o Observation) Clone() Observation {
	o.Payload = o.Payload.Clone()
	return o
}

// Payload is the survey content of an observation: free text, numbers,
// multi-select arrays and nested repeating rows.
type Payload map[string]any

// Clone returns a shallow copy of p. A nil payload clones to nil.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// String returns the value of key when it holds a string.
func (p Payload) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Value implements driver.Valuer; the payload is stored as a JSON document.
func (p Payload) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (p *Payload) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = Payload{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return errors.New("payload: unsupported source type")
	}

	out := Payload{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	*p = out
	return nil
}
