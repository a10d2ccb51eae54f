// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/MKhiriev/go-field-survey/internal/utils"
	"github.com/MKhiriev/go-field-survey/models"
)

// TempIDPrefix starts every locally generated logical id.
const TempIDPrefix = "temp-"

// canonicalIDPattern matches identifiers assigned by the remote document
// store: 24 hexadecimal characters.
var canonicalIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsCanonicalID reports whether id has the shape of a remote-assigned
// identifier. Anything else is treated as never pushed.
func IsCanonicalID(id string) bool {
	return canonicalIDPattern.MatchString(id)
}

// IsTemporaryID reports whether id was generated locally.
func IsTemporaryID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// IdentityNormalizer brings a record from any source (new form input, local
// read, remote listing, imported file) into envelope shape.
type IdentityNormalizer struct {
	clock utils.Clock
	ids   *utils.UUIDGenerator
}

// NewIdentityNormalizer returns a normalizer that timestamps with clock.
func NewIdentityNormalizer(clock utils.Clock) *IdentityNormalizer {
	return &IdentityNormalizer{clock: clock, ids: utils.NewUUIDGenerator()}
}

// NewTemporaryID returns a fresh logical id for a record the remote API has
// never seen.
func (n *IdentityNormalizer) NewTemporaryID() string {
	return TempIDPrefix + n.ids.Generate()
}

// Now returns the normalizer's current time.
func (n *IdentityNormalizer) Now() time.Time {
	return n.clock.Now()
}

// Normalize returns o with its identity and baseline metadata completed:
//
//   - a canonical RemoteID without a LogicalID is promoted to LogicalID;
//   - a non-canonical RemoteID is not an identity: it becomes the LogicalID
//     when none is set and is then cleared;
//   - Synced is false unless a canonical RemoteID is present;
//   - missing timestamps are filled from each other, or from the clock when
//     both are missing;
//   - a non-positive Version becomes 1;
//   - a nil Payload becomes empty.
//
// Normalize is idempotent and never invents a LogicalID for a record that
// has no identifier at all.
func (n *IdentityNormalizer) Normalize(o models.Observation) models.Observation {
	if o.RemoteID != "" && !IsCanonicalID(o.RemoteID) {
		if o.LogicalID == "" {
			o.LogicalID = o.RemoteID
		}
		o.RemoteID = ""
	}
	if o.LogicalID == "" && o.RemoteID != "" {
		o.LogicalID = o.RemoteID
	}
	if o.RemoteID == "" {
		o.Synced = false
	}

	switch {
	case o.CreatedAt.IsZero() && o.UpdatedAt.IsZero():
		now := n.clock.Now()
		o.CreatedAt, o.UpdatedAt = now, now
	case o.UpdatedAt.IsZero():
		o.UpdatedAt = o.CreatedAt
	case o.CreatedAt.IsZero():
		o.CreatedAt = o.UpdatedAt
	}
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()

	if o.Version <= 0 {
		o.Version = 1
	}
	if o.Payload == nil {
		o.Payload = models.Payload{}
	}

	return o
}
