package models

import (
	"fmt"
	"strconv"
	"time"
)

// Document keys the remote API and legacy exports use for control metadata.
// Everything else in a flat document is payload.
const (
	DocKeyMongoID   = "_id"
	DocKeyID        = "id"
	DocKeyCreatedAt = "created_at"
	DocKeyUpdatedAt = "updated_at"
	DocKeyVersion   = "version"
	DocKeySynced    = "synced"
)

var reservedDocKeys = map[string]struct{}{
	DocKeyMongoID:   {},
	DocKeyID:        {},
	DocKeyCreatedAt: {},
	"createdAt":     {},
	"createdat":     {},
	DocKeyUpdatedAt: {},
	"updatedAt":     {},
	"updatedat":     {},
	DocKeyVersion:   {},
	DocKeySynced:    {},
}

// IsReservedDocKey reports whether key carries control metadata in a flat
// document and therefore cannot be used as a payload field.
func IsReservedDocKey(key string) bool {
	_, ok := reservedDocKeys[key]
	return ok
}

// FromDocument splits a flat document, as served by the remote API or found
// in a legacy export, into an Observation envelope.
//
// "_id" becomes RemoteID. It may be a string or an extended-JSON
// {"$oid": "..."} object. A string or numeric "id" that differs from "_id"
// becomes LogicalID. The result is not normalized.
func FromDocument(doc map[string]any) (Observation, error) {
	var o Observation

	if raw, ok := doc[DocKeyMongoID]; ok && raw != nil {
		id, err := documentID(raw)
		if err != nil {
			return Observation{}, fmt.Errorf("field %s: %w", DocKeyMongoID, err)
		}
		o.RemoteID = id
	}
	if raw, ok := doc[DocKeyID]; ok && raw != nil {
		id, err := documentID(raw)
		if err != nil {
			return Observation{}, fmt.Errorf("field %s: %w", DocKeyID, err)
		}
		switch {
		case o.RemoteID == "":
			// legacy documents keep their only identifier in "id"
			o.RemoteID = id
		case id != o.RemoteID:
			o.LogicalID = id
		}
	}

	var err error
	if o.CreatedAt, err = documentTime(doc, DocKeyCreatedAt, "createdAt", "createdat"); err != nil {
		return Observation{}, err
	}
	if o.UpdatedAt, err = documentTime(doc, DocKeyUpdatedAt, "updatedAt", "updatedat"); err != nil {
		return Observation{}, err
	}

	if raw, ok := doc[DocKeyVersion]; ok && raw != nil {
		v, err := documentInt(raw)
		if err != nil {
			return Observation{}, fmt.Errorf("field %s: %w", DocKeyVersion, err)
		}
		o.Version = v
	}
	if b, ok := doc[DocKeySynced].(bool); ok {
		o.Synced = b
	}

	o.Payload = make(Payload, len(doc))
	for k, v := range doc {
		if IsReservedDocKey(k) {
			continue
		}
		o.Payload[k] = v
	}

	return o, nil
}

// DocumentRemoteID returns the remote id of doc the way FromDocument reads
// it, or "" when doc carries no readable identifier. It lets callers identify
// a document whose other fields fail to decode.
func DocumentRemoteID(doc map[string]any) string {
	for _, key := range []string{DocKeyMongoID, DocKeyID} {
		raw, ok := doc[key]
		if !ok || raw == nil {
			continue
		}
		id, err := documentID(raw)
		if err != nil {
			return ""
		}
		return id
	}
	return ""
}

// ToDocument flattens o into the body sent to the remote API on create or
// update. Identifier fields and the synced flag are never included.
func (o Observation) ToDocument() map[string]any {
	doc := make(map[string]any, len(o.Payload)+3)
	for k, v := range o.Payload {
		if IsReservedDocKey(k) {
			continue
		}
		doc[k] = v
	}
	if !o.CreatedAt.IsZero() {
		doc[DocKeyCreatedAt] = o.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	if !o.UpdatedAt.IsZero() {
		doc[DocKeyUpdatedAt] = o.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	doc[DocKeyVersion] = o.Version
	return doc
}

func documentID(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case map[string]any:
		if oid, ok := v["$oid"].(string); ok {
			return oid, nil
		}
	}
	return "", fmt.Errorf("unsupported identifier %v", raw)
}

func documentTime(doc map[string]any, keys ...string) (time.Time, error) {
	for _, key := range keys {
		raw, ok := doc[key]
		if !ok || raw == nil {
			continue
		}
		switch v := raw.(type) {
		case string:
			if v == "" {
				continue
			}
			t, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				return time.Time{}, fmt.Errorf("field %s: %w", key, err)
			}
			return t, nil
		case float64:
			return time.UnixMilli(int64(v)).UTC(), nil
		default:
			return time.Time{}, fmt.Errorf("field %s: unsupported timestamp %v", key, raw)
		}
	}
	return time.Time{}, nil
}

func documentInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	}
	return 0, fmt.Errorf("unsupported number %v", raw)
}
