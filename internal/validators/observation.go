package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-field-survey/models"
)

// Field name constants used to restrict validation to a subset of checks.
const (
	// FieldLogicalID requires a non-empty local storage key.
	FieldLogicalID = "logical_id"

	// FieldVersion rejects negative versions. Zero is accepted and later
	// normalized to 1.
	FieldVersion = "version"

	// FieldTimestamps rejects a creation time later than the update time when
	// both are set.
	FieldTimestamps = "timestamps"

	// FieldPayload checks that every payload key is non-empty and is not one
	// of the envelope names a remote document reserves.
	FieldPayload = "payload"
)

// ObservationValidator validates observations and bare payloads.
type ObservationValidator struct{}

// NewObservationValidator returns the shape validator for survey records.
func NewObservationValidator() Validator {
	return &ObservationValidator{}
}

func (v *ObservationValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Observation:
		return v.validateObservation(ctx, value, fields...)
	case *models.Observation:
		return v.validateObservation(ctx, *value, fields...)

	case models.Payload:
		return validatePayload(value)
	case map[string]any:
		return validatePayload(value)

	default:
		return ErrUnsupportedType
	}
}

func (v *ObservationValidator) validateObservation(_ context.Context, o models.Observation, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogicalID, FieldVersion, FieldTimestamps, FieldPayload}
	}

	for _, f := range fields {
		switch f {
		case FieldLogicalID:
			if o.LogicalID == "" {
				return ErrEmptyLogicalID
			}
		case FieldVersion:
			if o.Version < 0 {
				return ErrInvalidVersion
			}
		case FieldTimestamps:
			if !o.CreatedAt.IsZero() && !o.UpdatedAt.IsZero() && o.CreatedAt.After(o.UpdatedAt) {
				return ErrInvalidTimestamps
			}
		case FieldPayload:
			if err := validatePayload(o.Payload); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validatePayload(p map[string]any) error {
	for k := range p {
		if k == "" {
			return ErrEmptyPayloadKey
		}
		if models.IsReservedDocKey(k) {
			return fmt.Errorf("%w: %q", ErrReservedPayloadKey, k)
		}
	}
	return nil
}
