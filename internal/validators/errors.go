package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyLogicalID     = errors.New("logical id is required")
	ErrInvalidVersion     = errors.New("invalid version")
	ErrInvalidTimestamps  = errors.New("created at is after updated at")
	ErrEmptyPayloadKey    = errors.New("payload key cannot be empty")
	ErrReservedPayloadKey = errors.New("payload key is reserved")
)
