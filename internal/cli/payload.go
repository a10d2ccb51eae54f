package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MKhiriev/go-field-survey/models"
)

var errInvalidField = errors.New("invalid field")

// parseFields applies key=value pairs to p. A value that parses as JSON keeps
// its JSON type; anything else is stored as a string.
func parseFields(p models.Payload, fields []string) error {
	for _, f := range fields {
		key, raw, ok := strings.Cut(f, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("%w: %q is not key=value", errInvalidField, f)
		}
		p[key] = fieldValue(raw)
	}
	return nil
}

func fieldValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}

// readPayloadFile reads a JSON object from path.
func readPayloadFile(path string) (models.Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload file: %w", err)
	}

	var p models.Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: payload file must hold a JSON object: %w", errInvalidField, err)
	}
	if p == nil {
		p = models.Payload{}
	}
	return p, nil
}
