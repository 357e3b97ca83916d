// Package validate checks extracted label fields against the inventory
// schema. Normalization is limited to whitespace trimming and unit-suffix
// case folding; field values otherwise pass through unmodified.
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rackwalk/rackwalk/internal/models"
)

// ErrInvalidRecord is wrapped by every *FieldError.
var ErrInvalidRecord = errors.New("invalid record")

// FieldError reports which extracted field failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid record: field %q %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidRecord }

// Normalize validates a raw extraction result and returns the record
// content fields, trimmed. It is pure: same input, same output, no side
// effects. The capture timestamp is assigned by the pipeline, not here.
func Normalize(raw models.RawRecord) (models.Record, error) {
	record := models.Record{
		Brand:      strings.TrimSpace(raw.Brand),
		Capacity:   normalizeCapacity(raw.Capacity),
		Generation: strings.TrimSpace(raw.Generation),
		Speed:      strings.TrimSpace(raw.Speed),
	}

	// Fixed check order keeps the reported field deterministic when more
	// than one is missing.
	for _, check := range []struct {
		field string
		value string
	}{
		{"brand", record.Brand},
		{"capacity", record.Capacity},
		{"generation", record.Generation},
		{"speed", record.Speed},
	} {
		if check.value == "" || strings.EqualFold(check.value, "N/A") {
			return models.Record{}, &FieldError{Field: check.field, Reason: "is empty"}
		}
	}

	speed, err := strconv.ParseFloat(record.Speed, 64)
	if err != nil {
		return models.Record{}, &FieldError{Field: "speed", Reason: "is not a number"}
	}
	if speed <= 0 {
		return models.Record{}, &FieldError{Field: "speed", Reason: "is not positive"}
	}

	if !strings.HasSuffix(record.Capacity, "GB") && !strings.HasSuffix(record.Capacity, "TB") {
		return models.Record{}, &FieldError{Field: "capacity", Reason: "is missing a GB/TB unit suffix"}
	}

	return record, nil
}

// normalizeCapacity trims whitespace and upper-cases a trailing gb/tb unit
// so "16gb" and "16GB" compare equal downstream.
func normalizeCapacity(capacity string) string {
	capacity = strings.TrimSpace(capacity)
	if len(capacity) < 2 {
		return capacity
	}
	suffix := capacity[len(capacity)-2:]
	if strings.EqualFold(suffix, "GB") || strings.EqualFold(suffix, "TB") {
		return capacity[:len(capacity)-2] + strings.ToUpper(suffix)
	}
	return capacity
}
