package validate

import (
	"errors"
	"testing"

	"github.com/rackwalk/rackwalk/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		raw       models.RawRecord
		expected  models.Record
		wantField string
	}{
		{
			name: "valid record",
			raw: models.RawRecord{
				Brand:      "Samsung",
				Capacity:   "16GB",
				Generation: "DDR4",
				Speed:      "3200",
			},
			expected: models.Record{
				Brand:      "Samsung",
				Capacity:   "16GB",
				Generation: "DDR4",
				Speed:      "3200",
			},
		},
		{
			name: "trims whitespace",
			raw: models.RawRecord{
				Brand:      "  Kingston ",
				Capacity:   " 8GB",
				Generation: "DDR3 ",
				Speed:      " 1600 ",
			},
			expected: models.Record{
				Brand:      "Kingston",
				Capacity:   "8GB",
				Generation: "DDR3",
				Speed:      "1600",
			},
		},
		{
			name: "uppercases capacity unit",
			raw: models.RawRecord{
				Brand:      "Crucial",
				Capacity:   "1tb",
				Generation: "NVMe",
				Speed:      "3500",
			},
			expected: models.Record{
				Brand:      "Crucial",
				Capacity:   "1TB",
				Generation: "NVMe",
				Speed:      "3500",
			},
		},
		{
			name: "fractional speed is accepted",
			raw: models.RawRecord{
				Brand:      "Corsair",
				Capacity:   "32GB",
				Generation: "DDR5",
				Speed:      "5600.5",
			},
			expected: models.Record{
				Brand:      "Corsair",
				Capacity:   "32GB",
				Generation: "DDR5",
				Speed:      "5600.5",
			},
		},
		{
			name: "empty brand",
			raw: models.RawRecord{
				Capacity:   "16GB",
				Generation: "DDR4",
				Speed:      "3200",
			},
			wantField: "brand",
		},
		{
			name: "whitespace-only generation",
			raw: models.RawRecord{
				Brand:    "Samsung",
				Capacity: "16GB", Generation: "   ",
				Speed: "3200",
			},
			wantField: "generation",
		},
		{
			name: "N/A placeholder counts as missing",
			raw: models.RawRecord{
				Brand:      "N/A",
				Capacity:   "16GB",
				Generation: "DDR4",
				Speed:      "3200",
			},
			wantField: "brand",
		},
		{
			name: "speed is not a number",
			raw: models.RawRecord{
				Brand:      "Samsung",
				Capacity:   "16GB",
				Generation: "DDR4",
				Speed:      "fast",
			},
			wantField: "speed",
		},
		{
			name: "speed is negative",
			raw: models.RawRecord{
				Brand:      "Samsung",
				Capacity:   "16GB",
				Generation: "DDR4",
				Speed:      "-3200",
			},
			wantField: "speed",
		},
		{
			name: "capacity missing unit suffix",
			raw: models.RawRecord{
				Brand:      "Samsung",
				Capacity:   "16",
				Generation: "DDR4",
				Speed:      "3200",
			},
			wantField: "capacity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := Normalize(tt.raw)

			if tt.wantField != "" {
				if err == nil {
					t.Fatalf("Expected validation failure on field %q, got record %+v", tt.wantField, record)
				}
				if !errors.Is(err, ErrInvalidRecord) {
					t.Errorf("Expected error to wrap ErrInvalidRecord, got %v", err)
				}
				var fieldErr *FieldError
				if !errors.As(err, &fieldErr) {
					t.Fatalf("Expected *FieldError, got %T", err)
				}
				if fieldErr.Field != tt.wantField {
					t.Errorf("Expected failing field %q, got %q", tt.wantField, fieldErr.Field)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if record != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, record)
			}
		})
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	raw := models.RawRecord{
		Brand:      " Samsung ",
		Capacity:   "16gb",
		Generation: "DDR4",
		Speed:      "3200",
	}

	first, err1 := Normalize(raw)
	second, err2 := Normalize(raw)
	if err1 != nil || err2 != nil {
		t.Fatalf("Unexpected errors: %v, %v", err1, err2)
	}
	if first != second {
		t.Errorf("Expected identical results, got %+v and %+v", first, second)
	}
}
