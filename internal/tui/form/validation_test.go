package form

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldValidation_ValidateText(t *testing.T) {
	tests := []struct {
		name    string
		rules   FieldValidation
		value   string
		wantErr string
	}{
		{
			name:    "no rules accepts anything",
			rules:   FieldValidation{},
			value:   "",
			wantErr: "",
		},
		{
			name:    "required rejects empty",
			rules:   FieldValidation{Required: true},
			value:   "",
			wantErr: "required",
		},
		{
			name:    "required accepts non-empty",
			rules:   FieldValidation{Required: true},
			value:   "x",
			wantErr: "",
		},
		{
			name:    "optional empty skips length rules",
			rules:   FieldValidation{MinLength: 3},
			value:   "",
			wantErr: "",
		},
		{
			name:    "min length",
			rules:   FieldValidation{MinLength: 3},
			value:   "ab",
			wantErr: "minimum 3 characters",
		},
		{
			name:    "max length",
			rules:   FieldValidation{MaxLength: 2},
			value:   "abc",
			wantErr: "maximum 2 characters",
		},
		{
			name:    "pattern mismatch",
			rules:   FieldValidation{Pattern: regexp.MustCompile(`^[a-z-]+$`)},
			value:   "Not A Slug",
			wantErr: "must match pattern: ^[a-z-]+$",
		},
		{
			name:    "pattern match",
			rules:   FieldValidation{Pattern: regexp.MustCompile(`^[a-z-]+$`)},
			value:   "a-slug",
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, tt.rules.ValidateText(tt.value))
		})
	}
}
