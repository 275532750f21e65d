package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreatePersonRequest(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		valid   bool
		tooLong bool
	}{
		{"plain", "Ana", true, false},
		{"trimmed", "  Ana  ", true, false},
		{"blank", "   ", false, false},
		{"at the limit", strings.Repeat("a", MaxNameLength), true, false},
		{"multibyte at the limit", strings.Repeat("é", MaxNameLength), true, false},
		{"over the limit", strings.Repeat("a", MaxNameLength+1), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &CreatePersonRequest{Name: tt.input}
			err := req.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
			assert.Equal(t, tt.tooLong, req.NameTooLong())
			assert.Equal(t, strings.TrimSpace(tt.input), req.Name)
		})
	}
}
