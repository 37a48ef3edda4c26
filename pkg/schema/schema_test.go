package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAskRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid request", body: `{"question":"How do I reset my password?"}`},
		{name: "extra fields allowed", body: `{"question":"Q","source":"web"}`},
		{name: "missing question", body: `{}`, wantErr: true},
		{name: "empty question", body: `{"question":""}`, wantErr: true},
		{name: "question wrong type", body: `{"question":42}`, wantErr: true},
		{name: "null question", body: `{"question":null}`, wantErr: true},
		{name: "not an object", body: `"just a string"`, wantErr: true},
		{name: "malformed json", body: `{"question":`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAskRequest([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
