package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tzbot/shared/failure"
	"tzbot/shared/timezone"
	"tzbot/shared/validator"
)

type registration struct {
	Person   string `json:"person" validate:"required,max=10"`
	Timezone string `json:"timezone" validate:"required,timezone"`
}

func newValidator(t *testing.T) *validator.Validator {
	t.Helper()

	v, err := validator.New(timezone.New([]string{"US/Eastern", "Europe/London"}))
	require.NoError(t, err)

	return v
}

func TestValidator_Struct(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name        string
		data        registration
		wantErr     bool
		wantMessage string
		timezoneErr bool
	}{
		{
			name: "valid",
			data: registration{Person: "Alice", Timezone: "US/Eastern"},
		},
		{
			name:        "missing person",
			data:        registration{Timezone: "US/Eastern"},
			wantErr:     true,
			wantMessage: "Person is required",
		},
		{
			name:        "person too long",
			data:        registration{Person: "Bartholomew-the-third", Timezone: "US/Eastern"},
			wantErr:     true,
			wantMessage: "Person must be at most 10 characters",
		},
		{
			name:        "unknown timezone",
			data:        registration{Person: "Alice", Timezone: "Not/AZone"},
			wantErr:     true,
			wantMessage: "Timezone is not a recognized timezone",
			timezoneErr: true,
		},
		{
			name:        "timezone case mismatch",
			data:        registration{Person: "Alice", Timezone: "europe/london"},
			wantErr:     true,
			wantMessage: "Timezone is not a recognized timezone",
			timezoneErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(&tt.data)

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMessage, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Equal(t, tt.timezoneErr, validator.FailedOn(err, validator.TagTimezone))
		})
	}
}

func TestDecode(t *testing.T) {
	v := newValidator(t)

	var req registration
	err := validator.Decode(v, strings.NewReader(`{"person":"Bob","timezone":"Europe/London"}`), &req)
	require.NoError(t, err)
	assert.Equal(t, registration{Person: "Bob", Timezone: "Europe/London"}, req)

	err = validator.Decode(v, strings.NewReader(`{"person":`), &req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Contains(t, err.Error(), "failed to decode request body")
}

func TestFailedOn_NonValidationError(t *testing.T) {
	assert.False(t, validator.FailedOn(assert.AnError, validator.TagTimezone))
	assert.False(t, validator.FailedOn(nil, validator.TagTimezone))
}
