package contract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{
			name: "nil error",
			err:  nil,
			code: ExitOK,
		},
		{
			name: "generic error",
			err:  errors.New("boom"),
			code: ExitFailure,
		},
		{
			name: "config error",
			err:  &ConfigError{Key: "output", Reason: "bad"},
			code: ExitConfig,
		},
		{
			name: "not found error",
			err:  &NotFoundError{Ref: "main..HEAD"},
			code: ExitNotFound,
		},
		{
			name: "wrapped config error",
			err:  fmt.Errorf("loading: %w", &ConfigError{Key: "color", Reason: "bad"}),
			code: ExitConfig,
		},
		{
			name: "wrapped not found error",
			err:  fmt.Errorf("collecting: %w", &NotFoundError{Ref: "x.diff"}),
			code: ExitNotFound,
		},
		{
			name: "format error",
			err:  &FormatError{Err: errors.New("encode")},
			code: ExitFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, ExitCode(tt.err))
		})
	}
}

func TestNotFoundError_Message(t *testing.T) {
	cause := errors.New("unknown revision")
	err := &NotFoundError{Ref: "main..HEAD", Err: cause}

	assert.Contains(t, err.Error(), "main..HEAD")
	assert.ErrorIs(t, err, cause)

	bare := &NotFoundError{Ref: "x.diff"}
	assert.Contains(t, bare.Error(), "x.diff")
}

func TestConfigError_Message(t *testing.T) {
	err := &ConfigError{Key: "thresholds", Reason: "medium must be less than high"}

	assert.Contains(t, err.Error(), "thresholds")
	assert.Contains(t, err.Error(), "medium must be less than high")
}

func TestFormatError_Unwrap(t *testing.T) {
	cause := errors.New("broken pipe")
	err := &FormatError{Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "broken pipe")
}
