package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCLIErrorDefaultsExitCode(t *testing.T) {
	e := NewCLIError(CodeUsage, 0, "bad usage")
	assert.Equal(t, ExitRuntime, e.ExitCode)
}

func TestCLIErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("run: %w", Wrap(CodeFetchFailed, ExitExternal, "could not fetch", cause))

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsCode(err, CodeFetchFailed))
	assert.False(t, IsCode(err, CodeParseStructure))
	assert.False(t, IsCode(cause, CodeFetchFailed))
}

func TestFormatForUser(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantText string
		wantCode int
	}{
		{
			name:     "nil",
			err:      nil,
			wantText: "",
			wantCode: ExitOK,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			wantText: "error: boom",
			wantCode: ExitRuntime,
		},
		{
			name:     "message only",
			err:      NewCLIError(CodeUsage, ExitUsage, "unknown command"),
			wantText: "error: unknown command",
			wantCode: ExitUsage,
		},
		{
			name: "cause and hint",
			err: Wrap(CodeParseStructure, ExitParse, "fetched but could not parse", errors.New("marker not found")).
				WithHint("check --marker-class"),
			wantText: "error: fetched but could not parse\ncause: marker not found\nhint: check --marker-class",
			wantCode: ExitParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, code := FormatForUser(tt.err)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestNilCLIErrorIsSafe(t *testing.T) {
	var e *CLIError
	assert.Equal(t, "", e.Error())
	assert.Nil(t, e.Unwrap())
	assert.Nil(t, e.WithHint("x"))
	assert.Nil(t, e.WithCause(errors.New("x")))
}
