package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{"sentinel", NewExitError(ErrNotFound, ExitUser), "file not found"},
		{
			"wrapped",
			NewExitError(Wrapf(ErrValidationFailed, "%d issue(s) at or above %s", 2, "ERROR"), ExitUser),
			"2 issue(s) at or above ERROR: validation failed",
		},
		{"nil underlying error", NewExitError(nil, ExitSystem), "exit code 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestExitError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"sentinel", NewUserError(ErrValidationFailed, ""), ErrValidationFailed, true},
		{
			"through wrap",
			NewUserError(Wrapf(ErrUnsupportedFormat, "reading %s", "data.ini"), ""),
			ErrUnsupportedFormat,
			true,
		},
		{"different sentinel", NewUserError(ErrNotFound, ""), ErrInvalidConfig, false},
		{"nil underlying error", NewExitError(nil, ExitUser), ErrNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Is(tt.err, tt.target))
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", New("boom"), ExitSystem},
		{"user error", NewUserError(ErrNotFound, ""), ExitUser},
		{"config error", NewConfigError(ErrInvalidConfig), ExitUser},
		{"wrapped system error", Wrap(NewSystemError(New("disk full"), ""), "writing report"), ExitSystem},
		{"fmt wrapped user error", fmt.Errorf("validate: %w", NewUserError(ErrValidationFailed, "")), ExitUser},
		{"custom code", NewExitError(New("doctor found problems"), 3), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestSuggestion(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"exit error suggestion", NewUserError(ErrNotFound, "Check the schema path"), "Check the schema path"},
		{"config error", NewConfigError(ErrInvalidConfig), "Run: reqy config show"},
		{"hint", WithHint(ErrUnsupportedFormat, "Use --input-format"), "Use --input-format"},
		{
			"exit error without suggestion falls back to hint",
			NewExitError(WithHint(ErrNotFound, "Run: reqy schema list"), ExitUser),
			"Run: reqy schema list",
		},
		{"none", New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggestion(tt.err))
		})
	}
}

func TestWrappingChain(t *testing.T) {
	inner := Wrap(ErrUnsupportedFormat, "parsing person.ini")
	outer := Wrapf(inner, "loading schema %q", "person")
	exitErr := NewUserError(outer, "")

	assert.True(t, Is(exitErr, ErrUnsupportedFormat))

	var target *ExitError
	require.True(t, As(exitErr, &target))
	assert.Equal(t, ExitUser, target.Code)
	assert.Equal(t, `loading schema "person": parsing person.ini: unsupported format`, exitErr.Error())
}

func TestMark(t *testing.T) {
	err := Mark(Newf("bad level %q", "info"), ErrInvalidConfig)

	assert.True(t, Is(err, ErrInvalidConfig))
	assert.Equal(t, `bad level "info"`, err.Error())
}

func TestJoin(t *testing.T) {
	err := Join(ErrNotFound, ErrUnsupportedFormat)

	assert.True(t, Is(err, ErrNotFound))
	assert.True(t, Is(err, ErrUnsupportedFormat))
	assert.False(t, Is(err, ErrValidationFailed))
}
