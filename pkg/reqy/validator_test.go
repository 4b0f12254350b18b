package reqy

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Accessors(t *testing.T) {
	v := NewValidator("custom", SeverityWarning, func(any) (Verdict, error) { return Pass, nil })

	assert.Equal(t, "custom", v.Name())
	assert.Equal(t, SeverityWarning, v.Level())
	assert.NotNil(t, v.Predicate())
	assert.Nil(t, v.Preprocessor())
	assert.Equal(t, "custom (WARNING)", v.String())
}

func TestValidator_Fluent(t *testing.T) {
	v := Length(6).
		WithName("zip code").
		WithLevel(SeverityWarning).
		WithPreprocess(func(value any) any {
			s, _ := value.(string)
			return strings.ReplaceAll(s, " ", "")
		})

	assert.Equal(t, "zip code", v.Name())
	assert.Equal(t, SeverityWarning, v.Level())

	verdict, err := v.Check("12 34 56")
	require.NoError(t, err)
	assert.True(t, verdict.Passed)

	verdict, err = v.Check("12 34 5")
	require.NoError(t, err)
	assert.False(t, verdict.Passed)
	assert.Equal(t, "expected length to be 6, but got 5", verdict.Details)
}

func TestValidator_WithPredicate(t *testing.T) {
	v := Exists().WithPredicate(func(any) (Verdict, error) {
		return Fail("always"), nil
	})

	verdict, err := v.Check("x")
	require.NoError(t, err)
	assert.Equal(t, Verdict{Details: "always"}, verdict)
}

func TestValidator_NilPredicate(t *testing.T) {
	v := NewValidator("broken", SeverityError, nil)

	_, err := v.Check("x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSchema))
}

func TestFailf(t *testing.T) {
	v := Failf("expected %d, got %s", 3, "four")
	assert.False(t, v.Passed)
	assert.Equal(t, "expected 3, got four", v.Details)
	assert.True(t, Pass.Passed)
}
