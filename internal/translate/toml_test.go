package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLToTOML(t *testing.T) {
	out, err := YAMLToTOML([]byte("status: active\nage:\n  $range: [0, 150]\n"))
	require.NoError(t, err)

	back, err := TOMLToYAML(out)
	require.NoError(t, err)
	assert.Equal(t, "age:\n    $range:\n        - 0\n        - 150\nstatus: active\n", string(back))
}

func TestYAMLToTOML_RequiresMapping(t *testing.T) {
	_, err := YAMLToTOML([]byte("- name\n- email\n"))
	assert.Error(t, err)

	_, err = YAMLToTOML([]byte("a: [1"))
	assert.Error(t, err)
}

func TestTOMLToYAML(t *testing.T) {
	out, err := TOMLToYAML([]byte("name = \"$exists\"\n\n[job]\ntitle = \"engineer\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "job:\n    title: engineer\nname: $exists\n", string(out))

	_, err = TOMLToYAML([]byte("name = "))
	assert.Error(t, err)
}
