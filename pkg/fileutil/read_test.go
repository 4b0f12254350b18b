package fileutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/reqy/internal/errors"
)

func TestReadFileWithLimit(t *testing.T) {
	tests := []struct {
		name    string
		size    int64
		wantErr bool
	}{
		{"small file", 100, false},
		{"exact limit", MaxFileSize, false},
		{"too large", MaxFileSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.json")
			f, err := os.Create(path)
			require.NoError(t, err)
			require.NoError(t, f.Truncate(tt.size))
			require.NoError(t, f.Close())

			data, err := ReadFileWithLimit(path)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrFileTooLarge), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, data, int(tt.size))
		})
	}
}

func TestReadFileWithLimit_Missing(t *testing.T) {
	_, err := ReadFileWithLimit(filepath.Join(t.TempDir(), "absent.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestReadAllWithLimit(t *testing.T) {
	data, err := ReadAllWithLimit(bytes.NewReader([]byte(`{"a":1}`)))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	_, err = ReadAllWithLimit(bytes.NewReader(make([]byte, MaxFileSize+1)))
	assert.True(t, errors.Is(err, ErrFileTooLarge), "got %v", err)
}
