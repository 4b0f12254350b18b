package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/reqy/internal/errors"
)

func TestNew(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		New(Config{Level: slog.LevelInfo, Format: FormatJSON, Output: &buf}).
			Info("loaded schema", "path", "person.yaml")

		var parsed map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed), buf.String())
		assert.Equal(t, "loaded schema", parsed["msg"])
		assert.Equal(t, "person.yaml", parsed["path"])
	})

	t.Run("unknown format falls back to text", func(t *testing.T) {
		var buf bytes.Buffer
		New(Config{Level: slog.LevelInfo, Format: Format("xml"), Output: &buf}).
			Info("loaded schema", "entries", 3)

		assert.False(t, json.Valid(buf.Bytes()))
		assert.Contains(t, buf.String(), "INFO  loaded schema entries=3")
	})

	t.Run("file receives json", func(t *testing.T) {
		var term, file bytes.Buffer
		logger := New(Config{Level: slog.LevelInfo, Output: &term, File: &file})

		logger.Warn("slow schema", "ms", 120)

		assert.Contains(t, term.String(), "WARN  slow schema ms=120")
		assert.Contains(t, file.String(), `"msg":"slow schema","ms":120`)
	})
}

func TestNew_TraceLabel(t *testing.T) {
	for _, format := range []Format{FormatText, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: LevelTrace, Format: format, Output: &buf})

			logger.Log(context.Background(), LevelTrace, "check passed")

			assert.Contains(t, buf.String(), "TRACE")
			assert.NotContains(t, buf.String(), "DEBUG-4")
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{" JSON ", FormatJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name        string
		configLevel slog.Level
		logLevel    slog.Level
		want        bool
	}{
		{"info at info", slog.LevelInfo, slog.LevelInfo, true},
		{"debug at info", slog.LevelInfo, slog.LevelDebug, false},
		{"error at warn", slog.LevelWarn, slog.LevelError, true},
		{"info at warn", slog.LevelWarn, slog.LevelInfo, false},
		{"trace at debug", slog.LevelDebug, LevelTrace, false},
		{"trace at trace", LevelTrace, LevelTrace, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tt.configLevel, Output: &buf})

			logger.Log(context.Background(), tt.logLevel, "message")

			assert.Equal(t, tt.want, buf.Len() > 0, buf.String())
		})
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := map[int]slog.Level{
		-1: slog.LevelWarn,
		0:  slog.LevelWarn,
		1:  slog.LevelInfo,
		2:  slog.LevelDebug,
		3:  LevelTrace,
		4:  LevelTrace,
	}
	for v, want := range tests {
		assert.Equal(t, want, LevelFromVerbosity(v), "verbosity %d", v)
	}
	assert.Less(t, LevelTrace, slog.LevelDebug)
}

func TestVerbosityFromEnv(t *testing.T) {
	tests := map[string]int{
		"":     0,
		"1":    2,
		"true": 2,
		"2":    3,
		"yes":  0,
	}
	for val, want := range tests {
		t.Run(val, func(t *testing.T) {
			t.Setenv("REQY_DEBUG", val)
			assert.Equal(t, want, VerbosityFromEnv())
		})
	}
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Output: &buf})

	ctx := NewContext(t.Context(), logger)
	assert.Same(t, logger, FromContext(ctx))

	fallback := FromContext(t.Context())
	require.NotNil(t, fallback)
	fallback.Error("discarded")
	assert.Zero(t, buf.Len())
	assert.False(t, fallback.Enabled(t.Context(), slog.LevelError))
}

func TestForTest(t *testing.T) {
	logger := ForTest(t)
	assert.True(t, logger.Enabled(t.Context(), LevelTrace))
	logger.Info("info from test logger", "test", t.Name())

	tw := &testWriter{t: t}
	for _, in := range []string{"line\n", "no newline", ""} {
		n, err := tw.Write([]byte(in))
		require.NoError(t, err)
		assert.Equal(t, len(in), n)
	}
}

func TestMultiHandler(t *testing.T) {
	var text, jsonOut bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&text, &slog.HandlerOptions{Level: slog.LevelWarn}),
		nil,
		slog.NewJSONHandler(&jsonOut, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("run_id", "r1").WithGroup("check")

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, h.Enabled(context.Background(), LevelTrace))

	logger.Debug("evaluated", "key", "age")
	assert.Empty(t, text.String())
	assert.Contains(t, jsonOut.String(), `"run_id":"r1","check":{"key":"age"}`)

	logger.Warn("slow")
	assert.True(t, strings.Contains(text.String(), "slow"))
}
