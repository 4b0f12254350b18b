package logging

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(NewHandler(buf, &slog.HandlerOptions{Level: level}))
}

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelDebug)

	now := time.Now()
	logger.Info("schema compiled", "fields", 3)

	out := buf.String()
	assert.Contains(t, out, "INFO  schema compiled fields=3")
	assert.Contains(t, out, now.Format(time.Kitchen))
	assert.Regexp(t, `\n$`, out)
}

func TestHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelInfo).With("run_id", "abc")

	logger.Info("validation finished", "issues", 2)

	assert.Contains(t, buf.String(), "validation finished run_id=abc issues=2")
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	ctx := t.Context()

	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))
	assert.True(t, h.Enabled(ctx, slog.LevelError))

	assert.True(t, NewHandler(&bytes.Buffer{}, nil).Enabled(ctx, slog.LevelInfo))
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelWarn, "no time", 0)
	require.NoError(t, h.Handle(t.Context(), r))

	assert.Equal(t, "WARN  no time\n", buf.String())
}

func TestHandler_Redaction(t *testing.T) {
	tests := []struct {
		name    string
		args    []any
		want    string
		secrets []string
	}{
		{
			name:    "sensitive key",
			args:    []any{"api_key", "secret12345"},
			want:    "api_key=****2345",
			secrets: []string{"secret12345"},
		},
		{
			name:    "key match is case insensitive",
			args:    []any{"Token", "ghp_abcdef"},
			want:    "Token=****cdef",
			secrets: []string{"ghp_abcdef"},
		},
		{
			name:    "token prefix on a safe key",
			args:    []any{"foo", "ghp_secrettoken"},
			want:    "foo=****oken",
			secrets: []string{"ghp_secrettoken"},
		},
		{
			name: "plain value",
			args: []any{"schema", "person.yaml"},
			want: "schema=person.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newTestLogger(&buf, slog.LevelInfo).Info("msg", tt.args...)

			out := buf.String()
			assert.Contains(t, out, tt.want)
			for _, s := range tt.secrets {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelInfo).WithGroup("engine").With("run", 1)

	logger.Info("check failed", "key", "job.title")

	out := buf.String()
	assert.Contains(t, out, "engine.run=1")
	assert.Contains(t, out, "engine.key=job.title")
}

func TestHandler_GroupAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelInfo)

	logger.Info("report", slog.Group("counts", "errors", 1, "warnings", 2))

	assert.Contains(t, buf.String(), "report counts.errors=1 counts.warnings=2")
}

func TestHandler_ReplaceAttr(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "drop" {
				return slog.Attr{}
			}
			return a
		},
	})

	slog.New(h).Info("msg", "drop", "x", "keep", "y")

	assert.NotContains(t, buf.String(), "drop=")
	assert.Contains(t, buf.String(), "keep=y")
}

func TestHandler_TraceLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelTrace)

	logger.Log(t.Context(), LevelTrace, "check passed", "key", "name")

	assert.Contains(t, buf.String(), "TRACE check passed key=name")
}
