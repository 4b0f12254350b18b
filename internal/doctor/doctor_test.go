package doctor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/reqy/internal/errors"
)

type stubCheck struct {
	status Status
}

func (s stubCheck) Name() string     { return "stub-" + s.status.String() }
func (s stubCheck) Category() string { return "test" }
func (s stubCheck) Run() *CheckResult {
	return &CheckResult{Name: s.Name(), Category: s.Category(), Status: s.status}
}

func TestRunner_Summary(t *testing.T) {
	r := NewRunner(stubCheck{StatusPass}, stubCheck{StatusInfo})
	r.AddCheck(stubCheck{StatusWarning})
	r.AddCheck(stubCheck{StatusError})
	r.AddCheck(stubCheck{StatusPass})

	report := r.Run()
	assert.Equal(t, Summary{Passed: 2, Info: 1, Warnings: 1, Errors: 1}, report.Summary)
	assert.Len(t, report.Results, 5)
	assert.True(t, report.HasErrors())
	assert.True(t, report.HasWarnings())
	assert.Len(t, r.Checks(), 5)
}

func TestReport_JSON(t *testing.T) {
	report := NewRunner(stubCheck{StatusWarning}).Run()
	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"warning"`)
}

func TestConfigCheck(t *testing.T) {
	tests := []struct {
		name  string
		check ConfigCheck
		want  Status
	}{
		{name: "loaded", check: ConfigCheck{Path: "/etc/reqy/config.yaml"}, want: StatusPass},
		{name: "defaults", check: ConfigCheck{}, want: StatusInfo},
		{name: "broken", check: ConfigCheck{Path: "x", LoadErr: errors.New("bad version")}, want: StatusError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check.Run().Status)
		})
	}
}

func TestPathPermissionCheck(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}

	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("version: 1\n"), 0o644))

	check := NewPathPermissionCheck(
		Target{Path: dir, IsDir: true},
		Target{Path: file},
		Target{Path: filepath.Join(dir, "missing")},
	)
	result := check.Run()
	assert.Equal(t, StatusPass, result.Status)
	assert.Equal(t, "all 2 paths have valid permissions", result.Message)
	assert.False(t, check.CanFix())

	require.NoError(t, os.Chmod(file, 0o666))
	result = check.Run()
	assert.Equal(t, StatusWarning, result.Status)
	assert.True(t, result.Fixable)
	assert.Contains(t, result.FixHint, "chmod 0644 "+file)
	require.True(t, check.CanFix())

	fixes := check.Fix()
	require.Len(t, fixes, 1)
	assert.True(t, fixes[0].Fixed)
	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	assert.Equal(t, StatusPass, check.Run().Status)
}

func TestPathPermissionCheck_WrongKind(t *testing.T) {
	file := filepath.Join(t.TempDir(), "schemas")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	result := NewPathPermissionCheck(Target{Path: file, IsDir: true}).Run()
	assert.Equal(t, StatusError, result.Status)
}

func TestSchemaCheck(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"good.yaml":  "name: Ada\n",
		"bad.json":   "{",
		"notes.txt":  "ignored",
		"other.toml": "a = 1\n",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	compile := func(path string) error {
		if filepath.Base(path) == "bad.json" {
			return errors.New("line 1: parsing schema")
		}
		return nil
	}

	result := (&SchemaCheck{Dir: dir, Compile: compile}).Run()
	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, "1 of 3 schemas failed to compile", result.Message)
	assert.Equal(t, map[string]any{"bad.json": "line 1: parsing schema"}, result.Details)

	missing := (&SchemaCheck{Dir: filepath.Join(dir, "nope"), Compile: compile}).Run()
	assert.Equal(t, StatusInfo, missing.Status)

	empty := (&SchemaCheck{Dir: t.TempDir(), Compile: compile}).Run()
	assert.Equal(t, StatusInfo, empty.Status)
}
