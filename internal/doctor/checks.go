package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/thoreinstein/reqy/internal/paths"
)

// ConfigCheck reports whether the configuration loaded cleanly.
type ConfigCheck struct {
	// Path is the config file in use, empty when running on defaults.
	Path string
	// LoadErr is the error returned by config.Load, if any.
	LoadErr error
}

var _ Check = (*ConfigCheck)(nil)

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string { return "config" }

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string { return "config" }

// Run executes the check.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}
	switch {
	case c.LoadErr != nil:
		result.Status = StatusError
		result.Message = c.LoadErr.Error()
		result.FixHint = "Run: reqy config show"
	case c.Path == "":
		result.Status = StatusInfo
		result.Message = "no config file found, using defaults"
		result.FixHint = "Run: reqy config init"
	default:
		result.Status = StatusPass
		result.Message = "loaded " + c.Path
	}
	return result
}

// Target is a path inspected by PathPermissionCheck.
type Target struct {
	Path  string
	IsDir bool
}

// PathPermissionCheck validates that reqy's files and directories are
// usable and not world-writable. Missing paths are skipped.
type PathPermissionCheck struct {
	PermissionFixer
	targets []Target
}

var (
	_ Check = (*PathPermissionCheck)(nil)
	_ Fixer = (*PathPermissionCheck)(nil)
)

// NewPathPermissionCheck creates a check over the given targets.
func NewPathPermissionCheck(targets ...Target) *PathPermissionCheck {
	return &PathPermissionCheck{targets: targets}
}

// Name returns the unique identifier for this check.
func (c *PathPermissionCheck) Name() string { return "path-permissions" }

// Category returns the grouping for this check.
func (c *PathPermissionCheck) Category() string { return "filesystem" }

// pathIssue represents a single path or permission problem.
type pathIssue struct {
	Path        string
	Type        string // "file" or "directory"
	Problem     string
	Status      Status
	Permissions string
	Fixable     bool
	FixHint     string
}

// Run executes the path and permission check.
func (c *PathPermissionCheck) Run() *CheckResult {
	var issues []pathIssue
	var checked int

	for _, t := range c.targets {
		info, err := os.Stat(t.Path)
		if os.IsNotExist(err) {
			continue
		}
		checked++
		kind := "file"
		if t.IsDir {
			kind = "directory"
		}
		if err != nil {
			issues = append(issues, pathIssue{
				Path:    t.Path,
				Type:    kind,
				Problem: fmt.Sprintf("cannot stat %s: %v", kind, err),
				Status:  StatusError,
			})
			continue
		}
		if info.IsDir() != t.IsDir {
			issues = append(issues, pathIssue{
				Path:    t.Path,
				Type:    kind,
				Problem: "expected " + kind + " but found something else",
				Status:  StatusError,
			})
			continue
		}
		if t.IsDir && !isDirectoryWritable(t.Path) {
			issues = append(issues, pathIssue{
				Path:        t.Path,
				Type:        kind,
				Problem:     "directory is not writable",
				Status:      StatusWarning,
				Permissions: formatPermissions(info.Mode()),
				FixHint:     "chmod u+w " + t.Path,
			})
		}
		if runtime.GOOS != "windows" && info.Mode().Perm()&0o002 != 0 {
			issues = append(issues, pathIssue{
				Path:        t.Path,
				Type:        kind,
				Problem:     kind + " is world-writable (security risk)",
				Status:      StatusWarning,
				Permissions: formatPermissions(info.Mode()),
				Fixable:     true,
				FixHint:     fmt.Sprintf("chmod %04o %s", targetPerm(kind), t.Path),
			})
		}
	}

	c.setIssues(issues)
	return c.buildResult(issues, checked)
}

// isDirectoryWritable tests if a directory is writable by creating a temp file.
func isDirectoryWritable(path string) bool {
	f, err := os.CreateTemp(path, ".reqy-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

func (c *PathPermissionCheck) buildResult(issues []pathIssue, checked int) *CheckResult {
	if len(issues) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   StatusPass,
			Message:  fmt.Sprintf("all %d paths have valid permissions", checked),
		}
	}

	status := StatusPass
	details := make([]map[string]any, 0, len(issues))
	fixable := false
	var hints []string
	for _, issue := range issues {
		status = max(status, issue.Status)
		fixable = fixable || issue.Fixable
		if issue.FixHint != "" {
			hints = append(hints, issue.FixHint)
		}
		d := map[string]any{
			"path":    issue.Path,
			"type":    issue.Type,
			"problem": issue.Problem,
			"status":  issue.Status.String(),
		}
		if issue.Permissions != "" {
			d["permissions"] = issue.Permissions
		}
		details = append(details, d)
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   status,
		Message:  fmt.Sprintf("%d permission issue(s) found in %d paths", len(issues), checked),
		Details: map[string]any{
			"checked_paths": checked,
			"issues":        details,
		},
		Fixable: fixable,
		FixHint: strings.Join(hints, "; "),
	}
}

func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}

// SchemaCheck compiles every schema document in a directory.
type SchemaCheck struct {
	// Dir is the schema directory.
	Dir string
	// Compile compiles one schema file.
	Compile func(path string) error
}

var _ Check = (*SchemaCheck)(nil)

// Name returns the unique identifier for this check.
func (c *SchemaCheck) Name() string { return "schemas" }

// Category returns the grouping for this check.
func (c *SchemaCheck) Category() string { return "schema" }

// Run executes the check.
func (c *SchemaCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	files, err := paths.ListSchemas(c.Dir)
	switch {
	case os.IsNotExist(err):
		result.Status = StatusInfo
		result.Message = "schema directory " + c.Dir + " does not exist"
		result.FixHint = "mkdir -p " + c.Dir
		return result
	case err != nil:
		result.Status = StatusError
		result.Message = fmt.Sprintf("reading schema directory: %v", err)
		return result
	case len(files) == 0:
		result.Status = StatusInfo
		result.Message = "no schemas in " + c.Dir
		return result
	}

	failures := map[string]any{}
	for _, f := range files {
		if err := c.Compile(f); err != nil {
			failures[filepath.Base(f)] = err.Error()
		}
	}
	if len(failures) > 0 {
		result.Status = StatusError
		result.Message = fmt.Sprintf("%d of %d schemas failed to compile", len(failures), len(files))
		result.Details = failures
		result.FixHint = "Run: reqy schema check <name>"
		return result
	}

	result.Status = StatusPass
	result.Message = fmt.Sprintf("all %d schemas compile", len(files))
	return result
}
