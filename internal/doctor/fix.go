package doctor

import (
	"fmt"
	"os"

	"github.com/thoreinstein/reqy/internal/errors"
)

// Fixer is implemented by checks that can remediate what they detect.
// CanFix and Fix must be called after Run.
type Fixer interface {
	CanFix() bool
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix.
type FixResult struct {
	Path        string `json:"path"`
	Fixed       bool   `json:"fixed"`
	Description string `json:"description"`
	Error       error  `json:"-"`
}

const (
	secureFilePerm os.FileMode = 0o644
	secureDirPerm  os.FileMode = 0o755
)

func targetPerm(kind string) os.FileMode {
	if kind == "directory" {
		return secureDirPerm
	}
	return secureFilePerm
}

// PermissionFixer chmods world-writable paths found by PathPermissionCheck.
type PermissionFixer struct {
	issues []pathIssue
}

// CanFix returns true if there are any fixable permission issues.
func (f *PermissionFixer) CanFix() bool {
	return f.CountFixable() > 0
}

// CountFixable returns the number of fixable issues.
func (f *PermissionFixer) CountFixable() int {
	count := 0
	for _, issue := range f.issues {
		if issue.Fixable {
			count++
		}
	}
	return count
}

// Fix attempts to fix all fixable permission issues.
func (f *PermissionFixer) Fix() []FixResult {
	results := make([]FixResult, 0, f.CountFixable())
	for _, issue := range f.issues {
		if !issue.Fixable {
			continue
		}
		results = append(results, fixIssue(issue))
	}
	return results
}

func fixIssue(issue pathIssue) FixResult {
	perm := targetPerm(issue.Type)
	result := FixResult{Path: issue.Path}
	if err := os.Chmod(issue.Path, perm); err != nil {
		result.Description = fmt.Sprintf("failed to chmod %04o: %v", perm, err)
		result.Error = errors.Wrapf(err, "chmod %04o %s", perm, issue.Path)
		return result
	}
	result.Fixed = true
	result.Description = fmt.Sprintf("chmod %04o", perm)
	return result
}

func (f *PermissionFixer) setIssues(issues []pathIssue) {
	f.issues = issues
}
