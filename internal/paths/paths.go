package paths

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "reqy"

// SchemaExtensions lists the schema document extensions tried by
// ResolveSchema, in order.
var SchemaExtensions = []string{".yaml", ".yml", ".json", ".toml"}

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")

	// ErrSchemaNotFound indicates a schema name resolved to no file.
	ErrSchemaNotFound = errors.New("schema not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// CacheHome returns the XDG cache home directory.
func CacheHome() string {
	return xdg.CacheHome
}

// ConfigDir returns the reqy configuration directory: <ConfigHome>/reqy.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// SchemaDir returns the directory of named schemas: <ConfigDir>/schemas.
func SchemaDir() string {
	return filepath.Join(ConfigDir(), "schemas")
}

// ReportDir returns the default directory for saved reports:
// <CacheHome>/reqy/reports.
func ReportDir() string {
	return filepath.Join(CacheHome(), AppName, "reports")
}

// ResolveSchema maps a --schema argument to a file. An existing path is
// returned as is (after "~" expansion). Otherwise a bare name such as
// "person" is looked up in dir with each of SchemaExtensions.
func ResolveSchema(arg, dir string) (string, error) {
	if arg == "" || strings.ContainsRune(arg, '\x00') {
		return "", errors.Wrapf(ErrInvalidPath, "%q", arg)
	}
	path, err := ExpandHome(arg)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if strings.ContainsRune(arg, filepath.Separator) || filepath.Ext(arg) != "" {
		return "", errors.Wrapf(ErrSchemaNotFound, "%s", arg)
	}
	for _, ext := range SchemaExtensions {
		candidate := filepath.Join(dir, arg+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.WithHintf(errors.Wrapf(ErrSchemaNotFound, "%s", arg),
		"Place %s.yaml in %s or pass a file path", arg, dir)
}

// ListSchemas returns the schema documents directly inside dir, sorted by
// file name. Subdirectories and files with other extensions are skipped.
func ListSchemas(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(SchemaExtensions, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}
