// Package fileutil provides bounded reads and atomic writes for reqy's
// input documents, reports and configuration files.
package fileutil

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/reqy/internal/errors"
)

// tempPattern names the temp file created next to the target.
const tempPattern = ".reqy-atomic-*.tmp"

// AtomicWriteFile writes data to path through a temp file in the same
// directory that is renamed over the target once fully written. Readers see
// either the old content or the new one, never a partial report.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	return writeAtomic(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// AtomicWriteJSON writes v as indented JSON with a trailing newline to path
// atomically, with 0644 permissions.
func AtomicWriteJSON(path string, v any) error {
	return writeAtomic(path, 0o644, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return errors.Wrap(enc.Encode(v), "encoding JSON")
	})
}

// AtomicWriteYAML writes v as YAML to path atomically with the given
// permissions.
func AtomicWriteYAML(path string, v any, perm os.FileMode) error {
	return writeAtomic(path, perm, func(w io.Writer) (err error) {
		// yaml.v3 panics on some unsupported types instead of failing.
		defer func() {
			if r := recover(); r != nil {
				err = errors.Newf("encoding YAML: %v", r)
			}
		}()

		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encoding YAML")
		}
		return errors.Wrap(enc.Close(), "encoding YAML")
	})
}

// writeAtomic streams the content produced by write into a temp file, syncs
// it and renames it to path. The temp file is removed on any failure.
func writeAtomic(path string, perm os.FileMode, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), tempPattern)
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err := write(tmp); err != nil {
		return errors.Wrapf(err, "writing %s", filepath.Base(path))
	}
	if err := tmp.Chmod(perm); err != nil {
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrap(err, "syncing temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		committed = true
		return errors.Wrap(err, "renaming temp file")
	}
	committed = true
	return nil
}
