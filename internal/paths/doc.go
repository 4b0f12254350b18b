// Package paths provides cross-platform path resolution for reqy's own
// files.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. On Linux and macOS, paths follow XDG conventions
// (~/.config, ~/.cache).
//
//	paths.ConfigDir() // ~/.config/reqy
//	paths.SchemaDir() // ~/.config/reqy/schemas
//	paths.ReportDir() // ~/.cache/reqy/reports
//
// # Named Schemas
//
// [ResolveSchema] lets commands accept either a schema file path or the
// name of a schema stored in [SchemaDir]:
//
//	path, err := paths.ResolveSchema("person", paths.SchemaDir())
//	// ~/.config/reqy/schemas/person.yaml
package paths
