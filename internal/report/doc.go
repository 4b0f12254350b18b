// Package report renders validation outcomes for the command line.
//
// A Report carries the issues produced by one validation run together with
// the verdict derived from the configured fail-on level. A Reporter writes a
// Report as colored text for terminals or as indented JSON for tooling.
package report
