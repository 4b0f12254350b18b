// Package logging builds the slog loggers used by the reqy CLI.
//
// Records go to stderr as colorized text lines or as JSON (--log-format).
// With --log-file every record is additionally appended to a file as JSON,
// so a quiet terminal can coexist with a complete trace. [LevelTrace] sits
// below debug and carries the engine's per-check output (-vvv).
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbosity),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//		File:   logFile,
//	})
//	ctx = logging.NewContext(ctx, logger)
//
// Commands retrieve the logger with [FromContext]. The text handler masks
// attribute values that look like credentials.
//
// Tests can route log output through t.Log with [ForTest].
package logging
