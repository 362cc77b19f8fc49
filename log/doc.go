// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// A [Logger] is an immutable value: [Logger.With] and [Logger.Wrap] return
// new loggers and never affect the receiver. The zero Logger discards
// everything, so components accept a Logger by value and log unconditionally.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("program evaluated", slog.Int("lines", 3))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339"),
//		log.WithCaller(true))
//
// # Levels
//
// In addition to the [slog] levels the package defines [LevelTrace], below
// Debug, used for per-stage and per-scope events of the interpreter.
//
// # Output Formats
//
// [FormatText] (default) and [FormatJSON]. Text output is styled with
// lipgloss when [WithPretty] is enabled; styling degrades to plain text when
// the output is not a terminal.
//
// # Package Logger
//
// The package-level functions ([Info], [ErrorContext], ...) write through a
// default logger that [Config] reconfigures in place.
package log
