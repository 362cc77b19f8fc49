// Package cli contains the command line interface for brace.
//
// # Usage
//
//	brace [flags] [run] FILE|-        # evaluate a program (default command)
//	brace lex  [--format text|json|yaml] FILE|-
//	brace ast  [--format tree|json|yaml] FILE|-
//	brace fmt  [--indent N] FILE|-
//	brace repl [FILE]
//	brace init [--force]
//	brace version
//
// Relative source names that do not exist in the working directory are
// searched for in the directories listed by BRACE_PATH, then in the lib
// folder of the configuration directory. The .brc extension may be omitted.
//
// # Configuration
//
// Flag defaults are read from config.yaml in the configuration directory
// (for example ~/.config/brace/config.yaml), a YAML mapping of flag names to
// values. "brace init" writes the current values of all flags there.
//
//	log-level: debug
//	log-format: json
//	type-check: false
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (json, text)
//   - --log-time-layout: timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o brace .
//
//   - --pprof-mode: enable profiling (see [profile.Modes])
//   - --pprof-dir: profile output directory
package cli
