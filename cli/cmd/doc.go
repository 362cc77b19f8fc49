// Package cmd implements the brace subcommands: run, lex, ast, fmt, repl,
// init, and version.
//
// Commands read a single program from a named source or standard input ("-").
// Relative names not found in the working directory are resolved against the
// search path (see [pkg.SearchPath]). Program output goes to the writer stored
// with [WithOutput], standard output by default.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
