package repl

import "github.com/ardnew/brace/pkg"

// Sentinel errors.
//
//nolint:gochecknoglobals
var (
	ErrOutOfBounds = pkg.NewError("index out of range")
	ErrLoad        = pkg.NewError("load source")
)
