package cmd

import "github.com/ardnew/brace/pkg"

//nolint:gochecknoglobals
var (
	ErrOpenSource  = pkg.NewError("open source")
	ErrRun         = pkg.NewError("run program")
	ErrDump        = pkg.NewError("dump source")
	ErrFormat      = pkg.NewError("format source")
	ErrMarshal     = pkg.NewError("marshal configuration")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
)
