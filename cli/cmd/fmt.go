package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/brace/lang"
)

// Fmt rewrites a program in canonical form.
type Fmt struct {
	Indent int `default:"4" help:"Indent width; 0 writes the program on one line." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := readSource(ctx, f.Source)
	if err != nil {
		return err
	}

	b, err := lang.Parse(ctx, src)
	if err != nil {
		return ErrFormat.With(slog.String("source", f.Source)).Wrap(err)
	}

	if err := lang.Format(ctx, outputFrom(ctx), b, f.Indent); err != nil {
		return ErrFormat.With(slog.String("source", f.Source)).Wrap(err)
	}

	return nil
}
