package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/brace/lang"
	"github.com/ardnew/brace/log"
)

// Run evaluates a program, printing each output line as it is produced.
type Run struct {
	Language `embed:""`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := readSource(ctx, r.Source)
	if err != nil {
		return err
	}

	out, err := lang.Run(ctx, src,
		append(r.options(), lang.WithOutput(outputFrom(ctx)))...)
	if err != nil {
		return ErrRun.
			With(slog.String("source", r.Source)).
			With(slog.Int("lines", len(out))).
			Wrap(err)
	}

	log.DebugContext(ctx, "program finished",
		slog.String("source", r.Source),
		slog.Int("lines", len(out)),
	)

	return nil
}
