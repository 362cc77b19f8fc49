package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/brace/cli/cmd/repl"
	"github.com/ardnew/brace/lang"
	"github.com/ardnew/brace/log"
)

// REPL starts an interactive session. When standard input is not a terminal,
// each input line is executed in turn instead.
type REPL struct {
	Language `embed:""`

	Source string `arg:"" help:"Program whose top-level declarations are loaded first." name:"source" optional:""`
}

// Run executes the repl command.
func (r *REPL) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	session := lang.NewSession(r.options()...)
	w := outputFrom(ctx)

	if r.Source != "" {
		src, err := readSource(ctx, r.Source)
		if err != nil {
			return err
		}

		out, err := session.Load(ctx, src)
		for _, line := range out {
			fmt.Fprintln(w, line)
		}

		if err != nil {
			return ErrRun.With(slog.String("source", r.Source)).Wrap(err)
		}
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	in := inputFrom(ctx)
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return repl.Run(ctx, session, cacheDir, log.Default())
	}

	return repl.Script(ctx, session, in, w, log.Default())
}
