package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/brace/lang"
	"github.com/ardnew/brace/lang/ast"
)

// Lex prints the token stream of a source.
type Lex struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})."`
	Indent int    `default:"2"                          help:"Indent width for JSON and YAML output." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the lex command.
func (l *Lex) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := readSource(ctx, l.Source)
	if err != nil {
		return err
	}

	toks, lexErr := lang.Lex(ctx, src)

	// Tokens preceding a lex error are still printed.
	err = lang.FormatTokens(ctx, outputFrom(ctx), toks, l.Format, l.Indent)
	if err != nil {
		return ErrDump.With(slog.String("format", l.Format)).Wrap(err)
	}

	if lexErr != nil {
		return ErrDump.
			With(slog.String("source", l.Source)).
			With(slog.Int("tokens", len(toks))).
			Wrap(lexErr)
	}

	return nil
}

// AST prints the syntax tree of a program.
type AST struct {
	Format   string `default:"tree" enum:"tree,json,yaml" help:"Output format (${enum})."`
	Indent   int    `default:"2"                          help:"Indent width for JSON and YAML output." short:"i"`
	MaxDepth int    `default:"256"                        help:"Maximum nesting of blocks and parenthesized expressions."`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := readSource(ctx, a.Source)
	if err != nil {
		return err
	}

	b, err := lang.Parse(ctx, src, Language{MaxDepth: a.MaxDepth}.options()...)
	if err != nil {
		return ErrDump.With(slog.String("source", a.Source)).Wrap(err)
	}

	w := outputFrom(ctx)

	switch a.Format {
	case "json":
		err = lang.FormatJSON(ctx, w, b, a.Indent)
	case "yaml":
		err = lang.FormatYAML(ctx, w, b, a.Indent)
	default:
		err = ast.Fprint(w, b)
	}

	if err != nil {
		return ErrDump.With(slog.String("format", a.Format)).Wrap(err)
	}

	return nil
}
