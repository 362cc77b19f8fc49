package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/brace/lang"
	"github.com/ardnew/brace/log"
	"github.com/ardnew/brace/pkg"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	inputKey  struct{}
	outputKey struct{}
)

// WithInput returns a new context.Context whose commands read the source "-"
// from r instead of standard input.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

// WithOutput returns a new context.Context whose commands write program output
// to w instead of standard output.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// openSource opens the named program source, resolving relative names
// against the search path.
func openSource(ctx context.Context, name string) (io.ReadCloser, error) {
	if name == stdinSource || name == "" {
		return io.NopCloser(inputFrom(ctx)), nil
	}

	path := pkg.Resolve(name)

	file, err := os.Open(path)
	if err != nil {
		return nil, ErrOpenSource.With(slog.String("source", name)).Wrap(err)
	}

	log.TraceContext(ctx, "source opened",
		slog.String("source", name),
		slog.String("path", path),
	)

	return file, nil
}

// readSource returns the entire content of the named program source.
func readSource(ctx context.Context, name string) (string, error) {
	r, err := openSource(ctx, name)
	if err != nil {
		return "", err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", ErrOpenSource.With(slog.String("source", name)).Wrap(err)
	}

	return string(data), nil
}

// Language holds the flags that configure parsing and evaluation.
type Language struct {
	TypeCheck bool `default:"true" help:"Enforce declared variable types."                negatable:""`
	MaxDepth  int  `default:"256"  help:"Maximum nesting of blocks and parenthesized expressions."`
}

func (l Language) options() []lang.Option {
	return []lang.Option{
		lang.WithLogger(log.Default()),
		lang.WithTypeCheck(l.TypeCheck),
		lang.WithMaxDepth(l.MaxDepth),
	}
}
