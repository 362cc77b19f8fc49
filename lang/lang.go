package lang

import (
	"context"
	"io"
	"iter"
	"log/slog"

	"github.com/ardnew/brace/lang/ast"
	"github.com/ardnew/brace/lang/eval"
	"github.com/ardnew/brace/lang/lexer"
	"github.com/ardnew/brace/lang/parser"
	"github.com/ardnew/brace/lang/token"
	"github.com/ardnew/brace/log"
	"github.com/ardnew/brace/pkg"
)

// ErrReadInput is returned when program source cannot be read.
//
//nolint:gochecknoglobals
var ErrReadInput = pkg.NewError("failed to read input")

type options struct {
	logger    log.Logger
	typeCheck bool
	maxDepth  int
	output    io.Writer
}

// Option configures the pipeline.
type Option func(*options)

// WithLogger sets the logger that receives trace events from every stage.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTypeCheck controls whether declared variable types are enforced.
// Enabled by default.
func WithTypeCheck(enable bool) Option {
	return func(o *options) { o.typeCheck = enable }
}

// WithMaxDepth limits the nesting of blocks and parenthesized expressions.
func WithMaxDepth(depth int) Option {
	return func(o *options) { o.maxDepth = depth }
}

// WithOutput streams each printed line to w as it is produced.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

func makeOptions(opts ...Option) options {
	o := options{typeCheck: true, maxDepth: parser.DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func (o options) parser() []parser.Option {
	return []parser.Option{parser.WithMaxDepth(o.maxDepth), parser.WithLogger(o.logger)}
}

func (o options) eval() []eval.Option {
	return []eval.Option{
		eval.WithTypeCheck(o.typeCheck),
		eval.WithOutput(o.output),
		eval.WithLogger(o.logger),
	}
}

// Lex returns every token of src up to and including EOF.
func Lex(ctx context.Context, src string, opts ...Option) ([]token.Token, error) {
	o := makeOptions(opts...)

	toks, err := lexer.Tokenize(src)
	if err != nil {
		return toks, err
	}

	o.logger.TraceContext(ctx, "lex complete", slog.Int("tokens", len(toks)))

	return toks, nil
}

// Parse parses src as a complete program.
func Parse(ctx context.Context, src string, opts ...Option) (*ast.Block, error) {
	return parser.Parse(ctx, src, makeOptions(opts...).parser()...)
}

// ParseReader reads all of r and parses it as a complete program.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*ast.Block, error) {
	src, err := read(r)
	if err != nil {
		return nil, err
	}

	return Parse(ctx, src, opts...)
}

// Run parses and evaluates src, returning the printed lines. Lines printed
// before a runtime error are returned with it.
func Run(ctx context.Context, src string, opts ...Option) ([]string, error) {
	o := makeOptions(opts...)

	b, err := parser.Parse(ctx, src, o.parser()...)
	if err != nil {
		return nil, err
	}

	return eval.Run(ctx, b, o.eval()...)
}

// RunReader reads all of r and runs it with [Run].
func RunReader(ctx context.Context, r io.Reader, opts ...Option) ([]string, error) {
	src, err := read(r)
	if err != nil {
		return nil, err
	}

	return Run(ctx, src, opts...)
}

func read(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", ErrReadInput.Wrap(err)
	}

	return string(data), nil
}

// Session executes statement lists one at a time against a persistent global
// scope, as in an interactive loop.
type Session struct {
	opts options
	eval *eval.Session
}

// NewSession returns a Session with an empty global scope.
func NewSession(opts ...Option) *Session {
	o := makeOptions(opts...)

	return &Session{opts: o, eval: eval.NewSession(o.eval()...)}
}

// Exec parses src as a statement list without enclosing braces and executes
// it in the global scope.
func (s *Session) Exec(ctx context.Context, src string) ([]string, error) {
	stmts, err := parser.New(lexer.New(src, lexer.DefaultRules()), s.opts.parser()...).
		Statements(ctx)
	if err != nil {
		return nil, err
	}

	return s.eval.Exec(ctx, stmts)
}

// Load parses src as a complete program and executes its top-level statements
// directly in the global scope, so its declarations remain bound afterward.
func (s *Session) Load(ctx context.Context, src string) ([]string, error) {
	b, err := parser.Parse(ctx, src, s.opts.parser()...)
	if err != nil {
		return nil, err
	}

	return s.eval.Exec(ctx, b.Statements)
}

// Vars returns the global bindings in name order.
func (s *Session) Vars() iter.Seq2[string, eval.Binding] { return s.eval.Env().Visible() }

// Reset discards every global binding.
func (s *Session) Reset() { s.eval.Reset() }
