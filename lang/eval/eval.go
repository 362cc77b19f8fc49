// Package eval executes syntax trees by walking them over a scoped
// [Environment].
//
// Evaluation is single-threaded and synchronous. The context passed to [Run]
// and [Session.Exec] is used only for logging; evaluation always runs to
// completion or to the first error.
package eval

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/brace/lang/ast"
	"github.com/ardnew/brace/log"
)

type config struct {
	typeCheck bool
	output    io.Writer
	logger    log.Logger
}

// Option configures evaluation.
type Option func(*config)

// WithTypeCheck controls whether declared types are enforced. When disabled,
// declarations and assignments store any value and the declared type is
// only recorded. Enabled by default.
func WithTypeCheck(enable bool) Option {
	return func(c *config) { c.typeCheck = enable }
}

// WithOutput sets a writer that receives each printed line, followed by a
// newline, as soon as it is produced.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// WithLogger sets the logger that receives trace events.
func WithLogger(l log.Logger) Option {
	return func(c *config) { c.logger = l }
}

func makeConfig(opts ...Option) config {
	c := config{typeCheck: true}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// Run executes b in a fresh environment and returns the printed lines in
// order. If evaluation fails, the lines printed before the failure are
// returned with the error.
func Run(ctx context.Context, b *ast.Block, opts ...Option) ([]string, error) {
	return NewSession(opts...).Run(ctx, b)
}

// Session evaluates successive programs or statement lists against one
// persistent global scope. A Session is not safe for concurrent use.
type Session struct {
	cfg config
	env *Environment
}

// NewSession returns a Session with an empty global scope.
func NewSession(opts ...Option) *Session {
	return &Session{cfg: makeConfig(opts...), env: NewEnvironment()}
}

// Env returns the session's environment.
func (s *Session) Env() *Environment { return s.env }

// Reset discards every global binding.
func (s *Session) Reset() { s.env = NewEnvironment() }

// Run executes b as a block nested in the global scope. Declarations inside b
// do not outlive the call; assignments to global names do.
func (s *Session) Run(ctx context.Context, b *ast.Block) ([]string, error) {
	return s.exec(ctx, func(in *interpreter) error {
		_, err := ast.WalkStatement[struct{}](b, in)

		return err
	})
}

// Exec executes stmts directly in the global scope, so declarations persist
// across calls.
func (s *Session) Exec(ctx context.Context, stmts []ast.Statement) ([]string, error) {
	return s.exec(ctx, func(in *interpreter) error { return in.statements(stmts) })
}

func (s *Session) exec(ctx context.Context, fn func(*interpreter) error) ([]string, error) {
	in := &interpreter{ctx: ctx, cfg: s.cfg, env: s.env}
	err := fn(in)

	s.cfg.logger.TraceContext(ctx, "eval complete",
		slog.Int("lines", len(in.out)),
		slog.Bool("ok", err == nil),
	)

	return in.out, err
}

// interpreter implements the statement and expression visitors.
type interpreter struct {
	ctx context.Context //nolint:containedctx
	cfg config
	env *Environment
	out []string
}

func (in *interpreter) statements(stmts []ast.Statement) error {
	for _, st := range stmts {
		if _, err := ast.WalkStatement[struct{}](st, in); err != nil {
			return err
		}
	}

	return nil
}

func (in *interpreter) eval(e ast.Expression) (Value, error) {
	return ast.WalkExpression[Value](e, in)
}

func (in *interpreter) VisitBlock(n *ast.Block) (struct{}, error) {
	leave := in.env.Enter()

	in.cfg.logger.TraceContext(in.ctx, "scope entered",
		slog.Int("depth", in.env.Depth()), slog.Any("pos", n.Pos()))

	defer func() {
		leave()

		in.cfg.logger.TraceContext(in.ctx, "scope exited",
			slog.Int("depth", in.env.Depth()), slog.Any("pos", n.Pos()))
	}()

	return struct{}{}, in.statements(n.Statements)
}

func (in *interpreter) VisitDeclaration(n *ast.Declaration) (struct{}, error) {
	v, err := in.eval(n.Value)
	if err != nil {
		return struct{}{}, err
	}

	v, err = in.store(n, n.Name, n.Type, v, "initialize %s variable %s with %s")
	if err != nil {
		return struct{}{}, err
	}

	in.env.Declare(n.Name, n.Type, v)

	return struct{}{}, nil
}

func (in *interpreter) VisitAssign(n *ast.Assign) (struct{}, error) {
	v, err := in.eval(n.Value)
	if err != nil {
		return struct{}{}, err
	}

	b, ok := in.env.Lookup(n.Name)
	if !ok {
		return struct{}{}, unbound(n.Name, n)
	}

	v, err = in.store(n, n.Name, b.Type, v, "assign %[3]s to %[1]s variable %[2]s")
	if err != nil {
		return struct{}{}, err
	}

	in.env.Assign(n.Name, v)

	return struct{}{}, nil
}

// store checks v against the declared type typ of the variable name.
// format receives the declared type, the name, and the value's type.
func (in *interpreter) store(n ast.Node, name string, typ ast.Type, v Value, format string) (Value, error) {
	if !in.cfg.typeCheck {
		return v, nil
	}

	cv, ok := convert(v, typ)
	if !ok {
		return Value{}, &Error{
			Kind:   TypeMismatch,
			Detail: fmt.Sprintf("cannot "+format, typ, name, v.Type()),
			Pos:    n.Pos(),
		}
	}

	return cv, nil
}

func (in *interpreter) VisitPrint(n *ast.Print) (struct{}, error) {
	v, err := in.eval(n.Value)
	if err != nil {
		return struct{}{}, err
	}

	line := v.String()
	in.out = append(in.out, line)

	if in.cfg.output != nil {
		if _, err := io.WriteString(in.cfg.output, line+"\n"); err != nil {
			return struct{}{}, ErrOutput.Wrap(err)
		}
	}

	return struct{}{}, nil
}

func (in *interpreter) VisitBinaryOp(n *ast.BinaryOp) (Value, error) {
	l, err := in.eval(n.Left)
	if err != nil {
		return Value{}, err
	}

	r, err := in.eval(n.Right)
	if err != nil {
		return Value{}, err
	}

	return apply(n, l, r)
}

func (in *interpreter) VisitLiteral(n *ast.Literal) (Value, error) {
	return FromLiteral(n), nil
}

func (in *interpreter) VisitVariable(n *ast.Variable) (Value, error) {
	b, ok := in.env.Lookup(n.Name)
	if !ok {
		return Value{}, unbound(n.Name, n)
	}

	return b.Value, nil
}

func unbound(name string, n ast.Node) *Error {
	return &Error{Kind: UnboundVariable, Detail: name, Pos: n.Pos()}
}
