// Package parser builds a syntax tree from a token stream by recursive
// descent with one token of lookahead.
//
// Grammar:
//
//	program     -> block EOF
//	block       -> '{' (statement | ';')* '}'
//	statement   -> declaration | block | assignment | print_stmt
//	declaration -> type_keyword IDENTIFIER '=' expr ';'
//	assignment  -> IDENTIFIER '=' expr ';'
//	print_stmt  -> 'print' '(' expr ')' ';'
//	expr        -> term (('+' | '-') term)*
//	term        -> factor (('*' | '/') factor)*
//	factor      -> INTEGER | FLOAT | STRING | BOOL | IDENTIFIER | '(' expr ')'
package parser

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/ardnew/brace/lang/ast"
	"github.com/ardnew/brace/lang/lexer"
	"github.com/ardnew/brace/lang/token"
	"github.com/ardnew/brace/log"
)

// DefaultMaxDepth is the default limit on nested blocks and parenthesized
// expressions.
const DefaultMaxDepth = 256

// Parser consumes tokens from a [lexer.Lexer]. A Parser is used for a single
// parse and is not safe for concurrent use.
type Parser struct {
	lex      *lexer.Lexer
	cur      token.Token
	depth    int
	maxDepth int
	logger   log.Logger
}

// Option configures a [Parser].
type Option func(*Parser)

// WithMaxDepth sets the maximum nesting depth of blocks and parenthesized
// expressions. Values below 1 select [DefaultMaxDepth].
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n < 1 {
			n = DefaultMaxDepth
		}

		p.maxDepth = n
	}
}

// WithLogger sets the logger that receives trace events.
func WithLogger(l log.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// New returns a Parser reading from lex.
func New(lex *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{lex: lex, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse parses src as a complete program.
func Parse(ctx context.Context, src string, opts ...Option) (*ast.Block, error) {
	return New(lexer.New(src, lexer.DefaultRules()), opts...).Program(ctx)
}

// Program parses a block followed by end of input.
func (p *Parser) Program(ctx context.Context) (*ast.Block, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	b, err := p.block()
	if err != nil {
		return nil, err
	}

	if p.cur.Kind != token.EOF {
		return nil, p.unexpected("end of input")
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("statements", len(b.Statements)))

	return b, nil
}

// Statements parses a statement list terminated by end of input, without
// enclosing braces. It is used for interactive input, where each line is
// executed in the global scope.
func (p *Parser) Statements(ctx context.Context) ([]ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	stmts, err := p.statements(token.EOF)
	if err != nil {
		return nil, err
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("statements", len(stmts)))

	return stmts, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}

	p.cur = tok

	return nil
}

// expect consumes a token of kind k and returns it.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.cur.Kind != k {
		return token.Token{}, p.unexpected(k.Describe())
	}

	tok := p.cur

	return tok, p.advance()
}

func (p *Parser) unexpected(expected string) *Error {
	return &Error{Expected: expected, Found: p.cur, Pos: p.cur.Pos}
}

func (p *Parser) enter(expected string) (func(), error) {
	if p.depth >= p.maxDepth {
		return nil, &Error{
			Expected: expected + " within nesting depth " + strconv.Itoa(p.maxDepth),
			Found:    p.cur,
			Pos:      p.cur.Pos,
		}
	}

	p.depth++

	return func() { p.depth-- }, nil
}

func (p *Parser) block() (*ast.Block, error) {
	open, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}

	leave, err := p.enter("'}'")
	if err != nil {
		return nil, err
	}
	defer leave()

	stmts, err := p.statements(token.RBRACE)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return &ast.Block{Statements: stmts, At: open.Pos}, nil
}

// statements parses statements and stray semicolons until the current token
// is end, which is left unconsumed.
func (p *Parser) statements(end token.Kind) ([]ast.Statement, error) {
	var stmts []ast.Statement

	for p.cur.Kind != end {
		if p.cur.Kind == token.SEMICOLON {
			if err := p.advance(); err != nil {
				return nil, err
			}

			continue
		}

		if p.cur.Kind == token.EOF {
			return nil, p.unexpected(end.Describe())
		}

		s, err := p.statement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, s)
	}

	return stmts, nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch k := p.cur.Kind; {
	case k.IsType():
		return p.declaration()
	case k == token.LBRACE:
		return p.block()
	case k == token.IDENTIFIER:
		return p.assignment()
	case k == token.PRINT:
		return p.print()
	default:
		return nil, p.unexpected("statement")
	}
}

func (p *Parser) declaration() (ast.Statement, error) {
	kw := p.cur
	typ, _ := ast.TypeOf(kw.Kind)

	if err := p.advance(); err != nil {
		return nil, err
	}

	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}

	value, err := p.initializer()
	if err != nil {
		return nil, err
	}

	return &ast.Declaration{Type: typ, Name: name.Lexeme, Value: value, At: kw.Pos}, nil
}

func (p *Parser) assignment() (ast.Statement, error) {
	name := p.cur

	if err := p.advance(); err != nil {
		return nil, err
	}

	value, err := p.initializer()
	if err != nil {
		return nil, err
	}

	return &ast.Assign{Name: name.Lexeme, Value: value, At: name.Pos}, nil
}

// initializer parses "'=' expr ';'".
func (p *Parser) initializer() (ast.Expression, error) {
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	return value, nil
}

func (p *Parser) print() (ast.Statement, error) {
	kw := p.cur

	if err := p.advance(); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	return &ast.Print{Value: value, At: kw.Pos}, nil
}

func (p *Parser) expr() (ast.Expression, error) {
	return p.binary(p.term, token.PLUS, token.MINUS)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.binary(p.factor, token.MULTIPLY, token.DIVIDE)
}

// binary parses operand (op operand)* for the given operators, folding to the
// left.
func (p *Parser) binary(
	operand func() (ast.Expression, error),
	ops ...token.Kind,
) (ast.Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for p.matches(ops...) {
		opTok := p.cur
		op, _ := ast.OpOf(opTok.Kind)

		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := operand()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryOp{Op: op, Left: left, Right: right, At: opTok.Pos}
	}

	return left, nil
}

func (p *Parser) matches(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.cur.Kind == k {
			return true
		}
	}

	return false
}

func (p *Parser) factor() (ast.Expression, error) {
	tok := p.cur

	switch tok.Kind {
	case token.INTEGER, token.FLOAT, token.STRING, token.BOOL:
		lit, err := literal(tok)
		if err != nil {
			return nil, err
		}

		return lit, p.advance()

	case token.IDENTIFIER:
		return &ast.Variable{Name: tok.Lexeme, At: tok.Pos}, p.advance()

	case token.LPAREN:
		leave, err := p.enter("')'")
		if err != nil {
			return nil, err
		}
		defer leave()

		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.expr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}

		return inner, nil

	default:
		return nil, p.unexpected("expression")
	}
}

// literal converts a literal token to a node. An integer that does not fit
// in 64 bits is reported as a parse error at the token.
func literal(tok token.Token) (*ast.Literal, error) {
	lit := &ast.Literal{Raw: tok.Lexeme, At: tok.Pos}

	switch tok.Kind {
	case token.INTEGER:
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, &Error{Expected: "integer within 64-bit range", Found: tok, Pos: tok.Pos}
		}

		lit.Type, lit.Value = ast.Int, n

	case token.FLOAT:
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, &Error{Expected: "float within 64-bit range", Found: tok, Pos: tok.Pos}
		}

		lit.Type, lit.Value = ast.Float, f

	case token.STRING:
		s, err := strconv.Unquote(tok.Lexeme)
		if err != nil {
			return nil, &Error{Expected: "valid string literal", Found: tok, Pos: tok.Pos}
		}

		lit.Type, lit.Value = ast.String, s

	default:
		lit.Type, lit.Value = ast.Bool, tok.Lexeme == "true"
	}

	return lit, nil
}
