package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/brace/lang/ast"
	"github.com/ardnew/brace/lang/token"
)

// Format writes b to w as canonical source followed by a newline. With indent
// greater than zero each statement is written on its own line, nested blocks
// indented by that many spaces per level. Otherwise the program is written on
// a single line.
//
// Parentheses are emitted only where precedence or associativity requires
// them, so parsing the output yields a tree equal to b.
func Format(_ context.Context, w io.Writer, b *ast.Block, indent int) error {
	f := &formatter{indent: max(indent, 0)}
	f.block(b, 0)
	f.sb.WriteByte('\n')

	_, err := io.WriteString(w, f.sb.String())

	return err
}

// FormatJSON writes the syntax tree of b as JSON.
func FormatJSON(_ context.Context, w io.Writer, b *ast.Block, indent int) error {
	return writeJSON(w, ast.ToMap(b), indent)
}

// FormatYAML writes the syntax tree of b as YAML. With indent of zero the
// document uses flow style.
func FormatYAML(ctx context.Context, w io.Writer, b *ast.Block, indent int) error {
	return writeYAML(ctx, w, ast.ToMap(b), indent)
}

// FormatTokens writes toks in the given format: "json", "yaml", or anything
// else for one token per line.
func FormatTokens(ctx context.Context, w io.Writer, toks []token.Token, format string, indent int) error {
	switch format {
	case "json":
		return writeJSON(w, TokenMaps(toks), indent)
	case "yaml":
		return writeYAML(ctx, w, TokenMaps(toks), indent)
	}

	for _, tok := range toks {
		if _, err := fmt.Fprintf(w, "%-6s %-10s %q\n", tok.Pos, tok.Kind, tok.Lexeme); err != nil {
			return err
		}
	}

	return nil
}

// TokenMaps converts toks to maps of native values for encoding.
func TokenMaps(toks []token.Token) []map[string]any {
	out := make([]map[string]any, 0, len(toks))
	for _, tok := range toks {
		out = append(out, map[string]any{
			"kind":   tok.Kind.String(),
			"lexeme": tok.Lexeme,
			"pos":    tok.Pos.String(),
		})
	}

	return out
}

func writeJSON(w io.Writer, v any, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

func writeYAML(ctx context.Context, w io.Writer, v any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

type formatter struct {
	sb     strings.Builder
	indent int
	depth  int
}

func (f *formatter) block(b *ast.Block, depth int) {
	if len(b.Statements) == 0 {
		f.sb.WriteString("{}")

		return
	}

	f.sb.WriteByte('{')

	for _, st := range b.Statements {
		f.newline(depth + 1)
		f.depth = depth + 1
		_, _ = ast.WalkStatement[struct{}](st, f)
	}

	f.newline(depth)
	f.sb.WriteByte('}')
}

func (f *formatter) newline(depth int) {
	if f.indent == 0 {
		f.sb.WriteByte(' ')

		return
	}

	f.sb.WriteByte('\n')
	f.sb.WriteString(strings.Repeat(" ", depth*f.indent))
}

func (f *formatter) expr(e ast.Expression) string {
	s, _ := ast.WalkExpression[string](e, f)

	return s
}

func (f *formatter) VisitBlock(n *ast.Block) (struct{}, error) {
	f.block(n, f.depth)

	return struct{}{}, nil
}

func (f *formatter) VisitDeclaration(n *ast.Declaration) (struct{}, error) {
	fmt.Fprintf(&f.sb, "%s %s = %s;", n.Type, n.Name, f.expr(n.Value))

	return struct{}{}, nil
}

func (f *formatter) VisitAssign(n *ast.Assign) (struct{}, error) {
	fmt.Fprintf(&f.sb, "%s = %s;", n.Name, f.expr(n.Value))

	return struct{}{}, nil
}

func (f *formatter) VisitPrint(n *ast.Print) (struct{}, error) {
	fmt.Fprintf(&f.sb, "print(%s);", f.expr(n.Value))

	return struct{}{}, nil
}

func (f *formatter) VisitBinaryOp(n *ast.BinaryOp) (string, error) {
	left, right := f.expr(n.Left), f.expr(n.Right)

	// Operators are left-associative: a right operand of equal precedence
	// needs parentheses, a left one does not.
	if l, ok := n.Left.(*ast.BinaryOp); ok && l.Op.Precedence() < n.Op.Precedence() {
		left = "(" + left + ")"
	}

	if r, ok := n.Right.(*ast.BinaryOp); ok && r.Op.Precedence() <= n.Op.Precedence() {
		right = "(" + right + ")"
	}

	return left + " " + n.Op.String() + " " + right, nil
}

func (f *formatter) VisitLiteral(n *ast.Literal) (string, error) {
	switch v := n.Value.(type) {
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") && !math.IsInf(v, 0) && !math.IsNaN(v) {
			s += ".0"
		}

		return s, nil
	case string:
		return strconv.Quote(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	}

	return n.Raw, nil
}

func (f *formatter) VisitVariable(n *ast.Variable) (string, error) {
	return n.Name, nil
}
