package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes an indented tree rendering of b to w, one node per line.
// Positions are omitted, so two trees print identically exactly when they
// have the same structure and values.
func Fprint(w io.Writer, b *Block) error {
	p := &printer{w: w}
	_, err := WalkStatement[struct{}](b, p)

	return err
}

// Sprint returns the [Fprint] rendering of b.
func Sprint(b *Block) string {
	var sb strings.Builder

	_ = Fprint(&sb, b) // strings.Builder never fails

	return sb.String()
}

type printer struct {
	w     io.Writer
	depth int
}

func (p *printer) line(format string, args ...any) error {
	_, err := fmt.Fprintf(
		p.w,
		"%s"+format+"\n",
		append([]any{strings.Repeat("  ", p.depth)}, args...)...,
	)

	return err
}

func (p *printer) nested(fn func() error) error {
	p.depth++
	defer func() { p.depth-- }()

	return fn()
}

func (p *printer) expr(e Expression) error {
	_, err := WalkExpression[struct{}](e, p)

	return err
}

func (p *printer) VisitBlock(n *Block) (struct{}, error) {
	if err := p.line("Block"); err != nil {
		return struct{}{}, err
	}

	return struct{}{}, p.nested(func() error {
		for _, s := range n.Statements {
			if _, err := WalkStatement[struct{}](s, p); err != nil {
				return err
			}
		}

		return nil
	})
}

func (p *printer) VisitDeclaration(n *Declaration) (struct{}, error) {
	if err := p.line("Declaration %s %s", n.Type, n.Name); err != nil {
		return struct{}{}, err
	}

	return struct{}{}, p.nested(func() error { return p.expr(n.Value) })
}

func (p *printer) VisitAssign(n *Assign) (struct{}, error) {
	if err := p.line("Assign %s", n.Name); err != nil {
		return struct{}{}, err
	}

	return struct{}{}, p.nested(func() error { return p.expr(n.Value) })
}

func (p *printer) VisitPrint(n *Print) (struct{}, error) {
	if err := p.line("Print"); err != nil {
		return struct{}{}, err
	}

	return struct{}{}, p.nested(func() error { return p.expr(n.Value) })
}

func (p *printer) VisitBinaryOp(n *BinaryOp) (struct{}, error) {
	if err := p.line("BinaryOp %s", n.Op); err != nil {
		return struct{}{}, err
	}

	return struct{}{}, p.nested(func() error {
		if err := p.expr(n.Left); err != nil {
			return err
		}

		return p.expr(n.Right)
	})
}

func (p *printer) VisitLiteral(n *Literal) (struct{}, error) {
	return struct{}{}, p.line("Literal %s %s", n.Type, literalText(n))
}

func (p *printer) VisitVariable(n *Variable) (struct{}, error) {
	return struct{}{}, p.line("Variable %s", n.Name)
}

// literalText renders a literal value canonically: strings quoted, numbers
// and booleans in their shortest exact form.
func literalText(n *Literal) string {
	switch v := n.Value.(type) {
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
