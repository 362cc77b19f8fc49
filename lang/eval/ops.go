package eval

import (
	"fmt"

	"github.com/ardnew/brace/lang/ast"
)

// apply evaluates l op r.
//
//	int    op int    -> int for + - *, float for /
//	number op number -> float otherwise
//	string +  string -> concatenation
//
// Every other combination is a type mismatch, and a zero right operand of /
// is a division by zero.
func apply(n *ast.BinaryOp, l, r Value) (Value, error) {
	switch {
	case l.typ == ast.String && r.typ == ast.String && n.Op == ast.Add:
		return String(l.s + r.s), nil

	case !l.isNumeric() || !r.isNumeric():
		return Value{}, &Error{
			Kind:   TypeMismatch,
			Detail: fmt.Sprintf("operator %s not defined on %s and %s", n.Op, l.typ, r.typ),
			Pos:    n.Pos(),
		}

	case n.Op == ast.Div && r.isZero():
		return Value{}, &Error{Kind: DivisionByZero, Detail: "division by zero", Pos: n.Pos()}

	case l.typ == ast.Int && r.typ == ast.Int && n.Op != ast.Div:
		return Int(intOp(n.Op, l.i, r.i)), nil

	default:
		return Float(floatOp(n.Op, l.asFloat(), r.asFloat())), nil
	}
}

// intOp wraps on overflow.
func intOp(op ast.Op, a, b int64) int64 {
	switch op {
	case ast.Sub:
		return a - b
	case ast.Mul:
		return a * b
	default:
		return a + b
	}
}

func floatOp(op ast.Op, a, b float64) float64 {
	switch op {
	case ast.Sub:
		return a - b
	case ast.Mul:
		return a * b
	case ast.Div:
		return a / b
	default:
		return a + b
	}
}
