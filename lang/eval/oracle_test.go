package eval

import (
	"errors"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/expr-lang/expr"

	"github.com/ardnew/brace/lang/ast"
	"github.com/ardnew/brace/lang/parser"
)

// genExpr writes a random arithmetic expression over small int and float
// literals that is valid in both this language and expr-lang.
func genExpr(r *rand.Rand, sb *strings.Builder, depth int) {
	if depth == 0 || r.IntN(3) == 0 {
		if r.IntN(2) == 0 {
			sb.WriteString(strconv.Itoa(r.IntN(20)))
		} else {
			sb.WriteString(strconv.Itoa(r.IntN(10)) + "." + strconv.Itoa(r.IntN(100)))
		}

		return
	}

	paren := r.IntN(3) == 0
	if paren {
		sb.WriteByte('(')
	}

	genExpr(r, sb, depth-1)
	sb.WriteString([]string{" + ", " - ", " * ", " / "}[r.IntN(4)])
	genExpr(r, sb, depth-1)

	if paren {
		sb.WriteByte(')')
	}
}

// evalExpr evaluates src as a standalone expression.
func evalExpr(t *testing.T, src string) (Value, error) {
	t.Helper()

	b, err := parser.Parse(t.Context(), "{ print("+src+"); }")
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}

	in := &interpreter{ctx: t.Context(), cfg: makeConfig(), env: NewEnvironment()}

	return in.eval(b.Statements[0].(*ast.Print).Value)
}

// TestArithmetic_AgreesWithExpr checks the int/float operator table against
// expr-lang, which has the same rules on this subset: int op int stays int
// except for /, and any float operand promotes the result to float.
func TestArithmetic_AgreesWithExpr(t *testing.T) {
	r := rand.New(rand.NewPCG(0x62726163, 0x65))

	compared := 0

	for range 2000 {
		var sb strings.Builder

		genExpr(r, &sb, 3)
		src := sb.String()

		got, err := evalExpr(t, src)
		if err != nil {
			var eerr *Error
			if errors.As(err, &eerr) && eerr.Kind == DivisionByZero {
				continue // expr-lang yields Inf or NaN instead
			}

			t.Fatalf("%s: %v", src, err)
		}

		program, err := expr.Compile(src)
		if err != nil {
			t.Fatalf("expr.Compile(%q): %v", src, err)
		}

		want, err := expr.Run(program, nil)
		if err != nil {
			t.Fatalf("expr.Run(%q): %v", src, err)
		}

		switch w := want.(type) {
		case int:
			if got.Type() != ast.Int || got.Native() != int64(w) {
				t.Errorf("%s = %v (%s), expr-lang = %d (int)", src, got, got.Type(), w)
			}

		case float64:
			g, ok := got.Native().(float64)
			if got.Type() != ast.Float || !ok || !closeTo(g, w) {
				t.Errorf("%s = %v (%s), expr-lang = %v (float)", src, got, got.Type(), w)
			}

		default:
			t.Fatalf("%s: unexpected expr-lang result %T", src, want)
		}

		compared++
	}

	if compared < 1000 {
		t.Errorf("only %d expressions compared", compared)
	}
}

func closeTo(a, b float64) bool {
	if a == b {
		return true
	}

	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

func TestStringConcat_AgreesWithExpr(t *testing.T) {
	for _, src := range []string{
		`"a" + "b"`,
		`"" + "x" + ""`,
		`("left" + " ") + "right"`,
	} {
		got, err := evalExpr(t, src)
		if err != nil {
			t.Fatalf("%s: %v", src, err)
		}

		want, err := expr.Eval(src, nil)
		if err != nil {
			t.Fatalf("expr.Eval(%q): %v", src, err)
		}

		if got.Native() != want {
			t.Errorf("%s = %q, expr-lang = %q", src, got, want)
		}
	}
}
