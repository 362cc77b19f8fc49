package eval

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/ardnew/brace/lang/ast"
)

// Value is a runtime value. The zero Value is invalid; construct values with
// [Int], [Float], [String], or [Bool].
type Value struct {
	typ ast.Type
	i   int64
	f   float64
	s   string
	b   bool
}

// Int returns an int value.
func Int(n int64) Value { return Value{typ: ast.Int, i: n} }

// Float returns a float value.
func Float(f float64) Value { return Value{typ: ast.Float, f: f} }

// String returns a string value.
func String(s string) Value { return Value{typ: ast.String, s: s} }

// Bool returns a bool value.
func Bool(b bool) Value { return Value{typ: ast.Bool, b: b} }

// FromLiteral returns the value of a literal node.
func FromLiteral(n *ast.Literal) Value {
	switch v := n.Value.(type) {
	case int64:
		return Int(v)
	case float64:
		return Float(v)
	case string:
		return String(v)
	case bool:
		return Bool(v)
	default:
		return Value{}
	}
}

// Type returns the runtime type of v.
func (v Value) Type() ast.Type { return v.typ }

// IsValid reports whether v was constructed by one of the value constructors.
func (v Value) IsValid() bool { return v.typ != 0 }

// Native returns v as an int64, float64, string, or bool.
func (v Value) Native() any {
	switch v.typ {
	case ast.Int:
		return v.i
	case ast.Float:
		return v.f
	case ast.String:
		return v.s
	case ast.Bool:
		return v.b
	default:
		return nil
	}
}

// String renders v the way print does: integers without a decimal point,
// floats always with one, strings unquoted, booleans as true or false.
func (v Value) String() string {
	switch v.typ {
	case ast.Int:
		return strconv.FormatInt(v.i, 10)
	case ast.Float:
		return formatFloat(v.f)
	case ast.String:
		return v.s
	case ast.Bool:
		return strconv.FormatBool(v.b)
	default:
		return "<invalid>"
	}
}

// LogValue implements [slog.LogValuer].
func (v Value) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", v.typ.String()),
		slog.String("value", v.String()),
	)
}

func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// asFloat returns the numeric value of an int or float as a float64.
func (v Value) asFloat() float64 {
	if v.typ == ast.Int {
		return float64(v.i)
	}

	return v.f
}

func (v Value) isNumeric() bool { return v.typ == ast.Int || v.typ == ast.Float }

func (v Value) isZero() bool {
	switch v.typ {
	case ast.Int:
		return v.i == 0
	case ast.Float:
		return v.f == 0
	default:
		return false
	}
}

// convert returns v stored into a binding declared as typ. An int is widened
// into a float binding; any other difference fails.
func convert(v Value, typ ast.Type) (Value, bool) {
	switch {
	case v.typ == typ:
		return v, true
	case v.typ == ast.Int && typ == ast.Float:
		return Float(float64(v.i)), true
	default:
		return v, false
	}
}
