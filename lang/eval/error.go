package eval

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/brace/lang/token"
	"github.com/ardnew/brace/pkg"
)

// Predefined errors (sentinel values).
//
//nolint:gochecknoglobals
var (
	ErrEval   = pkg.NewError("eval error")
	ErrOutput = pkg.NewError("failed to write output")
)

// Kind classifies an evaluation [Error].
type Kind int

// Error kinds.
const (
	UnboundVariable Kind = iota + 1
	DivisionByZero
	TypeMismatch
)

func (k Kind) String() string {
	switch k {
	case UnboundVariable:
		return "unbound variable"
	case DivisionByZero:
		return "division by zero"
	case TypeMismatch:
		return "type mismatch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a runtime failure at the node located at Pos.
type Error struct {
	Kind   Kind
	Detail string
	Pos    token.Position
}

func (e *Error) Error() string {
	if e.Detail == "" || e.Detail == e.Kind.String() {
		return fmt.Sprintf("%s at %s: %s", ErrEval, e.Pos, e.Kind)
	}

	return fmt.Sprintf("%s at %s: %s: %s", ErrEval, e.Pos, e.Kind, e.Detail)
}

// Unwrap returns [ErrEval].
func (e *Error) Unwrap() error { return ErrEval }

// LogValue implements [slog.LogValuer].
func (e *Error) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrEval.Error()),
		slog.String("kind", e.Kind.String()),
		slog.String("detail", e.Detail),
		slog.Any("pos", e.Pos),
	)
}
