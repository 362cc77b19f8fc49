package parser

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/brace/lang/token"
	"github.com/ardnew/brace/pkg"
)

// ErrParse is the sentinel matched by every syntax error the parser returns.
// Errors from the lexer are returned unchanged and do not match it.
//
//nolint:gochecknoglobals
var ErrParse = pkg.NewError("parse error")

// Error reports a failed expectation: the parser required Expected but found
// the token Found at Pos.
type Error struct {
	Expected string
	Found    token.Token
	Pos      token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s: expected %s, found %s",
		ErrParse, e.Pos, e.Expected, describe(e.Found))
}

// Unwrap returns [ErrParse].
func (e *Error) Unwrap() error { return ErrParse }

// LogValue implements [slog.LogValuer].
func (e *Error) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrParse.Error()),
		slog.String("expected", e.Expected),
		slog.String("found", describe(e.Found)),
		slog.Any("pos", e.Pos),
	)
}

func describe(t token.Token) string {
	switch t.Kind {
	case token.EOF:
		return t.Kind.Describe()
	case token.IDENTIFIER, token.INTEGER, token.FLOAT, token.STRING, token.BOOL:
		return fmt.Sprintf("%s %s", t.Kind.Describe(), t.Lexeme)
	default:
		return t.Kind.Describe()
	}
}
