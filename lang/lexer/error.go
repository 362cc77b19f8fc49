package lexer

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/brace/lang/token"
	"github.com/ardnew/brace/pkg"
)

// ErrLex is the sentinel matched by every error the lexer returns.
//
//nolint:gochecknoglobals
var ErrLex = pkg.NewError("lex error")

// Error reports input that no rule matches, or a string literal whose escape
// sequences are invalid. Lexing stops at the first Error.
type Error struct {
	Pos    token.Position
	Char   rune
	Reason string // optional; empty for an unmatched character
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s at %s: %s", ErrLex, e.Pos, e.Reason)
	}

	return fmt.Sprintf("%s at %s: unexpected character %q", ErrLex, e.Pos, e.Char)
}

// Unwrap returns [ErrLex].
func (e *Error) Unwrap() error { return ErrLex }

// LogValue implements [slog.LogValuer].
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", ErrLex.Error()),
		slog.Any("pos", e.Pos),
		slog.String("char", string(e.Char)),
	}

	if e.Reason != "" {
		attrs = append(attrs, slog.String("reason", e.Reason))
	}

	return slog.GroupValue(attrs...)
}
