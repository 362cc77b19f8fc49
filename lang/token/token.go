// Package token defines the lexical vocabulary of the language: token kinds,
// tokens, and source positions.
package token

import (
	"fmt"
	"log/slog"
)

// Kind identifies the lexical class of a [Token].
type Kind int

// Token kinds.
const (
	Invalid Kind = iota

	// Literals.
	INTEGER
	FLOAT
	STRING
	BOOL

	// Type keywords.
	INT
	FLOAT_T
	STRING_T
	BOOL_T

	PRINT
	IDENTIFIER

	// Operators.
	ASSIGN
	PLUS
	MINUS
	MULTIPLY
	DIVIDE

	// Delimiters.
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	SEMICOLON

	EOF
)

// String returns the name of the token kind.
func (k Kind) String() string {
	switch k {
	case INTEGER:
		return "INTEGER"
	case FLOAT:
		return "FLOAT"
	case STRING:
		return "STRING"
	case BOOL:
		return "BOOL"
	case INT:
		return "INT"
	case FLOAT_T:
		return "FLOAT_T"
	case STRING_T:
		return "STRING_T"
	case BOOL_T:
		return "BOOL_T"
	case PRINT:
		return "PRINT"
	case IDENTIFIER:
		return "IDENTIFIER"
	case ASSIGN:
		return "ASSIGN"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case MULTIPLY:
		return "MULTIPLY"
	case DIVIDE:
		return "DIVIDE"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case LBRACE:
		return "LBRACE"
	case RBRACE:
		return "RBRACE"
	case SEMICOLON:
		return "SEMICOLON"
	case EOF:
		return "EOF"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Describe returns a human-readable description of the kind for use in
// diagnostics, e.g. "'{'" or "identifier".
func (k Kind) Describe() string {
	switch k {
	case INTEGER:
		return "integer literal"
	case FLOAT:
		return "float literal"
	case STRING:
		return "string literal"
	case BOOL:
		return "boolean literal"
	case INT:
		return "'int'"
	case FLOAT_T:
		return "'float'"
	case STRING_T:
		return "'string'"
	case BOOL_T:
		return "'bool'"
	case PRINT:
		return "'print'"
	case IDENTIFIER:
		return "identifier"
	case ASSIGN:
		return "'='"
	case PLUS:
		return "'+'"
	case MINUS:
		return "'-'"
	case MULTIPLY:
		return "'*'"
	case DIVIDE:
		return "'/'"
	case LPAREN:
		return "'('"
	case RPAREN:
		return "')'"
	case LBRACE:
		return "'{'"
	case RBRACE:
		return "'}'"
	case SEMICOLON:
		return "';'"
	case EOF:
		return "end of input"
	default:
		return k.String()
	}
}

// IsLiteral reports whether k is one of the literal kinds.
func (k Kind) IsLiteral() bool { return k >= INTEGER && k <= BOOL }

// IsType reports whether k is one of the type keywords.
func (k Kind) IsType() bool { return k >= INT && k <= BOOL_T }

// IsOperator reports whether k is a binary arithmetic operator.
func (k Kind) IsOperator() bool { return k >= PLUS && k <= DIVIDE }

// Keywords maps each reserved word to its kind.
//
//nolint:gochecknoglobals
var Keywords = map[string]Kind{
	"int":    INT,
	"float":  FLOAT_T,
	"string": STRING_T,
	"bool":   BOOL_T,
	"print":  PRINT,
	"true":   BOOL,
	"false":  BOOL,
}

// Position is a location in source text.
// Offset is the zero-based byte offset; Line and Column are one-based, with
// Column counted in bytes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether p was set by the lexer.
func (p Position) IsValid() bool { return p.Line > 0 }

// LogValue implements [slog.LogValuer].
func (p Position) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("offset", p.Offset),
		slog.Int("line", p.Line),
		slog.Int("column", p.Column),
	)
}

// Token is a lexical unit: its kind, the exact source text it was produced
// from, and the position of its first byte.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    Position
}

// String returns a compact representation such as IDENTIFIER("x")@1:5.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lexeme, t.Pos)
}

// LogValue implements [slog.LogValuer].
func (t Token) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", t.Kind.String()),
		slog.String("lexeme", t.Lexeme),
		slog.Any("pos", t.Pos),
	)
}
