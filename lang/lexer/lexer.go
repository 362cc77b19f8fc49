// Package lexer converts source text into a lazy sequence of tokens using an
// ordered table of regular-expression rules.
package lexer

import (
	"iter"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/brace/lang/token"
)

// Lexer produces tokens from source text on demand.
//
// Once it has returned an EOF token or an error, every subsequent call to
// [Lexer.Next] returns that same result.
type Lexer struct {
	src   string
	rules Rules
	pos   token.Position

	done bool
	term token.Token
	err  error
}

// New returns a Lexer over src using the given rule table, normally
// [DefaultRules]().
func New(src string, rules Rules) *Lexer {
	return &Lexer{
		src:   src,
		rules: rules,
		pos:   token.Position{Offset: 0, Line: 1, Column: 1},
	}
}

// Pos returns the position of the next unread byte.
func (l *Lexer) Pos() token.Position { return l.pos }

// Next returns the next significant token.
// At end of input it returns a token of kind [token.EOF].
// On unmatched input it returns a zero Token and an [*Error].
func (l *Lexer) Next() (token.Token, error) {
	if l.done {
		return l.term, l.err
	}

	for l.pos.Offset < len(l.src) {
		rest := l.src[l.pos.Offset:]

		inWord := l.pos.Offset > 0 && isWord(l.src[l.pos.Offset-1])

		r, n, ok := l.rules.match(rest, inWord)
		if !ok {
			ch, _ := utf8.DecodeRuneInString(rest)

			return l.fail(&Error{Pos: l.pos, Char: ch})
		}

		start, lexeme := l.pos, rest[:n]
		l.advance(lexeme)

		if r.Discard {
			continue
		}

		if r.Kind == token.STRING {
			if _, err := strconv.Unquote(lexeme); err != nil {
				return l.fail(&Error{
					Pos:    start,
					Char:   '"',
					Reason: "invalid escape sequence in string literal",
				})
			}
		}

		return token.Token{Kind: r.Kind, Lexeme: lexeme, Pos: start}, nil
	}

	l.done = true
	l.term = token.Token{Kind: token.EOF, Pos: l.pos}

	return l.term, nil
}

// All returns an iterator over the remaining tokens. The final pair yielded
// is either the EOF token with a nil error or a zero token with the error
// that stopped lexing.
func (l *Lexer) All() iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		for {
			tok, err := l.Next()
			if !yield(tok, err) || err != nil || tok.Kind == token.EOF {
				return
			}
		}
	}
}

// Tokenize lexes all of src with [DefaultRules] and returns every token up to
// and including EOF. On error the tokens produced before it are returned.
func Tokenize(src string) ([]token.Token, error) {
	var toks []token.Token

	for tok, err := range New(src, DefaultRules()).All() {
		if err != nil {
			return toks, err
		}

		toks = append(toks, tok)
	}

	return toks, nil
}

func (l *Lexer) fail(err *Error) (token.Token, error) {
	l.done = true
	l.term = token.Token{}
	l.err = err

	return l.term, l.err
}

// advance moves the read position past s, which must be the next len(s)
// bytes of input.
func (l *Lexer) advance(s string) {
	l.pos.Offset += len(s)

	nl := strings.Count(s, "\n")
	if nl == 0 {
		l.pos.Column += len(s)

		return
	}

	l.pos.Line += nl
	l.pos.Column = len(s) - strings.LastIndexByte(s, '\n')
}
