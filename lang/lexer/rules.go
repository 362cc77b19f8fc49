package lexer

import (
	"regexp"
	"sync"

	"github.com/ardnew/brace/lang/token"
)

// Rule associates a pattern with the token kind it produces.
// Input matched by a Discard rule is consumed without emitting a token.
// A Word rule only matches where the preceding byte is not a word character.
type Rule struct {
	Kind    token.Kind
	Pattern *regexp.Regexp
	Discard bool
	Word    bool
}

// Rules is an ordered rule table. At each position the longest match wins;
// among matches of equal length the earlier rule wins.
type Rules []Rule

// rule compiles pattern anchored at the start of the remaining input.
func rule(kind token.Kind, pattern string) Rule {
	return Rule{Kind: kind, Pattern: regexp.MustCompile(`^(?:` + pattern + `)`)}
}

func keyword(kind token.Kind, pattern string) Rule {
	r := rule(kind, pattern)
	r.Word = true

	return r
}

func discard(pattern string) Rule {
	r := rule(token.Invalid, pattern)
	r.Discard = true

	return r
}

// DefaultRules returns the rule table of the language. It is compiled once and
// shared by every [Lexer]; callers must not modify it.
//
//nolint:gochecknoglobals
var DefaultRules = sync.OnceValue(
	func() Rules {
		return Rules{
			rule(token.FLOAT, `\d+\.\d+`),
			rule(token.INTEGER, `\d+`),
			rule(token.STRING, `"(?:[^"\\\n]|\\.)*"`),
			keyword(token.INT, `int\b`),
			keyword(token.FLOAT_T, `float\b`),
			keyword(token.STRING_T, `string\b`),
			keyword(token.BOOL_T, `bool\b`),
			keyword(token.PRINT, `print\b`),
			keyword(token.BOOL, `(?:true|false)\b`),
			rule(token.IDENTIFIER, `[A-Za-z_][A-Za-z0-9_]*`),
			rule(token.ASSIGN, `=`),
			rule(token.PLUS, `\+`),
			rule(token.MINUS, `-`),
			rule(token.MULTIPLY, `\*`),
			rule(token.DIVIDE, `/`),
			rule(token.LPAREN, `\(`),
			rule(token.RPAREN, `\)`),
			rule(token.LBRACE, `\{`),
			rule(token.RBRACE, `\}`),
			rule(token.SEMICOLON, `;`),
			discard(`#[^\n]*`),
			discard(`[ \t\r\n]+`),
		}
	},
)

// match returns the rule with the longest match at the start of src and the
// length of that match. inWord reports whether the byte preceding src is a
// word character. ok is false when no rule matches.
func (rs Rules) match(src string, inWord bool) (r Rule, n int, ok bool) {
	for _, cand := range rs {
		if cand.Word && inWord {
			continue
		}

		loc := cand.Pattern.FindStringIndex(src)
		if loc == nil || loc[1] == 0 {
			continue
		}

		if loc[1] > n {
			r, n, ok = cand, loc[1], true
		}
	}

	return r, n, ok
}

// isWord reports whether c is matched by the regexp class \w.
func isWord(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
