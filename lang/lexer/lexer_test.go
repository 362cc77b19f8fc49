package lexer

import (
	"errors"
	"slices"
	"testing"
	"unicode/utf8"

	"github.com/ardnew/brace/lang/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}

	return out
}

func TestTokenize_Declaration(t *testing.T) {
	toks, err := Tokenize("int x = 10;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []token.Token{
		{Kind: token.INT, Lexeme: "int", Pos: token.Position{Offset: 0, Line: 1, Column: 1}},
		{Kind: token.IDENTIFIER, Lexeme: "x", Pos: token.Position{Offset: 4, Line: 1, Column: 5}},
		{Kind: token.ASSIGN, Lexeme: "=", Pos: token.Position{Offset: 6, Line: 1, Column: 7}},
		{Kind: token.INTEGER, Lexeme: "10", Pos: token.Position{Offset: 8, Line: 1, Column: 9}},
		{Kind: token.SEMICOLON, Lexeme: ";", Pos: token.Position{Offset: 10, Line: 1, Column: 11}},
		{Kind: token.EOF, Pos: token.Position{Offset: 11, Line: 1, Column: 12}},
	}

	if !slices.Equal(toks, want) {
		t.Errorf("tokens mismatch\n got: %v\nwant: %v", toks, want)
	}
}

func TestTokenize_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "float before integer",
			input: "3.14 42",
			want:  []token.Kind{token.FLOAT, token.INTEGER, token.EOF},
		},
		{
			name:  "keyword prefix is identifier",
			input: "integer printer floaty",
			want:  []token.Kind{token.IDENTIFIER, token.IDENTIFIER, token.IDENTIFIER, token.EOF},
		},
		{
			name:  "all keywords",
			input: "int float string bool print",
			want: []token.Kind{
				token.INT, token.FLOAT_T, token.STRING_T, token.BOOL_T, token.PRINT, token.EOF,
			},
		},
		{
			name:  "booleans",
			input: "true false trueish",
			want:  []token.Kind{token.BOOL, token.BOOL, token.IDENTIFIER, token.EOF},
		},
		{
			name:  "operators and delimiters",
			input: "=+-*/(){};",
			want: []token.Kind{
				token.ASSIGN, token.PLUS, token.MINUS, token.MULTIPLY, token.DIVIDE,
				token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.SEMICOLON,
				token.EOF,
			},
		},
		{
			name:  "comments and newlines discarded",
			input: "# leading\nprint(x); # trailing\n\r\n\t}",
			want: []token.Kind{
				token.PRINT, token.LPAREN, token.IDENTIFIER, token.RPAREN, token.SEMICOLON,
				token.RBRACE, token.EOF,
			},
		},
		{
			name:  "string with escapes",
			input: `"a \"quoted\" word\n"`,
			want:  []token.Kind{token.STRING, token.EOF},
		},
		{
			name:  "keyword glued to number",
			input: "5int 1print 2true",
			want: []token.Kind{
				token.INTEGER, token.IDENTIFIER,
				token.INTEGER, token.IDENTIFIER,
				token.INTEGER, token.IDENTIFIER,
				token.EOF,
			},
		},
		{
			name:  "keyword after delimiter",
			input: "(int)+print;true",
			want: []token.Kind{
				token.LPAREN, token.INT, token.RPAREN, token.PLUS,
				token.PRINT, token.SEMICOLON, token.BOOL, token.EOF,
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  []token.Kind{token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := kinds(toks); !slices.Equal(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	toks, err := Tokenize("{\n  int y = 2;\n}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]token.Position{
		"{":   {Offset: 0, Line: 1, Column: 1},
		"int": {Offset: 4, Line: 2, Column: 3},
		"y":   {Offset: 8, Line: 2, Column: 7},
		"}":   {Offset: 15, Line: 3, Column: 1},
	}

	for _, tok := range toks {
		if p, ok := want[tok.Lexeme]; ok && p != tok.Pos {
			t.Errorf("%q at %+v, want %+v", tok.Lexeme, tok.Pos, p)
		}
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		pos    token.Position
		char   rune
		prefix int // tokens produced before the error
	}{
		{
			name:   "unknown character",
			input:  "int x = 1 @ 2;",
			pos:    token.Position{Offset: 10, Line: 1, Column: 11},
			char:   '@',
			prefix: 4,
		},
		{
			name:   "unterminated string",
			input:  `print("abc);`,
			pos:    token.Position{Offset: 6, Line: 1, Column: 7},
			char:   '"',
			prefix: 2,
		},
		{
			name:   "newline inside string",
			input:  "\"ab\ncd\"",
			pos:    token.Position{Offset: 0, Line: 1, Column: 1},
			char:   '"',
			prefix: 0,
		},
		{
			name:   "invalid escape",
			input:  `x = "\q";`,
			pos:    token.Position{Offset: 4, Line: 1, Column: 5},
			char:   '"',
			prefix: 2,
		},
		{
			name:   "non-ascii",
			input:  "{ é }",
			pos:    token.Position{Offset: 2, Line: 1, Column: 3},
			char:   'é',
			prefix: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize(tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			if !errors.Is(err, ErrLex) {
				t.Errorf("errors.Is(err, ErrLex) = false for %v", err)
			}

			var lerr *Error
			if !errors.As(err, &lerr) {
				t.Fatalf("expected *Error, got %T", err)
			}

			if lerr.Pos != tt.pos {
				t.Errorf("pos = %+v, want %+v", lerr.Pos, tt.pos)
			}

			if lerr.Char != tt.char {
				t.Errorf("char = %q, want %q", lerr.Char, tt.char)
			}

			if len(toks) != tt.prefix {
				t.Errorf("got %d tokens before error, want %d", len(toks), tt.prefix)
			}
		})
	}
}

func TestLexer_TerminalRepeats(t *testing.T) {
	t.Run("eof", func(t *testing.T) {
		l := New("x", DefaultRules())
		_, _ = l.Next()

		first, err := l.Next()
		if err != nil || first.Kind != token.EOF {
			t.Fatalf("Next() = %v, %v; want EOF", first, err)
		}

		for range 3 {
			again, err := l.Next()
			if err != nil || again != first {
				t.Errorf("Next() after EOF = %v, %v; want %v", again, err, first)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		l := New("$", DefaultRules())

		_, first := l.Next()
		if first == nil {
			t.Fatal("expected error")
		}

		for range 3 {
			if _, err := l.Next(); err != first {
				t.Errorf("Next() after error = %v, want %v", err, first)
			}
		}
	})
}

func TestLexer_Deterministic(t *testing.T) {
	src := "{ float f = 1.5 * (2 + x); print(\"s\"); # c\n }"

	a, errA := Tokenize(src)
	b, errB := Tokenize(src)

	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v, %v", errA, errB)
	}

	if !slices.Equal(a, b) {
		t.Errorf("lexing is not deterministic:\n%v\n%v", a, b)
	}
}

func TestLexer_AllStopsEarly(t *testing.T) {
	l := New("a b c d", DefaultRules())

	n := 0
	for range l.All() {
		n++
		if n == 2 {
			break
		}
	}

	tok, err := l.Next()
	if err != nil || tok.Lexeme != "c" {
		t.Errorf("Next() after early break = %v, %v; want c", tok, err)
	}
}

func TestRules_TieGoesToEarlierRule(t *testing.T) {
	r, n, ok := DefaultRules().match("print", false)
	if !ok || n != 5 || r.Kind != token.PRINT {
		t.Errorf("match(print) = %v, %d, %v; want PRINT, 5, true", r.Kind, n, ok)
	}
}

func TestRules_WordRuleInsideWord(t *testing.T) {
	r, n, ok := DefaultRules().match("int", true)
	if !ok || n != 3 || r.Kind != token.IDENTIFIER {
		t.Errorf("match(int, inWord) = %v, %d, %v; want IDENTIFIER, 3, true", r.Kind, n, ok)
	}
}

func FuzzLexer(f *testing.F) {
	f.Add("int x = 10;")
	f.Add(`{ string s = "a\tb"; print(s + "!"); }`)
	f.Add("1.5/0.0 # c")
	f.Add("\"unterminated")
	f.Add("{}{}};;")

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		last := -1

		for tok, err := range New(input, DefaultRules()).All() {
			if err != nil {
				var lerr *Error
				if !errors.As(err, &lerr) {
					t.Fatalf("unexpected error type %T", err)
				}

				if lerr.Pos.Offset < 0 || lerr.Pos.Offset >= len(input) {
					t.Fatalf("error offset %d out of range", lerr.Pos.Offset)
				}

				return
			}

			if tok.Pos.Offset <= last && tok.Kind != token.EOF {
				t.Fatalf("offsets not increasing at %v", tok)
			}

			if tok.Kind != token.EOF && input[tok.Pos.Offset:tok.Pos.Offset+len(tok.Lexeme)] != tok.Lexeme {
				t.Fatalf("lexeme %q does not match source", tok.Lexeme)
			}

			last = tok.Pos.Offset
		}
	})
}
