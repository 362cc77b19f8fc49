package cmd

import (
	"errors"
	"testing"

	"github.com/ardnew/brace/lang/lexer"
	"github.com/ardnew/brace/lang/parser"
)

// TestFmtCanonical tests that programs are rewritten in canonical form.
func TestFmtCanonical(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		indent int
		want   string
	}{
		{
			name:   "single line",
			input:  "{int x=5;print(x);}",
			indent: 0,
			want:   "{ int x = 5; print(x); }\n",
		},
		{
			name:   "nested blocks",
			input:  "{int x=(1+2)*3;{print(x);}}",
			indent: 2,
			want:   "{\n  int x = (1 + 2) * 3;\n  {\n    print(x);\n  }\n}\n",
		},
		{
			name:   "redundant parentheses",
			input:  "{ x = ((a * b)) + (c); }",
			indent: 4,
			want:   "{\n    x = a * b + c;\n}\n",
		},
		{
			name:   "comments dropped",
			input:  "# header\n{ print(\"hi\"); # note\n}",
			indent: 0,
			want:   "{ print(\"hi\"); }\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := testContext(t, tt.input)

			if err := (&Fmt{Indent: tt.indent, Source: "-"}).Run(ctx); err != nil {
				t.Fatalf("Fmt.Run() error: %v", err)
			}

			if out.String() != tt.want {
				t.Errorf("Fmt.Run() = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

// TestFmtInvalidSyntax tests that nothing is written for malformed input.
func TestFmtInvalidSyntax(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
	}{
		{"lex error", "{ int x = 1 ~ }", lexer.ErrLex},
		{"missing name", "{ int = 1; }", parser.ErrParse},
		{"unclosed block", "{ print(1);", parser.ErrParse},
		{"trailing input", "{ } }", parser.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := testContext(t, tt.input)

			err := (&Fmt{Indent: 4, Source: "-"}).Run(ctx)
			if !errors.Is(err, ErrFormat) || !errors.Is(err, tt.sentinel) {
				t.Errorf("Fmt.Run() error = %v, want %v", err, tt.sentinel)
			}

			if out.Len() != 0 {
				t.Errorf("Fmt.Run() wrote %q on error", out.String())
			}
		})
	}
}
