package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/brace/lang/eval"
	"github.com/ardnew/brace/lang/lexer"
	"github.com/ardnew/brace/lang/parser"
)

// testContext returns a context whose commands read stdin from in and write
// output to the returned buffer.
func testContext(t *testing.T, in string) (context.Context, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	ctx := WithInput(t.Context(), strings.NewReader(in))
	ctx = WithOutput(ctx, &out)

	return ctx, &out
}

func writeSource(t *testing.T, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "main.brc")
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestReadSource(t *testing.T) {
	for _, name := range []string{"-", ""} {
		ctx, _ := testContext(t, "{ print(1); }")

		src, err := readSource(ctx, name)
		if err != nil || src != "{ print(1); }" {
			t.Errorf("readSource(%q) = %q, %v", name, src, err)
		}
	}

	ctx, _ := testContext(t, "")
	path := writeSource(t, "{ }")

	if src, err := readSource(ctx, path); err != nil || src != "{ }" {
		t.Errorf("readSource(%q) = %q, %v", path, src, err)
	}

	_, err := readSource(ctx, filepath.Join(t.TempDir(), "missing.brc"))
	if !errors.Is(err, ErrOpenSource) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestIO_Defaults(t *testing.T) {
	if inputFrom(t.Context()) != os.Stdin {
		t.Error("default input is not stdin")
	}

	if outputFrom(t.Context()) != os.Stdout {
		t.Error("default output is not stdout")
	}

	if kongContextFrom(t.Context()) != nil {
		t.Error("kong context present in empty context")
	}
}

func TestRun(t *testing.T) {
	ctx, out := testContext(t, "")

	path := writeSource(t, `{ int x = 5; { int x = 10; print(x); } print(x + 0.5); }`)

	r := &Run{Language: Language{TypeCheck: true}, Source: path}
	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if got := out.String(); got != "10\n5.5\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		check    bool
		sentinel error
		output   string
	}{
		{"lex", "{ ? }", true, lexer.ErrLex, ""},
		{"parse", "{ print(1) }", true, parser.ErrParse, ""},
		{"eval after output", "{ print(1); print(x); }", true, eval.ErrEval, "1\n"},
		{"type check", "{ int i = 1.5; }", true, eval.ErrEval, ""},
		{"type check disabled", "{ int i = 1.5; print(i); }", false, nil, "1.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := testContext(t, tt.src)

			err := (&Run{Language: Language{TypeCheck: tt.check}, Source: "-"}).Run(ctx)

			switch {
			case tt.sentinel == nil && err != nil:
				t.Errorf("unexpected error: %v", err)
			case tt.sentinel != nil && (!errors.Is(err, tt.sentinel) || !errors.Is(err, ErrRun)):
				t.Errorf("error = %v, want %v wrapped in %v", err, tt.sentinel, ErrRun)
			}

			if out.String() != tt.output {
				t.Errorf("output = %q, want %q", out.String(), tt.output)
			}
		})
	}
}

func TestLex(t *testing.T) {
	ctx, out := testContext(t, "{ x = 1; }")

	if err := (&Lex{Format: "text", Source: "-"}).Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 7 || !strings.Contains(lines[6], "EOF") {
		t.Errorf("output = %q", lines)
	}

	ctx, out = testContext(t, "{ x = 1 $ }")

	err := (&Lex{Format: "json", Source: "-"}).Run(ctx)
	if !errors.Is(err, lexer.ErrLex) || !errors.Is(err, ErrDump) {
		t.Errorf("error = %v, want lex error", err)
	}

	if !strings.Contains(out.String(), `"lexeme":"1"`) {
		t.Errorf("tokens before the error were not printed: %q", out.String())
	}
}

func TestAST(t *testing.T) {
	src := "{ print(1 + 2); }"

	tests := []struct {
		format string
		want   string
	}{
		{"tree", "Block\n  Print\n    BinaryOp +\n"},
		{"json", `"op": "+"`},
		{"yaml", "node: BinaryOp"},
	}

	for _, tt := range tests {
		ctx, out := testContext(t, src)

		if err := (&AST{Format: tt.format, Indent: 2, Source: "-"}).Run(ctx); err != nil {
			t.Fatalf("%s: Run() error: %v", tt.format, err)
		}

		if !strings.Contains(out.String(), tt.want) {
			t.Errorf("%s output = %q, want substring %q", tt.format, out.String(), tt.want)
		}
	}

	ctx, _ := testContext(t, "{ { { } } }")
	if err := (&AST{Format: "tree", MaxDepth: 2, Source: "-"}).Run(ctx); !errors.Is(err, parser.ErrParse) {
		t.Errorf("depth limit: error = %v", err)
	}
}

func TestVersion(t *testing.T) {
	ctx, out := testContext(t, "")

	if err := (Version{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(out.String(), "brace ") {
		t.Errorf("output = %q", out.String())
	}
}

func TestREPL_Script(t *testing.T) {
	path := writeSource(t, `{ int base = 40; print("loaded"); }`)
	ctx, out := testContext(t, "print(base + 2);\n:vars\n")

	r := &REPL{Language: Language{TypeCheck: true}, Source: path}
	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if want := "loaded\n42\nint base = 40\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}
