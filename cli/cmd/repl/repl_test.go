package repl

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/brace/lang"
	"github.com/ardnew/brace/lang/eval"
	"github.com/ardnew/brace/lang/parser"
	"github.com/ardnew/brace/log"
)

func newTestModel(t *testing.T) model {
	t.Helper()

	return newModel(t.Context(), lang.NewSession(), NewHistory(""), log.Discard())
}

func TestShell_Handle(t *testing.T) {
	sh := newShell(lang.NewSession(), log.Discard())

	rep := sh.handle(t.Context(), "int n = 6; string s = \"x\";")
	if rep.err != nil || len(rep.output) != 0 {
		t.Fatalf("declare: %+v", rep)
	}

	rep = sh.handle(t.Context(), "  print(n * 7); { int n = 0; print(n); }  ")
	if rep.err != nil || strings.Join(rep.output, ",") != "42,0" {
		t.Errorf("print: %+v", rep)
	}

	rep = sh.handle(t.Context(), "print(n / 0);")
	if !errors.Is(rep.err, eval.ErrEval) {
		t.Errorf("division by zero: %+v", rep)
	}

	rep = sh.handle(t.Context(), "print(n")
	if !errors.Is(rep.err, parser.ErrParse) {
		t.Errorf("incomplete statement: %+v", rep)
	}

	rep = sh.handle(t.Context(), ":vars")
	if rep.info != "int n = 6\nstring s = \"x\"" {
		t.Errorf(":vars = %q", rep.info)
	}

	if rep = sh.handle(t.Context(), "   "); rep.err != nil || rep.info != "" || rep.output != nil {
		t.Errorf("blank line: %+v", rep)
	}
}

func TestShell_Commands(t *testing.T) {
	sh := newShell(lang.NewSession(), log.Discard())

	if rep := sh.handle(t.Context(), ":help"); !strings.Contains(rep.info, ":load FILE") {
		t.Errorf(":help = %q", rep.info)
	}

	if rep := sh.handle(t.Context(), ":clear"); !rep.clear {
		t.Errorf(":clear = %+v", rep)
	}

	if rep := sh.handle(t.Context(), ":q"); !rep.quit {
		t.Errorf(":q = %+v", rep)
	}

	if rep := sh.handle(t.Context(), ":bogus"); rep.err == nil {
		t.Error(":bogus succeeded")
	}

	_ = sh.handle(t.Context(), "int gone = 1;")

	if rep := sh.handle(t.Context(), ":reset"); rep.err != nil {
		t.Fatalf(":reset: %v", rep.err)
	}

	if rep := sh.handle(t.Context(), ":vars"); rep.info != "no variables defined" {
		t.Errorf(":vars after reset = %q", rep.info)
	}
}

func TestShell_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.brc")
	if err := os.WriteFile(path, []byte("{ float rate = 2; print(rate); }"), 0o600); err != nil {
		t.Fatal(err)
	}

	sh := newShell(lang.NewSession(), log.Discard())

	rep := sh.handle(t.Context(), ":load "+path)
	if rep.err != nil || strings.Join(rep.output, ",") != "2.0" {
		t.Fatalf(":load = %+v", rep)
	}

	rep = sh.handle(t.Context(), "print(rate * 2);")
	if rep.err != nil || strings.Join(rep.output, ",") != "4.0" {
		t.Errorf("after :load: %+v", rep)
	}

	if rep := sh.handle(t.Context(), ":load"); !errors.Is(rep.err, ErrLoad) {
		t.Errorf(":load without file: %v", rep.err)
	}

	if rep := sh.handle(t.Context(), ":load "+filepath.Join(t.TempDir(), "missing.brc")); !errors.Is(rep.err, ErrLoad) {
		t.Errorf(":load missing file: %v", rep.err)
	}
}

func TestScript(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"int a = 2;",
		"print(a + 1);",
		"print(b);",
		"",
		":quit",
		"print(99);",
	}, "\n"))

	var out bytes.Buffer
	if err := Script(t.Context(), lang.NewSession(), in, &out, log.Discard()); err != nil {
		t.Fatalf("Script() error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 2 || lines[0] != "3" || !strings.HasPrefix(lines[1], "error: eval error at 1:7: unbound variable") {
		t.Errorf("output = %q", lines)
	}
}

func TestModel_Execute(t *testing.T) {
	m := newTestModel(t)

	type_ := func(s string) {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
		m = next.(model)
	}

	type_("int x = 4;")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)

	if cmd == nil {
		t.Fatal("enter produced no command")
	}

	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	if m.history.Len() != 1 {
		t.Errorf("history length = %d, want 1", m.history.Len())
	}

	if got := m.names(); len(got) != 1 || got[0] != "x" {
		t.Errorf("names = %v, want [x]", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(model)

	if m.input.Value() != "int x = 4;" {
		t.Errorf("history recall = %q", m.input.Value())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(model)

	if m.input.Value() != "" {
		t.Errorf("history past end = %q", m.input.Value())
	}
}

func TestModel_TabCompletion(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pri")})
	m = next.(model)

	if len(m.matches) != 1 || m.matches[0].Str != "print" {
		t.Fatalf("matches = %v, want [print]", m.matches)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(model)

	if m.input.Value() != "print" {
		t.Errorf("completed input = %q, want print", m.input.Value())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(model)

	if m.input.Value() != "" || m.quitting {
		t.Errorf("ctrl+c with input: value %q, quitting %v", m.input.Value(), m.quitting)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if !next.(model).quitting {
		t.Error("ctrl+d on empty input did not quit")
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)

	if v := m.View(); !strings.Contains(v, ":help") {
		t.Errorf("idle view = %q", v)
	}

	m.quitting = true

	if v := m.View(); v != "" {
		t.Errorf("quitting view = %q", v)
	}
}
