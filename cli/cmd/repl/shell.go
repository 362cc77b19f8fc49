package repl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ardnew/brace/lang"
	"github.com/ardnew/brace/lang/ast"
	"github.com/ardnew/brace/log"
	"github.com/ardnew/brace/pkg"
)

// commandPrefix introduces a REPL command; every other line is a statement
// list.
const commandPrefix = ":"

// commands lists the REPL commands in help order.
var commands = []struct{ name, args, help string }{
	{"help", "", "Print this help"},
	{"vars", "", "List global variables"},
	{"load", "FILE", "Run a program, keeping its top-level declarations"},
	{"reset", "", "Discard all global variables"},
	{"clear", "", "Clear screen"},
	{"quit", "", "Exit REPL"},
}

// commandNames returns the command names in help order.
func commandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}

	return names
}

func helpMessage() string {
	var b strings.Builder

	b.WriteString("Commands:\n\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "  %-12s %s\n", commandPrefix+strings.TrimSpace(c.name+" "+c.args), c.help)
	}

	b.WriteString(`
Usage:
  Type statements to execute them, for example: int x = 2; print(x * 3);
  Declarations persist between lines; braces open a nested scope
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`)

	return b.String()
}

// reply is the outcome of one line of input.
type reply struct {
	output []string // printed program output
	info   string   // command output
	err    error
	clear  bool
	quit   bool
}

// shell executes REPL input against a persistent session.
type shell struct {
	session *lang.Session
	logger  log.Logger
}

func newShell(session *lang.Session, logger log.Logger) *shell {
	return &shell{session: session, logger: logger}
}

// handle executes one line of input.
func (sh *shell) handle(ctx context.Context, line string) reply {
	line = strings.TrimSpace(line)

	if rest, ok := strings.CutPrefix(line, commandPrefix); ok {
		return sh.command(ctx, rest)
	}

	if line == "" {
		return reply{}
	}

	out, err := sh.session.Exec(ctx, line)

	sh.logger.TraceContext(ctx, "repl exec",
		slog.String("input", line),
		slog.Int("lines", len(out)),
		slog.Bool("ok", err == nil),
	)

	return reply{output: out, err: err}
}

func (sh *shell) command(ctx context.Context, input string) reply {
	name, arg, _ := strings.Cut(strings.TrimSpace(input), " ")
	arg = strings.TrimSpace(arg)

	sh.logger.TraceContext(ctx, "repl command",
		slog.String("command", name),
		slog.String("arg", arg),
	)

	switch name {
	case "q", "quit", "exit":
		return reply{quit: true}

	case "h", "help":
		return reply{info: helpMessage()}

	case "v", "vars":
		return reply{info: sh.vars()}

	case "l", "load":
		return sh.load(ctx, arg)

	case "r", "reset":
		sh.session.Reset()

		return reply{info: "all variables discarded"}

	case "c", "clear":
		return reply{clear: true}

	default:
		return reply{err: fmt.Errorf("unknown command %q (try %shelp)", name, commandPrefix)}
	}
}

// vars renders the global bindings, one per line.
func (sh *shell) vars() string {
	var b strings.Builder

	for name, v := range sh.session.Vars() {
		val := v.Value.String()
		if v.Value.Type() == ast.String {
			val = strconv.Quote(val)
		}

		fmt.Fprintf(&b, "%s %s = %s\n", v.Type, name, val)
	}

	if b.Len() == 0 {
		return "no variables defined"
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (sh *shell) load(ctx context.Context, name string) reply {
	if name == "" {
		return reply{err: ErrLoad.Wrap(fmt.Errorf("usage: %sload FILE", commandPrefix))}
	}

	path := pkg.Resolve(name)

	data, err := os.ReadFile(path)
	if err != nil {
		return reply{err: ErrLoad.With(slog.String("file", name)).Wrap(err)}
	}

	out, err := sh.session.Load(ctx, string(data))

	return reply{output: out, err: err}
}
