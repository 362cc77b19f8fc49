package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/alecthomas/kong"

	"github.com/ardnew/brace/log"
)

func resolveString(t *testing.T, doc string) kong.Resolver {
	t.Helper()

	resolver, err := resolve(t.Context())(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}

	return resolver
}

func lookup(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	val, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%q) error: %v", name, err)
	}

	return val
}

func TestResolve_Values(t *testing.T) {
	r := resolveString(t, strings.Join([]string{
		"log-level: debug",
		"log_pretty: false",
		"max-depth: 64",
		"ratio: 0.5",
		"tags: [a, b]",
	}, "\n"))

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-pretty", false},
		{"max-depth", "64"},
		{"ratio", "0.5"},
		{"tags", "a,b"},
		{"missing", nil},
	}

	for _, tt := range tests {
		if got := lookup(t, r, tt.flag); got != tt.want {
			t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
		}
	}
}

func TestResolve_InvalidDocuments(t *testing.T) {
	for _, doc := range []string{"", "- just\n- a list\n", "key: [unterminated"} {
		r := resolveString(t, doc)

		if got := lookup(t, r, "key"); got != nil {
			t.Errorf("document %q resolved key to %#v", doc, got)
		}
	}

	r, err := resolve(t.Context())(iotest.ErrReader(os.ErrClosed))
	if err != nil || r == nil {
		t.Errorf("read failure: resolver %v, error %v", r, err)
	}
}

// TestResolve_Kong checks that configured values reach parsed flags and that
// command-line flags take precedence.
func TestResolve_Kong(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseConfig)

	doc := "log-format: json\nlog-time-layout: none\ntype-check: false\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	var cli CLI

	parser, err := kong.New(&cli,
		kong.Configuration(resolve(t.Context()), path),
		kong.Vars{"config": path, "cache": t.TempDir()}.
			CloneWith(cli.Pprof.vars()),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse([]string{"--log-time-layout=RFC3339", "run", "prog.brc"})
	if err != nil {
		t.Fatal(err)
	}

	if ktx.Command() != "run <source>" {
		t.Errorf("command = %q", ktx.Command())
	}

	if cli.Log.Format != "json" {
		t.Errorf("log format = %q, want json from configuration", cli.Log.Format)
	}

	if cli.Log.TimeLayout != "RFC3339" {
		t.Errorf("time layout = %q, want RFC3339 from command line", cli.Log.TimeLayout)
	}

	if cli.Run.TypeCheck {
		t.Error("type-check = true, want false from configuration")
	}

	if cli.Run.Source != "prog.brc" {
		t.Errorf("source = %q", cli.Run.Source)
	}
}
