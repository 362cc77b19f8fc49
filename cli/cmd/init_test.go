package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

type initCLI struct {
	Level  string   `default:"warn"`
	Count  int      `default:"3"`
	Check  bool     `default:"true" negatable:""`
	Name   string
	Tags   []string
	Secret string `default:"x" hidden:""`
	Pprof  string `default:"cpu"`

	Init Init `cmd:""`
}

// initContext parses args into a kong context whose config file is confPath.
func initContext(t *testing.T, confPath string, args ...string) (*kong.Context, *initCLI) {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(append([]string{"init"}, args...))
	if err != nil {
		t.Fatal(err)
	}

	return ktx, &cli
}

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		force    bool
		existing bool
		wantErr  error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, existing: true},
		{name: "fail_without_force", existing: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.existing {
				if err := os.WriteFile(confPath, []byte("existing: true\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			ktx, _ := initContext(t, confPath, "--count=5", "--no-check")

			err := (&Init{Force: tt.force}).Run(WithContext(t.Context(), ktx))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrWriteConfig) {
					t.Errorf("Init.Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run() error: %v", err)
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(content, &got); err != nil {
				t.Fatalf("generated config is not valid YAML: %v\n%s", err, content)
			}

			if got["level"] != "warn" || got["check"] != false {
				t.Errorf("generated config = %v", got)
			}

			if fmt.Sprint(got["count"]) != "5" {
				t.Errorf("count = %#v, want 5", got["count"])
			}

			for _, key := range []string{"help", "name", "tags", "secret", "pprof", "existing"} {
				if _, ok := got[key]; ok {
					t.Errorf("generated config contains %q:\n%s", key, content)
				}
			}
		})
	}
}

// TestInitWithInvalidPath tests init with a path in a missing directory.
func TestInitWithInvalidPath(t *testing.T) {
	t.Parallel()

	confPath := filepath.Join(t.TempDir(), "missing", "config.yaml")

	ktx, _ := initContext(t, confPath)

	err := (&Init{}).Run(WithContext(t.Context(), ktx))
	if !errors.Is(err, ErrWriteConfig) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Init.Run() error = %v, want missing directory", err)
	}
}

// TestInitSettingsOrder tests that settings follow flag declaration order.
func TestInitSettingsOrder(t *testing.T) {
	t.Parallel()

	ktx, _ := initContext(t, filepath.Join(t.TempDir(), "config.yaml"), "--name=demo", "--tags=a,b")

	var keys []string
	for _, item := range (&Init{}).settings(WithContext(t.Context(), ktx)) {
		keys = append(keys, item.Key.(string))
	}

	want := []string{"level", "count", "check", "name", "tags"}
	if len(keys) != len(want) {
		t.Fatalf("settings keys = %v, want %v", keys, want)
	}

	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("settings keys = %v, want %v", keys, want)

			break
		}
	}
}
