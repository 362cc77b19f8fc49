package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

// PathEnv is the environment variable holding additional directories that are
// searched for source files named by a relative path.
const PathEnv = "BRACE_PATH"

// Prefix returns the base prefix string used to construct the path to the
// configuration directory.
//
// By default, Prefix is the base name of the executable file unless it matches
// one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with [Name]
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//   - "*.test" (go test binaries): replaced with [Name]
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		ext := filepath.Ext(filepath.Base(id))
		id = strings.TrimSuffix(filepath.Base(id), ext)

		if ext == ".test" {
			return Name
		}

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): Name, // default output from dlv
			regexp.MustCompile(`^\.+`):             "",   // remove leading dot(s)
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		if id == "" {
			return Name
		}

		return id
	},
)

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserConfigDir, ".config"), Prefix())
	},
)

// CacheDir returns the cache directory path used for transient files such as
// REPL history and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserCacheDir, ".cache"), Prefix())
	},
)

// userDir returns the directory reported by lookup, falling back to the named
// subdirectory of the user's home, then to the working directory.
func userDir(lookup func() (string, error), home string) string {
	dir, err := lookup()
	if err == nil {
		return dir
	}

	dir, err = os.UserHomeDir()
	if err == nil {
		return filepath.Join(dir, home)
	}

	dir, err = os.Getwd()
	if err != nil {
		return "."
	}

	return dir
}

// LibDir returns the directory under [ConfigDir] that is always searched for
// source files after the directories named in [PathEnv].
func LibDir() string { return filepath.Join(ConfigDir(), "lib") }

// SearchPath returns the ordered list of directories searched for relative
// source file names: the current contents of [PathEnv] followed by [LibDir].
func SearchPath() []string {
	// Each prefix item is prepended in turn, so the last one ends up first.
	prefix := filepath.SplitList(os.Getenv(PathEnv))
	slices.Reverse(prefix)

	list := mung.Make(
		mung.WithSubjectItems(LibDir()),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()

	dirs := filepath.SplitList(list)
	out := make([]string, 0, len(dirs))

	for _, d := range dirs {
		if d != "" {
			out = append(out, d)
		}
	}

	return out
}

// Resolve returns the path of the named source file. Absolute names, names
// that exist relative to the working directory, and the stdin marker "-" are
// returned unchanged; otherwise each directory of [SearchPath] is tried in
// order. If nothing matches, name is returned unchanged so that the caller
// reports the original open error.
func Resolve(name string) string {
	if name == "-" || filepath.IsAbs(name) {
		return name
	}

	if _, err := os.Stat(name); err == nil {
		return name
	}

	for _, dir := range SearchPath() {
		candidates := []string{filepath.Join(dir, name)}
		if filepath.Ext(name) == "" {
			candidates = append(candidates, filepath.Join(dir, name+Extension))
		}

		for _, c := range candidates {
			if info, err := os.Stat(c); err == nil && info.Mode().IsRegular() {
				return c
			}
		}
	}

	return name
}
