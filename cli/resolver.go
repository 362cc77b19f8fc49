package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/brace/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag defaults from
// a YAML document mapping flag names to values:
//
//	log-level: debug
//	log_format: json
//	type-check: false
//
// Keys may spell word separators with hyphens or underscores. A document that
// cannot be decoded is logged and ignored. Command-line flags override
// configured values.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		if err := yaml.NewDecoder(r).DecodeContext(ctx, &doc); err != nil {
			if !errors.Is(err, io.EOF) {
				log.WarnContext(ctx, "ignoring invalid configuration",
					slog.Any("error", err),
				)
			}

			return config{}, nil
		}

		return makeConfig(doc), nil
	}
}

// config implements [kong.Resolver] over a flat map of flag values.
type config map[string]any

// makeConfig normalizes the keys and values of a decoded document.
func makeConfig(doc map[string]any) config {
	cfg := make(config, len(doc))

	for key, val := range doc {
		cfg[strings.ReplaceAll(key, "_", "-")] = native(val)
	}

	return cfg
}

// native converts decoded scalars to the string forms kong parses, and
// sequences to comma-separated lists.
func native(val any) any {
	switch v := val.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := native(e).(string); ok {
				parts = append(parts, s)
			}
		}

		return strings.Join(parts, ",")
	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	// Not found: let kong use the default.
	return nil, nil //nolint:nilnil
}
