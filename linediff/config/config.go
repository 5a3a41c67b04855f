// Package config loads and validates the configuration of linediff.
//
// Configuration comes from an optional TOML file. Every setting can be overridden on the command
// line.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/znkr/linediff/linediff/diff"
)

// EnvVar names the environment variable that points to a configuration file.
const EnvVar = "LINEDIFF_CONFIG"

// ErrInvalid is returned for configurations that can't be used.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete configuration.
type Config struct {
	Context           int    `toml:"context" validate:"min=0"`
	IgnoreWhitespace  bool   `toml:"ignore_whitespace"`
	IgnoreLineEndings bool   `toml:"ignore_line_endings"`
	MaxCells          int64  `toml:"max_cells" validate:"gt=0"`
	Color             string `toml:"color" validate:"oneof=auto always never"`
	Format            string `toml:"format" validate:"oneof=unified html"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Context:  diff.DefaultContext,
		MaxCells: diff.DefaultMaxCells,
		Color:    "auto",
		Format:   "unified",
	}
}

// Path returns the configuration file to use: flag if set, otherwise the file named by the
// environment variable. An empty path means there's no configuration file.
func Path(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(EnvVar)
}

// Load reads the configuration file at path on top of the default configuration. An empty path
// returns the default configuration.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading configuration: %w", err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that all settings are in range.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	name := fe.Field()
	if f, ok := fieldNames[name]; ok {
		name = f
	}
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v", name, fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s, got %v", name, fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", name, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
	}
}

var fieldNames = map[string]string{
	"Context":  "context",
	"MaxCells": "max_cells",
	"Color":    "color",
	"Format":   "format",
}

// DiffOptions returns the options for [diff.Diff].
func (c Config) DiffOptions() []diff.Option {
	cmp := diff.Exact
	switch {
	case c.IgnoreWhitespace:
		cmp = diff.IgnoreWhitespace
	case c.IgnoreLineEndings:
		cmp = diff.IgnoreLineEndings
	}
	return []diff.Option{
		diff.Context(c.Context),
		diff.MaxCells(c.MaxCells),
		diff.Compare(cmp),
	}
}
