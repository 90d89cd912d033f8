// Package config loads the doxfix configuration, merging a user file over
// the built-in defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AutoLink is one pattern → target-URI pair for prose auto-linking.
type AutoLink struct {
	Pattern string `yaml:"pattern" toml:"pattern"`
	URI     string `yaml:"uri" toml:"uri"`
}

// Badge describes one front-page badge. A zero-value badge means "insert a
// line break" in the badge strip.
type Badge struct {
	Alt  string `yaml:"alt" toml:"alt"`
	Src  string `yaml:"src" toml:"src"`
	Href string `yaml:"href" toml:"href"`
}

// IsBreak reports whether the badge is a line-break marker.
func (b Badge) IsBreak() bool { return b.Alt == "" && b.Src == "" && b.Href == "" }

// ImplementationHeader maps a public header onto the implementation headers
// whose documentation it absorbs.
type ImplementationHeader struct {
	Header          string   `yaml:"header" toml:"header"`
	Implementations []string `yaml:"implementations" toml:"implementations"`
}

// Config is the merged configuration. List semantics follow the original
// tool: namespaces, types, enums, macros, literal suffixes and auto-links
// append to the built-in defaults; inline namespaces, badges and
// implementation headers replace them.
type Config struct {
	Namespaces            []string               `yaml:"namespaces" toml:"namespaces"`
	InlineNamespaces      []string               `yaml:"inline_namespaces" toml:"inline_namespaces"`
	Types                 []string               `yaml:"types" toml:"types"`
	Enums                 []string               `yaml:"enums" toml:"enums"`
	Macros                []string               `yaml:"macros" toml:"macros"`
	StringLiterals        []string               `yaml:"string_literals" toml:"string_literals"`
	NumericLiterals       []string               `yaml:"numeric_literals" toml:"numeric_literals"`
	AutoLinks             []AutoLink             `yaml:"auto_links" toml:"auto_links"`
	Badges                []Badge                `yaml:"badges" toml:"badges"`
	ImplementationHeaders []ImplementationHeader `yaml:"implementation_headers" toml:"implementation_headers"`
}

// knownKeys are the recognized top-level configuration properties. Anything
// else is reported, not fatal.
var knownKeys = map[string]bool{
	"namespaces":             true,
	"inline_namespaces":      true,
	"types":                  true,
	"enums":                  true,
	"macros":                 true,
	"string_literals":        true,
	"numeric_literals":       true,
	"auto_links":             true,
	"badges":                 true,
	"implementation_headers": true,
}

// Load reads the configuration file at path and merges it over the built-in
// defaults. A missing path ("", no file) yields the defaults unchanged.
// Environment variables referenced in the file are expanded; .env files are
// honored first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment variables from .env")
	} else if err := godotenv.Load(".env.local"); err == nil {
		slog.Debug("Loaded environment variables from .env.local")
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	expanded := os.ExpandEnv(string(data))

	var file Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(expanded, &file)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		for _, key := range md.Undecoded() {
			if len(key) == 1 && !knownKeys[key.String()] {
				slog.Warn("Unknown top-level config property", "key", key.String())
			}
		}
	default:
		var raw map[string]any
		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", path, err)
		}
		for key := range raw {
			if !knownKeys[key] {
				slog.Warn("Unknown top-level config property", "key", key)
			}
		}
		if err := yaml.Unmarshal([]byte(expanded), &file); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", path, err)
		}
	}

	cfg.merge(&file)
	return cfg, nil
}

// FindConfigFile resolves the config argument the way the CLI accepts it: a
// file path is used directly, a directory is searched for doxfix.yaml /
// doxfix.toml / dox.toml. An empty result with nil error means "defaults
// only".
func FindConfigFile(arg string) (string, error) {
	if arg == "" {
		arg = "."
	}
	info, err := os.Stat(arg)
	if err != nil {
		return "", fmt.Errorf("config path %s does not exist: %w", arg, err)
	}
	if !info.IsDir() {
		return arg, nil
	}
	for _, name := range []string{"doxfix.yaml", "doxfix.yml", "doxfix.toml", "dox.toml"} {
		candidate := filepath.Join(arg, name)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate, nil
		}
	}
	return "", nil
}

// merge applies file-specified values over c.
func (c *Config) merge(file *Config) {
	c.Namespaces = append(c.Namespaces, file.Namespaces...)
	c.Types = append(c.Types, file.Types...)
	c.Enums = append(c.Enums, file.Enums...)
	c.Macros = append(c.Macros, file.Macros...)
	c.StringLiterals = append(c.StringLiterals, file.StringLiterals...)
	c.NumericLiterals = append(c.NumericLiterals, file.NumericLiterals...)
	c.AutoLinks = append(c.AutoLinks, file.AutoLinks...)
	if file.InlineNamespaces != nil {
		c.InlineNamespaces = file.InlineNamespaces
	}
	if file.Badges != nil {
		c.Badges = file.Badges
	}
	if file.ImplementationHeaders != nil {
		c.ImplementationHeaders = file.ImplementationHeaders
	}
}
