// Package config loads and validates inlinehtml configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/alnah/go-inlinehtml/internal/fileutil"
	"github.com/alnah/go-inlinehtml/internal/pipeline"
	"github.com/alnah/go-inlinehtml/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxPathLength       = 4096
	MaxPatternLength    = 512
	MaxPatterns         = 64
	MaxSyntaxNameLength = 50
	MaxRegexpLength     = 1024
	MaxWorkers          = 64
)

// ConfigDirName is the directory searched under os.UserConfigDir.
const ConfigDirName = "go-inlinehtml"

// Config holds all configuration for an inlining run.
type Config struct {
	Assets    AssetsConfig    `yaml:"assets"`
	Templates TemplatesConfig `yaml:"templates"`
	Markers   MarkersConfig   `yaml:"markers"`
	Strict    bool            `yaml:"strict"`  // Fail when markers stay unresolved
	Workers   int             `yaml:"workers"` // Render workers (0 = GOMAXPROCS)
}

// AssetsConfig selects the generated assets to rewrite.
type AssetsConfig struct {
	Dir     string   `yaml:"dir"`
	Include []string `yaml:"include"` // Empty = **/*.js, **/*.mjs, **/*.cjs
	Exclude []string `yaml:"exclude"`
}

// TemplatesConfig selects and renders templates.
type TemplatesConfig struct {
	Dir     string         `yaml:"dir"`
	Include []string       `yaml:"include"` // Empty = HTML and Markdown files
	Execute bool           `yaml:"execute"` // Run HTML through html/template
	Data    map[string]any `yaml:"data"`    // Template data when Execute is set
}

// MarkersConfig selects marker syntaxes.
type MarkersConfig struct {
	Syntaxes []string       `yaml:"syntaxes"` // Priority order; empty = custom then built-ins
	Custom   []CustomSyntax `yaml:"custom"`
}

// CustomSyntax declares a user-defined marker syntax.
type CustomSyntax struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"` // Regexp with one capture group: the target name
	Mode    string `yaml:"mode"`    // "literal" or "embedded" (default: literal)
}

// Validate checks field lengths, glob patterns, marker syntaxes and the
// worker count. Called automatically by LoadConfig.
func (c *Config) Validate() error {
	if err := validateFieldLength("assets.dir", c.Assets.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validatePatterns("assets.include", c.Assets.Include); err != nil {
		return err
	}
	if err := validatePatterns("assets.exclude", c.Assets.Exclude); err != nil {
		return err
	}

	if err := validateFieldLength("templates.dir", c.Templates.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validatePatterns("templates.include", c.Templates.Include); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	for i, cs := range c.Markers.Custom {
		field := fmt.Sprintf("markers.custom[%d]", i)
		if err := validateFieldLength(field+".name", cs.Name, MaxSyntaxNameLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".pattern", cs.Pattern, MaxRegexpLength); err != nil {
			return err
		}
	}
	for i, name := range c.Markers.Syntaxes {
		if err := validateFieldLength(fmt.Sprintf("markers.syntaxes[%d]", i), name, MaxSyntaxNameLength); err != nil {
			return err
		}
	}

	if _, err := c.MarkerSyntaxes(); err != nil {
		return err
	}
	return nil
}

// MarkerSyntaxes compiles the custom syntaxes and resolves the selected
// names into a priority-ordered list.
func (c *Config) MarkerSyntaxes() ([]pipeline.Syntax, error) {
	custom := make([]pipeline.Syntax, 0, len(c.Markers.Custom))
	for i, cs := range c.Markers.Custom {
		mode := pipeline.ModeLiteral
		if cs.Mode != "" {
			m, err := pipeline.ParseOutputMode(cs.Mode)
			if err != nil {
				return nil, fmt.Errorf("markers.custom[%d].mode: %w", i, err)
			}
			mode = m
		}
		s, err := pipeline.NewSyntax(cs.Name, cs.Pattern, mode)
		if err != nil {
			return nil, fmt.Errorf("markers.custom[%d]: %w", i, err)
		}
		custom = append(custom, s)
	}

	syntaxes, err := pipeline.ResolveSyntaxes(c.Markers.Syntaxes, custom)
	if err != nil {
		return nil, fmt.Errorf("markers.syntaxes: %w", err)
	}
	return syntaxes, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validatePatterns(fieldName string, patterns []string) error {
	if len(patterns) > MaxPatterns {
		return fmt.Errorf("%w: %s: %d patterns, max %d", ErrInvalidValue, fieldName, len(patterns), MaxPatterns)
	}
	for i, p := range patterns {
		field := fmt.Sprintf("%s[%d]", fieldName, i)
		if err := validateFieldLength(field, p, MaxPatternLength); err != nil {
			return err
		}
		if p == "" || !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: %s: malformed glob %q", ErrInvalidValue, field, p)
		}
	}
	return nil
}

// DefaultConfig returns a configuration using the built-in marker syntaxes
// and default globs.
func DefaultConfig() *Config {
	return &Config{
		Assets:    AssetsConfig{Dir: ""},
		Templates: TemplatesConfig{Dir: ""},
		Markers:   MarkersConfig{},
		Strict:    false,
		Workers:   0,
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.ReadFileStrict(configPath, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, ConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations:
// the current directory, then ~/.config/go-inlinehtml/, .yaml before .yml.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
