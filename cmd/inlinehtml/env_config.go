package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-inlinehtml/internal/config"
)

const envPrefix = "INLINEHTML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath   string   // INLINEHTML_CONFIG
	AssetsDir    string   // INLINEHTML_ASSETS_DIR
	TemplatesDir string   // INLINEHTML_TEMPLATES_DIR
	Syntaxes     []string // INLINEHTML_SYNTAX, comma-separated
	Workers      int      // INLINEHTML_WORKERS
	Strict       *bool    // INLINEHTML_STRICT
	Execute      *bool    // INLINEHTML_EXECUTE
}

// knownEnvVars lists valid INLINEHTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"INLINEHTML_CONFIG":        true,
	"INLINEHTML_ASSETS_DIR":    true,
	"INLINEHTML_TEMPLATES_DIR": true,
	"INLINEHTML_SYNTAX":        true,
	"INLINEHTML_WORKERS":       true,
	"INLINEHTML_STRICT":        true,
	"INLINEHTML_EXECUTE":       true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numbers and booleans are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:   os.Getenv("INLINEHTML_CONFIG"),
		AssetsDir:    os.Getenv("INLINEHTML_ASSETS_DIR"),
		TemplatesDir: os.Getenv("INLINEHTML_TEMPLATES_DIR"),
		Syntaxes:     splitList(os.Getenv("INLINEHTML_SYNTAX")),
		Strict:       parseBoolEnv("INLINEHTML_STRICT"),
		Execute:      parseBoolEnv("INLINEHTML_EXECUTE"),
	}

	if workers := os.Getenv("INLINEHTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

func parseBoolEnv(name string) *bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &b
}

// splitList splits a comma-separated value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// warnUnknownEnvVars logs warnings for unrecognized INLINEHTML_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies set environment values over the loaded config.
// CLI flags are merged afterwards, giving:
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.AssetsDir != "" {
		cfg.Assets.Dir = env.AssetsDir
	}
	if env.TemplatesDir != "" {
		cfg.Templates.Dir = env.TemplatesDir
	}
	if len(env.Syntaxes) > 0 {
		cfg.Markers.Syntaxes = env.Syntaxes
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
	if env.Strict != nil {
		cfg.Strict = *env.Strict
	}
	if env.Execute != nil {
		cfg.Templates.Execute = *env.Execute
	}
}
