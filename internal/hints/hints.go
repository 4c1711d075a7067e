// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// InCI reports whether the process runs under a known CI system.
var InCI = func() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-inlinehtml/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-inlinehtml") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForNoTemplates returns a hint when template discovery finds nothing.
func ForNoTemplates(patterns []string) string {
	if len(patterns) == 0 {
		return format("check --templates points at your template directory")
	}
	return format("no file matched " + strings.Join(patterns, ", ") + "; adjust --template-include")
}

// ForNoAssets returns a hint when asset discovery finds nothing.
func ForNoAssets() string {
	return format("check the asset directory argument and --include/--exclude patterns")
}

// ForUnresolvedMarkers returns hints for markers left in assets after a run.
// In CI the hint points at the check command so pipelines fail early.
func ForUnresolvedMarkers(targets []string) string {
	var hints []string
	if len(targets) > 0 {
		hints = append(hints, "no template renders to "+strings.Join(targets, ", "))
	}
	if InCI() {
		hints = append(hints, "run 'inlinehtml check' before bundling")
	} else {
		hints = append(hints, "use --strict to fail the build on unresolved markers")
	}
	return formatHints(hints)
}

// ForSyntax returns a hint listing available marker syntaxes.
func ForSyntax(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForTemplateExecution returns a hint for html/template failures.
func ForTemplateExecution() string {
	return format("disable --execute if templates contain client-side {{ }} syntax")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
