package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: inlinehtml <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  inline     Inline rendered templates into build assets (default)")
	fmt.Fprintln(w, "  check      List markers that no template resolved")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'inlinehtml help <command>' for details on a specific command.")
}

// printInlineUsage prints usage for the inline command.
func printInlineUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: inlinehtml inline <assets-dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every template and replace /* InlineHTML: <name> */ markers in the")
	fmt.Fprintln(w, "assets with the rendered HTML as a single-line string literal.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  assets-dir    Build output directory (optional if config has assets.dir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Templates:")
	fmt.Fprintln(w, "  -t, --templates <dir>         Template directory (default: assets-dir)")
	fmt.Fprintln(w, "      --template-include <glob> Template glob, repeatable")
	fmt.Fprintln(w, "      --execute                 Execute HTML templates with html/template")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --include <glob>          Asset glob, repeatable (default: **/*.js,**/*.mjs,**/*.cjs)")
	fmt.Fprintln(w, "      --exclude <glob>          Asset glob to skip, repeatable")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markers:")
	fmt.Fprintln(w, "      --syntax <names>          Syntaxes in priority order: escaped, quoted, bare")
	fmt.Fprintln(w, "      --strict                  Exit 4 when markers remain unresolved")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run:")
	fmt.Fprintln(w, "  -w, --workers <n>             Parallel render workers (0 = auto)")
	fmt.Fprintln(w, "      --dry-run                 Report changes without writing assets")
	fmt.Fprintln(w, "  -c, --config <name>           Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet                   Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                 Show detailed progress")
	fmt.Fprintln(w)
	printEnvUsage(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: inlinehtml check <assets-dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List markers left in the assets. Exits 4 if any remain.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --include <glob>          Asset glob, repeatable")
	fmt.Fprintln(w, "      --exclude <glob>          Asset glob to skip, repeatable")
	fmt.Fprintln(w, "      --syntax <names>          Syntaxes in priority order")
	fmt.Fprintln(w, "  -c, --config <name>           Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet                   Only set the exit code")
	fmt.Fprintln(w, "  -v, --verbose                 Show detailed progress")
}

// printEnvUsage lists the recognized environment variables.
func printEnvUsage(w io.Writer) {
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  INLINEHTML_CONFIG         Config file name or path")
	fmt.Fprintln(w, "  INLINEHTML_ASSETS_DIR     Asset directory")
	fmt.Fprintln(w, "  INLINEHTML_TEMPLATES_DIR  Template directory")
	fmt.Fprintln(w, "  INLINEHTML_SYNTAX         Comma-separated syntaxes")
	fmt.Fprintln(w, "  INLINEHTML_WORKERS        Render workers")
	fmt.Fprintln(w, "  INLINEHTML_STRICT         true/false")
	fmt.Fprintln(w, "  INLINEHTML_EXECUTE        true/false")
}

// runHelp prints help for the named command, or the main usage.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}
	switch args[0] {
	case cmdInline:
		printInlineUsage(env.Stdout)
	case cmdCheck:
		printCheckUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: inlinehtml version")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
