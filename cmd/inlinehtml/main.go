// Command inlinehtml renders HTML templates and inlines them into generated
// JavaScript assets in place of /* InlineHTML: <name> */ markers.
package main

import (
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	undo, _ := maxprocs.Set(maxprocs.Logger(newLogger(env.Stderr, wantsVerbose(os.Args[1:]))))

	code := runMain(os.Args, env)
	undo()
	os.Exit(code)
}

// wantsVerbose reports whether -v or --verbose appears before a "--".
// Flags are not parsed yet when GOMAXPROCS is configured.
func wantsVerbose(args []string) bool {
	for _, a := range args {
		switch a {
		case "--":
			return false
		case "-v", "--verbose", "--verbose=true":
			return true
		}
	}
	return false
}
