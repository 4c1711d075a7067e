package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// Command names.
const (
	cmdInline  = "inline"
	cmdCheck   = "check"
	cmdVersion = "version"
	cmdHelp    = "help"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage             = errors.New("invalid usage")
	ErrNoAssetDir        = errors.New("no asset directory specified")
	ErrNoAssets          = errors.New("no assets found")
	ErrNoTemplates       = errors.New("no templates found")
	ErrRenderFailed      = errors.New("template rendering failed")
	ErrUnresolvedMarkers = errors.New("unresolved markers")
)

// isCommand reports whether s names a subcommand.
func isCommand(s string) bool {
	switch s {
	case cmdInline, cmdCheck, cmdVersion, cmdHelp:
		return true
	}
	return false
}

// runMain dispatches args (including the program name) and returns the exit
// code. Errors are printed to env.Stderr.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := cmdInline, args[1:]
	if isCommand(args[1]) {
		cmd, rest = args[1], args[2:]
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch cmd {
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "inlinehtml %s\n", Version)
		return ExitSuccess
	case cmdHelp:
		runHelp(rest, env)
		return ExitSuccess
	case cmdCheck:
		err = runCheck(ctx, rest, env)
	default:
		err = runInline(ctx, rest, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
	}
	return exitCodeFor(err)
}
