package main

import (
	"fmt"
	"io"
	"os"
	"time"

	inlinehtml "github.com/alnah/go-inlinehtml"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// newLogger returns a printf-style logger writing lines to w, or a no-op
// logger when disabled. The result also satisfies maxprocs.Logger.
func newLogger(w io.Writer, enabled bool) inlinehtml.Logger {
	if !enabled {
		return func(string, ...any) {}
	}
	return func(format string, args ...any) {
		fmt.Fprintf(w, format+"\n", args...)
	}
}
