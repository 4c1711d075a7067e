package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// assetFlags selects the generated assets to rewrite.
type assetFlags struct {
	include []string
	exclude []string
}

// templateFlags selects and renders templates.
type templateFlags struct {
	dir     string
	include []string
	execute bool
}

// markerFlags selects marker syntaxes.
type markerFlags struct {
	syntaxes []string
}

// inlineFlags holds all flags for the inline command.
type inlineFlags struct {
	common    commonFlags
	assets    assetFlags
	templates templateFlags
	markers   markerFlags
	workers   int
	dryRun    bool
	strict    bool
}

// checkFlags holds all flags for the check command.
type checkFlags struct {
	common  commonFlags
	assets  assetFlags
	markers markerFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// addAssetFlags adds asset selection flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringSliceVar(&f.include, "include", nil, "asset glob (repeatable, default **/*.js,**/*.mjs,**/*.cjs)")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "asset glob to skip (repeatable)")
}

// addTemplateFlags adds template flags to a FlagSet.
func addTemplateFlags(fs *flag.FlagSet, f *templateFlags) {
	fs.StringVarP(&f.dir, "templates", "t", "", "template directory (default: asset directory)")
	fs.StringSliceVar(&f.include, "template-include", nil, "template glob (repeatable)")
	fs.BoolVar(&f.execute, "execute", false, "execute HTML templates with html/template")
}

// addMarkerFlags adds marker syntax flags to a FlagSet.
func addMarkerFlags(fs *flag.FlagSet, f *markerFlags) {
	fs.StringSliceVar(&f.syntaxes, "syntax", nil, "marker syntaxes in priority order: escaped, quoted, bare")
}

// newInlineFlagSet builds the inline FlagSet bound to f.
func newInlineFlagSet(f *inlineFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("inline", flag.ContinueOnError)

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel render workers (0 = auto)")
	fs.BoolVar(&f.dryRun, "dry-run", false, "report changes without writing assets")
	fs.BoolVar(&f.strict, "strict", false, "fail when markers remain unresolved")

	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addTemplateFlags(fs, &f.templates)
	addMarkerFlags(fs, &f.markers)

	return fs
}

// parseInlineFlags parses inline command flags and returns positional args.
func parseInlineFlags(args []string) (*inlineFlags, []string, error) {
	f := &inlineFlags{}
	fs := newInlineFlagSet(f)
	fs.Usage = func() { printInlineUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCheckFlags parses check command flags and returns positional args.
func parseCheckFlags(args []string) (*checkFlags, []string, error) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	f := &checkFlags{}

	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addMarkerFlags(fs, &f.markers)

	fs.Usage = func() { printCheckUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
