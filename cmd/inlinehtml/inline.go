package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"runtime"
	"slices"
	"strings"
	"time"

	inlinehtml "github.com/alnah/go-inlinehtml"
	"github.com/alnah/go-inlinehtml/internal/config"
	"github.com/alnah/go-inlinehtml/internal/fileutil"
	"github.com/alnah/go-inlinehtml/internal/hints"
	"github.com/alnah/go-inlinehtml/internal/render"
	"github.com/alnah/go-inlinehtml/internal/templates"
)

// loadConfig loads the named config, or the defaults when no name is given,
// then applies environment overrides.
func loadConfig(name string, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeInlineFlags merges CLI flags into config (CLI wins).
func mergeInlineFlags(f *inlineFlags, positional []string, cfg *config.Config) {
	if len(positional) > 0 {
		cfg.Assets.Dir = positional[0]
	}
	mergeAssetFlags(&f.assets, cfg)
	mergeMarkerFlags(&f.markers, cfg)

	if f.templates.dir != "" {
		cfg.Templates.Dir = f.templates.dir
	}
	if len(f.templates.include) > 0 {
		cfg.Templates.Include = f.templates.include
	}
	if f.templates.execute {
		cfg.Templates.Execute = true
	}
	if f.workers != 0 {
		cfg.Workers = f.workers
	}
	if f.strict {
		cfg.Strict = true
	}
}

func mergeAssetFlags(f *assetFlags, cfg *config.Config) {
	if len(f.include) > 0 {
		cfg.Assets.Include = f.include
	}
	if len(f.exclude) > 0 {
		cfg.Assets.Exclude = f.exclude
	}
}

func mergeMarkerFlags(f *markerFlags, cfg *config.Config) {
	if len(f.syntaxes) > 0 {
		cfg.Markers.Syntaxes = f.syntaxes
	}
}

// resolveWorkers returns n, or GOMAXPROCS when n is zero.
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// openAssets validates cfg, builds the inliner and opens the asset directory.
func openAssets(cfg *config.Config, logf inlinehtml.Logger) (*inlinehtml.Inliner, *inlinehtml.DirStore, error) {
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, inlinehtml.ErrUnknownSyntax) {
			return nil, nil, fmt.Errorf("%w%s", err, hints.ForSyntax(syntaxNames(cfg)))
		}
		return nil, nil, err
	}
	if cfg.Assets.Dir == "" {
		return nil, nil, ErrNoAssetDir
	}

	syntaxes, err := cfg.MarkerSyntaxes()
	if err != nil {
		return nil, nil, err
	}
	inliner := inlinehtml.New(inlinehtml.WithSyntaxes(syntaxes...), inlinehtml.WithLogger(logf))

	store, err := inlinehtml.NewDirStore(cfg.Assets.Dir, cfg.Assets.Include, cfg.Assets.Exclude)
	if err != nil {
		return nil, nil, fmt.Errorf("opening assets: %w", err)
	}
	if len(store.Names()) == 0 {
		return nil, nil, fmt.Errorf("%w in %s%s", ErrNoAssets, cfg.Assets.Dir, hints.ForNoAssets())
	}
	logf("assets: %d file(s) in %s", len(store.Names()), store.Root())
	return inliner, store, nil
}

// syntaxNames lists built-in and configured custom syntax names.
func syntaxNames(cfg *config.Config) []string {
	var names []string
	for _, s := range inlinehtml.DefaultSyntaxes() {
		names = append(names, s.Name)
	}
	for _, cs := range cfg.Markers.Custom {
		names = append(names, cs.Name)
	}
	return names
}

// runInline renders templates and inlines them into the asset directory.
func runInline(ctx context.Context, args []string, env *Environment) error {
	start := env.Now()

	flags, positional, err := parseInlineFlags(args)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one asset directory, got %d arguments", ErrUsage, len(positional))
	}

	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeInlineFlags(flags, positional, cfg)

	logf := newLogger(env.Stderr, flags.common.verbose)
	inliner, dirStore, err := openAssets(cfg, logf)
	if err != nil {
		return err
	}

	var store inlinehtml.AssetStore = dirStore
	if flags.dryRun {
		mem, err := inlinehtml.CloneStore(dirStore)
		if err != nil {
			return err
		}
		store = mem
	}

	templatesDir := cfg.Templates.Dir
	if templatesDir == "" {
		templatesDir = cfg.Assets.Dir
	}
	loader, err := templates.NewLoader(templatesDir)
	if err != nil {
		return fmt.Errorf("opening templates: %w", err)
	}
	tmpls, err := loader.Discover(cfg.Templates.Include)
	if err != nil {
		return err
	}
	if len(tmpls) == 0 {
		return fmt.Errorf("%w in %s%s", ErrNoTemplates, templatesDir, hints.ForNoTemplates(cfg.Templates.Include))
	}

	workers := resolveWorkers(cfg.Workers)
	logf("templates: %d file(s) in %s, %d worker(s)", len(tmpls), loader.BasePath(), workers)

	renderer := render.NewSet(cfg.Templates.Execute, cfg.Templates.Data)
	results := renderBatch(ctx, loader, renderer, tmpls, workers)
	if err := renderFailures(results, env.Stderr); err != nil {
		return err
	}

	written := make(map[string]int)
	hooks := inlinehtml.NewHooks()
	hooks.Tap("inlinehtml", func(ctx context.Context, event inlinehtml.TemplateRenderEvent) error {
		res, err := inliner.OnTemplateRendered(ctx, event, store)
		if err != nil {
			return err
		}
		for _, u := range res.Updated {
			written[u.Name] += u.Replacements
		}
		return nil
	})
	for _, r := range results {
		logf("render %s -> %s (%v)", r.Template.Name, r.OutputName, r.Duration.Round(time.Millisecond))
		if err := hooks.Emit(ctx, inlinehtml.TemplateRenderEvent{OutputName: r.OutputName, HTML: r.HTML}); err != nil {
			return err
		}
	}

	unresolved, err := inliner.Unresolved(ctx, store)
	if err != nil {
		return err
	}

	if !flags.common.quiet {
		printInlineSummary(env.Stdout, written, len(tmpls), flags.dryRun)
	}
	reportUnresolved(env.Stderr, unresolved, flags.common.quiet && !cfg.Strict)
	logf("done in %v", env.Now().Sub(start).Round(time.Millisecond))

	if cfg.Strict && len(unresolved) > 0 {
		return unresolvedError(unresolved)
	}
	return nil
}

// renderFailures prints every failed render and returns an error if any.
func renderFailures(results []RenderResult, w io.Writer) error {
	summary := countResults(results)
	if summary.Failed == 0 {
		return nil
	}

	var first error
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		fmt.Fprintf(w, "FAILED %s: %v\n", r.Template.Name, r.Err)
		if first == nil {
			first = r.Err
		}
	}

	hint := ""
	if errors.Is(first, render.ErrTemplateParse) || errors.Is(first, render.ErrTemplateExec) {
		hint = hints.ForTemplateExecution()
	}
	return fmt.Errorf("%w: %d of %d failed: %w%s",
		ErrRenderFailed, summary.Failed, summary.Failed+summary.Succeeded, first, hint)
}

func printInlineSummary(w io.Writer, written map[string]int, templateCount int, dryRun bool) {
	verb, outcome := "Updated", "changed"
	if dryRun {
		verb, outcome = "Would update", "would change"
	}
	for _, name := range slices.Sorted(maps.Keys(written)) {
		fmt.Fprintf(w, "%s %s (%d marker(s))\n", verb, name, written[name])
	}
	fmt.Fprintf(w, "%d template(s) rendered, %d asset(s) %s\n", templateCount, len(written), outcome)
}

// reportUnresolved prints one warning per remaining marker plus a hint.
func reportUnresolved(w io.Writer, markers []inlinehtml.UnresolvedMarker, quiet bool) {
	if quiet || len(markers) == 0 {
		return
	}
	for _, m := range markers {
		fmt.Fprintf(w, "warning: %s:%d: unresolved marker for %q (%s)\n", m.Asset, m.Line, m.Target, m.Syntax)
	}
	fmt.Fprintln(w, strings.TrimPrefix(hints.ForUnresolvedMarkers(unresolvedTargets(markers)), "\n"))
}

func unresolvedError(markers []inlinehtml.UnresolvedMarker) error {
	return fmt.Errorf("%w: %d marker(s) in %d asset(s)", ErrUnresolvedMarkers, len(markers), countAssets(markers))
}

func unresolvedTargets(markers []inlinehtml.UnresolvedMarker) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range markers {
		if m.Target == "" || seen[m.Target] {
			continue
		}
		seen[m.Target] = true
		out = append(out, m.Target)
	}
	return out
}

func countAssets(markers []inlinehtml.UnresolvedMarker) int {
	seen := make(map[string]bool)
	for _, m := range markers {
		seen[m.Asset] = true
	}
	return len(seen)
}
