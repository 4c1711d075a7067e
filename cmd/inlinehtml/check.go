package main

import (
	"context"
	"fmt"
)

// runCheck lists markers left in the asset directory.
// Returns ErrUnresolvedMarkers when any remain.
func runCheck(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCheckFlags(args)
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
	if len(positional) > 0 {
		cfg.Assets.Dir = positional[0]
	}
	mergeAssetFlags(&flags.assets, cfg)
	mergeMarkerFlags(&flags.markers, cfg)

	inliner, store, err := openAssets(cfg, newLogger(env.Stderr, flags.common.verbose))
	if err != nil {
		return err
	}

	markers, err := inliner.Unresolved(ctx, store)
	if err != nil {
		return err
	}
	if len(markers) == 0 {
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "No markers in %d asset(s)\n", len(store.Names()))
		}
		return nil
	}

	if !flags.common.quiet {
		for _, m := range markers {
			fmt.Fprintf(env.Stdout, "%s:%d: %s (%s)\n", m.Asset, m.Line, m.Target, m.Syntax)
		}
	}
	return unresolvedError(markers)
}
