package inlinehtml

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/alnah/go-inlinehtml/internal/pipeline"
)

// hookName is the tap name used by Apply.
const hookName = "InlineHTMLTemplatePlugin"

// Logger receives diagnostic messages. Its shape matches maxprocs.Logger so
// the CLI can share one verbose logger between both.
type Logger func(format string, args ...any)

// Option configures an Inliner.
type Option func(*Inliner)

// WithSyntaxes replaces the recognized marker syntaxes. Order is priority.
// An empty list keeps the defaults.
func WithSyntaxes(syntaxes ...Syntax) Option {
	return func(i *Inliner) {
		if len(syntaxes) > 0 {
			i.syntaxes = append([]Syntax(nil), syntaxes...)
		}
	}
}

// WithLogger sets the diagnostic logger. Nil keeps the silent default.
func WithLogger(l Logger) Option {
	return func(i *Inliner) {
		if l != nil {
			i.logf = l
		}
	}
}

// Inliner substitutes markers in an asset collection as templates are rendered.
// An Inliner holds no per-build state and may be reused across builds.
// It is not safe for concurrent calls against the same AssetStore.
type Inliner struct {
	syntaxes []Syntax
	logf     Logger
}

// New creates an Inliner recognizing the default marker syntaxes.
func New(opts ...Option) *Inliner {
	i := &Inliner{
		syntaxes: pipeline.DefaultSyntaxes(),
		logf:     func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Syntaxes returns a copy of the configured syntaxes in priority order.
func (i *Inliner) Syntaxes() []Syntax {
	return append([]Syntax(nil), i.syntaxes...)
}

// Scan returns the markers in text using the configured syntaxes.
func (i *Inliner) Scan(text string) iter.Seq[Occurrence] {
	return pipeline.Scan(text, i.syntaxes)
}

// Substitute replaces a single occurrence in text when it names name.
// See the package documentation for the escaping rules.
func (i *Inliner) Substitute(occ Occurrence, name, html, text string) (string, bool) {
	return pipeline.Substitute(occ, name, html, text)
}

// OnTemplateRendered inlines event.HTML into every asset holding a marker for
// event.OutputName. Each changed asset is written back once.
//
// Markers naming other templates, empty markers, and assets without markers
// are left unchanged. Errors come only from the store or from ctx.
func (i *Inliner) OnTemplateRendered(ctx context.Context, event TemplateRenderEvent, store AssetStore) (*Result, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	result := &Result{OutputName: event.OutputName}
	if event.OutputName == "" {
		return result, nil
	}

	for _, name := range store.Names() {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		text, err := store.Text(name)
		if err != nil {
			return result, fmt.Errorf("%w: %s: %w", ErrAssetRead, name, err)
		}

		occs := pipeline.ScanAll(text, i.syntaxes)
		if len(occs) == 0 {
			continue
		}

		updated, count := pipeline.SubstituteAll(text, occs, event.OutputName, event.HTML)
		if count == 0 {
			continue
		}

		if err := store.SetText(name, updated); err != nil {
			return result, fmt.Errorf("%w: %s: %w", ErrAssetWrite, name, err)
		}
		result.Updated = append(result.Updated, AssetUpdate{Name: name, Replacements: count})
		i.logf("inlined %s into %s (%d marker(s))", event.OutputName, name, count)
	}

	return result, nil
}

// Unresolved lists markers still present in the store's assets, in asset
// name order then text order. After every template has been rendered, a
// non-empty result means some marker names a template that does not exist.
func (i *Inliner) Unresolved(ctx context.Context, store AssetReader) ([]UnresolvedMarker, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	var out []UnresolvedMarker
	for _, name := range store.Names() {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		text, err := store.Text(name)
		if err != nil {
			return out, fmt.Errorf("%w: %s: %w", ErrAssetRead, name, err)
		}

		line, lineStart := 1, 0
		for occ := range pipeline.Scan(text, i.syntaxes) {
			line += strings.Count(text[lineStart:occ.Start], "\n")
			lineStart = occ.Start
			out = append(out, UnresolvedMarker{
				Asset:  name,
				Line:   line,
				Target: occ.Target,
				Syntax: occ.Syntax,
			})
		}
	}
	return out, nil
}

// Apply taps the inliner into h so every emitted event is inlined into store.
func (i *Inliner) Apply(h *Hooks, store AssetStore) {
	h.Tap(hookName, func(ctx context.Context, event TemplateRenderEvent) error {
		res, err := i.OnTemplateRendered(ctx, event, store)
		if err != nil {
			return err
		}
		if len(res.Updated) == 0 {
			i.logf("no markers for %s", event.OutputName)
		}
		return nil
	})
}
