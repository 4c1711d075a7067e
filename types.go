package inlinehtml

import "github.com/alnah/go-inlinehtml/internal/pipeline"

// TemplateRenderEvent is the output of one rendered HTML template.
// OutputName is the name markers refer to, for example "index.html".
type TemplateRenderEvent struct {
	OutputName string
	HTML       string
}

// Occurrence is one marker found in an asset's text.
type Occurrence = pipeline.Occurrence

// Syntax is one recognized marker dialect.
type Syntax = pipeline.Syntax

// OutputMode selects how inlined HTML is escaped.
type OutputMode = pipeline.OutputMode

// Output modes.
const (
	ModeLiteral  = pipeline.ModeLiteral
	ModeEmbedded = pipeline.ModeEmbedded
)

// Built-in syntax names, in default priority order.
const (
	SyntaxEscaped = pipeline.SyntaxEscaped
	SyntaxQuoted  = pipeline.SyntaxQuoted
	SyntaxBare    = pipeline.SyntaxBare
)

// DefaultSyntaxes returns the built-in marker syntaxes in priority order.
func DefaultSyntaxes() []Syntax {
	return pipeline.DefaultSyntaxes()
}

// NewSyntax compiles a custom marker syntax. The pattern must have exactly
// one capture group holding the referenced output name.
func NewSyntax(name, pattern string, mode OutputMode) (Syntax, error) {
	return pipeline.NewSyntax(name, pattern, mode)
}

// ParseOutputMode converts "literal" or "embedded" into an OutputMode.
func ParseOutputMode(s string) (OutputMode, error) {
	return pipeline.ParseOutputMode(s)
}

// ResolveSyntaxes orders syntaxes by name, looking in custom before the
// built-ins. An empty names list selects custom followed by the defaults.
func ResolveSyntaxes(names []string, custom []Syntax) ([]Syntax, error) {
	return pipeline.ResolveSyntaxes(names, custom)
}

// AssetUpdate records one asset rewritten while handling an event.
type AssetUpdate struct {
	Name         string
	Replacements int
}

// Result summarizes the handling of one TemplateRenderEvent.
type Result struct {
	OutputName string
	Updated    []AssetUpdate
}

// Replacements returns the total number of markers substituted.
func (r *Result) Replacements() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, u := range r.Updated {
		total += u.Replacements
	}
	return total
}

// UnresolvedMarker is a marker still present in an asset.
type UnresolvedMarker struct {
	Asset  string
	Line   int // 1-based
	Target string
	Syntax string
}
