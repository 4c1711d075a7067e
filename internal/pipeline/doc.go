// Package pipeline implements marker scanning and substitution over generated text.
//
// The package is pure: nothing here touches the filesystem or holds state
// between calls. It covers two stages:
//   - Scanning: locating InlineHTML markers in an asset's text
//   - Substitution: replacing a marker span with an escaped string literal
//
// A marker names the output of an HTML template, for example
// /* InlineHTML: index.html */. Several marker syntaxes are recognized; each
// syntax carries the output mode used to escape the inlined value. Orchestration
// over a whole asset collection lives in the root inlinehtml package.
package pipeline
