// Package inlinehtml inlines rendered HTML templates into generated build assets.
//
// Generated JavaScript can reference a template through a marker comment:
//
//	const view = /* InlineHTML: index.html */;
//
// When the template index.html has been rendered, the marker is replaced with
// the HTML as a single-line string literal:
//
//	const view = "<main><h1>Hello</h1></main>";
//
// # Quick Start
//
//	store := inlinehtml.NewMemoryStore(map[string]string{
//	    "main.js": "const view = /* InlineHTML: index.html */;",
//	})
//	inl := inlinehtml.New()
//	res, err := inl.OnTemplateRendered(ctx, inlinehtml.TemplateRenderEvent{
//	    OutputName: "index.html",
//	    HTML:       "<main><h1>Hello</h1></main>",
//	}, store)
//
// # Marker Syntaxes
//
// Three syntaxes are recognized by default, tried in this order:
//
//  1. escaped: \"/* InlineHTML: name */\" inside an already generated string
//     literal (for example eval-wrapped modules). The replacement is escaped a
//     second time so the enclosing literal stays valid.
//  2. quoted: "/* InlineHTML: name */" as a string literal of its own. The
//     quotes are replaced along with the comment.
//  3. bare: /* InlineHTML: name */ in expression position.
//
// A match overlapping one found by an earlier syntax is ignored. Custom
// syntaxes can be added with NewSyntax and WithSyntaxes.
//
// # Substitution Rules
//
// Line breaks (CR, LF, CRLF) are removed from the HTML before it is quoted.
// Only the marker span changes; the rest of the asset is preserved byte for
// byte. A marker naming another template is left in place, since it will be
// handled when that template's event arrives. Markers that never match stay in
// the output as comments; use Inliner.Unresolved to find them.
//
// # Host Integration
//
// Assets are reached through the AssetStore interface. MemoryStore keeps
// assets in memory and DirStore works on a build output directory. Hooks
// provides tap/emit event wiring, and Inliner.Apply registers the inliner on it.
package inlinehtml
