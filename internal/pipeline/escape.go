package pipeline

import (
	"bytes"
	"encoding/json"
	"strings"
)

// lineBreaks removes CRLF, CR and LF. CRLF is listed first so it is removed
// as one sequence.
var lineBreaks = strings.NewReplacer("\r\n", "", "\r", "", "\n", "")

// embeddedEscaper escapes a literal for a second level of double quoting.
var embeddedEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// StripLineBreaks removes every line break sequence from s.
func StripLineBreaks(s string) string {
	return lineBreaks.Replace(s)
}

// Escape renders html as a single-line string literal for the given mode.
//
//	ModeLiteral:  <a href="x">  ->  "<a href=\"x\">"
//	ModeEmbedded: <a href="x">  ->  \"<a href=\\\"x\\\">\"
func Escape(html string, mode OutputMode) string {
	literal := QuoteLiteral(StripLineBreaks(html))
	if mode == ModeEmbedded {
		return embeddedEscaper.Replace(literal)
	}
	return literal
}

// QuoteLiteral returns s as a double-quoted JavaScript string literal.
// JSON string rules are used, which also escape U+2028 and U+2029;
// HTML characters (<, >, &) are left as is.
func QuoteLiteral(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string value never fails.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
