package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Sentinel errors for syntax construction.
var (
	ErrInvalidSyntax = errors.New("invalid marker syntax")
	ErrUnknownSyntax = errors.New("unknown marker syntax")
	ErrInvalidMode   = errors.New("invalid output mode")
	ErrDuplicateName = errors.New("duplicate marker syntax name")
)

// OutputMode selects how an inlined value is escaped.
type OutputMode int

const (
	// ModeLiteral produces a double-quoted string literal: "<p>Hi</p>".
	ModeLiteral OutputMode = iota
	// ModeEmbedded produces a literal escaped once more for use inside an
	// enclosing double-quoted string: \"<p>Hi</p>\".
	ModeEmbedded
)

// String returns the configuration name of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeLiteral:
		return "literal"
	case ModeEmbedded:
		return "embedded"
	default:
		return fmt.Sprintf("OutputMode(%d)", int(m))
	}
}

// ParseOutputMode converts a configuration name into an OutputMode.
// Matching is case-insensitive.
func ParseOutputMode(s string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "literal":
		return ModeLiteral, nil
	case "embedded":
		return ModeEmbedded, nil
	default:
		return 0, fmt.Errorf("%w: %q (must be literal or embedded)", ErrInvalidMode, s)
	}
}

// Syntax describes one recognized marker dialect.
// Pattern must have exactly one capture group: the target output name.
type Syntax struct {
	Name    string
	Pattern *regexp.Regexp
	Mode    OutputMode
}

// NewSyntax compiles pattern into a Syntax.
// Returns ErrInvalidSyntax if the pattern does not compile or does not have
// exactly one capture group.
func NewSyntax(name, pattern string, mode OutputMode) (Syntax, error) {
	if name == "" {
		return Syntax{}, fmt.Errorf("%w: empty name", ErrInvalidSyntax)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Syntax{}, fmt.Errorf("%w: %s: %v", ErrInvalidSyntax, name, err)
	}
	if re.NumSubexp() != 1 {
		return Syntax{}, fmt.Errorf("%w: %s: pattern must have exactly one capture group, has %d",
			ErrInvalidSyntax, name, re.NumSubexp())
	}
	return Syntax{Name: name, Pattern: re, Mode: mode}, nil
}

// Names of the built-in syntaxes.
const (
	SyntaxEscaped = "escaped"
	SyntaxQuoted  = "quoted"
	SyntaxBare    = "bare"
)

// markerBody matches the comment itself. The name excludes quotes and
// backslashes so a marker never swallows the delimiters of an enclosing literal.
const markerBody = `/\*[ \t]*InlineHTML[ \t]*:[ \t]*([^\s*"'\\]*)[ \t]*\*/`

var builtinSyntaxes = []Syntax{
	{Name: SyntaxEscaped, Pattern: regexp.MustCompile(`\\"` + markerBody + `\\"`), Mode: ModeEmbedded},
	{Name: SyntaxQuoted, Pattern: regexp.MustCompile(`"` + markerBody + `"`), Mode: ModeLiteral},
	{Name: SyntaxBare, Pattern: regexp.MustCompile(markerBody), Mode: ModeLiteral},
}

// DefaultSyntaxes returns the built-in syntaxes in priority order:
// escaped, quoted, bare. The returned slice is a fresh copy.
func DefaultSyntaxes() []Syntax {
	out := make([]Syntax, len(builtinSyntaxes))
	copy(out, builtinSyntaxes)
	return out
}

// BuiltinSyntax returns the built-in syntax with the given name.
func BuiltinSyntax(name string) (Syntax, bool) {
	for _, s := range builtinSyntaxes {
		if s.Name == name {
			return s, true
		}
	}
	return Syntax{}, false
}

// ResolveSyntaxes builds a priority-ordered syntax list from names.
// Names are looked up among custom first, then the built-ins.
// An empty names list selects every custom syntax followed by the defaults.
func ResolveSyntaxes(names []string, custom []Syntax) ([]Syntax, error) {
	seen := make(map[string]bool, len(custom))
	for _, c := range custom {
		if seen[c.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
		}
		if _, ok := BuiltinSyntax(c.Name); ok {
			return nil, fmt.Errorf("%w: %q shadows a built-in syntax", ErrDuplicateName, c.Name)
		}
		seen[c.Name] = true
	}

	if len(names) == 0 {
		out := make([]Syntax, 0, len(custom)+len(builtinSyntaxes))
		out = append(out, custom...)
		return append(out, builtinSyntaxes...), nil
	}

	out := make([]Syntax, 0, len(names))
	used := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if used[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		used[name] = true

		s, ok := findSyntax(name, custom)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSyntax, name)
		}
		out = append(out, s)
	}
	return out, nil
}

func findSyntax(name string, custom []Syntax) (Syntax, bool) {
	for _, c := range custom {
		if c.Name == name {
			return c, true
		}
	}
	return BuiltinSyntax(name)
}
