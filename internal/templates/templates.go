// Package templates discovers and loads HTML template sources from a directory.
//
// Templates are selected with doublestar glob patterns matched against
// slash-separated paths relative to the base directory. A template's name is
// that relative path; it is also what its rendered output is named after.
//
// Reads resolve symlinks and verify the real path stays inside the base
// directory.
package templates

import (
	"errors"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/alnah/go-inlinehtml/internal/fileutil"
)

// Sentinel errors for template operations.
var (
	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidTemplateName indicates a name that is empty, absolute, or
	// contains backslashes or parent references.
	ErrInvalidTemplateName = errors.New("invalid template name")

	// ErrInvalidPattern indicates a malformed glob pattern.
	ErrInvalidPattern = errors.New("invalid template pattern")

	// ErrTemplateRead indicates an I/O error while reading a template.
	ErrTemplateRead = errors.New("failed to read template")
)

// DefaultPatterns selects HTML and Markdown sources.
var DefaultPatterns = []string{"**/*.html", "**/*.htm", "**/*.md", "**/*.markdown"}

// Template identifies one template source.
type Template struct {
	Name string // slash-separated path relative to the base directory
	Path string // absolute path on disk
}

// Loader discovers and reads templates under a base directory.
type Loader struct {
	basePath string
}

// NewLoader creates a Loader rooted at baseDir.
// Returns fileutil.ErrInvalidDir if baseDir is not a readable directory.
func NewLoader(baseDir string) (*Loader, error) {
	absPath, err := fileutil.ResolveDir(baseDir)
	if err != nil {
		return nil, err
	}
	return &Loader{basePath: absPath}, nil
}

// BasePath returns the resolved base directory.
func (l *Loader) BasePath() string {
	return l.basePath
}

// Discover returns the templates matching any include pattern, sorted by name.
// A nil or empty include uses DefaultPatterns.
func (l *Loader) Discover(include []string) ([]Template, error) {
	if len(include) == 0 {
		include = DefaultPatterns
	}

	fsys := os.DirFS(l.basePath)
	seen := make(map[string]bool)
	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
		}
		for _, m := range matches {
			seen[m] = true
		}
	}

	out := make([]Template, 0, len(seen))
	for name := range seen {
		p, err := fileutil.ContainedPath(l.basePath, name)
		if err != nil {
			// Symlinks pointing outside the base directory are skipped.
			continue
		}
		out = append(out, Template{Name: name, Path: p})
	}
	slices.SortFunc(out, func(a, b Template) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

// Load reads the named template.
func (l *Loader) Load(name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	p, err := fileutil.ContainedPath(l.basePath, name)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(p) // #nosec G304 -- path validated above
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("%w: %v", ErrTemplateRead, err)
	}
	return content, nil
}

// ValidateName checks that name is a clean relative slash path.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTemplateName)
	}
	if strings.ContainsAny(name, "\\\x00") || path.IsAbs(name) {
		return fmt.Errorf("%w: %q", ErrInvalidTemplateName, name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." || part == "." || part == "" {
			return fmt.Errorf("%w: %q", ErrInvalidTemplateName, name)
		}
	}
	return nil
}
