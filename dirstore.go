package inlinehtml

import (
	"fmt"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/alnah/go-inlinehtml/internal/fileutil"
)

// DefaultAssetPatterns selects the script files a bundler emits.
var DefaultAssetPatterns = []string{"**/*.js", "**/*.mjs", "**/*.cjs"}

// DirStore is an AssetStore over a build output directory.
//
// Assets are the files under the directory matching an include pattern and no
// exclude pattern. Patterns use doublestar syntax against slash-separated
// paths relative to the directory. The file set is fixed when the store is
// created; writes replace files atomically and keep their permissions.
type DirStore struct {
	root  string
	names []string
	known map[string]bool
}

// NewDirStore selects assets under root. A nil or empty include uses
// DefaultAssetPatterns. Returns ErrInvalidPattern for a malformed pattern.
func NewDirStore(root string, include, exclude []string) (*DirStore, error) {
	absRoot, err := fileutil.ResolveDir(root)
	if err != nil {
		return nil, err
	}

	if len(include) == 0 {
		include = DefaultAssetPatterns
	}
	if err := validatePatterns(include); err != nil {
		return nil, err
	}
	if err := validatePatterns(exclude); err != nil {
		return nil, err
	}

	fsys := os.DirFS(absRoot)
	known := make(map[string]bool)
	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
		}
		for _, m := range matches {
			if !matchesAny(exclude, m) {
				known[m] = true
			}
		}
	}

	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	slices.Sort(names)

	return &DirStore{root: absRoot, names: names, known: known}, nil
}

// Root returns the resolved directory the store works on.
func (d *DirStore) Root() string {
	return d.root
}

// Names returns the selected asset paths, sorted.
func (d *DirStore) Names() []string {
	return slices.Clone(d.names)
}

// Text reads the named asset from disk.
func (d *DirStore) Text(name string) (string, error) {
	path, err := d.path(name)
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(path) // #nosec G304 -- path validated above
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// SetText atomically replaces the named asset on disk.
func (d *DirStore) SetText(name, text string) error {
	path, err := d.path(name)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, []byte(text), info.Mode().Perm())
}

func (d *DirStore) path(name string) (string, error) {
	if !d.known[name] {
		return "", fmt.Errorf("%w: %q", ErrAssetNotFound, name)
	}
	return fileutil.ContainedPath(d.root, name)
}

func validatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: %q", ErrInvalidPattern, p)
		}
	}
	return nil
}

func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
