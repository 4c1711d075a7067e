package inlinehtml

import (
	"fmt"
	"maps"
	"slices"
)

// AssetReader gives read access to a collection of named assets.
type AssetReader interface {
	// Names returns the asset names in a stable order.
	Names() []string
	// Text returns the current text of the named asset.
	Text(name string) (string, error)
}

// AssetWriter replaces the text of a named asset.
type AssetWriter interface {
	SetText(name, text string) error
}

// AssetStore is the capability OnTemplateRendered needs from the host.
type AssetStore interface {
	AssetReader
	AssetWriter
}

// MemoryStore is an AssetStore holding assets in memory.
// It is not safe for concurrent use.
type MemoryStore struct {
	texts map[string]string
}

// Compile-time interface checks.
var (
	_ AssetStore = (*MemoryStore)(nil)
	_ AssetStore = (*DirStore)(nil)
)

// NewMemoryStore creates a MemoryStore from a copy of assets.
func NewMemoryStore(assets map[string]string) *MemoryStore {
	texts := make(map[string]string, len(assets))
	maps.Copy(texts, assets)
	return &MemoryStore{texts: texts}
}

// CloneStore copies every asset of src into a new MemoryStore.
// Useful for dry runs against a store that writes to disk.
func CloneStore(src AssetReader) (*MemoryStore, error) {
	if src == nil {
		return nil, ErrNilStore
	}
	names := src.Names()
	texts := make(map[string]string, len(names))
	for _, name := range names {
		text, err := src.Text(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrAssetRead, name, err)
		}
		texts[name] = text
	}
	return &MemoryStore{texts: texts}, nil
}

// Names returns the asset names sorted.
func (m *MemoryStore) Names() []string {
	return slices.Sorted(maps.Keys(m.texts))
}

// Text returns the named asset's text.
func (m *MemoryStore) Text(name string) (string, error) {
	text, ok := m.texts[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrAssetNotFound, name)
	}
	return text, nil
}

// SetText replaces the named asset's text. The asset must already exist.
func (m *MemoryStore) SetText(name, text string) error {
	if _, ok := m.texts[name]; !ok {
		return fmt.Errorf("%w: %q", ErrAssetNotFound, name)
	}
	m.texts[name] = text
	return nil
}

// Snapshot returns a copy of every asset's text keyed by name.
func (m *MemoryStore) Snapshot() map[string]string {
	return maps.Clone(m.texts)
}
