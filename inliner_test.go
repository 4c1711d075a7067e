package inlinehtml

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOnTemplateRendered(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		assets      map[string]string
		event       TemplateRenderEvent
		want        map[string]string
		wantUpdated []AssetUpdate
	}{
		{
			name:   "end to end bare marker",
			assets: map[string]string{"main.js": "const x = /* InlineHTML: index.html */;"},
			event:  TemplateRenderEvent{OutputName: "index.html", HTML: "<p>Hi</p>"},
			want:   map[string]string{"main.js": `const x = "<p>Hi</p>";`},
			wantUpdated: []AssetUpdate{
				{Name: "main.js", Replacements: 1},
			},
		},
		{
			name:        "no markers leaves assets unchanged",
			assets:      map[string]string{"main.js": "const x = 1;", "vendor.js": "/* plain */"},
			event:       TemplateRenderEvent{OutputName: "index.html", HTML: "<p>Hi</p>"},
			want:        map[string]string{"main.js": "const x = 1;", "vendor.js": "/* plain */"},
			wantUpdated: nil,
		},
		{
			name:        "marker for other template is left alone",
			assets:      map[string]string{"main.js": "x = /* InlineHTML: other.html */;"},
			event:       TemplateRenderEvent{OutputName: "index.html", HTML: "<p>Hi</p>"},
			want:        map[string]string{"main.js": "x = /* InlineHTML: other.html */;"},
			wantUpdated: nil,
		},
		{
			name:        "empty marker is a no-op",
			assets:      map[string]string{"main.js": "x = /* InlineHTML: */;"},
			event:       TemplateRenderEvent{OutputName: "index.html", HTML: "<p>Hi</p>"},
			want:        map[string]string{"main.js": "x = /* InlineHTML: */;"},
			wantUpdated: nil,
		},
		{
			name:        "event without output name is a no-op",
			assets:      map[string]string{"main.js": "x = /* InlineHTML: */;"},
			event:       TemplateRenderEvent{HTML: "<p>Hi</p>"},
			want:        map[string]string{"main.js": "x = /* InlineHTML: */;"},
			wantUpdated: nil,
		},
		{
			name: "multiple assets and repeated markers",
			assets: map[string]string{
				"a.js": "a(/* InlineHTML: row.html */, /* InlineHTML: row.html */)",
				"b.js": `b("/* InlineHTML: row.html */")`,
				"c.js": "c()",
			},
			event: TemplateRenderEvent{OutputName: "row.html", HTML: "<tr>\n<td>1</td>\n</tr>"},
			want: map[string]string{
				"a.js": `a("<tr><td>1</td></tr>", "<tr><td>1</td></tr>")`,
				"b.js": `b("<tr><td>1</td></tr>")`,
				"c.js": "c()",
			},
			wantUpdated: []AssetUpdate{
				{Name: "a.js", Replacements: 2},
				{Name: "b.js", Replacements: 1},
			},
		},
		{
			name:   "embedded marker in eval module",
			assets: map[string]string{"bundle.js": `eval("var t = \"/* InlineHTML: t.html */\";");`},
			event:  TemplateRenderEvent{OutputName: "t.html", HTML: `<b class="x">y</b>`},
			want:   map[string]string{"bundle.js": `eval("var t = \"<b class=\\\"x\\\">y</b>\";");`},
			wantUpdated: []AssetUpdate{
				{Name: "bundle.js", Replacements: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := NewMemoryStore(tt.assets)
			res, err := New().OnTemplateRendered(context.Background(), tt.event, store)
			if err != nil {
				t.Fatalf("OnTemplateRendered() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, store.Snapshot()); diff != "" {
				t.Errorf("assets mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantUpdated, res.Updated); diff != "" {
				t.Errorf("updated mismatch (-want +got):\n%s", diff)
			}
			if res.OutputName != tt.event.OutputName {
				t.Errorf("OutputName = %q, want %q", res.OutputName, tt.event.OutputName)
			}
		})
	}
}

func TestOnTemplateRendered_EventOrderIndependent(t *testing.T) {
	t.Parallel()

	const asset = "const a = /* InlineHTML: a.html */;\nconst b = /* InlineHTML: b.html */;\n"
	events := []TemplateRenderEvent{
		{OutputName: "a.html", HTML: "<a>first</a>"},
		{OutputName: "b.html", HTML: "<b>second, and longer than its marker</b>"},
	}
	want := "const a = \"<a>first</a>\";\nconst b = \"<b>second, and longer than its marker</b>\";\n"

	orders := map[string][]int{"a then b": {0, 1}, "b then a": {1, 0}}
	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			store := NewMemoryStore(map[string]string{"main.js": asset})
			inl := New()
			for _, idx := range order {
				if _, err := inl.OnTemplateRendered(context.Background(), events[idx], store); err != nil {
					t.Fatalf("OnTemplateRendered(%s) error = %v", events[idx].OutputName, err)
				}
			}

			got, _ := store.Text("main.js")
			if got != want {
				t.Errorf("main.js = %q, want %q", got, want)
			}
		})
	}
}

func TestOnTemplateRendered_SecondEventIsNoop(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(map[string]string{"main.js": `x = /* InlineHTML: a.html */;`})
	inl := New()
	event := TemplateRenderEvent{OutputName: "a.html", HTML: `<p title="q">\</p>`}

	if _, err := inl.OnTemplateRendered(context.Background(), event, store); err != nil {
		t.Fatal(err)
	}
	first, _ := store.Text("main.js")

	res, err := inl.OnTemplateRendered(context.Background(), event, store)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := store.Text("main.js")

	if first != second {
		t.Errorf("second run changed text: %q -> %q", first, second)
	}
	if res.Replacements() != 0 {
		t.Errorf("second run Replacements() = %d, want 0", res.Replacements())
	}
}

func TestOnTemplateRendered_NilStore(t *testing.T) {
	t.Parallel()

	_, err := New().OnTemplateRendered(context.Background(), TemplateRenderEvent{OutputName: "a.html"}, nil)
	if !errors.Is(err, ErrNilStore) {
		t.Errorf("error = %v, want ErrNilStore", err)
	}
}

func TestOnTemplateRendered_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore(map[string]string{"main.js": "/* InlineHTML: a.html */"})
	_, err := New().OnTemplateRendered(ctx, TemplateRenderEvent{OutputName: "a.html", HTML: "x"}, store)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if got, _ := store.Text("main.js"); got != "/* InlineHTML: a.html */" {
		t.Errorf("asset changed after cancellation: %q", got)
	}
}

// failingStore wraps a MemoryStore and fails on demand.
type failingStore struct {
	*MemoryStore
	readErr  error
	writeErr error
}

func (f *failingStore) Text(name string) (string, error) {
	if f.readErr != nil {
		return "", f.readErr
	}
	return f.MemoryStore.Text(name)
}

func (f *failingStore) SetText(name, text string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	return f.MemoryStore.SetText(name, text)
}

func TestOnTemplateRendered_StoreErrors(t *testing.T) {
	t.Parallel()

	hostErr := errors.New("disk on fire")
	event := TemplateRenderEvent{OutputName: "a.html", HTML: "<p/>"}

	tests := []struct {
		name     string
		store    *failingStore
		sentinel error
	}{
		{
			name:     "read failure",
			store:    &failingStore{MemoryStore: NewMemoryStore(map[string]string{"a.js": "x"}), readErr: hostErr},
			sentinel: ErrAssetRead,
		},
		{
			name:     "write failure",
			store:    &failingStore{MemoryStore: NewMemoryStore(map[string]string{"a.js": "/* InlineHTML: a.html */"}), writeErr: hostErr},
			sentinel: ErrAssetWrite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New().OnTemplateRendered(context.Background(), event, tt.store)
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error = %v, want %v", err, tt.sentinel)
			}
			if !errors.Is(err, hostErr) {
				t.Errorf("error = %v, want wrapped host error", err)
			}
			if !strings.Contains(err.Error(), "a.js") {
				t.Errorf("error %q should name the asset", err)
			}
		})
	}
}

func TestOnTemplateRendered_WriteOncePerAsset(t *testing.T) {
	t.Parallel()

	counter := &countingStore{MemoryStore: NewMemoryStore(map[string]string{
		"a.js": "/* InlineHTML: a.html */ /* InlineHTML: a.html */ /* InlineHTML: a.html */",
	})}
	if _, err := New().OnTemplateRendered(context.Background(), TemplateRenderEvent{OutputName: "a.html", HTML: "x"}, counter); err != nil {
		t.Fatal(err)
	}
	if counter.writes != 1 {
		t.Errorf("SetText called %d times, want 1", counter.writes)
	}
}

type countingStore struct {
	*MemoryStore
	writes int
}

func (c *countingStore) SetText(name, text string) error {
	c.writes++
	return c.MemoryStore.SetText(name, text)
}

func TestWithSyntaxes(t *testing.T) {
	t.Parallel()

	custom, err := NewSyntax("html-comment", `<!--\s*InlineHTML:\s*(\S+?)\s*-->`, ModeLiteral)
	if err != nil {
		t.Fatal(err)
	}

	store := NewMemoryStore(map[string]string{
		"a.js": `x = <!-- InlineHTML: a.html -->; y = /* InlineHTML: a.html */;`,
	})
	inl := New(WithSyntaxes(custom))
	if _, err := inl.OnTemplateRendered(context.Background(), TemplateRenderEvent{OutputName: "a.html", HTML: "<p/>"}, store); err != nil {
		t.Fatal(err)
	}

	got, _ := store.Text("a.js")
	want := `x = "<p/>"; y = /* InlineHTML: a.html */;`
	if got != want {
		t.Errorf("a.js = %q, want %q", got, want)
	}

	if n := len(New(WithSyntaxes()).Syntaxes()); n != len(DefaultSyntaxes()) {
		t.Errorf("WithSyntaxes() with no arguments kept %d syntaxes, want defaults", n)
	}
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	var lines []string
	logf := func(format string, args ...any) { lines = append(lines, fmt.Sprintf(format, args...)) }

	store := NewMemoryStore(map[string]string{"main.js": "/* InlineHTML: a.html */"})
	if _, err := New(WithLogger(logf)).OnTemplateRendered(context.Background(), TemplateRenderEvent{OutputName: "a.html", HTML: "x"}, store); err != nil {
		t.Fatal(err)
	}

	want := []string{"inlined a.html into main.js (1 marker(s))"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestUnresolved(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(map[string]string{
		"a.js": "line1\nx = /* InlineHTML: missing.html */;\nline3\ny = \"/* InlineHTML: other.html */\";",
		"b.js": "clean()",
		"c.js": "/* InlineHTML: */",
	})

	got, err := New().Unresolved(context.Background(), store)
	if err != nil {
		t.Fatal(err)
	}

	want := []UnresolvedMarker{
		{Asset: "a.js", Line: 2, Target: "missing.html", Syntax: SyntaxBare},
		{Asset: "a.js", Line: 4, Target: "other.html", Syntax: SyntaxQuoted},
		{Asset: "c.js", Line: 1, Target: "", Syntax: SyntaxBare},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Unresolved() mismatch (-want +got):\n%s", diff)
	}

	if _, err := New().Unresolved(context.Background(), nil); !errors.Is(err, ErrNilStore) {
		t.Errorf("Unresolved(nil) error = %v, want ErrNilStore", err)
	}
}

func TestResultReplacements(t *testing.T) {
	t.Parallel()

	var nilResult *Result
	if got := nilResult.Replacements(); got != 0 {
		t.Errorf("nil Result Replacements() = %d, want 0", got)
	}

	r := &Result{Updated: []AssetUpdate{{Name: "a", Replacements: 2}, {Name: "b", Replacements: 3}}}
	if got := r.Replacements(); got != 5 {
		t.Errorf("Replacements() = %d, want 5", got)
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(map[string]string{"main.js": "x = /* InlineHTML: index.html */;"})
	hooks := NewHooks()
	New().Apply(hooks, store)

	if diff := cmp.Diff([]string{"InlineHTMLTemplatePlugin"}, hooks.Taps()); diff != "" {
		t.Errorf("taps mismatch (-want +got):\n%s", diff)
	}

	if err := hooks.Emit(context.Background(), TemplateRenderEvent{OutputName: "index.html", HTML: "<p>Hi</p>"}); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if got, _ := store.Text("main.js"); got != `x = "<p>Hi</p>";` {
		t.Errorf("main.js = %q", got)
	}
}

func TestApply_PropagatesStoreError(t *testing.T) {
	t.Parallel()

	hostErr := errors.New("read-only filesystem")
	store := &failingStore{
		MemoryStore: NewMemoryStore(map[string]string{"main.js": "/* InlineHTML: a.html */"}),
		writeErr:    hostErr,
	}
	hooks := NewHooks()
	New().Apply(hooks, store)

	err := hooks.Emit(context.Background(), TemplateRenderEvent{OutputName: "a.html", HTML: "x"})
	if !errors.Is(err, ErrHookFailed) || !errors.Is(err, ErrAssetWrite) || !errors.Is(err, hostErr) {
		t.Errorf("Emit() error = %v, want ErrHookFailed wrapping ErrAssetWrite and host error", err)
	}
}
