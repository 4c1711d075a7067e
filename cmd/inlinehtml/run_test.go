package main

// Notes:
// - runMain reads INLINEHTML_* variables; tests that do not set them rely on
//   a clean environment and run in parallel.
// - The inline tests go through the real filesystem: assets and templates are
//   written to t.TempDir and the rewritten assets are read back.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:    time.Now,
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// setupProject writes a dist/ and templates/ tree and returns their paths.
func setupProject(t *testing.T, assets map[string]string) (dist, tpl string) {
	t.Helper()
	root := t.TempDir()
	dist = filepath.Join(root, "dist")
	tpl = filepath.Join(root, "templates")
	writeFiles(t, dist, assets)
	writeFiles(t, tpl, map[string]string{
		"index.html":    "<div class=\"app\">\n  <p>Hi</p>\n</div>\n",
		"docs/intro.md": "# Intro\n",
	})
	return dist, tpl
}

const mainJS = "const page = /* InlineHTML: index.html */;\n" +
	"const doc = \"/* InlineHTML: docs/intro.html */\";\n" +
	"const nested = 'render(\\\"/* InlineHTML: index.html */\\\")';\n"

const wantMainJS = "const page = \"<div class=\\\"app\\\">  <p>Hi</p></div>\";\n" +
	"const doc = \"<h1 id=\\\"intro\\\">Intro</h1>\";\n" +
	"const nested = 'render(\\\"<div class=\\\\\\\"app\\\\\\\">  <p>Hi</p></div>\\\")';\n"

// ---------------------------------------------------------------------------
// inline
// ---------------------------------------------------------------------------

func TestRunMain_Inline(t *testing.T) {
	t.Parallel()

	dist, tpl := setupProject(t, map[string]string{
		"main.js":      mainJS,
		"vendor.js":    "console.log('no markers');\n",
		"styles/a.css": "/* InlineHTML: index.html */",
	})

	env, stdout, stderr := testEnv()
	code := runMain([]string{"inlinehtml", dist, "-t", tpl}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want 0\nstderr: %s", code, stderr.String())
	}

	if got := readFile(t, filepath.Join(dist, "main.js")); got != wantMainJS {
		t.Errorf("main.js =\n%s\nwant\n%s", got, wantMainJS)
	}
	if got := readFile(t, filepath.Join(dist, "vendor.js")); got != "console.log('no markers');\n" {
		t.Errorf("vendor.js changed: %q", got)
	}
	if got := readFile(t, filepath.Join(dist, "styles/a.css")); got != "/* InlineHTML: index.html */" {
		t.Errorf("css asset outside include patterns changed: %q", got)
	}

	out := stdout.String()
	if !strings.Contains(out, "Updated main.js (3 marker(s))") {
		t.Errorf("stdout missing update line: %q", out)
	}
	if !strings.Contains(out, "2 template(s) rendered, 1 asset(s) changed") {
		t.Errorf("stdout missing summary: %q", out)
	}
}

func TestRunMain_InlineIsIdempotent(t *testing.T) {
	t.Parallel()

	dist, tpl := setupProject(t, map[string]string{"main.js": mainJS})

	env, _, stderr := testEnv()
	if code := runMain([]string{"inlinehtml", "inline", dist, "-t", tpl, "-q"}, env); code != ExitSuccess {
		t.Fatalf("first run exit = %d: %s", code, stderr.String())
	}
	first := readFile(t, filepath.Join(dist, "main.js"))

	env, stdout, stderr := testEnv()
	if code := runMain([]string{"inlinehtml", "inline", dist, "-t", tpl}, env); code != ExitSuccess {
		t.Fatalf("second run exit = %d: %s", code, stderr.String())
	}
	if got := readFile(t, filepath.Join(dist, "main.js")); got != first {
		t.Errorf("second run changed output:\n%s\nwant\n%s", got, first)
	}
	if !strings.Contains(stdout.String(), "0 asset(s) changed") {
		t.Errorf("second run summary = %q", stdout.String())
	}
}

func TestRunMain_DryRun(t *testing.T) {
	t.Parallel()

	dist, tpl := setupProject(t, map[string]string{"main.js": mainJS})

	env, stdout, stderr := testEnv()
	code := runMain([]string{"inlinehtml", dist, "-t", tpl, "--dry-run"}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d: %s", code, stderr.String())
	}
	if got := readFile(t, filepath.Join(dist, "main.js")); got != mainJS {
		t.Errorf("dry run modified main.js: %q", got)
	}
	if !strings.Contains(stdout.String(), "Would update main.js") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunMain_SyntaxSelection(t *testing.T) {
	t.Parallel()

	dist, tpl := setupProject(t, map[string]string{
		"main.js": "a(/* InlineHTML: index.html */); b(\"/* InlineHTML: index.html */\");\n",
	})

	env, _, stderr := testEnv()
	code := runMain([]string{"inlinehtml", dist, "-t", tpl, "--syntax", "quoted", "-q"}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d: %s", code, stderr.String())
	}

	want := "a(/* InlineHTML: index.html */); b(\"<div class=\\\"app\\\">  <p>Hi</p></div>\");\n"
	if got := readFile(t, filepath.Join(dist, "main.js")); got != want {
		t.Errorf("main.js = %q, want %q", got, want)
	}
}

func TestRunMain_Unresolved(t *testing.T) {
	t.Parallel()

	assets := map[string]string{
		"main.js": "x(/* InlineHTML: index.html */);\n",
		"lazy.js": "\n\ny(/* InlineHTML: missing.html */);\n",
	}

	t.Run("warns without strict", func(t *testing.T) {
		t.Parallel()
		dist, tpl := setupProject(t, assets)
		env, _, stderr := testEnv()

		if code := runMain([]string{"inlinehtml", dist, "-t", tpl}, env); code != ExitSuccess {
			t.Fatalf("exit code = %d: %s", code, stderr.String())
		}
		if !strings.Contains(stderr.String(), `warning: lazy.js:3: unresolved marker for "missing.html" (bare)`) {
			t.Errorf("stderr = %q", stderr.String())
		}
		if !strings.Contains(stderr.String(), "hint:") {
			t.Errorf("stderr missing hint: %q", stderr.String())
		}
	})

	t.Run("strict fails after inlining", func(t *testing.T) {
		t.Parallel()
		dist, tpl := setupProject(t, assets)
		env, _, stderr := testEnv()

		code := runMain([]string{"inlinehtml", dist, "-t", tpl, "--strict"}, env)
		if code != ExitUnresolved {
			t.Fatalf("exit code = %d, want %d: %s", code, ExitUnresolved, stderr.String())
		}
		if !strings.Contains(stderr.String(), "error: unresolved markers: 1 marker(s) in 1 asset(s)") {
			t.Errorf("stderr = %q", stderr.String())
		}
		if got := readFile(t, filepath.Join(dist, "main.js")); strings.Contains(got, "InlineHTML") {
			t.Errorf("resolvable marker should still be inlined: %q", got)
		}
	})
}

func TestRunMain_ConfigFile(t *testing.T) {
	t.Parallel()

	dist, tpl := setupProject(t, map[string]string{
		"app.mjs": "export default /* InlineHTML: index.html */;\n",
	})
	writeFiles(t, tpl, map[string]string{"greet.html": "<b>{{.Name}}</b>"})
	writeFiles(t, dist, map[string]string{"greet.js": "g(/* InlineHTML: greet.html */)"})

	cfgPath := filepath.Join(t.TempDir(), "inlinehtml.yaml")
	writeFiles(t, filepath.Dir(cfgPath), map[string]string{
		"inlinehtml.yaml": "assets:\n  dir: " + dist + "\n" +
			"templates:\n  dir: " + tpl + "\n  include: [\"*.html\"]\n  execute: true\n  data:\n    Name: Ada\n" +
			"workers: 2\n",
	})

	env, _, stderr := testEnv()
	code := runMain([]string{"inlinehtml", "-c", cfgPath, "-q"}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d: %s", code, stderr.String())
	}
	if got := readFile(t, filepath.Join(dist, "greet.js")); got != `g("<b>Ada</b>")` {
		t.Errorf("greet.js = %q", got)
	}
	if got := readFile(t, filepath.Join(dist, "app.mjs")); !strings.Contains(got, `"<div class=\"app\">`) {
		t.Errorf("app.mjs = %q", got)
	}
}

func TestRunMain_RenderFailure(t *testing.T) {
	t.Parallel()

	dist, tpl := setupProject(t, map[string]string{"main.js": mainJS})
	writeFiles(t, tpl, map[string]string{"broken.html": "{{ .Missing }}"})

	env, _, stderr := testEnv()
	code := runMain([]string{"inlinehtml", dist, "-t", tpl, "--execute"}, env)
	if code != ExitGeneral {
		t.Fatalf("exit code = %d, want %d", code, ExitGeneral)
	}
	if !strings.Contains(stderr.String(), "FAILED broken.html") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "--execute") {
		t.Errorf("stderr missing execute hint: %q", stderr.String())
	}
	if got := readFile(t, filepath.Join(dist, "main.js")); got != mainJS {
		t.Error("assets must not change when rendering fails")
	}
}

func TestRunMain_Errors(t *testing.T) {
	t.Parallel()

	dist, tpl := setupProject(t, map[string]string{"main.js": mainJS})
	empty := t.TempDir()

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no args", []string{"inlinehtml"}, ExitUsage},
		{"unknown flag", []string{"inlinehtml", dist, "--nope"}, ExitUsage},
		{"two dirs", []string{"inlinehtml", dist, tpl}, ExitUsage},
		{"unknown syntax", []string{"inlinehtml", dist, "--syntax", "weird"}, ExitUsage},
		{"bad glob", []string{"inlinehtml", dist, "--include", "[x"}, ExitUsage},
		{"bad workers", []string{"inlinehtml", dist, "-w", "-1"}, ExitUsage},
		{"missing config", []string{"inlinehtml", dist, "-c", "no-such-config-name"}, ExitUsage},
		{"missing dir", []string{"inlinehtml", filepath.Join(empty, "nope")}, ExitIO},
		{"no assets", []string{"inlinehtml", empty, "-t", tpl}, ExitIO},
		{"no templates", []string{"inlinehtml", dist, "-t", empty}, ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env, _, stderr := testEnv()
			if code := runMain(tt.args, env); code != tt.want {
				t.Errorf("exit code = %d, want %d\nstderr: %s", code, tt.want, stderr.String())
			}
		})
	}
}

func TestRunMain_UnknownSyntaxHint(t *testing.T) {
	t.Parallel()

	dist, _ := setupProject(t, map[string]string{"main.js": mainJS})
	env, _, stderr := testEnv()
	if code := runMain([]string{"inlinehtml", dist, "--syntax", "weird"}, env); code != ExitUsage {
		t.Fatalf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "hint: available: escaped, quoted, bare") {
		t.Errorf("stderr missing syntax hint: %q", stderr.String())
	}
}

// ---------------------------------------------------------------------------
// check, version, help
// ---------------------------------------------------------------------------

func TestRunMain_Check(t *testing.T) {
	t.Parallel()

	dist, _ := setupProject(t, map[string]string{
		"main.js":  "a(/* InlineHTML: index.html */)\nb(\"/* InlineHTML: card.html */\")\n",
		"clean.js": "c()\n",
	})

	env, stdout, _ := testEnv()
	if code := runMain([]string{"inlinehtml", "check", dist}, env); code != ExitUnresolved {
		t.Fatalf("exit code = %d, want %d", code, ExitUnresolved)
	}
	want := "main.js:1: index.html (bare)\nmain.js:2: card.html (quoted)\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}

	env, stdout, _ = testEnv()
	if code := runMain([]string{"inlinehtml", "check", dist, "--include", "clean.js"}, env); code != ExitSuccess {
		t.Fatalf("clean check exit = %d", code)
	}
	if !strings.Contains(stdout.String(), "No markers in 1 asset(s)") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunMain_Version(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	if code := runMain([]string{"inlinehtml", "version"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if got := stdout.String(); got != "inlinehtml "+Version+"\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestRunMain_Help(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args     []string
		contains string
	}{
		{[]string{"inlinehtml", "help"}, "Commands:"},
		{[]string{"inlinehtml", "help", "inline"}, "--template-include"},
		{[]string{"inlinehtml", "help", "check"}, "Exits 4"},
		{[]string{"inlinehtml", "help", "version"}, "inlinehtml version"},
	}
	for _, tt := range tests {
		env, stdout, _ := testEnv()
		if code := runMain(tt.args, env); code != ExitSuccess {
			t.Errorf("%v: exit code = %d", tt.args, code)
		}
		if !strings.Contains(stdout.String(), tt.contains) {
			t.Errorf("%v: output missing %q", tt.args, tt.contains)
		}
	}

	env, _, stderr := testEnv()
	runMain([]string{"inlinehtml", "help", "bogus"}, env)
	if !strings.Contains(stderr.String(), "unknown command: bogus") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
