package locale

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const fallbackDoc = `locales = ["en"]
displayName = "English"

[strings]
"tab.install" = "Install"
"tab.remove" = "Remove"
"info.title" = "Package info: %s"
`

const spanishDoc = `locales = ["es", "es-AR"]
displayName = "Español"

[strings]
"tab.install" = "Instalar"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadFallbackOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FallbackFile, fallbackDoc)

	c, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := c.T("tab.install"); got != "Install" {
		t.Errorf("T(tab.install) = %q", got)
	}
	if got := c.T("no.such.key"); got != "no.such.key" {
		t.Errorf("expected key itself, got %q", got)
	}
	if got := c.Tf("info.title", "bash"); got != "Package info: bash" {
		t.Errorf("Tf() = %q", got)
	}
	if c.DisplayName() != "English" || c.Missing() != nil {
		t.Errorf("unexpected active document %q", c.DisplayName())
	}
}

func TestLoadSelectedFallsBackKeyByKey(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FallbackFile, fallbackDoc)
	writeFile(t, dir, "es.toml", spanishDoc)

	c, err := Load(dir, "es.toml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		key      string
		expected string
	}{
		{"tab.install", "Instalar"},
		{"tab.remove", "Remove"},
		{"unknown", "unknown"},
	}
	for _, tt := range tests {
		if got := c.T(tt.key); got != tt.expected {
			t.Errorf("T(%q) = %q, expected %q", tt.key, got, tt.expected)
		}
	}

	if c.DisplayName() != "Español" {
		t.Errorf("expected Español, got %q", c.DisplayName())
	}
	if missing := c.Missing(); len(missing) != 2 || missing[0] != "info.title" {
		t.Errorf("Missing() = %v", missing)
	}
}

func TestLoadFallbackErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"missing file", "", os.ErrNotExist},
		{"malformed", "locales = [", nil},
		{"no locales", "displayName = \"English\"\n[strings]\na = \"b\"\n", ErrMissingLocales},
		{"no display name", "locales = [\"en\"]\n[strings]\na = \"b\"\n", ErrMissingDisplayName},
		{"no strings", "locales = [\"en\"]\ndisplayName = \"English\"\n", ErrMissingStrings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != "" {
				writeFile(t, dir, FallbackFile, tt.content)
			}

			_, err := Load(dir, "")
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected *LoadError, got %v", err)
			}
			if loadErr.Path != filepath.Join(dir, FallbackFile) {
				t.Errorf("unexpected path %q", loadErr.Path)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestLoadBadSelectedUsesFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FallbackFile, fallbackDoc)
	bad := writeFile(t, dir, "broken.toml", "displayName = [")

	c, err := Load(dir, bad)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.DisplayName() != "English" {
		t.Errorf("expected fallback language, got %q", c.DisplayName())
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FallbackFile, fallbackDoc)
	writeFile(t, dir, "es.toml", spanishDoc)
	writeFile(t, dir, "broken.toml", "nope = [")
	writeFile(t, dir, "notes.txt", "ignored")

	docs, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].DisplayName != "English" || docs[1].DisplayName != "Español" {
		t.Errorf("unexpected order: %s, %s", docs[0].DisplayName, docs[1].DisplayName)
	}
	if !docs[1].Matches("es_ar") || docs[1].Matches("en") {
		t.Error("unexpected locale matching")
	}
}

func TestDir(t *testing.T) {
	t.Setenv(EnvLocalesDir, "")
	if Dir("") != DefaultDir {
		t.Errorf("expected %s, got %s", DefaultDir, Dir(""))
	}

	t.Setenv(EnvLocalesDir, "/opt/locales")
	if Dir("") != "/opt/locales" {
		t.Errorf("expected env dir, got %s", Dir(""))
	}
	if Dir("/flag") != "/flag" {
		t.Errorf("expected flag dir, got %s", Dir("/flag"))
	}
}

// TestLookupNeverEmpty tests that any key resolves to non-empty text
func TestLookupNeverEmpty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	fallback := &Document{Locales: []string{"en"}, DisplayName: "English", Strings: map[string]string{"a": "A", "b": ""}}
	selected := &Document{Locales: []string{"xx"}, DisplayName: "X", Strings: map[string]string{"a": ""}}
	c := NewCatalog(fallback, selected)

	properties.Property("T returns a translation or the key", prop.ForAll(
		func(key string) bool {
			got := c.T(key)
			if key == "a" {
				return got == "A"
			}
			return got == key
		},
		gen.OneGenOf(gen.Const("a"), gen.Const("b"), gen.Identifier()),
	))

	properties.TestingRun(t)
}

// TestShippedDocuments tests the documents installed with the program
func TestShippedDocuments(t *testing.T) {
	dir := filepath.Join("..", "..", "locales")

	fallback, err := LoadFile(filepath.Join(dir, FallbackFile))
	if err != nil {
		t.Fatalf("shipped fallback invalid: %v", err)
	}

	docs, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(docs) < 2 {
		t.Fatalf("expected at least 2 shipped languages, got %d", len(docs))
	}

	for _, doc := range docs {
		c := NewCatalog(fallback, doc)
		if missing := c.Missing(); len(missing) > 0 {
			t.Errorf("%s lacks %v", doc.Path, missing)
		}
	}
}
