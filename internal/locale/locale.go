// Package locale loads translated interface strings from TOML documents.
package locale

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/obentoo/vapt/internal/common/logger"
)

const (
	// FallbackFile is the document every lookup falls back to. It must exist.
	FallbackFile = "en.toml"
	// EnvLocalesDir overrides the locales directory
	EnvLocalesDir = "VAPT_LOCALES_DIR"
	// DefaultDir is where packaged locale documents are installed
	DefaultDir = "/usr/share/vapt/locales"
)

var (
	ErrMissingLocales     = errors.New("missing required field: locales")
	ErrMissingDisplayName = errors.New("missing required field: displayName")
	ErrMissingStrings     = errors.New("missing required field: strings")
)

// LoadError reports a locale document that could not be read or is invalid
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("locale %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Document is one language file
type Document struct {
	Locales     []string          `toml:"locales"`
	DisplayName string            `toml:"displayName"`
	Strings     map[string]string `toml:"strings"`

	// Path is the file the document was read from
	Path string `toml:"-"`
}

// Dir returns the locales directory: override when set, then
// $VAPT_LOCALES_DIR, then DefaultDir
func Dir(override string) string {
	if override != "" {
		return override
	}
	if env := os.Getenv(EnvLocalesDir); env != "" {
		return env
	}
	return DefaultDir
}

// LoadFile reads and validates one document
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("failed to parse: %w", err)}
	}

	switch {
	case len(doc.Locales) == 0:
		return nil, &LoadError{Path: path, Err: ErrMissingLocales}
	case doc.DisplayName == "":
		return nil, &LoadError{Path: path, Err: ErrMissingDisplayName}
	case doc.Strings == nil:
		return nil, &LoadError{Path: path, Err: ErrMissingStrings}
	}

	doc.Path = path
	return &doc, nil
}

// Discover returns every valid document in dir, sorted by display name.
// Invalid files are skipped.
func Discover(dir string) ([]*Document, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, err
	}

	var docs []*Document
	for _, path := range paths {
		doc, err := LoadFile(path)
		if err != nil {
			logger.Debug("skipping %v", err)
			continue
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].DisplayName < docs[j].DisplayName
	})
	return docs, nil
}

// Catalog resolves string keys against a selected document and the fallback
type Catalog struct {
	selected *Document
	fallback *Document
}

// Load reads the fallback document from dir and, when selected is set, the
// selected document on top of it. A relative selected path is resolved
// against dir. A missing or invalid fallback is an error; a bad selected
// document is logged and ignored.
func Load(dir, selected string) (*Catalog, error) {
	fallback, err := LoadFile(filepath.Join(dir, FallbackFile))
	if err != nil {
		return nil, err
	}

	c := &Catalog{fallback: fallback}
	if selected == "" {
		return c, nil
	}

	if !filepath.IsAbs(selected) {
		selected = filepath.Join(dir, selected)
	}
	doc, err := LoadFile(selected)
	if err != nil {
		logger.Warn("using %s: %v", FallbackFile, err)
		return c, nil
	}
	c.selected = doc
	return c, nil
}

// NewCatalog builds a catalog from already loaded documents; selected may be nil
func NewCatalog(fallback, selected *Document) *Catalog {
	return &Catalog{fallback: fallback, selected: selected}
}

// T returns the text for key, falling back to the fallback document and
// then to the key itself
func (c *Catalog) T(key string) string {
	if c == nil {
		return key
	}
	if c.selected != nil {
		if s, ok := c.selected.Strings[key]; ok && s != "" {
			return s
		}
	}
	if c.fallback != nil {
		if s, ok := c.fallback.Strings[key]; ok && s != "" {
			return s
		}
	}
	return key
}

// Tf formats the text for key with args
func (c *Catalog) Tf(key string, args ...interface{}) string {
	return fmt.Sprintf(c.T(key), args...)
}

// DisplayName returns the name of the active language
func (c *Catalog) DisplayName() string {
	return c.active().DisplayName
}

// Locales returns the locale identifiers of the active language
func (c *Catalog) Locales() []string {
	return c.active().Locales
}

// Path returns the file of the active language
func (c *Catalog) Path() string {
	return c.active().Path
}

// Missing returns the fallback keys the active language does not translate
func (c *Catalog) Missing() []string {
	if c.selected == nil {
		return nil
	}
	var keys []string
	for k := range c.fallback.Strings {
		if _, ok := c.selected.Strings[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func (c *Catalog) active() *Document {
	if c.selected != nil {
		return c.selected
	}
	return c.fallback
}

// Matches reports whether doc declares the locale tag, ignoring case and
// the "-"/"_" spelling
func (d *Document) Matches(tag string) bool {
	norm := func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "-", "_"))
	}
	for _, l := range d.Locales {
		if norm(l) == norm(tag) {
			return true
		}
	}
	return false
}
