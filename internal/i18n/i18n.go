// Package i18n loads message catalogs used to localize user-facing text.
//
// Catalogs are flat YAML maps from a stable message id to its text. The
// English catalog is embedded; an optional file can overlay any subset of it.
package i18n

import (
	"embed"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophforum/internal/rooterror"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var locales embed.FS

// DefaultLocale is the embedded catalog name.
const DefaultLocale = "en"

// Catalog maps message ids to localized text.
type Catalog struct {
	messages map[string]string
}

// NewCatalog wraps messages in a Catalog.
func NewCatalog(messages map[string]string) *Catalog {
	m := make(map[string]string, len(messages))
	for k, v := range messages {
		m[k] = v
	}
	return &Catalog{messages: m}
}

// Default returns the embedded English catalog.
func Default() (*Catalog, error) {
	data, err := locales.ReadFile("locales/" + DefaultLocale + ".yaml")
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	m := map[string]string{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &Catalog{messages: m}, nil
}

// Load returns the embedded catalog overlaid with the file at path.
// An empty path returns the embedded catalog unchanged.
func Load(path string) (*Catalog, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	overlay, err := Parse(data)
	if err != nil {
		return nil, err
	}
	c.Merge(overlay)
	return c, nil
}

// Merge copies every message of other into c.
func (c *Catalog) Merge(other *Catalog) {
	for k, v := range other.messages {
		c.messages[k] = v
	}
}

// T returns the text for id, or fallback when the catalog has none.
func (c *Catalog) T(id, fallback string) string {
	if c == nil {
		return fallback
	}
	if s, ok := c.messages[id]; ok && s != "" {
		return s
	}
	return fallback
}

// Has reports whether the catalog defines id.
func (c *Catalog) Has(id string) bool {
	if c == nil {
		return false
	}
	_, ok := c.messages[id]
	return ok
}

// Messages builds a resolver catalog for the given error types. Types the
// catalog does not define are left out so the resolver falls back to its
// defaults or the server text.
func (c *Catalog) Messages(types ...string) rooterror.Messages {
	out := make(rooterror.Messages, len(types))
	for _, t := range types {
		if c.Has(t) {
			out[t] = c.T(t, "")
		}
	}
	return out
}

var _ rooterror.Localizer = (*Catalog)(nil)
