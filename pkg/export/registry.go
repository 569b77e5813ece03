package export

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry resolves export formats to exporters. Format names are matched
// case-insensitively and may have aliases ("txt" for "text").
type Registry struct {
	mu      sync.RWMutex
	formats map[string]Exporter
	aliases map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]Exporter),
		aliases: make(map[string]string),
	}
}

// NewDefaultRegistry holds the html, text, json and markdown exporters plus
// the htm, txt and md aliases. HTML options are forwarded to NewHTML.
func NewDefaultRegistry(options ...HTMLOption) (*Registry, error) {
	page, err := NewHTML(options...)
	if err != nil {
		return nil, err
	}

	reg := NewRegistry()
	for _, exporter := range []Exporter{page, NewText(), NewJSON(), NewMarkdown()} {
		if err := reg.Register(exporter); err != nil {
			return nil, err
		}
	}
	if err := errors.Join(
		reg.Alias("htm", "html"),
		reg.Alias("txt", "text"),
		reg.Alias("md", "markdown"),
	); err != nil {
		return nil, err
	}
	return reg, nil
}

// Register adds exporter under its Name(). Names must be unique.
func (r *Registry) Register(exporter Exporter) error {
	if exporter == nil {
		return errors.New("export: exporter is required")
	}
	format := normalizeFormat(exporter.Name())
	if format == "" {
		return errors.New("export: exporter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(format) {
		return fmt.Errorf("export: format %q already registered", format)
	}
	r.formats[format] = exporter
	return nil
}

// Alias makes alias resolve to the registered format.
func (r *Registry) Alias(alias, format string) error {
	alias, format = normalizeFormat(alias), normalizeFormat(format)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.formats[format]; !ok {
		return fmt.Errorf("export: alias %q targets unknown format %q", alias, format)
	}
	if alias == "" || r.taken(alias) {
		return fmt.Errorf("export: alias %q is empty or taken", alias)
	}
	r.aliases[alias] = format
	return nil
}

// Get returns the exporter for a format name or alias.
func (r *Registry) Get(format string) (Exporter, error) {
	key := normalizeFormat(format)

	r.mu.RLock()
	defer r.mu.RUnlock()
	if target, ok := r.aliases[key]; ok {
		key = target
	}
	if exporter, ok := r.formats[key]; ok {
		return exporter, nil
	}
	return nil, fmt.Errorf("export: unknown format %q (available: %s)", format, strings.Join(r.names(), ", "))
}

// List returns the registered format names, without aliases, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names()
}

func (r *Registry) names() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) taken(name string) bool {
	_, format := r.formats[name]
	_, alias := r.aliases[name]
	return format || alias
}

func normalizeFormat(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
