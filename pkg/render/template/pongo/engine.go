// Package pongo renders document layouts with pongo2.
package pongo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-doctemplate/pkg/render/template"
)

const defaultExtension = ".tpl"

// Option configures an Engine.
type Option func(*Engine)

// WithExtension changes the layout file extension.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.ext = ext
	}
}

// WithGlobals seeds values visible to every layout.
func WithGlobals(data map[string]any) Option {
	return func(e *Engine) {
		e.SetGlobals(data)
	}
}

// Engine renders layouts read from an fs.FS. Parsed layouts are cached by
// path; globals may change between renders.
type Engine struct {
	set *pongo2.TemplateSet
	ext string

	mu      sync.RWMutex
	globals pongo2.Context
	parsed  map[string]*pongo2.Template
}

var _ template.LayoutRenderer = (*Engine)(nil)

// New builds an engine over layouts.
func New(layouts fs.FS, options ...Option) (*Engine, error) {
	if layouts == nil {
		return nil, errors.New("pongo: layouts filesystem is required")
	}
	registerFilters()

	e := &Engine{
		set:     pongo2.NewSet("doctemplate", pongo2.NewFSLoader(layouts)),
		ext:     defaultExtension,
		globals: pongo2.Context{},
		parsed:  make(map[string]*pongo2.Template),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// RenderLayout executes the named layout and copies the result to out.
func (e *Engine) RenderLayout(name string, data any, out ...io.Writer) (string, error) {
	file := strings.TrimPrefix(path.Clean(name), "/")
	if path.Ext(file) == "" {
		file += e.ext
	}

	tmpl, err := e.layout(file)
	if err != nil {
		return "", err
	}
	rendered, err := e.execute(tmpl, data)
	if err != nil {
		return "", fmt.Errorf("pongo: render %s: %w", file, err)
	}
	return rendered, copyTo(out, rendered)
}

// RenderString parses and executes an inline layout.
func (e *Engine) RenderString(source string, data any, out ...io.Writer) (string, error) {
	tmpl, err := e.set.FromString(source)
	if err != nil {
		return "", fmt.Errorf("pongo: parse inline layout: %w", err)
	}
	rendered, err := e.execute(tmpl, data)
	if err != nil {
		return "", fmt.Errorf("pongo: render inline layout: %w", err)
	}
	return rendered, copyTo(out, rendered)
}

// SetGlobals merges data into the values every layout sees. Render data
// wins over globals with the same key.
func (e *Engine) SetGlobals(data map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for key, value := range data {
		if key = strings.TrimSpace(key); key != "" {
			e.globals[key] = value
		}
	}
}

func (e *Engine) layout(file string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.parsed[file]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	tmpl, err := e.set.FromFile(file)
	if err != nil {
		return nil, fmt.Errorf("pongo: load %s: %w", file, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if cached, ok := e.parsed[file]; ok {
		return cached, nil
	}
	e.parsed[file] = tmpl
	return tmpl, nil
}

func (e *Engine) execute(tmpl *pongo2.Template, data any) (string, error) {
	vars, err := toContext(data)
	if err != nil {
		return "", err
	}

	e.mu.RLock()
	ctx := make(pongo2.Context, len(e.globals)+len(vars))
	ctx.Update(e.globals)
	e.mu.RUnlock()
	ctx.Update(vars)

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// toContext passes maps through and converts anything else via its JSON
// form so json tags name the layout variables.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("pongo: encode layout data: %w", err)
	}
	ctx := pongo2.Context{}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("pongo: layout data must be an object: %w", err)
	}
	return ctx, nil
}

func copyTo(out []io.Writer, rendered string) error {
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return err
		}
	}
	return nil
}

var registerOnce sync.Once

// registerFilters installs the layout filters. pongo2 keeps filters in a
// process wide table.
func registerFilters() {
	registerOnce.Do(func() {
		if !pongo2.FilterExists("trim") {
			_ = pongo2.RegisterFilter("trim", filterTrim)
		}
	})
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
