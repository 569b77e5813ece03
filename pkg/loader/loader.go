package loader

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-doctemplate/pkg/model"
)

// Option configures LoadFS.
type Option func(*config)

type config struct {
	decorators []model.Decorator
}

// WithDecorators runs decorators on every definition after the built-in
// defaults are applied.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(cfg *config) {
		cfg.decorators = append(cfg.decorators, decorators...)
	}
}

// Store holds loaded definitions keyed by ID.
type Store struct {
	templates map[string]model.TemplateDefinition
	sources   map[string]string
}

// LoadFS walks fsys and parses every JSON/YAML file. A file holds either a
// single definition or a `templates:` list. Definitions without an ID take
// the file's base name. When fsys is nil the returned store is empty.
func LoadFS(fsys fs.FS, options ...Option) (*Store, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	decorators := append([]model.Decorator{model.ApplyDefaults}, cfg.decorators...)

	store := &Store{
		templates: make(map[string]model.TemplateDefinition),
		sources:   make(map[string]string),
	}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isTemplateFile(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("loader: read %s: %w", p, err)
		}

		defs, err := parseDocument(data, p)
		if err != nil {
			return err
		}

		for idx, def := range defs {
			def.ID = strings.TrimSpace(def.ID)
			if def.ID == "" {
				if len(defs) > 1 {
					return fmt.Errorf("loader: file %s template %d has an empty id", p, idx)
				}
				def.ID = strings.TrimSuffix(path.Base(p), path.Ext(p))
			}
			if prev, exists := store.sources[def.ID]; exists {
				return fmt.Errorf("loader: duplicate template %q (files %s and %s)", def.ID, prev, p)
			}
			if err := model.Decorate(&def, decorators...); err != nil {
				return fmt.Errorf("loader: decorate %q (file %s): %w", def.ID, p, err)
			}
			store.templates[def.ID] = def
			store.sources[def.ID] = p
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// LoadPath loads a single template file or every template file below a
// directory.
func LoadPath(p string, options ...Option) (*Store, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	if info.IsDir() {
		return LoadFS(os.DirFS(p), options...)
	}
	if !isTemplateFile(p) {
		return nil, fmt.Errorf("loader: %s is not a JSON or YAML file", p)
	}
	return LoadFS(singleFileFS{dir: os.DirFS(filepath.Dir(p)), name: filepath.Base(p)}, options...)
}

// singleFileFS exposes one file of dir as the root of the filesystem.
type singleFileFS struct {
	dir  fs.FS
	name string
}

func (s singleFileFS) Open(name string) (fs.File, error) {
	if name != "." && name != s.name {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	if name == "." {
		return s.dir.Open(".")
	}
	return s.dir.Open(s.name)
}

func (s singleFileFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if name != "." {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	entries, err := fs.ReadDir(s.dir, ".")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.Name() == s.name {
			return []fs.DirEntry{entry}, nil
		}
	}
	return nil, &fs.PathError{Op: "readdir", Path: s.name, Err: fs.ErrNotExist}
}

// Template returns the definition with the supplied id.
func (s *Store) Template(id string) (model.TemplateDefinition, bool) {
	if s == nil {
		return model.TemplateDefinition{}, false
	}
	def, ok := s.templates[id]
	return def, ok
}

// Source returns the file a definition was loaded from.
func (s *Store) Source(id string) string {
	if s == nil {
		return ""
	}
	return s.sources[id]
}

// Templates returns every definition sorted by ID.
func (s *Store) Templates() []model.TemplateDefinition {
	if s == nil {
		return nil
	}
	out := make([]model.TemplateDefinition, 0, len(s.templates))
	for _, def := range s.templates {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len reports the number of definitions.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.templates)
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	return s.Len() == 0
}

type documentFile struct {
	Templates []model.TemplateDefinition `json:"templates" yaml:"templates"`
}

func parseDocument(data []byte, source string) ([]model.TemplateDefinition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("loader: file %s is empty", source)
	}

	var (
		doc    documentFile
		single model.TemplateDefinition
	)
	if err := json.Unmarshal(data, &doc); err == nil && len(doc.Templates) > 0 {
		return doc.Templates, nil
	}
	if err := json.Unmarshal(data, &single); err == nil {
		return []model.TemplateDefinition{single}, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Templates) > 0 {
		return doc.Templates, nil
	}
	single = model.TemplateDefinition{}
	if err := yaml.Unmarshal(data, &single); err == nil {
		return []model.TemplateDefinition{single}, nil
	}

	return nil, fmt.Errorf("loader: parse %s: invalid JSON or YAML", source)
}

func isTemplateFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
