// Package catalog manages the template library: validated create and
// update, lookups, search and summary statistics over an injected
// repository.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-doctemplate/pkg/model"
	"github.com/goliatone/go-doctemplate/pkg/storage"
	"github.com/goliatone/go-doctemplate/pkg/validation"
)

// ErrInvalidTemplate wraps the validation error of a rejected definition.
var ErrInvalidTemplate = errors.New("catalog: invalid template")

// topCategoryLimit caps Stats.TopCategories.
const topCategoryLimit = 5

// Option configures a Catalog.
type Option func(*Catalog)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		if now != nil {
			c.now = now
		}
	}
}

// WithValidator overrides the validator used on create and update.
func WithValidator(v *validation.Validator) Option {
	return func(c *Catalog) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithIDGenerator overrides how IDs are assigned to new templates.
func WithIDGenerator(next func() string) Option {
	return func(c *Catalog) {
		if next != nil {
			c.newID = next
		}
	}
}

// Catalog is the template library.
type Catalog struct {
	repo      storage.Repository[model.TemplateDefinition]
	validator *validation.Validator
	now       func() time.Time
	newID     func() string
}

// New returns a catalog backed by repo.
func New(repo storage.Repository[model.TemplateDefinition], options ...Option) *Catalog {
	c := &Catalog{
		repo:      repo,
		validator: validation.New(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Create validates def, assigns an ID when missing and stamps both
// timestamps.
func (c *Catalog) Create(ctx context.Context, def model.TemplateDefinition) (model.TemplateDefinition, error) {
	if err := c.prepare(&def); err != nil {
		return model.TemplateDefinition{}, err
	}
	if def.ID == "" {
		def.ID = c.newID()
	} else if _, err := c.repo.Get(ctx, def.ID); err == nil {
		return model.TemplateDefinition{}, fmt.Errorf("catalog: template %q already exists", def.ID)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return model.TemplateDefinition{}, fmt.Errorf("catalog: create %q: %w", def.ID, err)
	}

	now := c.now().UTC()
	def.CreatedAt = now
	def.UpdatedAt = now
	if err := c.repo.Put(ctx, def.ID, def); err != nil {
		return model.TemplateDefinition{}, fmt.Errorf("catalog: create %q: %w", def.ID, err)
	}
	return def, nil
}

// Update replaces an existing template, keeping its creation time.
func (c *Catalog) Update(ctx context.Context, def model.TemplateDefinition) (model.TemplateDefinition, error) {
	existing, err := c.Get(ctx, def.ID)
	if err != nil {
		return model.TemplateDefinition{}, err
	}
	if err := c.prepare(&def); err != nil {
		return model.TemplateDefinition{}, err
	}

	def.CreatedAt = existing.CreatedAt
	def.UpdatedAt = c.now().UTC()
	if err := c.repo.Put(ctx, def.ID, def); err != nil {
		return model.TemplateDefinition{}, fmt.Errorf("catalog: update %q: %w", def.ID, err)
	}
	return def, nil
}

// Save creates def, or updates it when a template with the same ID exists.
func (c *Catalog) Save(ctx context.Context, def model.TemplateDefinition) (model.TemplateDefinition, error) {
	if def.ID != "" {
		if _, err := c.repo.Get(ctx, def.ID); err == nil {
			return c.Update(ctx, def)
		}
	}
	return c.Create(ctx, def)
}

// Seed creates every definition whose ID is not stored yet and reports how
// many were added.
func (c *Catalog) Seed(ctx context.Context, defs []model.TemplateDefinition) (int, error) {
	added := 0
	for _, def := range defs {
		if def.ID != "" {
			if _, err := c.repo.Get(ctx, def.ID); err == nil {
				continue
			}
		}
		if _, err := c.Create(ctx, def); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// SetActive toggles whether the template is offered for new documents.
func (c *Catalog) SetActive(ctx context.Context, id string, active bool) (model.TemplateDefinition, error) {
	def, err := c.Get(ctx, id)
	if err != nil {
		return model.TemplateDefinition{}, err
	}
	def.IsActive = active
	def.UpdatedAt = c.now().UTC()
	if err := c.repo.Put(ctx, id, def); err != nil {
		return model.TemplateDefinition{}, fmt.Errorf("catalog: set active %q: %w", id, err)
	}
	return def, nil
}

// Delete removes a template.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("catalog: delete %q: %w", id, err)
	}
	return nil
}

// Get returns the template with id; the error wraps storage.ErrNotFound when
// it does not exist.
func (c *Catalog) Get(ctx context.Context, id string) (model.TemplateDefinition, error) {
	def, err := c.repo.Get(ctx, id)
	if err != nil {
		return model.TemplateDefinition{}, fmt.Errorf("catalog: get %q: %w", id, err)
	}
	return def, nil
}

// List returns every template ordered by ID.
func (c *Catalog) List(ctx context.Context) ([]model.TemplateDefinition, error) {
	defs, err := c.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	return defs, nil
}

// Search matches query case-insensitively against name, description and
// category. A blank query returns everything.
func (c *Catalog) Search(ctx context.Context, query string) ([]model.TemplateDefinition, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	return c.filter(ctx, func(def model.TemplateDefinition) bool {
		if query == "" {
			return true
		}
		return strings.Contains(strings.ToLower(def.Name), query) ||
			strings.Contains(strings.ToLower(def.Description), query) ||
			strings.Contains(strings.ToLower(string(def.Category)), query)
	})
}

// ByCategory returns the active templates of category.
func (c *Catalog) ByCategory(ctx context.Context, category model.Category) ([]model.TemplateDefinition, error) {
	return c.filter(ctx, func(def model.TemplateDefinition) bool {
		return def.IsActive && def.Category == category
	})
}

// Active returns every active template.
func (c *Catalog) Active(ctx context.Context) ([]model.TemplateDefinition, error) {
	return c.filter(ctx, func(def model.TemplateDefinition) bool { return def.IsActive })
}

// CategoryCount is one entry of Stats.TopCategories.
type CategoryCount struct {
	Category model.Category `json:"category"`
	Count    int            `json:"count"`
}

// Stats summarises the library.
type Stats struct {
	Total         int             `json:"total"`
	Active        int             `json:"active"`
	Inactive      int             `json:"inactive"`
	TopCategories []CategoryCount `json:"topCategories"`
}

// Stats counts templates by state and reports the five most used
// categories, ties broken by category name.
func (c *Catalog) Stats(ctx context.Context) (Stats, error) {
	defs, err := c.List(ctx)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	counts := make(map[model.Category]int)
	for _, def := range defs {
		stats.Total++
		if def.IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		counts[def.Category]++
	}

	for category, count := range counts {
		stats.TopCategories = append(stats.TopCategories, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(stats.TopCategories, func(i, j int) bool {
		a, b := stats.TopCategories[i], stats.TopCategories[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})
	if len(stats.TopCategories) > topCategoryLimit {
		stats.TopCategories = stats.TopCategories[:topCategoryLimit]
	}
	return stats, nil
}

func (c *Catalog) filter(ctx context.Context, keep func(model.TemplateDefinition) bool) ([]model.TemplateDefinition, error) {
	defs, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	out := defs[:0]
	for _, def := range defs {
		if keep(def) {
			out = append(out, def)
		}
	}
	return out, nil
}

func (c *Catalog) prepare(def *model.TemplateDefinition) error {
	def.Variables = append([]model.VariableDefinition(nil), def.Variables...)
	if err := model.Decorate(def, model.ApplyDefaults); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	def.ID = strings.TrimSpace(def.ID)
	if result := c.validator.Validate(*def); !result.Valid {
		return fmt.Errorf("%w: %w", ErrInvalidTemplate, result.Err())
	}
	return nil
}
