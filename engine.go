// Package doctemplate validates declarative document templates, synthesises
// preview data, projects business records into bindings and renders the
// final document body. Engine wires the underlying packages together behind
// one entry point.
package doctemplate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-doctemplate/pkg/export"
	"github.com/goliatone/go-doctemplate/pkg/locale"
	"github.com/goliatone/go-doctemplate/pkg/model"
	"github.com/goliatone/go-doctemplate/pkg/projection"
	"github.com/goliatone/go-doctemplate/pkg/records"
	"github.com/goliatone/go-doctemplate/pkg/render"
	"github.com/goliatone/go-doctemplate/pkg/sample"
	"github.com/goliatone/go-doctemplate/pkg/validation"
	"github.com/goliatone/go-doctemplate/pkg/variable"
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	logger      zerolog.Logger
	registry    *variable.Registry
	locale      *locale.Locale
	now         func() time.Time
	sections    []render.Section
	sectionsSet bool
	exporters   *export.Registry
}

// WithLogger sets the logger used for debug tracing (silent by default).
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithRegistry supplies a variable registry, e.g. one with custom kinds.
// WithLocale and WithClock do not apply to a supplied registry.
func WithRegistry(reg *variable.Registry) Option {
	return func(cfg *config) {
		cfg.registry = reg
	}
}

// WithLocale selects the formatting locale (Thai by default).
func WithLocale(loc locale.Locale) Option {
	return func(cfg *config) {
		cfg.locale = &loc
	}
}

// WithClock overrides "today" for samples, projections and print dates.
func WithClock(now func() time.Time) Option {
	return func(cfg *config) {
		if now != nil {
			cfg.now = now
		}
	}
}

// WithSections replaces the trailing sections appended by Render.
func WithSections(sections ...render.Section) Option {
	return func(cfg *config) {
		cfg.sections = sections
		cfg.sectionsSet = true
	}
}

// WithExporters supplies the exporter registry used by Export.
func WithExporters(reg *export.Registry) Option {
	return func(cfg *config) {
		cfg.exporters = reg
	}
}

// Engine is safe for concurrent use.
type Engine struct {
	logger      zerolog.Logger
	registry    *variable.Registry
	formatter   *locale.Formatter
	now         func() time.Time
	validator   *validation.Validator
	synthesizer *sample.Synthesizer
	projector   *projection.Projector
	renderer    *render.Renderer

	exportersOnce sync.Once
	exporters     *export.Registry
	exportersErr  error
}

// New builds an Engine.
func New(options ...Option) *Engine {
	cfg := &config{
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.registry == nil {
		formatter := locale.Default()
		if cfg.locale != nil {
			formatter = locale.NewFormatter(*cfg.locale)
		}
		cfg.registry = variable.NewRegistry(
			variable.WithFormatter(formatter),
			variable.WithClock(cfg.now),
		)
	}

	renderOpts := []render.Option{render.WithRegistry(cfg.registry)}
	if cfg.sectionsSet {
		renderOpts = append(renderOpts, render.WithSections(cfg.sections...))
	}

	return &Engine{
		logger:      cfg.logger,
		registry:    cfg.registry,
		formatter:   cfg.registry.Formatter(),
		now:         cfg.now,
		validator:   validation.New(validation.WithRegistry(cfg.registry)),
		synthesizer: sample.New(cfg.registry),
		projector:   projection.New(projection.WithClock(cfg.now)),
		renderer:    render.New(renderOpts...),
		exporters:   cfg.exporters,
	}
}

// Registry returns the variable registry shared by every stage.
func (e *Engine) Registry() *variable.Registry {
	return e.registry
}

// Validate reports every issue found in def.
func (e *Engine) Validate(def model.TemplateDefinition) validation.Result {
	result := e.validator.Validate(def)
	e.logger.Debug().
		Str("template_id", def.ID).
		Bool("valid", result.Valid).
		Int("issues", len(result.Issues)).
		Msg("template validated")
	return result
}

// SynthesizeSample binds every declared variable to its default or a
// representative sample.
func (e *Engine) SynthesizeSample(vars []model.VariableDefinition) model.RenderContext {
	return e.synthesizer.Synthesize(vars)
}

// Project maps business records onto the fixed contract binding keys.
func (e *Engine) Project(contract *records.Contract, customer *records.Customer, contractor *records.Contractor) model.RenderContext {
	ctx := e.projector.Project(contract, customer, contractor)
	e.logger.Debug().Int("keys", ctx.Len()).Msg("records projected")
	return ctx
}

// Render substitutes ctx into def. It never fails.
func (e *Engine) Render(def model.TemplateDefinition, ctx model.RenderContext) model.RenderedDocument {
	doc := e.renderer.Render(def, ctx)
	if len(doc.Unresolved) > 0 {
		e.logger.Debug().
			Str("template_id", def.ID).
			Strs("placeholders", doc.Unresolved).
			Msg("undeclared placeholders left in body")
	}
	return doc
}

// Preview renders def against synthesised sample data.
func (e *Engine) Preview(def model.TemplateDefinition) model.RenderedDocument {
	return e.Render(def, e.SynthesizeSample(def.Variables))
}

// Exporters returns the exporter registry, building the default html, text
// and json exporters on first use when none was supplied.
func (e *Engine) Exporters() (*export.Registry, error) {
	e.exportersOnce.Do(func() {
		if e.exporters != nil {
			return
		}
		e.exporters, e.exportersErr = export.NewDefaultRegistry(
			export.WithFormatter(e.formatter),
			export.WithClock(e.now),
		)
	})
	return e.exporters, e.exportersErr
}

// Export converts doc with the named exporter.
func (e *Engine) Export(ctx context.Context, format string, doc model.RenderedDocument, def model.TemplateDefinition) ([]byte, error) {
	exporters, err := e.Exporters()
	if err != nil {
		return nil, fmt.Errorf("doctemplate: exporters: %w", err)
	}
	exporter, err := exporters.Get(format)
	if err != nil {
		return nil, err
	}
	out, err := exporter.Export(ctx, doc, def)
	if err != nil {
		return nil, err
	}
	e.logger.Debug().
		Str("template_id", def.ID).
		Str("format", format).
		Int("bytes", len(out)).
		Msg("document exported")
	return out, nil
}
