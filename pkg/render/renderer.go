package render

import (
	"strings"

	"github.com/goliatone/go-doctemplate/pkg/model"
	"github.com/goliatone/go-doctemplate/pkg/variable"
)

// Renderer substitutes formatted variable values into a template body and
// appends the trailing sections that apply to the template's category.
type Renderer struct {
	registry *variable.Registry
	sections []Section
}

// New constructs a Renderer backed by the default registry and the signature
// section.
func New(options ...Option) *Renderer {
	r := &Renderer{
		registry: variable.Default(),
		sections: []Section{SignatureSection},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Render never fails. Missing bindings fall back to the declared default and
// then to an empty value, which each type formats in its own way.
func (r *Renderer) Render(def model.TemplateDefinition, ctx model.RenderContext) model.RenderedDocument {
	body, unresolved := Substitute(def.Body, r.DisplayValues(def, ctx))

	if trailer := r.trailer(def.Category); trailer != "" {
		body += "\n" + trailer
	}

	return model.RenderedDocument{
		Body:       body,
		Category:   def.Category,
		Unresolved: unresolved,
	}
}

// DisplayValues formats the binding for every declared variable. When a name
// is declared twice the first declaration wins.
func (r *Renderer) DisplayValues(def model.TemplateDefinition, ctx model.RenderContext) map[string]string {
	display := make(map[string]string, len(def.Variables))
	for _, vd := range def.Variables {
		if vd.Name == "" {
			continue
		}
		if _, exists := display[vd.Name]; exists {
			continue
		}
		raw, ok := ctx.Lookup(vd.Name)
		if !ok {
			raw = ""
			if vd.HasDefault() {
				raw = vd.DefaultValue
			}
		}
		display[vd.Name] = r.registry.Format(vd.Type, raw)
	}
	return display
}

func (r *Renderer) trailer(category model.Category) string {
	var parts []string
	for _, section := range r.sections {
		if section.AppliesTo(category) {
			parts = append(parts, section.Content)
		}
	}
	return strings.Join(parts, "\n")
}

// Render renders def with the package default renderer.
func Render(def model.TemplateDefinition, ctx model.RenderContext) model.RenderedDocument {
	return New().Render(def, ctx)
}
