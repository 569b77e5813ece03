// Package model defines the declarative document template types shared by
// the validator, the sample synthesizer, the projector and the renderer.
// A TemplateDefinition carries a body with `{{name}}` placeholders and an
// ordered list of typed VariableDefinitions; Settings are only consumed by
// exporters. RenderContext is the immutable name to raw value binding set
// handed to rendering and RenderedDocument is its output.
package model
