package render

import "github.com/goliatone/go-doctemplate/pkg/variable"

// Option configures a Renderer.
type Option func(*Renderer)

// WithRegistry overrides the variable registry used to format values.
func WithRegistry(reg *variable.Registry) Option {
	return func(r *Renderer) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// WithSections replaces the trailing sections. Passing none disables them.
func WithSections(sections ...Section) Option {
	return func(r *Renderer) {
		r.sections = append([]Section(nil), sections...)
	}
}
