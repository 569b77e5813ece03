// Package sample synthesizes representative bindings for previewing a
// template before real data exists.
package sample

import (
	"github.com/goliatone/go-doctemplate/pkg/model"
	"github.com/goliatone/go-doctemplate/pkg/variable"
)

// Synthesizer produces a binding for every declared variable.
type Synthesizer struct {
	registry *variable.Registry
}

// New returns a Synthesizer backed by reg, or the default registry when reg
// is nil.
func New(reg *variable.Registry) *Synthesizer {
	if reg == nil {
		reg = variable.Default()
	}
	return &Synthesizer{registry: reg}
}

// Synthesize uses the default registry.
func Synthesize(vars []model.VariableDefinition) model.RenderContext {
	return New(nil).Synthesize(vars)
}

// Synthesize binds each variable to its declared default when present and to
// the registry's sample value otherwise. Variables with an empty name are
// skipped since they can never match a placeholder.
func (s *Synthesizer) Synthesize(vars []model.VariableDefinition) model.RenderContext {
	values := make(map[string]any, len(vars))
	for _, vd := range vars {
		if vd.Name == "" {
			continue
		}
		if vd.HasDefault() {
			values[vd.Name] = vd.DefaultValue
			continue
		}
		values[vd.Name] = s.registry.Sample(vd.Type, vd.Label)
	}
	return model.NewRenderContext(values)
}
