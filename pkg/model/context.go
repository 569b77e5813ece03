package model

import (
	"encoding/json"
	"sort"
)

// RenderContext is an immutable binding of variable names to raw values.
// The zero value is an empty context.
type RenderContext struct {
	values map[string]any
}

// NewRenderContext copies the supplied map so later caller mutations do not
// leak into renders.
func NewRenderContext(values map[string]any) RenderContext {
	if len(values) == 0 {
		return RenderContext{}
	}
	copied := make(map[string]any, len(values))
	for key, value := range values {
		copied[key] = value
	}
	return RenderContext{values: copied}
}

// Lookup returns the bound value. Keys bound to nil are reported as absent.
func (c RenderContext) Lookup(name string) (any, bool) {
	value, ok := c.values[name]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// Len reports the number of bindings.
func (c RenderContext) Len() int {
	return len(c.values)
}

// Names returns the bound names sorted alphabetically.
func (c RenderContext) Names() []string {
	names := make([]string, 0, len(c.values))
	for name := range c.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Map returns a copy of the bindings.
func (c RenderContext) Map() map[string]any {
	out := make(map[string]any, len(c.values))
	for key, value := range c.values {
		out[key] = value
	}
	return out
}

// With returns a new context with the additional binding applied.
func (c RenderContext) With(name string, value any) RenderContext {
	next := c.Map()
	next[name] = value
	return RenderContext{values: next}
}

// Merge returns a new context where bindings from other override c.
func (c RenderContext) Merge(other RenderContext) RenderContext {
	next := c.Map()
	for key, value := range other.values {
		next[key] = value
	}
	return RenderContext{values: next}
}

// MarshalJSON encodes the bindings as a plain JSON object.
func (c RenderContext) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Map())
}

// UnmarshalJSON decodes a JSON object into a fresh binding set.
func (c *RenderContext) UnmarshalJSON(data []byte) error {
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*c = NewRenderContext(values)
	return nil
}
