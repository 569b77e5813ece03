package model

import "strings"

// Decorator enriches a template definition after it has been decoded, before
// it is validated or stored.
type Decorator interface {
	Decorate(*TemplateDefinition) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*TemplateDefinition) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(def *TemplateDefinition) error {
	return fn(def)
}

// ApplyDefaults fills omitted layout settings and trims surrounding
// whitespace from identifiers. Variable names keep their case so placeholder
// matching stays exact.
var ApplyDefaults = DecoratorFunc(func(def *TemplateDefinition) error {
	if def == nil {
		return nil
	}
	def.Name = strings.TrimSpace(def.Name)
	def.Category = Category(strings.ToLower(strings.TrimSpace(string(def.Category))))
	if def.Settings == nil {
		settings := DefaultSettings()
		def.Settings = &settings
	} else {
		defaults := DefaultSettings()
		if def.Settings.PageSize == "" {
			def.Settings.PageSize = defaults.PageSize
		}
		if def.Settings.Orientation == "" {
			def.Settings.Orientation = defaults.Orientation
		}
		if def.Settings.FontSize == 0 {
			def.Settings.FontSize = defaults.FontSize
		}
		if def.Settings.FontFamily == "" {
			def.Settings.FontFamily = defaults.FontFamily
		}
	}
	for i := range def.Variables {
		def.Variables[i].Name = strings.TrimSpace(def.Variables[i].Name)
		def.Variables[i].Type = VariableType(strings.ToLower(strings.TrimSpace(string(def.Variables[i].Type))))
	}
	return nil
})

// Decorate applies each decorator in order, stopping at the first error.
func Decorate(def *TemplateDefinition, decorators ...Decorator) error {
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(def); err != nil {
			return err
		}
	}
	return nil
}
