// Package prompt collects variable values interactively, one question per
// declared variable, using the variable type to pick the question kind.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-doctemplate/pkg/model"
	"github.com/goliatone/go-doctemplate/pkg/variable"
)

// Option configures a Collector.
type Option func(*Collector)

// WithValues prefills answers, e.g. with projected record data. Prefilled
// values become the prompt defaults.
func WithValues(values model.RenderContext) Option {
	return func(c *Collector) {
		c.prefill = values
	}
}

// WithRegistry overrides the registry used to format defaults.
func WithRegistry(reg *variable.Registry) Option {
	return func(c *Collector) {
		if reg != nil {
			c.registry = reg
		}
	}
}

// Collector asks for a value per variable through a Driver.
type Collector struct {
	driver   Driver
	registry *variable.Registry
	prefill  model.RenderContext
}

// New returns a Collector using driver.
func New(driver Driver, options ...Option) *Collector {
	c := &Collector{
		driver:   driver,
		registry: variable.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Collect returns a binding for every answered variable. Blank optional
// answers are left unbound so the declared default still applies at render.
func (c *Collector) Collect(ctx context.Context, def model.TemplateDefinition) (model.RenderContext, error) {
	if c.driver == nil {
		return model.RenderContext{}, errors.New("prompt: driver is required")
	}
	if def.Name != "" {
		if err := c.driver.Announce(ctx, def.Name); err != nil {
			return model.RenderContext{}, err
		}
	}

	values := make(map[string]any, len(def.Variables))
	asked := make(map[string]struct{}, len(def.Variables))
	for _, vd := range def.Variables {
		if vd.Name == "" {
			continue
		}
		if _, dup := asked[vd.Name]; dup {
			continue
		}
		asked[vd.Name] = struct{}{}

		q := c.question(vd)
		answer, err := c.driver.Ask(ctx, q)
		if err != nil {
			return model.RenderContext{}, fmt.Errorf("prompt: %s: %w", vd.Name, err)
		}
		value, ok, err := answerValue(q, answer)
		if err != nil {
			return model.RenderContext{}, fmt.Errorf("prompt: %s: %w", vd.Name, err)
		}
		if ok {
			values[vd.Name] = value
		}
	}
	return c.prefill.Merge(model.NewRenderContext(values)), nil
}

// question picks the question kind from the variable: booleans confirm,
// variables with options choose, tables take several lines.
func (c *Collector) question(vd model.VariableDefinition) Question {
	current, hasCurrent := c.current(vd)
	q := Question{
		Kind:    KindLine,
		Name:    vd.Name,
		Message: questionFor(vd),
		Help:    vd.Description,
		Default: defaultText(current, hasCurrent),
	}

	switch {
	case vd.Type == model.VariableTypeBoolean:
		q.Kind = KindConfirm
		q.Default = strconv.FormatBool(hasCurrent && variable.Truthy(variable.FromAny(current)))
	case len(vd.Options) > 0:
		q.Kind = KindChoice
		q.Options = vd.Options
		if !slices.Contains(vd.Options, q.Default) {
			q.Default = vd.Options[0]
		}
	case vd.Type == model.VariableTypeTable:
		q.Kind = KindMultiline
		q.Help = helpWith(vd.Description, "JSON array of rows")
	default:
		q.Validate = c.validatorFor(vd, hasCurrent)
	}
	return q
}

func answerValue(q Question, answer string) (any, bool, error) {
	switch q.Kind {
	case KindConfirm:
		yes, err := strconv.ParseBool(strings.TrimSpace(answer))
		if err != nil {
			return nil, false, fmt.Errorf("confirm answer %q: %w", answer, err)
		}
		return yes, true, nil
	case KindChoice:
		if !slices.Contains(q.Options, answer) {
			return nil, false, fmt.Errorf("%q is not one of the options", answer)
		}
		return answer, true, nil
	default:
		answer = strings.TrimSpace(answer)
		return answer, answer != "", nil
	}
}

// current is the prefilled binding, falling back to the declared default.
func (c *Collector) current(vd model.VariableDefinition) (any, bool) {
	if value, ok := c.prefill.Lookup(vd.Name); ok {
		return value, true
	}
	if vd.HasDefault() {
		return vd.DefaultValue, true
	}
	return nil, false
}

func (c *Collector) validatorFor(vd model.VariableDefinition, hasDefault bool) func(string) error {
	return func(answer string) error {
		answer = strings.TrimSpace(answer)
		if answer == "" {
			if vd.Required && !hasDefault {
				return errors.New("a value is required")
			}
			return nil
		}
		switch vd.Type {
		case model.VariableTypeNumber, model.VariableTypeCurrency, model.VariableTypeDate:
			if _, err := c.registry.Coerce(vd.Type, answer); err != nil {
				return err
			}
		}
		if cons := vd.Validation; cons != nil {
			n := len([]rune(answer))
			if cons.MinLength != nil && n < *cons.MinLength {
				return fmt.Errorf("at least %d characters", *cons.MinLength)
			}
			if cons.MaxLength != nil && n > *cons.MaxLength {
				return fmt.Errorf("at most %d characters", *cons.MaxLength)
			}
		}
		return nil
	}
}

func questionFor(vd model.VariableDefinition) string {
	label := vd.Label
	if label == "" {
		label = vd.Name
	}
	message := fmt.Sprintf("%s (%s)", label, vd.Type.Label())
	if vd.Required {
		message += " *"
	}
	return message
}

func helpWith(help, hint string) string {
	if help == "" {
		return hint
	}
	return help + " (" + hint + ")"
}

func defaultText(value any, ok bool) string {
	if !ok {
		return ""
	}
	return variable.FromAny(value).String()
}
