package variable

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-doctemplate/pkg/locale"
	"github.com/goliatone/go-doctemplate/pkg/model"
)

// ErrNotCoercible reports that a raw value cannot be converted to the
// variable type's canonical value.
var ErrNotCoercible = errors.New("variable: value is not coercible")

// FormatFunc renders a value for display. It must never panic and should
// degrade to a safe default for values it cannot interpret.
type FormatFunc func(f *locale.Formatter, v Value) string

// CoerceFunc converts a value into the type's canonical variant.
type CoerceFunc func(v Value) (Value, error)

// SampleFunc produces a representative value for previews.
type SampleFunc func(label string, now time.Time) any

// Kind bundles the capabilities of one variable type.
type Kind struct {
	Type   model.VariableType
	Format FormatFunc
	Coerce CoerceFunc
	Sample SampleFunc
}

// Option configures a Registry.
type Option func(*Registry)

// WithFormatter overrides the locale formatter (Thai by default).
func WithFormatter(f *locale.Formatter) Option {
	return func(r *Registry) {
		if f != nil {
			r.formatter = f
		}
	}
}

// WithClock overrides the clock used by sample generators.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// Registry maps variable types to their format/coerce/sample capabilities.
// Built-in kinds are registered on construction; additional types are added
// with Register rather than by extending a switch.
type Registry struct {
	mu        sync.RWMutex
	kinds     map[model.VariableType]Kind
	formatter *locale.Formatter
	now       func() time.Time
}

// NewRegistry creates a registry with every built-in kind registered.
func NewRegistry(options ...Option) *Registry {
	r := &Registry{
		kinds:     make(map[model.VariableType]Kind),
		formatter: locale.Default(),
		now:       time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	for _, kind := range builtinKinds() {
		r.MustRegister(kind)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns a shared registry with the built-in kinds and the Thai
// formatter.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds a kind. Duplicate types return an error.
func (r *Registry) Register(kind Kind) error {
	if kind.Type == "" {
		return fmt.Errorf("variable: kind type is required")
	}
	if kind.Format == nil {
		return fmt.Errorf("variable: kind %q requires a format function", kind.Type)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.kinds[kind.Type]; exists {
		return fmt.Errorf("variable: kind %q already registered", kind.Type)
	}
	r.kinds[kind.Type] = kind
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(kind Kind) {
	if err := r.Register(kind); err != nil {
		panic(err)
	}
}

// Lookup retrieves the kind for a type.
func (r *Registry) Lookup(t model.VariableType) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kind, ok := r.kinds[t]
	return kind, ok
}

// Has reports whether a type is registered.
func (r *Registry) Has(t model.VariableType) bool {
	_, ok := r.Lookup(t)
	return ok
}

// Types returns the registered types sorted by name.
func (r *Registry) Types() []model.VariableType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]model.VariableType, 0, len(r.kinds))
	for t := range r.kinds {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Formatter returns the locale formatter used by Format.
func (r *Registry) Formatter() *locale.Formatter {
	return r.formatter
}

// Format renders raw for display according to t. Unknown types render the
// value's plain string form. Format never fails.
func (r *Registry) Format(t model.VariableType, raw any) string {
	value := FromAny(raw)
	kind, ok := r.Lookup(t)
	if !ok {
		return value.String()
	}
	return kind.Format(r.formatter, value)
}

// Coerce converts raw into the canonical value for t, reporting
// ErrNotCoercible when it cannot.
func (r *Registry) Coerce(t model.VariableType, raw any) (Value, error) {
	kind, ok := r.Lookup(t)
	if !ok {
		return nil, fmt.Errorf("variable: unknown type %q", t)
	}
	value := FromAny(raw)
	if kind.Coerce == nil {
		return value, nil
	}
	return kind.Coerce(value)
}

// Sample returns a representative value for previews. Unknown types yield an
// empty string.
func (r *Registry) Sample(t model.VariableType, label string) any {
	kind, ok := r.Lookup(t)
	if !ok || kind.Sample == nil {
		return ""
	}
	return kind.Sample(label, r.now())
}
