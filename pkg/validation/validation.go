package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-doctemplate/pkg/model"
	"github.com/goliatone/go-doctemplate/pkg/variable"
)

// Issue codes let callers branch on a failure without parsing messages.
const (
	CodeRequired       = "required"
	CodeLength         = "length"
	CodeRange          = "range"
	CodeUnknown        = "unknown"
	CodeIdentifier     = "identifier"
	CodeDuplicate      = "duplicate"
	CodeInconsistent   = "inconsistent"
	CodeInvalidPattern = "invalid_pattern"
	CodeInvalidDefault = "invalid_default"
)

const (
	nameMinLength        = 2
	nameMaxLength        = 200
	descriptionMaxLength = 1000
	notesMaxLength       = 1000

	variableLabelMaxLength       = 100
	variableDescriptionMaxLength = 500
)

// identifierPattern is the variable name syntax. Names that pass it never
// contain regular-expression or placeholder metacharacters.
var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Issue is a single field-scoped validation failure.
type Issue struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result captures the outcome of validating a template definition. Issues
// are ordered by check phase: metadata, variables, then cross-field checks.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Err returns nil for a valid result and an *Error otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &Error{Issues: append([]Issue(nil), r.Issues...)}
}

// Paths returns the issue paths in order.
func (r Result) Paths() []string {
	paths := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		paths = append(paths, issue.Path)
	}
	return paths
}

// Error adapts a failed Result to the error interface.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "validation: template is invalid"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Path+": "+issue.Message)
	}
	return fmt.Sprintf("validation: %d issue(s): %s", len(e.Issues), strings.Join(parts, "; "))
}

// Option configures a Validator.
type Option func(*Validator)

// WithRegistry validates variable types against a custom registry.
func WithRegistry(reg *variable.Registry) Option {
	return func(v *Validator) {
		if reg != nil {
			v.registry = reg
		}
	}
}

// Validator checks the structural invariants of template definitions. It
// never mutates its input and holds no per-call state.
type Validator struct {
	registry *variable.Registry
}

// New constructs a Validator backed by the default registry unless
// overridden.
func New(options ...Option) *Validator {
	v := &Validator{registry: variable.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// Validate runs every check against def using the default registry.
func Validate(def model.TemplateDefinition) Result {
	return New().Validate(def)
}

// Validate runs every check and collects all failures.
func (v *Validator) Validate(def model.TemplateDefinition) Result {
	c := &collector{}

	v.checkMetadata(c, def)
	v.checkVariables(c, def.Variables)
	v.checkDefaults(c, def.Variables)

	return Result{Valid: len(c.issues) == 0, Issues: c.issues}
}

type collector struct {
	issues []Issue
}

func (c *collector) add(path, code, format string, args ...any) {
	c.issues = append(c.issues, Issue{Path: path, Code: code, Message: fmt.Sprintf(format, args...)})
}

func (v *Validator) checkMetadata(c *collector, def model.TemplateDefinition) {
	name := strings.TrimSpace(def.Name)
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		c.add("name", CodeRequired, "template name is required")
	case n < nameMinLength:
		c.add("name", CodeLength, "template name must be at least %d characters", nameMinLength)
	case n > nameMaxLength:
		c.add("name", CodeLength, "template name must be at most %d characters", nameMaxLength)
	}

	if utf8.RuneCountInString(def.Description) > descriptionMaxLength {
		c.add("description", CodeLength, "description must be at most %d characters", descriptionMaxLength)
	}

	switch {
	case def.Category == "":
		c.add("category", CodeRequired, "template category is required")
	case !def.Category.Valid():
		c.add("category", CodeUnknown, "unknown template category %q", def.Category)
	}

	if utf8.RuneCountInString(def.Notes) > notesMaxLength {
		c.add("notes", CodeLength, "notes must be at most %d characters", notesMaxLength)
	}

	if def.Settings != nil {
		checkSettings(c, *def.Settings)
	}
}

func checkSettings(c *collector, s model.Settings) {
	switch s.PageSize {
	case model.PageSizeA4, model.PageSizeA3, model.PageSizeLetter, model.PageSizeLegal:
	default:
		c.add("settings.pageSize", CodeUnknown, "unknown page size %q", s.PageSize)
	}
	switch s.Orientation {
	case model.OrientationPortrait, model.OrientationLandscape:
	default:
		c.add("settings.orientation", CodeUnknown, "unknown orientation %q", s.Orientation)
	}

	margins := []struct {
		path  string
		value float64
	}{
		{"settings.margins.top", s.Margins.Top},
		{"settings.margins.right", s.Margins.Right},
		{"settings.margins.bottom", s.Margins.Bottom},
		{"settings.margins.left", s.Margins.Left},
	}
	for _, margin := range margins {
		if margin.value < 0 || margin.value > 100 {
			c.add(margin.path, CodeRange, "margin must be between 0 and 100")
		}
	}

	if s.FontSize < 8 || s.FontSize > 72 {
		c.add("settings.fontSize", CodeRange, "font size must be between 8 and 72")
	}

	if wm := s.Watermark; wm != nil {
		if wm.Opacity < 0 || wm.Opacity > 1 {
			c.add("settings.watermark.opacity", CodeRange, "watermark opacity must be between 0 and 1")
		}
		if wm.Rotation < -180 || wm.Rotation > 180 {
			c.add("settings.watermark.rotation", CodeRange, "watermark rotation must be between -180 and 180")
		}
	}
}

func (v *Validator) checkVariables(c *collector, vars []model.VariableDefinition) {
	seen := make(map[string]int, len(vars))

	for idx, vd := range vars {
		base := fmt.Sprintf("variables[%d]", idx)

		name := vd.Name
		switch {
		case strings.TrimSpace(name) == "":
			c.add(base+".name", CodeRequired, "variable name is required")
		case !identifierPattern.MatchString(name):
			c.add(base+".name", CodeIdentifier, "variable name %q must start with a letter and contain only letters, digits and _", name)
		}
		if name != "" {
			key := strings.ToLower(name)
			if first, dup := seen[key]; dup {
				c.add(base+".name", CodeDuplicate, "duplicate variable name %q (already declared by variables[%d])", name, first)
			} else {
				seen[key] = idx
			}
		}

		switch n := utf8.RuneCountInString(strings.TrimSpace(vd.Label)); {
		case n == 0:
			c.add(base+".label", CodeRequired, "variable label is required")
		case n > variableLabelMaxLength:
			c.add(base+".label", CodeLength, "variable label must be at most %d characters", variableLabelMaxLength)
		}

		switch {
		case vd.Type == "":
			c.add(base+".type", CodeRequired, "variable type is required")
		case !v.registry.Has(vd.Type):
			c.add(base+".type", CodeUnknown, "unknown variable type %q", vd.Type)
		}

		if utf8.RuneCountInString(vd.Description) > variableDescriptionMaxLength {
			c.add(base+".description", CodeLength, "variable description must be at most %d characters", variableDescriptionMaxLength)
		}

		if vd.Validation != nil {
			checkConstraints(c, base+".validation", *vd.Validation)
		}
	}
}

func checkConstraints(c *collector, base string, cons model.Constraints) {
	if cons.MinLength != nil && *cons.MinLength < 0 {
		c.add(base+"."+model.ConstraintMinLength, CodeRange, "minLength must not be negative")
	}
	if cons.MaxLength != nil && *cons.MaxLength < 0 {
		c.add(base+"."+model.ConstraintMaxLength, CodeRange, "maxLength must not be negative")
	}
	if cons.MinLength != nil && cons.MaxLength != nil && *cons.MinLength > *cons.MaxLength {
		c.add(base+"."+model.ConstraintMinLength, CodeInconsistent, "minLength %d exceeds maxLength %d", *cons.MinLength, *cons.MaxLength)
	}
	if cons.Min != nil && cons.Max != nil && *cons.Min > *cons.Max {
		c.add(base+"."+model.ConstraintMin, CodeInconsistent, "min %v exceeds max %v", *cons.Min, *cons.Max)
	}
	if cons.Pattern != "" {
		if _, err := regexp.Compile(cons.Pattern); err != nil {
			c.add(base+"."+model.ConstraintPattern, CodeInvalidPattern, "pattern does not compile: %v", err)
		}
	}
}

func (v *Validator) checkDefaults(c *collector, vars []model.VariableDefinition) {
	for idx, vd := range vars {
		if !vd.HasDefault() {
			continue
		}
		path := fmt.Sprintf("variables[%d].defaultValue", idx)
		switch vd.Type {
		case model.VariableTypeNumber, model.VariableTypeCurrency:
			if _, err := v.registry.Coerce(vd.Type, vd.DefaultValue); err != nil {
				c.add(path, CodeInvalidDefault, "default value %v is not a number", vd.DefaultValue)
			}
		case model.VariableTypeDate:
			if _, err := v.registry.Coerce(vd.Type, vd.DefaultValue); err != nil {
				c.add(path, CodeInvalidDefault, "default value %v is not a date", vd.DefaultValue)
			}
		}
	}
}
