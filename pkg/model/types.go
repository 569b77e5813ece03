package model

import "time"

// VariableType is the closed enumeration of template variable kinds.
type VariableType string

const (
	VariableTypeText      VariableType = "text"
	VariableTypeNumber    VariableType = "number"
	VariableTypeDate      VariableType = "date"
	VariableTypeCurrency  VariableType = "currency"
	VariableTypeBoolean   VariableType = "boolean"
	VariableTypeImage     VariableType = "image"
	VariableTypeTable     VariableType = "table"
	VariableTypeSignature VariableType = "signature"
	VariableTypeBarcode   VariableType = "barcode"
	VariableTypeQRCode    VariableType = "qrcode"
)

// VariableTypes lists every built-in variable type in declaration order.
func VariableTypes() []VariableType {
	return []VariableType{
		VariableTypeText,
		VariableTypeNumber,
		VariableTypeDate,
		VariableTypeCurrency,
		VariableTypeBoolean,
		VariableTypeImage,
		VariableTypeTable,
		VariableTypeSignature,
		VariableTypeBarcode,
		VariableTypeQRCode,
	}
}

// Category is the closed enumeration of template categories.
type Category string

const (
	CategoryContract   Category = "contract"
	CategoryPayment    Category = "payment"
	CategoryDelivery   Category = "delivery"
	CategoryCompletion Category = "completion"
	CategoryProgress   Category = "progress"
	CategoryMemo       Category = "memo"
	CategoryInvoice    Category = "invoice"
	CategoryReceipt    Category = "receipt"
	CategoryQuotation  Category = "quotation"
	CategoryOther      Category = "other"
)

// Categories lists every template category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryContract,
		CategoryPayment,
		CategoryDelivery,
		CategoryCompletion,
		CategoryProgress,
		CategoryMemo,
		CategoryInvoice,
		CategoryReceipt,
		CategoryQuotation,
		CategoryOther,
	}
}

// Valid reports whether the category belongs to the closed enumeration.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

const (
	ConstraintMin       = "min"
	ConstraintMax       = "max"
	ConstraintMinLength = "minLength"
	ConstraintMaxLength = "maxLength"
	ConstraintPattern   = "pattern"
	ConstraintFormat    = "format"
)

// Constraints holds the optional per-variable validation bounds. Pointer
// fields distinguish "unset" from a zero bound so min/max consistency can
// only be checked when both ends are present.
type Constraints struct {
	MinLength *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	// Format names a well-known shape such as "email", "phone" or "url".
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// VariableDefinition is one named, typed slot declared by a template.
type VariableDefinition struct {
	ID           string       `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string       `json:"name" yaml:"name"`
	Label        string       `json:"label" yaml:"label"`
	Type         VariableType `json:"type" yaml:"type"`
	Required     bool         `json:"required" yaml:"required"`
	DefaultValue any          `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Options      []string     `json:"options,omitempty" yaml:"options,omitempty"`
	Validation   *Constraints `json:"validation,omitempty" yaml:"validation,omitempty"`
	Description  string       `json:"description,omitempty" yaml:"description,omitempty"`
}

// HasDefault reports whether a default value was declared.
func (v VariableDefinition) HasDefault() bool {
	return v.DefaultValue != nil
}

// Margins are page margins in millimetres.
type Margins struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// Watermark configures an optional diagonal text overlay.
type Watermark struct {
	Enabled  bool    `json:"enabled" yaml:"enabled"`
	Text     string  `json:"text,omitempty" yaml:"text,omitempty"`
	Opacity  float64 `json:"opacity" yaml:"opacity"`
	Rotation float64 `json:"rotation" yaml:"rotation"`
}

const (
	PageSizeA4     = "A4"
	PageSizeA3     = "A3"
	PageSizeLetter = "Letter"
	PageSizeLegal  = "Legal"

	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Settings are layout hints consumed by exporters only.
type Settings struct {
	PageSize    string     `json:"pageSize" yaml:"pageSize"`
	Orientation string     `json:"orientation" yaml:"orientation"`
	Margins     Margins    `json:"margins" yaml:"margins"`
	FontSize    float64    `json:"fontSize" yaml:"fontSize"`
	FontFamily  string     `json:"fontFamily" yaml:"fontFamily"`
	Watermark   *Watermark `json:"watermark,omitempty" yaml:"watermark,omitempty"`
}

// DefaultSettings mirrors the defaults applied when a template omits its
// layout configuration.
func DefaultSettings() Settings {
	return Settings{
		PageSize:    PageSizeA4,
		Orientation: OrientationPortrait,
		Margins:     Margins{Top: 20, Right: 20, Bottom: 20, Left: 20},
		FontSize:    12,
		FontFamily:  "NotoSansThai",
	}
}

// TemplateDefinition is the declarative description of a document template.
type TemplateDefinition struct {
	ID          string               `json:"id" yaml:"id"`
	Name        string               `json:"name" yaml:"name"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Category    Category             `json:"category" yaml:"category"`
	Body        string               `json:"body" yaml:"body"`
	Variables   []VariableDefinition `json:"variables" yaml:"variables"`
	Settings    *Settings            `json:"settings,omitempty" yaml:"settings,omitempty"`
	IsActive    bool                 `json:"isActive" yaml:"isActive"`
	Tags        []string             `json:"tags,omitempty" yaml:"tags,omitempty"`
	Notes       string               `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt   time.Time            `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" yaml:"updatedAt"`
}

// Variable returns the declared variable with the exact supplied name.
func (t TemplateDefinition) Variable(name string) (VariableDefinition, bool) {
	for _, variable := range t.Variables {
		if variable.Name == name {
			return variable, true
		}
	}
	return VariableDefinition{}, false
}

// EffectiveSettings returns the template settings or the defaults when none
// were declared.
func (t TemplateDefinition) EffectiveSettings() Settings {
	if t.Settings == nil {
		return DefaultSettings()
	}
	return *t.Settings
}

// RenderedDocument is the output of substitution: the final body plus the
// echoed category. Unresolved lists placeholder names found in the body that
// the template does not declare; they are passed through untouched.
type RenderedDocument struct {
	Body       string   `json:"body"`
	Category   Category `json:"category"`
	Unresolved []string `json:"unresolved,omitempty"`
}
