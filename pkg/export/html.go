package export

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/goliatone/go-doctemplate/pkg/locale"
	"github.com/goliatone/go-doctemplate/pkg/model"
	"github.com/goliatone/go-doctemplate/pkg/render/template"
	"github.com/goliatone/go-doctemplate/pkg/render/template/pongo"
)

//go:embed layouts/*.tpl
var embeddedLayouts embed.FS

const defaultLayout = "document"

// HTMLOption configures the html exporter.
type HTMLOption func(*HTMLExporter)

// WithLayoutRenderer swaps the layout engine, e.g. for one that loads
// layouts from disk.
func WithLayoutRenderer(renderer template.LayoutRenderer) HTMLOption {
	return func(e *HTMLExporter) {
		if renderer != nil {
			e.renderer = renderer
		}
	}
}

// WithLayout selects the layout rendered by the template engine.
func WithLayout(name string) HTMLOption {
	return func(e *HTMLExporter) {
		if name != "" {
			e.layout = name
		}
	}
}

// WithFormatter sets the locale used for the print date and labels.
func WithFormatter(f *locale.Formatter) HTMLOption {
	return func(e *HTMLExporter) {
		if f != nil {
			e.formatter = f
		}
	}
}

// WithClock overrides the clock used for the print date.
func WithClock(now func() time.Time) HTMLOption {
	return func(e *HTMLExporter) {
		if now != nil {
			e.now = now
		}
	}
}

// HTMLExporter wraps a sanitised body in a printable HTML page whose @page
// rules come from the template settings.
type HTMLExporter struct {
	renderer  template.LayoutRenderer
	layout    string
	formatter *locale.Formatter
	now       func() time.Time
}

// NewHTML builds the exporter with the embedded layout unless another
// renderer is supplied.
func NewHTML(options ...HTMLOption) (*HTMLExporter, error) {
	e := &HTMLExporter{
		layout:    defaultLayout,
		formatter: locale.Default(),
		now:       time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.renderer == nil {
		layouts, err := fs.Sub(embeddedLayouts, "layouts")
		if err != nil {
			return nil, fmt.Errorf("export: layouts: %w", err)
		}
		engine, err := pongo.New(layouts)
		if err != nil {
			return nil, fmt.Errorf("export: layout engine: %w", err)
		}
		e.renderer = engine
	}

	loc := e.formatter.Locale()
	e.renderer.SetGlobals(map[string]any{
		"lang":         loc.Tag.String(),
		"printedLabel": loc.PrintedLabel,
	})
	return e, nil
}

func (e *HTMLExporter) Name() string        { return "html" }
func (e *HTMLExporter) ContentType() string { return "text/html; charset=utf-8" }

// Export renders the page layout around doc.
func (e *HTMLExporter) Export(ctx context.Context, doc model.RenderedDocument, def model.TemplateDefinition) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := e.renderer.RenderLayout(e.layout, e.layoutData(doc, def))
	if err != nil {
		return nil, fmt.Errorf("export: render html: %w", err)
	}
	return []byte(out), nil
}

type pageData struct {
	Size       string `json:"size"`
	Margin     string `json:"margin"`
	FontFamily string `json:"fontFamily"`
	FontSize   string `json:"fontSize"`
}

type watermarkData struct {
	Text     string `json:"text"`
	Opacity  string `json:"opacity"`
	Rotation string `json:"rotation"`
}

type layoutData struct {
	Title     string         `json:"title"`
	Category  string         `json:"category"`
	PrintDate string         `json:"printDate"`
	Page      pageData       `json:"page"`
	Watermark *watermarkData `json:"watermark,omitempty"`
	Body      string         `json:"body"`
}

func (e *HTMLExporter) layoutData(doc model.RenderedDocument, def model.TemplateDefinition) layoutData {
	settings := def.EffectiveSettings()

	category := doc.Category
	if category == "" {
		category = def.Category
	}

	data := layoutData{
		Title:     def.Name,
		Category:  category.Label(),
		PrintDate: e.formatter.LongDate(e.now()),
		Page: pageData{
			Size: settings.PageSize + " " + settings.Orientation,
			Margin: fmt.Sprintf("%smm %smm %smm %smm",
				num(settings.Margins.Top), num(settings.Margins.Right),
				num(settings.Margins.Bottom), num(settings.Margins.Left)),
			FontFamily: settings.FontFamily,
			FontSize:   num(settings.FontSize) + "pt",
		},
		Body: SanitizeBody(doc.Body),
	}
	if wm := settings.Watermark; wm != nil && wm.Enabled && wm.Text != "" {
		data.Watermark = &watermarkData{
			Text:     wm.Text,
			Opacity:  num(wm.Opacity),
			Rotation: num(wm.Rotation),
		}
	}
	return data
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
