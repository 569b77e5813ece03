package export

import (
	"context"

	"github.com/goliatone/go-doctemplate/pkg/model"
)

// TextExporter strips markup, keeping one line per block element.
type TextExporter struct{}

// NewText returns the plain text exporter.
func NewText() *TextExporter { return &TextExporter{} }

func (*TextExporter) Name() string        { return "text" }
func (*TextExporter) ContentType() string { return "text/plain; charset=utf-8" }

func (*TextExporter) Export(ctx context.Context, doc model.RenderedDocument, _ model.TemplateDefinition) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(PlainText(doc.Body) + "\n"), nil
}
