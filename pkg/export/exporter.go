package export

import (
	"context"

	"github.com/goliatone/go-doctemplate/pkg/model"
)

// Exporter converts a rendered document into bytes (HTML, text, JSON...).
type Exporter interface {
	Name() string
	ContentType() string
	Export(ctx context.Context, doc model.RenderedDocument, def model.TemplateDefinition) ([]byte, error)
}
