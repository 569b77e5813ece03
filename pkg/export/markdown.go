package export

import (
	"context"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"

	"github.com/goliatone/go-doctemplate/pkg/model"
)

// MarkdownExporter converts the sanitised body to GitHub flavoured Markdown
// under a level one heading with the template name.
type MarkdownExporter struct {
	converter *md.Converter
}

// NewMarkdown returns the markdown exporter.
func NewMarkdown() *MarkdownExporter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &MarkdownExporter{converter: converter}
}

func (*MarkdownExporter) Name() string        { return "markdown" }
func (*MarkdownExporter) ContentType() string { return "text/markdown; charset=utf-8" }

func (e *MarkdownExporter) Export(ctx context.Context, doc model.RenderedDocument, def model.TemplateDefinition) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := e.converter.ConvertString(SanitizeBody(doc.Body))
	if err != nil {
		return nil, fmt.Errorf("export: convert markdown: %w", err)
	}

	var b strings.Builder
	if title := strings.TrimSpace(def.Name); title != "" {
		b.WriteString("# ")
		b.WriteString(title)
		b.WriteString("\n\n")
	}
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n")
	return []byte(b.String()), nil
}
