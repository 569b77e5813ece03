package export

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-doctemplate/pkg/model"
)

// JSONExporter emits the rendered document together with the identifying
// template metadata and effective page settings.
type JSONExporter struct{}

// NewJSON returns the JSON exporter.
func NewJSON() *JSONExporter { return &JSONExporter{} }

func (*JSONExporter) Name() string        { return "json" }
func (*JSONExporter) ContentType() string { return "application/json" }

type jsonPayload struct {
	Template jsonTemplate           `json:"template"`
	Document model.RenderedDocument `json:"document"`
}

type jsonTemplate struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name"`
	Category model.Category `json:"category"`
	Settings model.Settings `json:"settings"`
}

func (*JSONExporter) Export(ctx context.Context, doc model.RenderedDocument, def model.TemplateDefinition) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload := jsonPayload{
		Template: jsonTemplate{
			ID:       def.ID,
			Name:     def.Name,
			Category: def.Category,
			Settings: def.EffectiveSettings(),
		},
		Document: doc,
	}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshal json: %w", err)
	}
	return append(out, '\n'), nil
}
