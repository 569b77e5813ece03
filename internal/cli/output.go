package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-doctemplate/pkg/model"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// emit writes data to path, or to w when path is empty.
func (a *app) emit(w io.Writer, path string, data []byte) error {
	if path == "" {
		if _, err := w.Write(data); err != nil {
			return err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			_, err := io.WriteString(w, "\n")
			return err
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(a.errOut, "Document written to %s\n", path)
	return nil
}

// readValues decodes a YAML or JSON object of variable bindings.
func readValues(path string) (model.RenderContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.RenderContext{}, fmt.Errorf("failed to read values: %w", err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return model.RenderContext{}, fmt.Errorf("failed to parse values %s: %w", path, err)
	}
	return model.NewRenderContext(values), nil
}

// parseAssignments turns name=value pairs into string bindings.
func parseAssignments(pairs []string) (model.RenderContext, error) {
	values := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return model.RenderContext{}, fmt.Errorf("invalid --set %q, expected name=value", pair)
		}
		values[name] = value
	}
	return model.NewRenderContext(values), nil
}
