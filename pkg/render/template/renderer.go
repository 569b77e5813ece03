package template

import "io"

// LayoutRenderer lays a rendered document body out as a complete page.
// Layouts are addressed by name; the file extension is optional.
type LayoutRenderer interface {
	RenderLayout(name string, data any, out ...io.Writer) (string, error)
	RenderString(source string, data any, out ...io.Writer) (string, error)
	SetGlobals(data map[string]any)
}
