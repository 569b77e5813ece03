package loader

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.yaml
var embeddedTemplates embed.FS

// EmbeddedFS returns the bundled template definitions.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Builtin loads the bundled templates.
func Builtin(options ...Option) (*Store, error) {
	return LoadFS(EmbeddedFS(), options...)
}
