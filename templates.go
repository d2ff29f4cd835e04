package reactive

import (
	"io/fs"

	"github.com/goliatone/go-reactive/pkg/preview"
)

// EmbeddedTemplates exposes the preview page templates so callers can reuse
// or extend them without importing the preview package directly.
func EmbeddedTemplates() fs.FS {
	return preview.TemplatesFS()
}
