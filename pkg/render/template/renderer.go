package template

import (
	"io"
)

// TemplateRenderer renders named templates or inline template text. Every
// method returns the rendered output and also writes it to each out writer.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
