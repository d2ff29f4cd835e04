// Package preview renders an HTML catalogue of manifest components: their
// property tables, compiled styles and a mounted sample instance.
package preview

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-reactive/pkg/component"
	"github.com/goliatone/go-reactive/pkg/dom"
	"github.com/goliatone/go-reactive/pkg/manifest"
	"github.com/goliatone/go-reactive/pkg/property"
	"github.com/goliatone/go-reactive/pkg/render/template"
	"github.com/goliatone/go-reactive/pkg/render/template/gotemplate"
	"github.com/goliatone/go-reactive/pkg/styles"
)

//go:embed templates/*.tpl
var embedded embed.FS

// TemplatesFS exposes the embedded page templates so callers can extend them
// and pass their own engine through WithEngine.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return embedded
	}
	return sub
}

// PageTemplate is the template name rendered by Render.
const PageTemplate = "page"

// Option configures a Renderer.
type Option func(*Renderer)

// WithEngine replaces the embedded pongo2 templates. The engine must provide
// PageTemplate.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		r.title = strings.TrimSpace(title)
	}
}

// WithNonce sets the CSP nonce on sample style elements.
func WithNonce(nonce string) Option {
	return func(r *Renderer) {
		r.nonce = nonce
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.log = logger
		}
	}
}

// Renderer builds preview pages.
type Renderer struct {
	engine template.TemplateRenderer
	title  string
	nonce  string
	log    *zap.Logger
}

// New creates a Renderer backed by the embedded templates unless WithEngine
// is given.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{title: "Components", log: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.engine == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
		if err != nil {
			return nil, fmt.Errorf("preview: %w", err)
		}
		r.engine = engine
	}
	r.log = r.log.Named("preview")
	return r, nil
}

type componentView struct {
	Tag        string
	Source     string
	Theme      string
	Variant    string
	Properties []propertyView
	Styles     []string
	Sample     string
}

type propertyView struct {
	Name      string
	Type      string
	Attribute string
	Reflect   string
	Default   string
}

// Render writes the page for every component in set, or only the given tags.
func (r *Renderer) Render(set *manifest.Set, tags []string, out ...io.Writer) (string, error) {
	if set == nil {
		return "", fmt.Errorf("preview: manifest set is nil")
	}
	if len(tags) == 0 {
		tags = set.Tags()
	}

	views := make([]componentView, 0, len(tags))
	for _, tag := range tags {
		c, ok := set.Component(tag)
		if !ok {
			return "", fmt.Errorf("preview: unknown component %q", tag)
		}
		view, err := r.view(set, c)
		if err != nil {
			return "", err
		}
		views = append(views, view)
	}

	r.log.Debug("rendering preview", zap.Int("components", len(views)))
	return r.engine.RenderTemplate(PageTemplate, map[string]any{
		"title":      r.title,
		"components": views,
	}, out...)
}

func (r *Renderer) view(set *manifest.Set, c *manifest.Component) (componentView, error) {
	registry, err := c.Registry()
	if err != nil {
		return componentView{}, fmt.Errorf("preview: %w", err)
	}
	fragments, err := c.Fragments(set)
	if err != nil {
		return componentView{}, fmt.Errorf("preview: %w", err)
	}

	view := componentView{Tag: c.Tag, Source: c.Source, Theme: c.Theme, Variant: c.Variant}
	for _, name := range registry.Names() {
		opt, _ := registry.Get(name)
		view.Properties = append(view.Properties, describe(opt))
	}

	values := make([]styles.Value, 0, len(fragments))
	for _, fragment := range fragments {
		sheet, err := fragment.StyleSheet()
		if err != nil {
			return componentView{}, fmt.Errorf("preview: %s: %w", c.Tag, err)
		}
		view.Styles = append(view.Styles, sheet.CSSText())
		values = append(values, sheet)
	}

	view.Sample, err = r.sample(c.Tag, registry, values)
	if err != nil {
		return componentView{}, err
	}
	return view, nil
}

func (r *Renderer) sample(tag string, registry *property.Registry, values []styles.Value) (string, error) {
	def, err := component.Define(tag, registry,
		component.WithStyles(values...),
		component.WithShadowRoot("open"),
		component.WithNonce(r.nonce),
		component.WithLogger(r.log),
	)
	if err != nil {
		return "", fmt.Errorf("preview: %w", err)
	}

	doc, err := dom.ParseString("<" + tag + "></" + tag + ">")
	if err != nil {
		return "", fmt.Errorf("preview: %w", err)
	}
	inst, err := def.Mount(dom.FindAll(doc, tag)[0])
	if err != nil {
		return "", fmt.Errorf("preview: %w", err)
	}
	return dom.Render(inst.Element().Node())
}

func describe(opt property.Option) propertyView {
	view := propertyView{Name: opt.Name, Type: opt.Type.String()}
	if attr, ok := opt.AttributeName(); ok {
		view.Attribute = attr
	}
	if opt.Reflects() {
		view.Reflect = "yes"
	}
	if opt.Default.IsSet() {
		view.Default = opt.Default.String()
	}
	return view
}
