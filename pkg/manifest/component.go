package manifest

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/multierr"

	"github.com/goliatone/go-reactive/pkg/attribute"
	"github.com/goliatone/go-reactive/pkg/property"
	"github.com/goliatone/go-reactive/pkg/styles"
)

// Component declares one custom element.
type Component struct {
	Tag        string     `yaml:"-"`
	Source     string     `yaml:"-"`
	Properties []Property `yaml:"properties,omitempty"`
	Styles     []Style    `yaml:"styles,omitempty"`
	// Theme names a theme declared in the same set. Variant selects one of
	// its variants; empty uses the base tokens.
	Theme   string `yaml:"theme,omitempty"`
	Variant string `yaml:"variant,omitempty"`

	once      sync.Once
	templates []*styles.Template
}

// Property is the file form of property.Option. Hooks are named rather than
// supplied as functions.
type Property struct {
	Name      string          `yaml:"name"`
	Type      attribute.Hint  `yaml:"type"`
	Attribute property.Switch `yaml:"attribute,omitempty"`
	State     property.Switch `yaml:"state,omitempty"`
	Default   property.Switch `yaml:"default,omitempty"`
	Reflect   bool            `yaml:"reflect,omitempty"`
	// Validate is a go-playground validator tag.
	Validate string `yaml:"validate,omitempty"`
	// Sanitize is "strict" (strip markup) or "ugc" (bluemonday UGC policy).
	Sanitize string `yaml:"sanitize,omitempty"`
	// Converter is "default" or "legacy".
	Converter string `yaml:"converter,omitempty"`
}

// Style is one CSS fragment plus its variable substitutions.
type Style struct {
	CSS       string            `yaml:"css"`
	Variables map[string]string `yaml:"variables,omitempty"`
}

// Option converts the declaration into a property option.
func (p Property) Option() (property.Option, error) {
	opt := property.Option{
		Name:      strings.TrimSpace(p.Name),
		Type:      p.Type,
		Attribute: p.Attribute,
		State:     p.State,
		Default:   p.Default,
		Reflect:   p.Reflect,
	}
	if opt.Name == "" {
		return property.Option{}, fmt.Errorf("manifest: property name is required")
	}
	if !p.Type.Known() {
		return property.Option{}, fmt.Errorf("manifest: property %q: %w", opt.Name, &attribute.UnsupportedTypeError{Hint: p.Type, Direction: "parse"})
	}

	if tag := strings.TrimSpace(p.Validate); tag != "" {
		validate, err := property.ValidateTag(tag)
		if err != nil {
			return property.Option{}, fmt.Errorf("manifest: property %q: %w", opt.Name, err)
		}
		opt.Validate = validate
	}

	switch strings.ToLower(strings.TrimSpace(p.Sanitize)) {
	case "":
	case "strict":
		opt.Sanitize = property.StrictText()
	case "ugc":
		opt.Sanitize = property.SanitizeHTML(bluemonday.UGCPolicy())
	default:
		return property.Option{}, fmt.Errorf("manifest: property %q: unknown sanitizer %q", opt.Name, p.Sanitize)
	}

	switch strings.ToLower(strings.TrimSpace(p.Converter)) {
	case "", "default":
	case "legacy":
		legacy := attribute.Legacy
		opt.Converter = &legacy
	default:
		return property.Option{}, fmt.Errorf("manifest: property %q: unknown converter %q", opt.Name, p.Converter)
	}
	return opt, nil
}

// Registry builds the property registry for the component. Every invalid
// property is reported.
func (c *Component) Registry() (*property.Registry, error) {
	registry := property.NewRegistry()
	var errs error
	for _, p := range c.Properties {
		opt, err := p.Option()
		if err == nil {
			err = registry.Register(opt)
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", c.Tag, err))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return registry, nil
}

// Fragments composes the component's styles. Each call returns new
// fragments over the same templates, so unthemed styles share compiled
// sheets. Theme tokens are applied before the style's own variables.
func (c *Component) Fragments(themes *Set) ([]*styles.CSSString, error) {
	c.ensureTemplates()

	var vars map[string]string
	if name := strings.TrimSpace(c.Theme); name != "" {
		manifest, ok := themes.Theme(name)
		if !ok {
			return nil, fmt.Errorf("manifest: %s: unknown theme %q", c.Tag, name)
		}
		var err error
		if vars, err = styles.ThemeVariables(manifest, c.Variant); err != nil {
			return nil, fmt.Errorf("manifest: %s: %w", c.Tag, err)
		}
	}

	out := make([]*styles.CSSString, 0, len(c.templates))
	for idx, tpl := range c.templates {
		fragment, err := styles.CSS(tpl)
		if err != nil {
			return nil, fmt.Errorf("manifest: %s: style %d: %w", c.Tag, idx, err)
		}
		if err := setVariables(fragment, vars); err != nil {
			return nil, fmt.Errorf("manifest: %s: style %d: %w", c.Tag, idx, err)
		}
		if err := setVariables(fragment, c.Styles[idx].Variables); err != nil {
			return nil, fmt.Errorf("manifest: %s: style %d: %w", c.Tag, idx, err)
		}
		out = append(out, fragment)
	}
	return out, nil
}

// ensureTemplates fixes the template identities on first use. Styles must
// not change afterwards.
func (c *Component) ensureTemplates() {
	c.once.Do(func() {
		c.templates = make([]*styles.Template, len(c.Styles))
		for idx, style := range c.Styles {
			c.templates[idx] = styles.NewTemplate(style.CSS)
		}
	})
}

func setVariables(fragment *styles.CSSString, vars map[string]string) error {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := fragment.SetVariable(name, vars[name]); err != nil {
			return err
		}
	}
	return nil
}
