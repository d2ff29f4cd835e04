package reactive

import (
	"fmt"

	"github.com/goliatone/go-reactive/pkg/attribute"
	"github.com/goliatone/go-reactive/pkg/component"
	"github.com/goliatone/go-reactive/pkg/dom"
	"github.com/goliatone/go-reactive/pkg/manifest"
	"github.com/goliatone/go-reactive/pkg/property"
	"github.com/goliatone/go-reactive/pkg/styles"
)

// CSSString aliases the sanctioned CSS fragment type.
type CSSString = styles.CSSString

// Template is the identity of a css call site.
type Template = styles.Template

// StyleValue is a CSSString or a compiled StyleSheet.
type StyleValue = styles.Value

// PropertyOption declares one reactive property.
type PropertyOption = property.Option

// Hint is a property's declared type.
type Hint = attribute.Hint

// Converter maps property values to attribute text and back.
type Converter = attribute.Converter

// Definition is a registered custom element.
type Definition = component.Definition

// Instance is a mounted element.
type Instance = component.Instance

// DefaultConverter is the converter used when a property declares none.
var DefaultConverter = attribute.Default

// NewTemplate creates a css call site from its literal pieces.
func NewTemplate(pieces ...string) *Template {
	return styles.NewTemplate(pieces...)
}

// CSS composes a fragment from a template and its interpolated values.
func CSS(tpl *Template, values ...any) (*CSSString, error) {
	return styles.CSS(tpl, values...)
}

// MustCSS is CSS that panics on composition errors, for package-level styles.
func MustCSS(tpl *Template, values ...any) *CSSString {
	return styles.MustCSS(tpl, values...)
}

// UnsafeCSS wraps untrusted text without checks.
func UnsafeCSS(value any) *CSSString {
	return styles.UnsafeCSS(value)
}

// Define registers options and binds them to tag in one call.
func Define(tag string, options []PropertyOption, opts ...component.Option) (*Definition, error) {
	registry := property.NewRegistry()
	for _, opt := range options {
		if err := registry.Register(opt); err != nil {
			return nil, fmt.Errorf("reactive: %s: %w", tag, err)
		}
	}
	return component.Define(tag, registry, opts...)
}

// DefineManifest builds a definition from a manifest component. Its themed
// fragments are compiled so variable substitutions reach the output. Extra
// options are applied after the styles.
func DefineManifest(set *manifest.Set, tag string, opts ...component.Option) (*Definition, error) {
	if set == nil {
		return nil, fmt.Errorf("reactive: manifest set is nil")
	}
	c, ok := set.Component(tag)
	if !ok {
		return nil, fmt.Errorf("reactive: unknown component %q", tag)
	}
	registry, err := c.Registry()
	if err != nil {
		return nil, fmt.Errorf("reactive: %w", err)
	}
	fragments, err := c.Fragments(set)
	if err != nil {
		return nil, fmt.Errorf("reactive: %w", err)
	}
	values := make([]styles.Value, 0, len(fragments))
	for _, fragment := range fragments {
		sheet, err := fragment.StyleSheet()
		if err != nil {
			return nil, fmt.Errorf("reactive: %s: %w", c.Tag, err)
		}
		values = append(values, sheet)
	}
	options := append([]component.Option{component.WithStyles(values...)}, opts...)
	return component.Define(c.Tag, registry, options...)
}

// RenderDocument parses markup, mounts every element matching one of the
// definitions and renders the upgraded document.
func RenderDocument(markup string, defs ...*Definition) (string, error) {
	doc, err := dom.ParseString(markup)
	if err != nil {
		return "", fmt.Errorf("reactive: %w", err)
	}
	for _, def := range defs {
		if def == nil {
			continue
		}
		if _, err := def.MountAll(doc); err != nil {
			return "", err
		}
	}
	return dom.Render(doc)
}
