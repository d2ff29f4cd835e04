package manifest

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-reactive/pkg/attribute"
	"github.com/goliatone/go-reactive/pkg/property"
)

// Schema extensions read by FromOpenAPI.
const (
	ExtensionReflect   = "x-reflect"
	ExtensionAttribute = "x-attribute"
	ExtensionState     = "x-state"
)

// FromOpenAPI derives a component from a named schema under
// components.schemas. Each schema property becomes a reactive property: the
// JSON type picks the hint, constraints become a validator tag and the
// schema default seeds the property.
func FromOpenAPI(ctx context.Context, data []byte, schemaName, tag string) (*Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("manifest: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("manifest: load openapi document: %w", err)
	}
	if doc.Components == nil {
		return nil, fmt.Errorf("manifest: openapi document has no components")
	}
	ref, ok := doc.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("manifest: schema %q not found", schemaName)
	}
	schema := ref.Value

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	component := &Component{Tag: strings.TrimSpace(tag), Source: "openapi:" + schemaName}
	for _, name := range names {
		prop, err := convertProperty(name, schema.Properties[name], required[name])
		if err != nil {
			return nil, err
		}
		component.Properties = append(component.Properties, prop)
	}
	if err := validateTag(component.Tag); err != nil {
		return nil, err
	}
	return component, nil
}

func convertProperty(name string, ref *openapi3.SchemaRef, required bool) (Property, error) {
	if ref == nil || ref.Value == nil {
		return Property{}, fmt.Errorf("manifest: property %q has no schema", name)
	}
	src := ref.Value

	hint, err := schemaHint(src)
	if err != nil {
		return Property{}, fmt.Errorf("manifest: property %q: %w", name, err)
	}
	prop := Property{
		Name:     name,
		Type:     hint,
		Validate: validationTag(src, hint, required),
	}

	if reflect, ok := src.Extensions[ExtensionReflect].(bool); ok {
		prop.Reflect = reflect
	}
	if state, ok := src.Extensions[ExtensionState].(bool); ok && state {
		prop.State = property.On()
	}
	switch attr := src.Extensions[ExtensionAttribute].(type) {
	case string:
		prop.Attribute = property.Named(attr)
	case bool:
		if attr {
			prop.Attribute = property.On()
		} else {
			prop.Attribute = property.Off()
		}
	}

	if src.Default != nil {
		def, err := defaultSwitch(src.Default, hint)
		if err != nil {
			return Property{}, fmt.Errorf("manifest: property %q default: %w", name, err)
		}
		prop.Default = def
	}
	return prop, nil
}

func schemaHint(src *openapi3.Schema) (attribute.Hint, error) {
	if src.Type == nil || len(src.Type.Slice()) == 0 {
		return attribute.Object, nil
	}
	switch {
	case src.Type.Is(openapi3.TypeBoolean):
		return attribute.Boolean, nil
	case src.Type.Is(openapi3.TypeInteger), src.Type.Is(openapi3.TypeNumber):
		return attribute.Number, nil
	case src.Type.Is(openapi3.TypeString):
		return attribute.String, nil
	case src.Type.Is(openapi3.TypeArray):
		if src.UniqueItems {
			return attribute.Set, nil
		}
		return attribute.Array, nil
	case src.Type.Is(openapi3.TypeObject):
		if len(src.Properties) == 0 && src.AdditionalProperties.Schema != nil {
			return attribute.Map, nil
		}
		return attribute.Object, nil
	default:
		return attribute.Unknown, fmt.Errorf("unsupported schema type %v", src.Type.Slice())
	}
}

// validationTag maps schema constraints onto go-playground validator rules.
func validationTag(src *openapi3.Schema, hint attribute.Hint, required bool) string {
	var rules []string
	if required && hint != attribute.Boolean {
		rules = append(rules, "required")
	} else {
		rules = append(rules, "omitempty")
	}

	switch hint {
	case attribute.String:
		if src.MinLength > 0 {
			rules = append(rules, "min="+strconv.FormatUint(src.MinLength, 10))
		}
		if src.MaxLength != nil {
			rules = append(rules, "max="+strconv.FormatUint(*src.MaxLength, 10))
		}
		switch src.Format {
		case "email":
			rules = append(rules, "email")
		case "uri", "url":
			rules = append(rules, "url")
		case "uuid":
			rules = append(rules, "uuid")
		}
		if options := enumStrings(src.Enum); len(options) > 0 {
			rules = append(rules, "oneof="+strings.Join(options, " "))
		}
	case attribute.Number:
		if src.Min != nil {
			op := "gte="
			if src.ExclusiveMin {
				op = "gt="
			}
			rules = append(rules, op+strconv.FormatFloat(*src.Min, 'f', -1, 64))
		}
		if src.Max != nil {
			op := "lte="
			if src.ExclusiveMax {
				op = "lt="
			}
			rules = append(rules, op+strconv.FormatFloat(*src.Max, 'f', -1, 64))
		}
	}

	if len(rules) == 1 {
		if rules[0] == "omitempty" {
			return ""
		}
	}
	return strings.Join(rules, ",")
}

// enumStrings returns the enum when every member is a space-free string,
// the only shape oneof can express.
func enumStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		s, ok := value.(string)
		if !ok || s == "" || strings.ContainsAny(s, " '") {
			return nil
		}
		out = append(out, s)
	}
	return out
}

func defaultSwitch(value any, hint attribute.Hint) (property.Switch, error) {
	if hint == attribute.Boolean {
		enabled, ok := value.(bool)
		if !ok {
			return property.Switch{}, fmt.Errorf("boolean default must be true or false, got %T", value)
		}
		if enabled {
			return property.On(), nil
		}
		return property.Off(), nil
	}
	attr, err := attribute.Default.ToAttribute(value, hint)
	if err != nil {
		return property.Switch{}, err
	}
	if !attr.Set {
		return property.Switch{}, nil
	}
	return property.Named(attr.Value), nil
}
