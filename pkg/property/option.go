package property

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-reactive/pkg/attribute"
)

// Validator gates a write. Returning false rejects the value.
type Validator func(value any) bool

// Sanitizer transforms a value before it is stored.
type Sanitizer func(value any) any

// Serializer transforms a stored value before the attribute converter runs.
type Serializer func(value any) any

// Deserializer transforms a converted attribute value into the property value.
type Deserializer func(value any) any

// Values is a snapshot of property values keyed by property name.
type Values map[string]any

// Option declares one reactive property. It is static configuration; the
// owning component keeps its options in a Registry.
type Option struct {
	Name      string
	Type      attribute.Hint
	Converter *attribute.Converter

	// State marks internal state: never bound to an attribute.
	State Switch
	// Attribute binds the property to an attribute. Unset or on uses the
	// lower-cased property name, Named overrides it, off disables it.
	Attribute Switch
	// Default seeds the property on Init. On/off seed a boolean; Named seeds
	// the decoded attribute text.
	Default Switch
	// Reflect writes property changes back to the attribute.
	Reflect bool

	Validate    Validator
	Sanitize    Sanitizer
	Serialize   Serializer
	Deserialize Deserializer
}

// AttributeName returns the bound attribute, if any.
func (o Option) AttributeName() (string, bool) {
	if o.State.Enabled(false) {
		return "", false
	}
	if !o.Attribute.Enabled(true) {
		return "", false
	}
	if name := o.Attribute.Name(); name != "" {
		return strings.ToLower(name), true
	}
	name := strings.ToLower(strings.TrimSpace(o.Name))
	return name, name != ""
}

// Reflects reports whether writes propagate to the attribute.
func (o Option) Reflects() bool {
	_, bound := o.AttributeName()
	return o.Reflect && bound
}

type switchState uint8

const (
	switchUnset switchState = iota
	switchOff
	switchOn
)

// Switch is the boolean-or-name shape used by State, Attribute and Default.
// The zero value is unset, which lets each field pick its own default.
type Switch struct {
	state switchState
	name  string
}

// On returns an enabled switch without a name.
func On() Switch { return Switch{state: switchOn} }

// Off returns a disabled switch.
func Off() Switch { return Switch{state: switchOff} }

// Named returns an enabled switch carrying name. An empty name is On.
func Named(name string) Switch {
	return Switch{state: switchOn, name: strings.TrimSpace(name)}
}

// IsSet reports whether the switch was configured.
func (s Switch) IsSet() bool { return s.state != switchUnset }

// Enabled resolves the switch, using fallback when unset.
func (s Switch) Enabled(fallback bool) bool {
	switch s.state {
	case switchOn:
		return true
	case switchOff:
		return false
	default:
		return fallback
	}
}

// Name returns the configured name, if any.
func (s Switch) Name() string { return s.name }

func (s Switch) String() string {
	switch {
	case s.name != "":
		return s.name
	case s.state == switchOn:
		return "true"
	case s.state == switchOff:
		return "false"
	default:
		return ""
	}
}

// IsZero reports whether the switch is unset.
func (s Switch) IsZero() bool { return s.state == switchUnset }

// MarshalYAML writes the name, or a boolean for unnamed switches.
func (s Switch) MarshalYAML() (any, error) {
	switch {
	case s.name != "":
		return s.name, nil
	case s.state == switchOn:
		return true, nil
	case s.state == switchOff:
		return false, nil
	default:
		return nil, nil
	}
}

// UnmarshalYAML accepts a boolean or a string scalar.
func (s *Switch) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("property: switch must be a boolean or string (line %d)", node.Line)
	}
	if node.Tag == "!!bool" {
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return err
		}
		if enabled {
			*s = On()
		} else {
			*s = Off()
		}
		return nil
	}
	*s = Named(node.Value)
	return nil
}
