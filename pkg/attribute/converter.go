package attribute

// Kind tags the two converter shapes.
type Kind int

const (
	// KindObject converters may implement either direction.
	KindObject Kind = iota + 1
	// KindFunc converters are a single function used for FromAttribute only.
	KindFunc
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindFunc:
		return "function"
	default:
		return "unset"
	}
}

// ToFunc converts a property value into its attribute form. Returning Absent
// removes the attribute.
type ToFunc func(value any, hint Hint) (Attr, error)

// FromFunc converts an observed attribute into a property value.
type FromFunc func(attr Attr, hint Hint) (any, error)

// Converter is a tagged variant: an object with optional ToAttribute and
// FromAttribute directions, or a bare FromAttribute function. Resolve it once
// when the owning property is registered; missing directions fall back to
// Default.
type Converter struct {
	kind Kind
	to   ToFunc
	from FromFunc
}

// NewConverter builds an object converter. Either direction may be nil.
func NewConverter(to ToFunc, from FromFunc) Converter {
	return Converter{kind: KindObject, to: to, from: from}
}

// FromAttributeFunc builds a function converter.
func FromAttributeFunc(fn FromFunc) Converter {
	return Converter{kind: KindFunc, from: fn}
}

// Kind reports the variant; the zero Converter reports 0.
func (c Converter) Kind() Kind { return c.kind }

// HasToAttribute reports whether the converter defines the forward direction
// itself.
func (c Converter) HasToAttribute() bool { return c.kind == KindObject && c.to != nil }

// HasFromAttribute reports whether the converter defines the reverse
// direction itself.
func (c Converter) HasFromAttribute() bool { return c.from != nil }

// ToAttribute runs the forward direction, falling back to Default.
func (c Converter) ToAttribute(value any, hint Hint) (Attr, error) {
	if c.HasToAttribute() {
		return c.to(value, hint)
	}
	return defaultToAttribute(value, hint)
}

// FromAttribute runs the reverse direction, falling back to Default.
func (c Converter) FromAttribute(attr Attr, hint Hint) (any, error) {
	if c.HasFromAttribute() {
		return c.from(attr, hint)
	}
	return defaultFromAttribute(attr, hint)
}

// Resolve returns a converter with both directions bound. nil or the zero
// Converter resolve to Default.
func Resolve(c *Converter) Converter {
	if c == nil || c.kind == 0 {
		return Default
	}
	resolved := Converter{kind: c.kind, to: c.to, from: c.from}
	if !resolved.HasToAttribute() {
		resolved.to = Default.to
	}
	if resolved.from == nil {
		resolved.from = Default.from
	}
	return resolved
}
