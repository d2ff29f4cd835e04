package attribute

// Attr is an attribute as seen on an element. Set is false when the attribute
// is absent (or, as a conversion result, should be removed).
type Attr struct {
	Value string
	Set   bool
}

// Present wraps an attribute value.
func Present(value string) Attr {
	return Attr{Value: value, Set: true}
}

// Absent is the removed-attribute signal.
var Absent = Attr{}

// Empty reports whether the attribute is absent or carries an empty string;
// both decode to nil.
func (a Attr) Empty() bool {
	return !a.Set || a.Value == ""
}
