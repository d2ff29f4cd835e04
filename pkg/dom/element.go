package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-reactive/pkg/attribute"
)

// Observer is notified synchronously after every attribute write, mirroring
// attributeChangedCallback. Removal is reported as attribute.Absent.
type Observer func(name string, attr attribute.Attr)

// Element wraps an element node. It satisfies property.Element.
type Element struct {
	node     *html.Node
	observed map[string]struct{}
	observer Observer
}

// Wrap returns an Element for node, which must be an element node.
func Wrap(node *html.Node) (*Element, error) {
	if node == nil {
		return nil, fmt.Errorf("dom: node is required")
	}
	if node.Type != html.ElementNode {
		return nil, fmt.Errorf("dom: node %q is not an element", node.Data)
	}
	return &Element{node: node}, nil
}

// Node returns the wrapped node.
func (e *Element) Node() *html.Node { return e.node }

// TagName returns the lower-cased tag name.
func (e *Element) TagName() string { return strings.ToLower(e.node.Data) }

// Observe installs fn for the given attribute names. With no names every
// attribute is observed. Passing a nil fn stops observation.
func (e *Element) Observe(fn Observer, names ...string) {
	e.observer = fn
	e.observed = nil
	if len(names) == 0 {
		return
	}
	e.observed = make(map[string]struct{}, len(names))
	for _, name := range names {
		e.observed[strings.ToLower(name)] = struct{}{}
	}
}

// Observes reports whether a change to name would reach the observer.
func (e *Element) Observes(name string) bool {
	if e.observer == nil {
		return false
	}
	if e.observed == nil {
		return true
	}
	_, ok := e.observed[strings.ToLower(name)]
	return ok
}

// GetAttribute returns the attribute value, or attribute.Absent.
func (e *Element) GetAttribute(name string) attribute.Attr {
	name = strings.ToLower(name)
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return attribute.Present(a.Val)
		}
	}
	return attribute.Absent
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	return e.GetAttribute(name).Set
}

// SetAttribute creates or replaces an attribute.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	replaced := false
	for i := range e.node.Attr {
		if e.node.Attr[i].Namespace == "" && e.node.Attr[i].Key == name {
			e.node.Attr[i].Val = value
			replaced = true
			break
		}
	}
	if !replaced {
		e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
	}
	e.notify(name, attribute.Present(value))
}

// RemoveAttribute deletes an attribute. Removing a missing attribute does not
// notify the observer.
func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			e.notify(name, attribute.Absent)
			return
		}
	}
}

// Attributes returns the attributes in document order.
func (e *Element) Attributes() []html.Attribute {
	out := make([]html.Attribute, len(e.node.Attr))
	copy(out, e.node.Attr)
	return out
}

func (e *Element) notify(name string, attr attribute.Attr) {
	if e.observer == nil {
		return
	}
	if e.observed != nil {
		if _, ok := e.observed[name]; !ok {
			return
		}
	}
	e.observer(name, attr)
}
