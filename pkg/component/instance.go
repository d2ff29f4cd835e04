package component

import (
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/goliatone/go-reactive/pkg/attribute"
	"github.com/goliatone/go-reactive/pkg/dom"
	"github.com/goliatone/go-reactive/pkg/property"
)

// Instance is a mounted element. Like the DOM it wraps, it is not safe for
// concurrent use.
type Instance struct {
	definition *Definition
	element    *dom.Element
	controller *property.Controller
	root       *html.Node

	attrErr error
}

// Definition returns the class the instance was mounted from.
func (i *Instance) Definition() *Definition { return i.definition }

// Element returns the host element.
func (i *Instance) Element() *dom.Element { return i.element }

// RenderRoot returns the shadow root, or the host in light DOM mode.
func (i *Instance) RenderRoot() *html.Node { return i.root }

// Set writes a property through the controller.
func (i *Instance) Set(name string, value any) (bool, error) {
	return i.controller.Set(name, value)
}

// Get reads a property.
func (i *Instance) Get(name string) (any, bool) {
	return i.controller.Get(name)
}

// Values snapshots every property.
func (i *Instance) Values() property.Values {
	return i.controller.Values()
}

// SetAttribute writes a host attribute and returns any conversion error the
// resulting property update raised.
func (i *Instance) SetAttribute(name, value string) error {
	i.attrErr = nil
	i.element.SetAttribute(name, value)
	return i.attrErr
}

// RemoveAttribute removes a host attribute.
func (i *Instance) RemoveAttribute(name string) error {
	i.attrErr = nil
	i.element.RemoveAttribute(name)
	return i.attrErr
}

func (i *Instance) attributeChanged(name string, attr attribute.Attr) {
	if _, err := i.controller.AttributeChanged(name, attr); err != nil {
		i.definition.log.Debug("attribute conversion failed", zap.String("attribute", name), zap.Error(err))
		i.attrErr = err
	}
}
