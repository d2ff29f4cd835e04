package property

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-reactive/pkg/attribute"
)

// Element is the attribute surface a controller writes to. Implementations
// may report the change back through AttributeChanged synchronously; the
// controller ignores notifications for attributes it is writing.
type Element interface {
	SetAttribute(name, value string)
	RemoveAttribute(name string)
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger attaches a logger for rejected writes and skipped feedback.
func WithLogger(logger *zap.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.log = logger.Named("property")
		}
	}
}

// Controller drives the property pipeline for one component instance.
//
// On property write: validate, sanitize, store, then (when reflecting)
// serialize, convert and write the attribute. On attribute change: convert,
// deserialize, validate, sanitize and store, without writing back.
type Controller struct {
	registry *Registry
	element  Element
	log      *zap.Logger

	mu         sync.Mutex
	values     map[string]any
	reflecting map[string]int
}

// NewController binds a registry to an element. A nil element is allowed for
// detached instances; reflection is then skipped.
func NewController(registry *Registry, element Element, options ...ControllerOption) (*Controller, error) {
	if registry == nil {
		return nil, fmt.Errorf("property: registry is required")
	}
	c := &Controller{
		registry:   registry,
		element:    element,
		log:        zap.NewNop(),
		values:     make(map[string]any),
		reflecting: make(map[string]int),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Init seeds every declared default through Set, in property name order.
func (c *Controller) Init() error {
	for _, name := range c.registry.Names() {
		e, _ := c.registry.lookup(name)
		if !e.option.Default.IsSet() {
			continue
		}

		value, err := c.defaultValue(e)
		if err != nil {
			return fmt.Errorf("property: default for %q: %w", name, err)
		}
		if _, err := c.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) defaultValue(e entry) (any, error) {
	def := e.option.Default
	if def.Name() == "" {
		return def.Enabled(false), nil
	}
	value, err := e.converter.FromAttribute(attribute.Present(def.Name()), e.option.Type)
	if err != nil {
		return nil, err
	}
	if e.option.Deserialize != nil {
		value = e.option.Deserialize(value)
	}
	return value, nil
}

// Set writes a property. It returns false when the option's validator
// rejected the value. Converter errors are returned after the value has been
// stored, so the property and its attribute may disagree until the next
// successful write.
func (c *Controller) Set(name string, value any) (bool, error) {
	e, ok := c.registry.lookup(name)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	opt := e.option

	if opt.Validate != nil && !opt.Validate(value) {
		c.log.Debug("property write rejected", zap.String("property", name))
		return false, nil
	}
	if opt.Sanitize != nil {
		value = opt.Sanitize(value)
	}

	c.mu.Lock()
	c.values[name] = value
	c.mu.Unlock()

	if !opt.Reflects() || c.element == nil {
		return true, nil
	}

	out := value
	if opt.Serialize != nil {
		out = opt.Serialize(out)
	}
	attr, err := e.converter.ToAttribute(out, opt.Type)
	if err != nil {
		return true, fmt.Errorf("property: reflect %q: %w", name, err)
	}

	c.writeAttribute(e.attr, attr)
	return true, nil
}

func (c *Controller) writeAttribute(name string, attr attribute.Attr) {
	c.mu.Lock()
	c.reflecting[name]++
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.reflecting[name]--; c.reflecting[name] <= 0 {
			delete(c.reflecting, name)
		}
		c.mu.Unlock()
	}()

	if attr.Set {
		c.element.SetAttribute(name, attr.Value)
		return
	}
	c.element.RemoveAttribute(name)
}

// AttributeChanged feeds an observed attribute change into its property. It
// returns false when the attribute is not observed, when the change is the
// controller's own reflection, or when validation rejected the value.
func (c *Controller) AttributeChanged(name string, attr attribute.Attr) (bool, error) {
	e, ok := c.registry.lookupAttribute(name)
	if !ok {
		return false, nil
	}

	c.mu.Lock()
	_, ownWrite := c.reflecting[e.attr]
	c.mu.Unlock()
	if ownWrite {
		c.log.Debug("skipping reflected attribute", zap.String("attribute", e.attr))
		return false, nil
	}

	opt := e.option
	value, err := e.converter.FromAttribute(attr, opt.Type)
	if err != nil {
		return false, fmt.Errorf("property: attribute %q: %w", e.attr, err)
	}
	if opt.Deserialize != nil {
		value = opt.Deserialize(value)
	}
	if opt.Validate != nil && !opt.Validate(value) {
		c.log.Debug("attribute value rejected", zap.String("attribute", e.attr), zap.String("property", opt.Name))
		return false, nil
	}
	if opt.Sanitize != nil {
		value = opt.Sanitize(value)
	}

	c.mu.Lock()
	c.values[opt.Name] = value
	c.mu.Unlock()
	return true, nil
}

// Get returns the stored value of a property.
func (c *Controller) Get(name string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.values[name]
	return value, ok
}

// Values returns a snapshot of every stored property.
func (c *Controller) Values() Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(Values, len(c.values))
	for name, value := range c.values {
		out[name] = value
	}
	return out
}
