package component

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"weak"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/goliatone/go-reactive/pkg/adopt"
	"github.com/goliatone/go-reactive/pkg/dom"
	"github.com/goliatone/go-reactive/pkg/property"
	"github.com/goliatone/go-reactive/pkg/styles"
)

// Option configures a Definition.
type Option func(*Definition)

// WithStyles appends style values adopted by every instance.
func WithStyles(values ...styles.Value) Option {
	return func(d *Definition) {
		for _, value := range values {
			if value != nil {
				d.styles = append(d.styles, value)
			}
		}
	}
}

// WithShadowRoot renders instances into a declarative shadow root with the
// given mode. Without it styles go to the document head.
func WithShadowRoot(mode string) Option {
	return func(d *Definition) {
		d.shadowMode = strings.TrimSpace(mode)
	}
}

// WithNonce sets the CSP nonce for generated style elements.
func WithNonce(nonce string) Option {
	return func(d *Definition) {
		d.adoptOptions = append(d.adoptOptions, adopt.WithNonce(nonce))
	}
}

// WithAdopter hands compiled sheets to adopter instead of writing style
// elements.
func WithAdopter(adopter adopt.SheetAdopter) Option {
	return func(d *Definition) {
		d.adoptOptions = append(d.adoptOptions, adopt.WithAdopter(adopter))
	}
}

// WithLogger attaches a logger to the definition and its instances.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Definition) {
		if logger != nil {
			d.log = logger
		}
	}
}

// Definition is a registered custom element class.
type Definition struct {
	tag          string
	registry     *property.Registry
	styles       []styles.Value
	shadowMode   string
	adoptOptions []adopt.Option
	log          *zap.Logger

	// adopted tracks documents whose head already holds the styles. Keys are
	// weak so mounted documents are not retained by the definition.
	mu      sync.Mutex
	adopted map[weak.Pointer[html.Node]]struct{}
}

// Define creates a definition for tag.
func Define(tag string, registry *property.Registry, options ...Option) (*Definition, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" || !strings.Contains(tag, "-") {
		return nil, fmt.Errorf("component: %q is not a valid custom element name", tag)
	}
	if registry == nil {
		registry = property.NewRegistry()
	}
	d := &Definition{
		tag:      tag,
		registry: registry,
		log:      zap.NewNop(),
		adopted:  make(map[weak.Pointer[html.Node]]struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	switch d.shadowMode {
	case "", "open", "closed":
	default:
		return nil, fmt.Errorf("component: %s: invalid shadow root mode %q", tag, d.shadowMode)
	}
	d.log = d.log.Named("component").With(zap.String("tag", tag))
	return d, nil
}

// Tag returns the custom element name.
func (d *Definition) Tag() string { return d.tag }

// Registry returns the property registry.
func (d *Definition) Registry() *property.Registry { return d.registry }

// Styles returns the adopted style values.
func (d *Definition) Styles() []styles.Value {
	return append([]styles.Value(nil), d.styles...)
}

// ObservedAttributes lists the attributes instances react to.
func (d *Definition) ObservedAttributes() []string {
	return d.registry.ObservedAttributes()
}

// Mount upgrades node into an instance.
func (d *Definition) Mount(node *html.Node) (*Instance, error) {
	el, err := dom.Wrap(node)
	if err != nil {
		return nil, fmt.Errorf("component: %s: %w", d.tag, err)
	}
	if el.TagName() != d.tag {
		return nil, fmt.Errorf("component: cannot mount <%s> as %s", el.TagName(), d.tag)
	}
	return d.mount(el)
}

func (d *Definition) mount(el *dom.Element) (_ *Instance, err error) {
	defer func() {
		// A failed upgrade leaves the node as plain markup.
		if err != nil {
			el.Observe(nil)
		}
	}()
	controller, err := property.NewController(d.registry, el, property.WithLogger(d.log))
	if err != nil {
		return nil, err
	}
	inst := &Instance{definition: d, element: el, controller: controller}

	observed := d.ObservedAttributes()
	var present []string
	values := make(map[string]string)
	for _, name := range observed {
		if attr := el.GetAttribute(name); attr.Set {
			present = append(present, name)
			values[name] = attr.Value
		}
	}

	if err := controller.Init(); err != nil {
		return nil, fmt.Errorf("component: %s: %w", d.tag, err)
	}
	if len(observed) > 0 {
		el.Observe(inst.attributeChanged, observed...)
	}
	// Markup attributes override reflected defaults.
	for _, name := range present {
		if err := inst.SetAttribute(name, values[name]); err != nil {
			return nil, err
		}
	}

	root, err := d.renderRoot(el.Node())
	if err != nil {
		return nil, err
	}
	inst.root = root
	if err := d.adoptStyles(root); err != nil {
		return nil, err
	}
	return inst, nil
}

// MountAll mounts every element with the definition's tag below root.
func (d *Definition) MountAll(root *html.Node) ([]*Instance, error) {
	nodes := dom.FindAll(root, d.tag)
	out := make([]*Instance, 0, len(nodes))
	for _, node := range nodes {
		inst, err := d.Mount(node)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	d.log.Debug("mounted instances", zap.Int("count", len(out)))
	return out, nil
}

func (d *Definition) renderRoot(node *html.Node) (*html.Node, error) {
	if d.shadowMode == "" {
		return node, nil
	}
	root, err := dom.AttachShadow(node, d.shadowMode)
	if err != nil {
		return nil, fmt.Errorf("component: %s: %w", d.tag, err)
	}
	return root, nil
}

// adoptStyles attaches styles to a shadow root every time, and to a
// document head once per document.
func (d *Definition) adoptStyles(root *html.Node) error {
	if len(d.styles) == 0 {
		return nil
	}
	if !dom.IsShadowRoot(root) {
		doc := root
		for doc.Parent != nil {
			doc = doc.Parent
		}
		key := weak.Make(doc)
		d.mu.Lock()
		_, done := d.adopted[key]
		if !done {
			d.adopted[key] = struct{}{}
			runtime.AddCleanup(doc, d.forget, key)
		}
		d.mu.Unlock()
		if done {
			return nil
		}
		if err := d.adopt(root); err != nil {
			d.forget(key)
			return err
		}
		return nil
	}
	return d.adopt(root)
}

func (d *Definition) adopt(root *html.Node) error {
	opts := append(append([]adopt.Option(nil), d.adoptOptions...), adopt.WithLogger(d.log))
	if err := adopt.Styles(root, d.styles, opts...); err != nil {
		return fmt.Errorf("component: %s: %w", d.tag, err)
	}
	return nil
}

func (d *Definition) forget(key weak.Pointer[html.Node]) {
	d.mu.Lock()
	delete(d.adopted, key)
	d.mu.Unlock()
}
