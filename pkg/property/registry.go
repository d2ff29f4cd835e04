package property

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-reactive/pkg/attribute"
)

// ErrUnknownProperty is returned when a name has no registered Option.
var ErrUnknownProperty = errors.New("property: unknown property")

type entry struct {
	option    Option
	converter attribute.Converter
	attr      string
	bound     bool
}

// Registry holds the property declarations of one component class. The
// converter of every option is resolved when it is registered.
type Registry struct {
	mu         sync.RWMutex
	entries    map[string]entry
	attributes map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:    make(map[string]entry),
		attributes: make(map[string]string),
	}
}

// Register adds an option. Names and bound attribute names must be unique.
func (r *Registry) Register(option Option) error {
	name := strings.TrimSpace(option.Name)
	if name == "" {
		return fmt.Errorf("property: option name is required")
	}
	option.Name = name

	attr, bound := option.AttributeName()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("property: %q already registered", name)
	}
	if bound {
		if owner, taken := r.attributes[attr]; taken {
			return fmt.Errorf("property: attribute %q of %q already bound to %q", attr, name, owner)
		}
		r.attributes[attr] = name
	}

	r.entries[name] = entry{
		option:    option,
		converter: attribute.Resolve(option.Converter),
		attr:      attr,
		bound:     bound,
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(options ...Option) {
	for _, option := range options {
		if err := r.Register(option); err != nil {
			panic(err)
		}
	}
}

// Get returns the option registered under name.
func (r *Registry) Get(name string) (Option, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e.option, ok
}

// ForAttribute returns the option observing attr.
func (r *Registry) ForAttribute(attr string) (Option, bool) {
	e, ok := r.lookupAttribute(attr)
	return e.option, ok
}

// Names returns the sorted property names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ObservedAttributes returns the sorted attribute names the class reacts to.
func (r *Registry) ObservedAttributes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	attrs := make([]string, 0, len(r.attributes))
	for attr := range r.attributes {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)
	return attrs
}

// Len reports the number of registered options.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) lookup(name string) (entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

func (r *Registry) lookupAttribute(attr string) (entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.attributes[strings.ToLower(attr)]
	if !ok {
		return entry{}, false
	}
	return r.entries[name], true
}
