// Package property declares reactive properties and runs the pipeline that
// keeps them in sync with DOM attributes. Option is the per-property
// descriptor, Registry holds a component class's options, and Controller
// applies validate, sanitize, serialize and conversion hooks in a fixed order
// for one element, never echoing an attribute change back to the attribute.
package property
