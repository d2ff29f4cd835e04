// Package attribute converts property values to DOM attribute strings and
// back, dispatching on a declared type Hint. Default covers the built-in
// hints; custom converters override one or both directions and fall back to
// Default for the rest. Conversion is closed-world: an unrecognised hint is a
// configuration error reported as *UnsupportedTypeError.
package attribute
