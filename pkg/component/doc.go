// Package component binds a property registry and a style list to a custom
// element tag and mounts instances onto parsed documents. Mounting mirrors a
// browser upgrade: defaults are seeded, attributes already present in the
// markup win over defaults, and styles are adopted into the shadow root or
// the document head.
package component
