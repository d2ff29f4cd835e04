// Package manifest loads component declarations from YAML files or derives
// them from OpenAPI schemas. A Component turns into a property.Registry and
// its styles into composed fragments, optionally themed with go-theme
// manifests declared alongside.
package manifest
