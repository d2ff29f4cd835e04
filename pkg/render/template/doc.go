// Package template defines the template engine seam used by the preview
// renderer. The gotemplate subpackage implements it on pongo2.
package template
