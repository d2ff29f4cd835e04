// Package styles composes trusted CSS fragments and compiles them into
// stylesheet values that can be attached to a component's render root.
//
// Fragments (CSSString) can only be produced by CSS, which accepts nothing but
// other fragments and numbers as interpolations, or by UnsafeCSS, which hands
// the trust decision to the caller. Compiled stylesheets are memoised per
// fragment and shared across fragments built from the same single-piece
// Template, so every instance of a component reuses one parsed sheet. The
// shared cache holds templates weakly: dropping the last reference to a
// Template releases its cache entry.
package styles
