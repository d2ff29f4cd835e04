package styles

// Template is a tagged-template site: the literal pieces around the
// interpolation points. Build it once (normally at package level) and pass the
// same pointer to every CSS call for that site; the pointer is the identity the
// shared stylesheet cache keys on.
//
//	var buttonStyles = styles.NewTemplate(":host { display: inline-block; }")
//	var sizedStyles = styles.NewTemplate(":host { width: ", "px; }")
type Template struct {
	pieces []string
}

// NewTemplate copies pieces into a new template site. No pieces is treated as
// a single empty piece.
func NewTemplate(pieces ...string) *Template {
	if len(pieces) == 0 {
		return &Template{pieces: []string{""}}
	}
	return &Template{pieces: append([]string(nil), pieces...)}
}

// Pieces returns a copy of the literal pieces.
func (t *Template) Pieces() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.pieces...)
}

// Holes reports how many interpolations the template expects.
func (t *Template) Holes() int {
	if t == nil || len(t.pieces) == 0 {
		return 0
	}
	return len(t.pieces) - 1
}
