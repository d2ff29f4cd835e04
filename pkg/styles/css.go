package styles

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-reactive/internal/numfmt"
)

// capability gates construction. Only CSS and UnsafeCSS hold the sanctioned
// pointer, so a CSSString built any other way can be told apart.
type capability struct{ _ byte }

var sanctioned = &capability{}

// Value is the union of the things a render root can adopt: a CSSString or
// a compiled StyleSheet.
type Value interface {
	// CSSText returns the CSS source the value stands for.
	CSSText() string
	cssValue()
}

// CSSString is a trusted CSS fragment. The text never changes after
// construction; only the variable table and the memoised stylesheet do.
type CSSString struct {
	token  *capability
	text   string
	source *Template

	mu        sync.Mutex
	variables []variable
	sheet     *StyleSheet
}

type variable struct {
	name  string
	value string
}

var _ Value = (*CSSString)(nil)

func newCSSString(text string, source *Template) *CSSString {
	return &CSSString{token: sanctioned, text: text, source: source}
}

// CSS composes a fragment from a template site and its interpolations. A
// single-piece template yields its piece verbatim and is cacheable by template
// identity. Otherwise every value must be a fragment produced by CSS or
// UnsafeCSS, or a number; anything else fails with a *CompositionError.
func CSS(tpl *Template, values ...any) (*CSSString, error) {
	if tpl == nil || len(tpl.pieces) == 0 {
		return nil, &CompositionError{Index: -1, Reason: "template is nil"}
	}
	if len(values) != tpl.Holes() {
		return nil, &CompositionError{
			Index:  -1,
			Reason: fmt.Sprintf("template expects %d values, got %d", tpl.Holes(), len(values)),
		}
	}
	if len(tpl.pieces) == 1 {
		return newCSSString(tpl.pieces[0], tpl), nil
	}

	var b strings.Builder
	b.WriteString(tpl.pieces[0])
	for idx, value := range values {
		switch v := value.(type) {
		case *CSSString:
			if !v.sanctioned() {
				return nil, fmt.Errorf("styles: value %d: %w", idx, ErrConstruction)
			}
			b.WriteString(v.text)
		default:
			number, ok := numfmt.Format(value)
			if !ok {
				return nil, &CompositionError{Index: idx, Value: value}
			}
			b.WriteString(number)
		}
		b.WriteString(tpl.pieces[idx+1])
	}
	return newCSSString(b.String(), nil), nil
}

// MustCSS panics when CSS fails. Useful for package-level style declarations.
func MustCSS(tpl *Template, values ...any) *CSSString {
	fragment, err := CSS(tpl, values...)
	if err != nil {
		panic(err)
	}
	return fragment
}

// UnsafeCSS wraps the string form of value as a trusted fragment without any
// check. The caller owns the trust decision. nil wraps as an empty fragment.
func UnsafeCSS(value any) *CSSString {
	return newCSSString(stringify(value), nil)
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *CSSString:
		return v.String()
	case fmt.Stringer:
		return v.String()
	}
	if number, ok := numfmt.Format(value); ok {
		return number
	}
	return fmt.Sprint(value)
}

func (s *CSSString) sanctioned() bool {
	return s != nil && s.token == sanctioned
}

// Valid reports whether s was built by CSS or UnsafeCSS.
func (s *CSSString) Valid() bool { return s.sanctioned() }

// SetVariable records a substitution for every var(--name) token. The leading
// "--" is optional. Variables only affect the first compilation; once the
// stylesheet is memoised later calls are recorded but not applied.
func (s *CSSString) SetVariable(name, value string) error {
	if !s.sanctioned() {
		return ErrConstruction
	}
	name = strings.TrimPrefix(strings.TrimSpace(name), "--")
	if name == "" {
		return fmt.Errorf("styles: variable name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for idx := range s.variables {
		if s.variables[idx].name == name {
			s.variables[idx].value = value
			return nil
		}
	}
	s.variables = append(s.variables, variable{name: name, value: value})
	return nil
}

// Variables returns a copy of the pending substitutions.
func (s *CSSString) Variables() map[string]string {
	if !s.sanctioned() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.variables) == 0 {
		return nil
	}
	out := make(map[string]string, len(s.variables))
	for _, v := range s.variables {
		out[v.name] = v.value
	}
	return out
}

// Cacheable reports whether the compiled stylesheet is shared through the
// template cache, which only holds for single-piece templates.
func (s *CSSString) Cacheable() bool {
	return s.sanctioned() && s.source != nil
}

// StyleSheet compiles the fragment on first use and memoises the result.
//
// Cacheable fragments share one sheet per template, and a compile with
// substituted variables republishes that entry. A variable-free fragment of
// the same template compiled afterwards therefore receives the substituted
// sheet, not its own text.
func (s *CSSString) StyleSheet() (*StyleSheet, error) {
	if !s.sanctioned() {
		return nil, ErrConstruction
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sheet != nil {
		return s.sheet, nil
	}

	processed := s.text
	for _, v := range s.variables {
		processed = strings.ReplaceAll(processed, "var(--"+v.name+")", v.value)
	}

	cfg := current()
	var (
		sheet *StyleSheet
		err   error
	)
	if s.source != nil {
		var hit bool
		sheet, hit, err = sharedCache.resolve(s.source, processed, processed != s.text, cfg.compiler)
		if err == nil {
			cfg.logger.Debug("stylesheet resolved", zap.Bool("cache_hit", hit), zap.Int("bytes", len(processed)))
		}
	} else {
		sheet, err = cfg.compiler.Compile(processed)
	}
	if err != nil {
		return nil, err
	}

	s.sheet = sheet
	return sheet, nil
}

// String returns the raw composed text, before variable substitution. A
// forged value renders as an empty string.
func (s *CSSString) String() string {
	if !s.sanctioned() {
		return ""
	}
	return s.text
}

// CSSText implements Value.
func (s *CSSString) CSSText() string { return s.String() }

func (*CSSString) cssValue() {}
