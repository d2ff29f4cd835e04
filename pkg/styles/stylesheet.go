package styles

import "strings"

// StyleSheet is a compiled fragment: the rule list a render root adopts.
// Instances are immutable and shared between fragments of the same template.
type StyleSheet struct {
	rules []Rule
}

var _ Value = (*StyleSheet)(nil)

// NewStyleSheet builds a stylesheet from already parsed rules. Compilers use
// it to hand back their result.
func NewStyleSheet(rules []Rule) *StyleSheet {
	return &StyleSheet{rules: cloneRules(rules)}
}

// Rules returns a copy of the top-level rules.
func (s *StyleSheet) Rules() []Rule {
	if s == nil {
		return nil
	}
	return cloneRules(s.rules)
}

// Len reports the number of top-level rules.
func (s *StyleSheet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// CSSText serialises every rule, one per line.
func (s *StyleSheet) CSSText() string {
	if s == nil || len(s.rules) == 0 {
		return ""
	}
	texts := make([]string, 0, len(s.rules))
	for _, rule := range s.rules {
		texts = append(texts, rule.CSSText())
	}
	return strings.Join(texts, "\n")
}

func (*StyleSheet) cssValue() {}

// Rule is a style rule (Selector plus Declarations) or an at-rule (Selector
// holds the at-keyword, Prelude the rest). Block at-rules carry nested Rules
// and, for descriptors such as @font-face, Declarations.
type Rule struct {
	Selector     string
	Prelude      string
	Declarations []Declaration
	Rules        []Rule
	Block        bool
}

// Declaration is a single property: value pair.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// AtRule reports whether the rule starts with an at-keyword.
func (r Rule) AtRule() bool {
	return strings.HasPrefix(r.Selector, "@")
}

// CSSText serialises the rule in the browser's cssText shape.
func (r Rule) CSSText() string {
	var b strings.Builder
	b.WriteString(r.Selector)
	if r.Prelude != "" {
		b.WriteByte(' ')
		b.WriteString(r.Prelude)
	}
	if r.AtRule() && !r.Block {
		b.WriteByte(';')
		return b.String()
	}

	b.WriteString(" {")
	for _, decl := range r.Declarations {
		b.WriteByte(' ')
		b.WriteString(decl.CSSText())
	}
	for _, nested := range r.Rules {
		b.WriteByte(' ')
		b.WriteString(nested.CSSText())
	}
	b.WriteString(" }")
	return b.String()
}

// CSSText serialises the declaration with its trailing semicolon.
func (d Declaration) CSSText() string {
	text := d.Property + ": " + d.Value
	if d.Important {
		text += " !important"
	}
	return text + ";"
}

func cloneRules(rules []Rule) []Rule {
	if len(rules) == 0 {
		return nil
	}
	out := make([]Rule, len(rules))
	for idx, rule := range rules {
		out[idx] = rule
		if len(rule.Declarations) > 0 {
			out[idx].Declarations = append([]Declaration(nil), rule.Declarations...)
		}
		out[idx].Rules = cloneRules(rule.Rules)
	}
	return out
}
