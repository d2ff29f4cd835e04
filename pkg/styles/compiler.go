package styles

import (
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Compiler turns processed CSS text into a StyleSheet. Implementations must
// be synchronous and safe for concurrent use.
type Compiler interface {
	Compile(text string) (*StyleSheet, error)
}

// CompilerFunc adapts a function to the Compiler interface.
type CompilerFunc func(text string) (*StyleSheet, error)

// Compile implements Compiler.
func (fn CompilerFunc) Compile(text string) (*StyleSheet, error) {
	return fn(text)
}

// ParserCompilerOption configures a ParserCompiler.
type ParserCompilerOption func(*ParserCompiler)

// WithCompilerLogger attaches a logger for parse diagnostics.
func WithCompilerLogger(logger *zap.Logger) ParserCompilerOption {
	return func(c *ParserCompiler) {
		if logger != nil {
			c.log = logger.Named("css-compiler")
		}
	}
}

// ParserCompiler compiles CSS with the tdewolff CSS grammar parser.
type ParserCompiler struct {
	log *zap.Logger
}

var _ Compiler = (*ParserCompiler)(nil)

// NewParserCompiler creates the default compiler.
func NewParserCompiler(options ...ParserCompilerOption) *ParserCompiler {
	c := &ParserCompiler{log: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Compile parses text into rules. Parse errors other than end of input are
// returned as *CompileError.
func (c *ParserCompiler) Compile(text string) (*StyleSheet, error) {
	parser := css.NewParser(parse.NewInput(strings.NewReader(text)), false)

	rules, decls, err := c.block(parser, false)
	if err != nil {
		return nil, err
	}
	if len(decls) > 0 {
		c.log.Debug("dropping top-level declarations", zap.Int("count", len(decls)))
	}

	c.log.Debug("compiled stylesheet", zap.Int("bytes", len(text)), zap.Int("rules", len(rules)))
	return &StyleSheet{rules: rules}, nil
}

func (c *ParserCompiler) block(parser *css.Parser, nested bool) ([]Rule, []Declaration, error) {
	var (
		rules []Rule
		decls []Declaration
	)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, nil, &CompileError{Err: err}
			}
			return rules, decls, nil

		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			if nested {
				return rules, decls, nil
			}

		case css.AtRuleGrammar:
			rules = append(rules, Rule{
				Selector: string(data),
				Prelude:  joinTokens(parser.Values()),
			})

		case css.BeginAtRuleGrammar:
			rule := Rule{
				Selector: string(data),
				Prelude:  joinTokens(parser.Values()),
				Block:    true,
			}
			inner, innerDecls, err := c.block(parser, true)
			if err != nil {
				return nil, nil, err
			}
			rule.Rules = inner
			rule.Declarations = innerDecls
			rules = append(rules, rule)

		case css.BeginRulesetGrammar:
			selector := selectorList(data, parser.Values())
			_, body, err := c.block(parser, true)
			if err != nil {
				return nil, nil, err
			}
			rules = append(rules, Rule{
				Selector:     selector,
				Declarations: body,
				Block:        true,
			})

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			decls = append(decls, newDeclaration(string(data), parser.Values()))
		}
	}
}

func newDeclaration(property string, values []css.Token) Declaration {
	decl := Declaration{Property: strings.TrimSpace(property)}
	value := joinTokens(values)
	if idx := strings.LastIndex(strings.ToLower(value), "!important"); idx >= 0 && strings.TrimSpace(value[idx+len("!important"):]) == "" {
		decl.Important = true
		value = strings.TrimSpace(value[:idx])
	}
	decl.Value = value
	return decl
}

// selectorList joins the selectors of a ruleset prelude with ", ". Commas
// nested in functions, parentheses or attribute brackets stay put.
func selectorList(data []byte, tokens []css.Token) string {
	var (
		parts []string
		b     strings.Builder
		depth int
	)
	b.Write(data)
	flush := func() {
		if part := strings.TrimSpace(b.String()); part != "" {
			parts = append(parts, part)
		}
		b.Reset()
	}
	for _, token := range tokens {
		switch token.TokenType {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.CommaToken:
			if depth == 0 {
				flush()
				continue
			}
		}
		b.Write(token.Data)
	}
	flush()
	return strings.Join(parts, ", ")
}

func joinTokens(tokens []css.Token) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, token := range tokens {
		b.Write(token.Data)
	}
	return strings.TrimSpace(b.String())
}
