// Package adopt attaches composed styles to a render root.
package adopt

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-reactive/pkg/dom"
	"github.com/goliatone/go-reactive/pkg/styles"
)

// ErrNoHead is returned when styles target the document but it has no head.
var ErrNoHead = errors.New("adopt: document has no head element")

// SheetAdopter accepts compiled sheets directly, the server-side counterpart
// of adoptedStyleSheets. Roots without one receive <style> elements.
type SheetAdopter interface {
	AdoptSheets(root *html.Node, sheets []*styles.StyleSheet) error
}

// SheetAdopterFunc adapts a function to SheetAdopter.
type SheetAdopterFunc func(root *html.Node, sheets []*styles.StyleSheet) error

// AdoptSheets implements SheetAdopter.
func (fn SheetAdopterFunc) AdoptSheets(root *html.Node, sheets []*styles.StyleSheet) error {
	return fn(root, sheets)
}

// Option configures Styles.
type Option func(*config)

type config struct {
	nonce   string
	adopter SheetAdopter
	log     *zap.Logger
}

// WithNonce sets the CSP nonce written on every generated <style> element.
func WithNonce(nonce string) Option {
	return func(c *config) {
		c.nonce = nonce
	}
}

// WithAdopter hands compiled sheets to adopter instead of writing <style>
// elements.
func WithAdopter(adopter SheetAdopter) Option {
	return func(c *config) {
		c.adopter = adopter
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.log = logger
		}
	}
}

// Styles attaches values to root. A declarative shadow root receives the
// styles itself; any other node sends them to the document head.
//
// With an adopter every value is compiled and adopted in one call. Without
// one, each value becomes a <style> element holding its CSS text.
func Styles(root *html.Node, values []styles.Value, opts ...Option) error {
	if root == nil {
		return fmt.Errorf("adopt: render root is required")
	}
	cfg := config{log: zap.NewNop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	log := cfg.log.Named("adopt")

	target := root
	if !dom.IsShadowRoot(root) {
		target = dom.Head(documentOf(root))
		if target == nil {
			return ErrNoHead
		}
	}

	if cfg.adopter != nil {
		sheets := make([]*styles.StyleSheet, 0, len(values))
		for i, value := range values {
			sheet, err := compile(value)
			if err != nil {
				return fmt.Errorf("adopt: style %d: %w", i, err)
			}
			sheets = append(sheets, sheet)
		}
		log.Debug("adopting sheets", zap.Int("count", len(sheets)))
		return cfg.adopter.AdoptSheets(target, sheets)
	}

	for i, value := range values {
		text, err := cssText(value)
		if err != nil {
			return fmt.Errorf("adopt: style %d: %w", i, err)
		}
		target.AppendChild(styleElement(text, cfg.nonce))
	}
	log.Debug("appended style elements", zap.Int("count", len(values)), zap.Bool("shadow", target == root))
	return nil
}

func compile(value styles.Value) (*styles.StyleSheet, error) {
	switch v := value.(type) {
	case *styles.StyleSheet:
		return v, nil
	case *styles.CSSString:
		return v.StyleSheet()
	default:
		return nil, fmt.Errorf("%w: unsupported style value %T", styles.ErrComposition, value)
	}
}

func cssText(value styles.Value) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%w: nil style value", styles.ErrComposition)
	}
	if fragment, ok := value.(*styles.CSSString); ok && !fragment.Valid() {
		return "", styles.ErrConstruction
	}
	return value.CSSText(), nil
}

func styleElement(text, nonce string) *html.Node {
	el := &html.Node{Type: html.ElementNode, DataAtom: atom.Style, Data: "style"}
	if nonce != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "nonce", Val: nonce})
	}
	el.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return el
}

func documentOf(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}
