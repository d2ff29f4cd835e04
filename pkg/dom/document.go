package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// ShadowRootAttr marks a declarative shadow root template.
const ShadowRootAttr = "shadowrootmode"

// Parse reads an HTML document. contentType may carry a charset parameter;
// when empty the encoding is sniffed from the content.
func Parse(r io.Reader, contentType string) (*html.Node, error) {
	decoded, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("dom: detect charset: %w", err)
	}
	doc, err := html.Parse(decoded)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return doc, nil
}

// ParseString parses a UTF-8 document.
func ParseString(markup string) (*html.Node, error) {
	return Parse(strings.NewReader(markup), "text/html; charset=utf-8")
}

// Render serialises node and its descendants.
func Render(node *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, node); err != nil {
		return "", fmt.Errorf("dom: render: %w", err)
	}
	return buf.String(), nil
}

// FindAll returns every element below root with the given tag, in document
// order. Custom element names match case-insensitively.
func FindAll(root *html.Node, tag string) []*html.Node {
	tag = strings.ToLower(tag)
	var out []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && strings.ToLower(n.Data) == tag {
			out = append(out, n)
		}
	})
	return out
}

// Head returns the document head element, or nil.
func Head(root *html.Node) *html.Node {
	var head *html.Node
	walk(root, func(n *html.Node) {
		if head == nil && n.Type == html.ElementNode && n.DataAtom == atom.Head {
			head = n
		}
	})
	return head
}

// IsShadowRoot reports whether n is a declarative shadow root template.
func IsShadowRoot(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode || n.DataAtom != atom.Template {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == ShadowRootAttr {
			return true
		}
	}
	return false
}

// ShadowRoot returns the declarative shadow root of host, or nil.
func ShadowRoot(host *html.Node) *html.Node {
	if host == nil {
		return nil
	}
	for c := host.FirstChild; c != nil; c = c.NextSibling {
		if IsShadowRoot(c) {
			return c
		}
	}
	return nil
}

// AttachShadow returns the existing shadow root of host or prepends a new
// one with the given mode ("open" or "closed").
func AttachShadow(host *html.Node, mode string) (*html.Node, error) {
	if host == nil || host.Type != html.ElementNode {
		return nil, fmt.Errorf("dom: shadow host must be an element")
	}
	if root := ShadowRoot(host); root != nil {
		return root, nil
	}
	switch mode {
	case "open", "closed":
	default:
		return nil, fmt.Errorf("dom: invalid shadow root mode %q", mode)
	}
	root := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Template,
		Data:     "template",
		Attr:     []html.Attribute{{Key: ShadowRootAttr, Val: mode}},
	}
	host.InsertBefore(root, host.FirstChild)
	return root, nil
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

func walk(n *html.Node, visit func(*html.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}
