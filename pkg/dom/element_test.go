package dom_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reactive/pkg/attribute"
	"github.com/goliatone/go-reactive/pkg/dom"
)

type change struct {
	Name string
	Attr attribute.Attr
}

func mustElement(t *testing.T, markup, tag string) *dom.Element {
	t.Helper()
	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	nodes := dom.FindAll(doc, tag)
	if len(nodes) == 0 {
		t.Fatalf("no <%s> in markup", tag)
	}
	el, err := dom.Wrap(nodes[0])
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	return el
}

func TestElement_AttributeSurface(t *testing.T) {
	el := mustElement(t, `<x-card Size="2" open></x-card>`, "x-card")

	if got := el.GetAttribute("size"); got != attribute.Present("2") {
		t.Fatalf("GetAttribute(size) = %+v", got)
	}
	if got := el.GetAttribute("OPEN"); got != attribute.Present("") {
		t.Fatalf("GetAttribute(open) = %+v", got)
	}
	if el.HasAttribute("missing") {
		t.Fatalf("unexpected attribute")
	}

	el.SetAttribute("size", "3")
	el.SetAttribute("Data-Label", "hi")
	el.RemoveAttribute("open")

	var got []string
	for _, a := range el.Attributes() {
		got = append(got, a.Key+"="+a.Val)
	}
	if diff := cmp.Diff([]string{"size=3", "data-label=hi"}, got); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
	if el.TagName() != "x-card" {
		t.Fatalf("TagName = %q", el.TagName())
	}
}

func TestElement_ObserverIsSynchronous(t *testing.T) {
	el := mustElement(t, `<x-card></x-card>`, "x-card")

	var changes []change
	el.Observe(func(name string, attr attribute.Attr) {
		changes = append(changes, change{name, attr})
	}, "size", "open")
	if !el.Observes("SIZE") || el.Observes("title") {
		t.Fatalf("unexpected observed attribute set")
	}

	el.SetAttribute("size", "1")
	el.SetAttribute("title", "ignored")
	el.RemoveAttribute("open")
	el.SetAttribute("OPEN", "")
	el.RemoveAttribute("open")

	want := []change{
		{"size", attribute.Present("1")},
		{"open", attribute.Present("")},
		{"open", attribute.Absent},
	}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Fatalf("observed changes mismatch (-want +got):\n%s", diff)
	}

	el.Observe(nil)
	if el.Observes("size") {
		t.Fatalf("expected no observed attributes after Observe(nil)")
	}
	el.SetAttribute("size", "9")
	if len(changes) != len(want) {
		t.Fatalf("expected observation to stop")
	}
}

func TestWrap_RejectsNonElements(t *testing.T) {
	doc, err := dom.ParseString(`<p>text</p>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := dom.Wrap(doc); err == nil {
		t.Fatalf("expected document node to be rejected")
	}
	if _, err := dom.Wrap(nil); err == nil {
		t.Fatalf("expected nil node to be rejected")
	}
}

func TestShadowRoots(t *testing.T) {
	doc, err := dom.ParseString(`<html><head></head><body><x-a><template shadowrootmode="open"><p>in</p></template></x-a><x-b><span>light</span></x-b></body></html>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	a := dom.FindAll(doc, "x-a")[0]
	b := dom.FindAll(doc, "x-b")[0]

	root := dom.ShadowRoot(a)
	if root == nil || !dom.IsShadowRoot(root) {
		t.Fatalf("expected declarative shadow root on x-a")
	}
	if dom.Text(root) != "in" {
		t.Fatalf("shadow text = %q", dom.Text(root))
	}
	if dom.ShadowRoot(b) != nil {
		t.Fatalf("x-b has no shadow root")
	}

	attached, err := dom.AttachShadow(b, "open")
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if again, _ := dom.AttachShadow(b, "open"); again != attached {
		t.Fatalf("expected AttachShadow to reuse the existing root")
	}
	if _, err := dom.AttachShadow(a, "sideways"); err != nil {
		t.Fatalf("existing root should be returned regardless of mode: %v", err)
	}
	if _, err := dom.AttachShadow(dom.FindAll(doc, "span")[0], "sideways"); err == nil {
		t.Fatalf("expected invalid mode to fail")
	}

	dom.SetText(attached, "x")
	out, err := dom.Render(b)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, `<x-b><template shadowrootmode="open">x</template><span>light</span>`) {
		t.Fatalf("unexpected markup %q", out)
	}
	if dom.Head(doc) == nil {
		t.Fatalf("expected head element")
	}
}

func TestParse_DecodesDeclaredCharset(t *testing.T) {
	latin1 := "<p>caf\xe9</p>"
	doc, err := dom.Parse(strings.NewReader(latin1), "text/html; charset=iso-8859-1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := dom.Text(dom.FindAll(doc, "p")[0]); got != "café" {
		t.Fatalf("decoded text = %q", got)
	}
}
