package component_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reactive/pkg/attribute"
	"github.com/goliatone/go-reactive/pkg/component"
	"github.com/goliatone/go-reactive/pkg/dom"
	"github.com/goliatone/go-reactive/pkg/property"
	"github.com/goliatone/go-reactive/pkg/styles"
	"github.com/goliatone/go-reactive/pkg/testsupport"
)

var counterStyles = styles.NewTemplate(":host { display: inline-block; }")

func counterRegistry() *property.Registry {
	registry := property.NewRegistry()
	registry.MustRegister(
		property.Option{Name: "count", Type: attribute.Number, Reflect: true, Default: property.Named("1")},
		property.Option{Name: "open", Type: attribute.Boolean, Reflect: true},
		property.Option{Name: "items", Type: attribute.Array, Attribute: property.Named("data-items")},
	)
	return registry
}

func TestDefinition_MountSeedsDefaultsAndMarkupWins(t *testing.T) {
	def, err := component.Define("x-counter", counterRegistry(),
		component.WithStyles(styles.MustCSS(counterStyles)),
		component.WithShadowRoot("open"),
		component.WithNonce("n0nce"),
	)
	if err != nil {
		t.Fatalf("define: %v", err)
	}

	doc := testsupport.MustParseDocument(t, `<html><head></head><body><x-counter open="true" data-items='["a"]'></x-counter><x-counter count="7"></x-counter></body></html>`)
	instances, err := def.MountAll(doc)
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if len(instances) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(instances))
	}

	first := instances[0].Values()
	want := property.Values{"count": float64(1), "open": true, "items": []any{"a"}}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("first instance mismatch (-want +got):\n%s", diff)
	}
	if got := instances[0].Element().GetAttribute("count").Value; got != "1" {
		t.Fatalf("expected reflected default, got %q", got)
	}
	if got, _ := instances[1].Get("count"); got != float64(7) {
		t.Fatalf("markup attribute should override the default, got %#v", got)
	}
	if got := instances[1].Element().GetAttribute("count").Value; got != "7" {
		t.Fatalf("markup attribute should survive mounting, got %q", got)
	}

	out := testsupport.MustRender(t, instances[1].Element().Node())
	wantMarkup := `<x-counter count="7"><template shadowrootmode="open"><style nonce="n0nce">:host { display: inline-block; }</style></template></x-counter>`
	if out != wantMarkup {
		t.Fatalf("markup mismatch\nwant: %s\n got: %s", wantMarkup, out)
	}
}

func TestInstance_AttributeAndPropertyFlow(t *testing.T) {
	def, err := component.Define("x-counter", counterRegistry())
	if err != nil {
		t.Fatalf("define: %v", err)
	}
	doc, _ := dom.ParseString(`<x-counter></x-counter>`)
	inst, err := def.Mount(dom.FindAll(doc, "x-counter")[0])
	if err != nil {
		t.Fatalf("mount: %v", err)
	}

	if err := inst.SetAttribute("count", "12"); err != nil {
		t.Fatalf("set attribute: %v", err)
	}
	if got, _ := inst.Get("count"); got != float64(12) {
		t.Fatalf("count = %#v", got)
	}

	if _, err := inst.Set("open", true); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !inst.Element().HasAttribute("open") {
		t.Fatalf("expected reflected boolean attribute")
	}
	if err := inst.RemoveAttribute("open"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got, _ := inst.Get("open"); got != nil {
		t.Fatalf("expected nil after removal, got %#v", got)
	}

	if err := inst.SetAttribute("data-items", "{oops"); !errors.Is(err, attribute.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if inst.RenderRoot() != inst.Element().Node() {
		t.Fatalf("light DOM instances render into the host")
	}
}

func TestDefinition_LightDOMStylesGoToHeadOnce(t *testing.T) {
	def, err := component.Define("x-counter", counterRegistry(), component.WithStyles(styles.MustCSS(counterStyles)))
	if err != nil {
		t.Fatalf("define: %v", err)
	}
	doc, _ := dom.ParseString(`<html><head></head><body><x-counter></x-counter><x-counter></x-counter></body></html>`)
	if _, err := def.MountAll(doc); err != nil {
		t.Fatalf("mount: %v", err)
	}
	if got := len(dom.FindAll(dom.Head(doc), "style")); got != 1 {
		t.Fatalf("expected a single head style, got %d", got)
	}
}

func TestDefine_Errors(t *testing.T) {
	if _, err := component.Define("counter", nil); err == nil {
		t.Fatalf("expected invalid tag to fail")
	}
	if _, err := component.Define("x-a", nil, component.WithShadowRoot("half")); err == nil {
		t.Fatalf("expected invalid shadow mode to fail")
	}

	def, err := component.Define("x-a", nil)
	if err != nil {
		t.Fatalf("define: %v", err)
	}
	doc, _ := dom.ParseString(`<x-b></x-b>`)
	if _, err := def.Mount(dom.FindAll(doc, "x-b")[0]); err == nil || !strings.Contains(err.Error(), "cannot mount") {
		t.Fatalf("expected tag mismatch error, got %v", err)
	}
}
