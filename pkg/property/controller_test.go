package property_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reactive/pkg/attribute"
	"github.com/goliatone/go-reactive/pkg/property"
)

// recordingElement mimics a DOM element: attribute writes are recorded and
// echoed back to the controller the way attributeChangedCallback would.
type recordingElement struct {
	attrs      map[string]string
	calls      []string
	controller *property.Controller
	echoes     []bool
}

func newRecordingElement() *recordingElement {
	return &recordingElement{attrs: map[string]string{}}
}

func (e *recordingElement) SetAttribute(name, value string) {
	e.attrs[name] = value
	e.calls = append(e.calls, "set "+name+"="+value)
	e.echo(name, attribute.Present(value))
}

func (e *recordingElement) RemoveAttribute(name string) {
	delete(e.attrs, name)
	e.calls = append(e.calls, "remove "+name)
	e.echo(name, attribute.Absent)
}

func (e *recordingElement) echo(name string, attr attribute.Attr) {
	if e.controller == nil {
		return
	}
	applied, _ := e.controller.AttributeChanged(name, attr)
	e.echoes = append(e.echoes, applied)
}

func newController(t *testing.T, options ...property.Option) (*property.Controller, *recordingElement) {
	t.Helper()

	registry := property.NewRegistry()
	for _, opt := range options {
		if err := registry.Register(opt); err != nil {
			t.Fatalf("register %q: %v", opt.Name, err)
		}
	}
	element := newRecordingElement()
	controller, err := property.NewController(registry, element)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	element.controller = controller
	return controller, element
}

func TestController_SetRunsHooksInOrder(t *testing.T) {
	var trace []string
	controller, element := newController(t, property.Option{
		Name:    "label",
		Type:    attribute.String,
		Reflect: true,
		Validate: func(value any) bool {
			trace = append(trace, "validate:"+value.(string))
			return true
		},
		Sanitize: func(value any) any {
			trace = append(trace, "sanitize:"+value.(string))
			return strings.TrimSpace(value.(string))
		},
		Serialize: func(value any) any {
			trace = append(trace, "serialize:"+value.(string))
			return strings.ToUpper(value.(string))
		},
	})

	ok, err := controller.Set("label", "  hello ")
	if err != nil || !ok {
		t.Fatalf("set: ok=%v err=%v", ok, err)
	}

	wantTrace := []string{"validate:  hello ", "sanitize:  hello ", "serialize:hello"}
	if diff := cmp.Diff(wantTrace, trace); diff != "" {
		t.Fatalf("hook order mismatch (-want +got):\n%s", diff)
	}
	if got, _ := controller.Get("label"); got != "hello" {
		t.Fatalf("expected sanitized value stored, got %#v", got)
	}
	if diff := cmp.Diff(map[string]string{"label": "HELLO"}, element.attrs); diff != "" {
		t.Fatalf("attribute mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false}, element.echoes); diff != "" {
		t.Fatalf("expected the reflected write to be ignored (-want +got):\n%s", diff)
	}
}

func TestController_ValidationRejectsWrite(t *testing.T) {
	controller, element := newController(t, property.Option{
		Name:     "size",
		Type:     attribute.Number,
		Reflect:  true,
		Validate: property.MustValidateTag("min=1,max=10"),
	})

	ok, err := controller.Set("size", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected validator to reject the write")
	}
	if _, stored := controller.Get("size"); stored {
		t.Fatalf("rejected value must not be stored")
	}
	if len(element.calls) != 0 {
		t.Fatalf("rejected value must not touch attributes: %v", element.calls)
	}

	if ok, err := controller.Set("size", 4); !ok || err != nil {
		t.Fatalf("expected valid write, ok=%v err=%v", ok, err)
	}
	if element.attrs["size"] != "4" {
		t.Fatalf("expected reflected attribute, got %v", element.attrs)
	}
}

func TestController_BooleanReflectionTogglesPresence(t *testing.T) {
	controller, element := newController(t, property.Option{
		Name:    "disabled",
		Type:    attribute.Boolean,
		Reflect: true,
	})

	if _, err := controller.Set("disabled", true); err != nil {
		t.Fatalf("set true: %v", err)
	}
	if _, err := controller.Set("disabled", false); err != nil {
		t.Fatalf("set false: %v", err)
	}

	want := []string{"set disabled=" + attribute.BooleanMarker, "remove disabled"}
	if diff := cmp.Diff(want, element.calls); diff != "" {
		t.Fatalf("attribute calls mismatch (-want +got):\n%s", diff)
	}
}

func TestController_NonReflectingPropertyLeavesAttributes(t *testing.T) {
	controller, element := newController(t,
		property.Option{Name: "count", Type: attribute.Number},
		property.Option{Name: "open", Type: attribute.Boolean, Reflect: true, State: property.On()},
	)

	if _, err := controller.Set("count", 3); err != nil {
		t.Fatalf("set count: %v", err)
	}
	if _, err := controller.Set("open", true); err != nil {
		t.Fatalf("set open: %v", err)
	}
	if len(element.calls) != 0 {
		t.Fatalf("expected no attribute writes, got %v", element.calls)
	}
}

func TestController_AttributeChangedPipeline(t *testing.T) {
	var trace []string
	controller, element := newController(t, property.Option{
		Name:      "items",
		Type:      attribute.Array,
		Attribute: property.Named("data-items"),
		Reflect:   true,
		Deserialize: func(value any) any {
			trace = append(trace, "deserialize")
			items := value.([]any)
			out := make([]string, 0, len(items))
			for _, item := range items {
				out = append(out, item.(string))
			}
			return out
		},
		Validate: func(value any) bool {
			trace = append(trace, "validate")
			_, ok := value.([]string)
			return ok
		},
		Sanitize: func(value any) any {
			trace = append(trace, "sanitize")
			return value
		},
	})

	ok, err := controller.AttributeChanged("DATA-ITEMS", attribute.Present(`["a","b"]`))
	if err != nil || !ok {
		t.Fatalf("attribute changed: ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff([]string{"deserialize", "validate", "sanitize"}, trace); diff != "" {
		t.Fatalf("hook order mismatch (-want +got):\n%s", diff)
	}
	got, _ := controller.Get("items")
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("stored value mismatch (-want +got):\n%s", diff)
	}
	if len(element.calls) != 0 {
		t.Fatalf("attribute changes must not be written back, got %v", element.calls)
	}
}

func TestController_AttributeChangedIgnoresUnobserved(t *testing.T) {
	controller, _ := newController(t, property.Option{Name: "hidden", Type: attribute.Boolean, Attribute: property.Off()})

	ok, err := controller.AttributeChanged("hidden", attribute.Present(""))
	if err != nil || ok {
		t.Fatalf("expected unobserved attribute to be ignored, ok=%v err=%v", ok, err)
	}
}

func TestController_AttributeRemovalStoresNil(t *testing.T) {
	controller, _ := newController(t, property.Option{Name: "size", Type: attribute.Number})

	if ok, err := controller.AttributeChanged("size", attribute.Present("12")); !ok || err != nil {
		t.Fatalf("attribute changed: ok=%v err=%v", ok, err)
	}
	if got, _ := controller.Get("size"); got != float64(12) {
		t.Fatalf("expected numeric value, got %#v", got)
	}
	if ok, err := controller.AttributeChanged("size", attribute.Absent); !ok || err != nil {
		t.Fatalf("attribute removed: ok=%v err=%v", ok, err)
	}
	if got, stored := controller.Get("size"); !stored || got != nil {
		t.Fatalf("expected nil after removal, got %#v", got)
	}
}

func TestController_ConversionErrorsSurface(t *testing.T) {
	controller, _ := newController(t,
		property.Option{Name: "mystery", Reflect: true},
		property.Option{Name: "config", Type: attribute.Object},
	)

	ok, err := controller.Set("mystery", "value")
	if !errors.Is(err, attribute.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if !ok {
		t.Fatalf("value is stored before reflection fails")
	}
	if got, _ := controller.Get("mystery"); got != "value" {
		t.Fatalf("expected value to be kept, got %#v", got)
	}

	if _, err := controller.AttributeChanged("config", attribute.Present("{broken")); !errors.Is(err, attribute.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if _, stored := controller.Get("config"); stored {
		t.Fatalf("failed conversion must not store a value")
	}
}

func TestController_CustomConverter(t *testing.T) {
	csv := attribute.NewConverter(
		func(value any, _ attribute.Hint) (attribute.Attr, error) {
			return attribute.Present(strings.Join(value.([]string), ",")), nil
		},
		func(attr attribute.Attr, _ attribute.Hint) (any, error) {
			if attr.Empty() {
				return []string(nil), nil
			}
			return strings.Split(attr.Value, ","), nil
		},
	)
	controller, element := newController(t, property.Option{
		Name:      "tags",
		Type:      attribute.Array,
		Converter: &csv,
		Reflect:   true,
	})

	if _, err := controller.Set("tags", []string{"a", "b"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if element.attrs["tags"] != "a,b" {
		t.Fatalf("expected custom encoding, got %v", element.attrs)
	}

	element.controller = nil
	if _, err := controller.AttributeChanged("tags", attribute.Present("x,y,z")); err != nil {
		t.Fatalf("attribute changed: %v", err)
	}
	got, _ := controller.Get("tags")
	if diff := cmp.Diff([]string{"x", "y", "z"}, got); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}
}

func TestController_InitSeedsDefaults(t *testing.T) {
	controller, element := newController(t,
		property.Option{Name: "open", Type: attribute.Boolean, Default: property.On(), Reflect: true},
		property.Option{Name: "size", Type: attribute.Number, Default: property.Named("3")},
		property.Option{Name: "label", Type: attribute.String},
	)

	if err := controller.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	want := property.Values{"open": true, "size": float64(3)}
	if diff := cmp.Diff(want, controller.Values()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if element.attrs["open"] != attribute.BooleanMarker {
		t.Fatalf("expected reflected default, got %v", element.attrs)
	}
}

func TestController_UnknownProperty(t *testing.T) {
	controller, _ := newController(t)
	if _, err := controller.Set("missing", 1); !errors.Is(err, property.ErrUnknownProperty) {
		t.Fatalf("expected ErrUnknownProperty, got %v", err)
	}
}

func TestController_DetachedSkipsReflection(t *testing.T) {
	registry := property.NewRegistry()
	registry.MustRegister(property.Option{Name: "open", Type: attribute.Boolean, Reflect: true})
	controller, err := property.NewController(registry, nil)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	if ok, err := controller.Set("open", true); !ok || err != nil {
		t.Fatalf("set: ok=%v err=%v", ok, err)
	}
	if _, err := property.NewController(nil, nil); err == nil {
		t.Fatalf("expected nil registry to be rejected")
	}
}
