package doc

import (
	"reflect"
	"testing"
)

func TestParse_PreservesKeyOrder(t *testing.T) {
	src := []byte(`
paths:
  /zebra: {}
  /alpha: {}
  /middle: {}
`)
	tree, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	paths, ok := tree.Map("paths")
	if !ok {
		t.Fatalf("expected paths mapping")
	}
	want := []string{"/zebra", "/alpha", "/middle"}
	if !reflect.DeepEqual(paths.Keys(), want) {
		t.Fatalf("keys = %v, want %v", paths.Keys(), want)
	}
}

func TestParse_JSONInput(t *testing.T) {
	src := []byte(`{"openapi":"3.0.0","paths":{"/items":{"get":{"operationId":"listItems"}}}}`)
	tree, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := tree.StrOr("openapi", ""); got != "3.0.0" {
		t.Fatalf("openapi = %q", got)
	}
	paths, _ := tree.Map("paths")
	item, _ := paths.Map("/items")
	get, _ := item.Map("get")
	if got := get.StrOr("operationId", ""); got != "listItems" {
		t.Fatalf("operationId = %q", got)
	}
}

func TestParse_RejectsNonMappingRoot(t *testing.T) {
	for _, src := range []string{`[1, 2, 3]`, `"just a string"`, ``} {
		if _, err := Parse([]byte(src)); err == nil {
			t.Errorf("expected error for %q", src)
		}
	}
}

func TestMap_AccessorDefaults(t *testing.T) {
	tree, err := Parse([]byte(`
name: demo
count: 3
enabled: true
ratio: 0.5
nothing: null
tags: [a, b]
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if got := tree.StrOr("name", "fallback"); got != "demo" {
		t.Errorf("StrOr(name) = %q", got)
	}
	if got := tree.StrOr("missing", "fallback"); got != "fallback" {
		t.Errorf("StrOr(missing) = %q", got)
	}
	// Wrong-shaped lookups report absence instead of failing.
	if got := tree.StrOr("count", "fallback"); got != "fallback" {
		t.Errorf("StrOr(count) = %q", got)
	}
	if _, ok := tree.Map("tags"); ok {
		t.Errorf("Map(tags) should not be a mapping")
	}
	if seq, ok := tree.Seq("tags"); !ok || len(seq) != 2 {
		t.Errorf("Seq(tags) = %v, %v", seq, ok)
	}
	if !tree.Has("nothing") {
		t.Errorf("Has(nothing) should be true even for null values")
	}

	v, ok := tree.Get("count")
	if !ok || v.(int64) != 3 {
		t.Errorf("Get(count) = %v, %v", v, ok)
	}
	if v, _ := tree.Get("enabled"); v.(bool) != true {
		t.Errorf("Get(enabled) = %v", v)
	}
	if v, _ := tree.Get("ratio"); v.(float64) != 0.5 {
		t.Errorf("Get(ratio) = %v", v)
	}
}

func TestMap_NilSafety(t *testing.T) {
	var m *Map
	if m.Len() != 0 || m.Has("x") {
		t.Fatalf("nil map should be empty")
	}
	if got := m.StrOr("x", "d"); got != "d" {
		t.Fatalf("nil map StrOr = %q", got)
	}
	if _, ok := m.Map("x"); ok {
		t.Fatalf("nil map Map should report absence")
	}
}
