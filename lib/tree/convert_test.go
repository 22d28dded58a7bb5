package tree

import (
	"reflect"
	"testing"
	"time"
)

type settings struct {
	Theme   string        `json:"theme"`
	Retries int           `json:"retries"`
	Timeout time.Duration `json:"timeout"`
	Secret  string        `json:"-"`
	Nested  struct {
		Enabled bool `json:"enabled"`
	} `json:"nested"`
}

func TestFromValue(t *testing.T) {
	s := settings{Theme: "dark", Retries: 3, Secret: "x"}
	s.Nested.Enabled = true

	m, err := FromValue(&s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m["theme"] != "dark" || m["retries"] != 3 {
		t.Errorf("unexpected record: %v", m)
	}
	if _, ok := m["Secret"]; ok {
		t.Errorf("skipped field must not appear")
	}
	if v, ok := Walk(m, []string{"nested", "enabled"}); !ok || v != true {
		t.Errorf("expected nested struct to become a map, got %v", m["nested"])
	}

	if _, err := FromValue(42); err == nil {
		t.Errorf("expected an error for a non record value")
	}
}

func TestFromValueNested(t *testing.T) {
	type item struct {
		Name string `json:"name"`
	}
	type list struct {
		Items []item         `json:"items"`
		Tags  map[string]int `json:"tags"`
		Next  *item          `json:"next"`
		Prev  *item          `json:"prev"`
	}

	m, err := FromValue(list{
		Items: []item{{Name: "a"}, {Name: "b"}},
		Tags:  map[string]int{"x": 1},
		Next:  &item{Name: "c"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := Walk(m, []string{"items", "1", "name"}); !ok || v != "b" {
		t.Errorf("expected slice of structs to become a tree, got %v", m["items"])
	}
	if v, ok := Walk(m, []string{"tags", "x"}); !ok || v != 1 {
		t.Errorf("expected typed map to become a tree, got %v", m["tags"])
	}
	if v, ok := Walk(m, []string{"next", "name"}); !ok || v != "c" {
		t.Errorf("expected pointer to struct to become a tree, got %v", m["next"])
	}
	if v, ok := m["prev"]; !ok || v != nil {
		t.Errorf("expected nil pointer to become nil, got %v", v)
	}

	empty, err := FromValue(nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("expected empty record for nil, got %v (%v)", empty, err)
	}
}

func TestFromValueLeavesInputUntouched(t *testing.T) {
	type point struct {
		X int `json:"x"`
	}
	nested := map[string]any{"p": point{X: 1}}
	list := []any{point{X: 2}}
	input := map[string]any{"nested": nested, "list": list}

	m, err := FromValue(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := nested["p"].(point); !ok {
		t.Errorf("input map was modified: %#v", nested["p"])
	}
	if _, ok := list[0].(point); !ok {
		t.Errorf("input slice was modified: %#v", list[0])
	}
	if v, ok := Walk(m, []string{"nested", "p", "x"}); !ok || v != 1 {
		t.Errorf("expected converted copy, got %v", m["nested"])
	}
	if v, ok := Walk(m, []string{"list", "0", "x"}); !ok || v != 2 {
		t.Errorf("expected converted copy, got %v", m["list"])
	}

	m["extra"] = true
	if _, ok := input["extra"]; ok {
		t.Errorf("result must not share the top level map with the input")
	}
}

func TestDecode(t *testing.T) {
	var s settings
	err := Decode(map[string]any{
		"theme":   "light",
		"retries": "5",
		"timeout": "2s",
		"nested":  map[string]any{"enabled": true},
	}, &s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Theme != "light" || s.Retries != 5 || s.Timeout != 2*time.Second || !s.Nested.Enabled {
		t.Errorf("unexpected decode result: %+v", s)
	}
}

func TestParseJSONObject(t *testing.T) {
	keys, values, err := ParseJSONObject([]byte(`{"b": 1, "a": {"x": true}, "c": null}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"b", "a", "c"}) {
		t.Errorf("expected document order, got %v", keys)
	}
	if v, ok := values["c"]; !ok || v != nil {
		t.Errorf("expected present null, got %v", v)
	}

	for _, bad := range []string{`[1,2]`, `{"a":`, `not json`} {
		if _, _, err := ParseJSONObject([]byte(bad)); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseYAML(t *testing.T) {
	v, err := ParseYAML([]byte("user:\n  name: ada\n  ids:\n    - 1\n    - 2\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := Walk(v, []string{"user", "ids", "1"})
	if !ok || got != 2 {
		t.Errorf("expected 2, got %v (found=%v)", got, ok)
	}
}
