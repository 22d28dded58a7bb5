package tree

import (
	"reflect"
	"regexp"
	"testing"
	"time"
)

type cloneInner struct {
	Values []int
}

type cloneOuter struct {
	Name  string
	Inner *cloneInner
	Tags  map[string]struct{}
}

func TestClone(t *testing.T) {
	t.Run("json-like tree", func(t *testing.T) {
		src := map[string]any{
			"a": map[string]any{"b": []any{1, map[string]any{"c": "d"}}},
		}
		dst := Clone(src).(map[string]any)
		if !reflect.DeepEqual(src, dst) {
			t.Fatalf("clone differs: %v vs %v", src, dst)
		}

		dst["a"].(map[string]any)["b"].([]any)[1].(map[string]any)["c"] = "changed"
		if src["a"].(map[string]any)["b"].([]any)[1].(map[string]any)["c"] != "d" {
			t.Errorf("mutating the clone changed the source")
		}
	})

	t.Run("structs and typed containers", func(t *testing.T) {
		src := &cloneOuter{
			Name:  "x",
			Inner: &cloneInner{Values: []int{1, 2}},
			Tags:  map[string]struct{}{"t": {}},
		}
		dst := Clone(src).(*cloneOuter)
		if !reflect.DeepEqual(src, dst) {
			t.Fatalf("clone differs: %+v vs %+v", src, dst)
		}
		if dst.Inner == src.Inner {
			t.Errorf("expected pointer to be copied")
		}
		dst.Inner.Values[0] = 99
		delete(dst.Tags, "t")
		if src.Inner.Values[0] != 1 || len(src.Tags) != 1 {
			t.Errorf("mutating the clone changed the source")
		}
	})

	t.Run("time and regexp", func(t *testing.T) {
		now := time.Now()
		re := regexp.MustCompile(`^a+$`)
		dst := Clone(map[string]any{"t": now, "re": re}).(map[string]any)

		if !dst["t"].(time.Time).Equal(now) {
			t.Errorf("expected equal time")
		}
		clonedRe := dst["re"].(*regexp.Regexp)
		if clonedRe == re || clonedRe.String() != re.String() {
			t.Errorf("expected recompiled regexp")
		}
	})

	t.Run("nil", func(t *testing.T) {
		if Clone(nil) != nil {
			t.Errorf("expected nil")
		}
		if m := CloneMap(nil); m == nil || len(m) != 0 {
			t.Errorf("expected empty map, got %v", m)
		}
	})
}
