package notify

import (
	"reflect"
	"testing"

	"github.com/ValentinKolb/rKV/lib/resolve"
)

func TestRegistrySubscribe(t *testing.T) {
	r := NewRegistry()

	var calls []string
	unsubA := r.Subscribe("a", func() { calls = append(calls, "a1") })
	r.Subscribe("a", func() { calls = append(calls, "a2") })

	if n := r.NotifyExact("a"); n != 2 {
		t.Errorf("expected 2 callbacks, got %d", n)
	}
	if !reflect.DeepEqual(calls, []string{"a1", "a2"}) {
		t.Errorf("expected registration order, got %v", calls)
	}

	unsubA()
	unsubA()
	if r.Count("a") != 1 {
		t.Errorf("expected one remaining observer, got %d", r.Count("a"))
	}

	t.Run("empty sets are dropped", func(t *testing.T) {
		unsub := r.Subscribe("b", func() {})
		if r.Len() != 2 {
			t.Fatalf("expected 2 paths, got %d", r.Len())
		}
		unsub()
		if r.Len() != 1 || !reflect.DeepEqual(r.Paths(), []string{"a"}) {
			t.Errorf("expected only path a, got %v", r.Paths())
		}
	})

	t.Run("nil callback", func(t *testing.T) {
		r.Subscribe("c", nil)()
		if r.Count("c") != 0 {
			t.Errorf("nil callbacks must not be registered")
		}
	})
}

func TestRegistryCascade(t *testing.T) {
	paths := resolve.NewPathResolver(resolve.ObjectMode)
	r := NewRegistry()

	counts := map[string]int{}
	for _, p := range []string{"a", "a.b", "a.b.c", "x"} {
		r.Subscribe(p, func() { counts[p]++ })
	}

	r.NotifyCascade(paths.Resolve("a.b.c"))
	if counts["a"] != 1 || counts["a.b"] != 1 || counts["a.b.c"] != 1 || counts["x"] != 0 {
		t.Errorf("unexpected cascade counts %v", counts)
	}

	// a.b.c was resolved through a, so it is a dependent of a
	r.NotifyDependents(paths.Dependents("a"))
	if counts["a.b"] != 1 || counts["a.b.c"] != 2 {
		t.Errorf("unexpected dependent counts %v", counts)
	}

	if n := r.NotifyAll(); n != 4 {
		t.Errorf("expected 4 callbacks, got %d", n)
	}
}

func TestRegistryCascadeIdentifier(t *testing.T) {
	paths := resolve.NewPathResolver(resolve.KeyedMode)
	r := NewRegistry()

	var u1, u2 int
	r.Subscribe("u1", func() { u1++ })
	r.Subscribe("u2", func() { u2++ })

	r.NotifyCascade(paths.Resolve("u1"))
	r.NotifyCascade(paths.Resolve("u1.name"))
	if u1 != 2 || u2 != 0 {
		t.Errorf("expected u1=2 u2=0, got u1=%d u2=%d", u1, u2)
	}
}

func TestRegistryReentrant(t *testing.T) {
	r := NewRegistry()

	var unsub Unsubscribe
	fired := 0
	unsub = r.Subscribe("a", func() {
		fired++
		unsub()
		r.Subscribe("b", func() {})
	})

	r.NotifyExact("a")
	r.NotifyExact("a")
	if fired != 1 {
		t.Errorf("expected a single call, got %d", fired)
	}
	if r.Count("b") != 1 {
		t.Errorf("expected subscription from within a callback")
	}
}

func TestSignal(t *testing.T) {
	var s Signal

	fired := 0
	unsub := s.Subscribe(func() { fired++ })
	s.Subscribe(func() { fired++ })

	if n := s.Notify(); n != 2 || fired != 2 {
		t.Errorf("expected 2 callbacks, got %d (fired %d)", n, fired)
	}
	unsub()
	unsub()
	if s.Len() != 1 {
		t.Errorf("expected 1 observer, got %d", s.Len())
	}
}
