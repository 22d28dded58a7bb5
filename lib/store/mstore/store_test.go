package mstore

import (
	"sync/atomic"
	"testing"

	"github.com/ValentinKolb/rKV/lib/devtools"
	"github.com/ValentinKolb/rKV/lib/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioKeys(t *testing.T) {
	s := NewMapStore(nil)

	var sizeCalls, keysCalls atomic.Int32
	s.SubscribeSize(func() { sizeCalls.Add(1) })
	s.SubscribeKeys(func() { keysCalls.Add(1) })

	s.Key("u1").Set(map[string]any{"name": "Ana"}, true)
	assert.Equal(t, []string{"u1"}, s.Keys())
	assert.Equal(t, 1, s.Size())

	sizeCalls.Store(0)
	s.Key("u1").Remove(true)
	assert.Equal(t, []string{}, s.Keys())
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, int32(1), sizeCalls.Load())
	assert.Equal(t, int32(2), keysCalls.Load())
}

func TestKeyHandle(t *testing.T) {
	s := NewMapStore(&store.MapOptions{
		InitialEntries: []store.Entry{
			{ID: "u1", Record: map[string]any{"name": "Ana", "address": map[string]any{"city": "Rome"}}},
		},
		FallbackRecord: map[string]any{"role": "guest", "address": map[string]any{"country": "IT"}},
	})
	u1 := s.Key("u1")

	assert.Equal(t, "u1", u1.ID())
	assert.True(t, u1.Has())
	assert.False(t, s.Key("u2").Has())

	t.Run("get", func(t *testing.T) {
		v, ok := u1.Get("address.city")
		assert.True(t, ok)
		assert.Equal(t, "Rome", v)

		v, ok = u1.Get("")
		assert.True(t, ok)
		assert.Equal(t, "Ana", v.(map[string]any)["name"])

		_, ok = s.Key("u2").Get("")
		assert.False(t, ok)
	})

	t.Run("fallback record", func(t *testing.T) {
		v, ok := u1.Get("role")
		assert.True(t, ok)
		assert.Equal(t, "guest", v)

		v, ok = u1.Get("address.country")
		assert.True(t, ok)
		assert.Equal(t, "IT", v)

		// the fallback applies to unknown identifiers too
		v, ok = s.Key("u9").Get("role")
		assert.True(t, ok)
		assert.Equal(t, "guest", v)
	})

	t.Run("update", func(t *testing.T) {
		u1.Update("address.city", "Milan", true)
		v, _ := u1.Get("address.city")
		assert.Equal(t, "Milan", v)

		u1.Update("visits", func(prev any, ok bool) any {
			if !ok {
				return 1
			}
			return prev.(int) + 1
		}, true)
		u1.Update("visits", func(prev any, ok bool) any { return prev.(int) + 1 }, true)
		v, _ = u1.Get("visits")
		assert.Equal(t, 2, v)

		// updates never create records or containers
		s.Key("u2").Update("name", "Bo", true)
		assert.False(t, s.Key("u2").Has())
		u1.Update("missing.city", "x", true)
		_, ok := u1.Get("missing")
		assert.False(t, ok)
	})

	t.Run("update whole record", func(t *testing.T) {
		u1.Update("", func(prev any) any {
			return map[string]any{"name": prev.(map[string]any)["name"], "replaced": true}
		}, true)
		v, _ := u1.Get("replaced")
		assert.Equal(t, true, v)
		_, ok := u1.Get("address.city")
		assert.False(t, ok)
	})

	t.Run("reset", func(t *testing.T) {
		s.Key("u2").Set(map[string]any{}, true)
		s.Reset(true)
		assert.Equal(t, []string{"u1"}, s.Keys())
		v, _ := u1.Get("address.city")
		assert.Equal(t, "Rome", v)
	})
}

func TestKeyedIsolation(t *testing.T) {
	s := NewMapStore(nil)
	s.Key("x").Set(map[string]any{"name": "x"}, true)
	s.Key("y").Set(map[string]any{"name": "y"}, true)

	var yCalls, xCalls atomic.Int32
	s.Key("y").Subscribe("", func() { yCalls.Add(1) })
	s.Key("y").Subscribe("name", func() { yCalls.Add(1) })
	s.Key("x").Subscribe("name", func() { xCalls.Add(1) })

	s.Key("x").Set(map[string]any{"name": "x2"}, true)
	s.Key("x").Update("name", "x3", true)
	s.Key("x").Update("", map[string]any{"name": "x4"}, true)
	s.Key("x").Remove(true)

	assert.Equal(t, int32(0), yCalls.Load())
	assert.Equal(t, int32(4), xCalls.Load())
}

func TestIdentifierWithSeparator(t *testing.T) {
	s := NewMapStore(nil)
	s.Key("a").Set(map[string]any{"b": 1}, true)

	var aCalls, dottedCalls atomic.Int32
	s.Key("a").Subscribe("", func() { aCalls.Add(1) })
	s.Key("a.b").Subscribe("", func() { dottedCalls.Add(1) })

	dotted := s.Key("a.b")
	assert.Equal(t, "a.b", dotted.ID())
	dotted.Set(map[string]any{"n": 1}, true)
	dotted.Update("n", 2, true)
	dotted.Remove(true)

	assert.False(t, dotted.Has())
	_, ok := dotted.Get("")
	assert.False(t, ok)
	assert.Equal(t, []string{"a"}, s.Keys())
	assert.Equal(t, int32(0), aCalls.Load(), "record a must not be notified")
	assert.Equal(t, int32(0), dottedCalls.Load())

	v, _ := s.Key("a").Get("b")
	assert.Equal(t, 1, v)

	err := s.(*storeImpl).ApplyAction(devtools.NewAction(devtools.VerbSet, "a.b", "a.b", 1))
	assert.Error(t, err)
	assert.Equal(t, []string{"a"}, s.Keys())
}

func TestCascadeWithinRecord(t *testing.T) {
	s := NewMapStore(nil)
	s.Key("u1").Set(map[string]any{"profile": map[string]any{"name": "Ana"}}, true)

	var record, name atomic.Int32
	s.Key("u1").Subscribe("", func() { record.Add(1) })
	s.Key("u1").Subscribe("profile.name", func() { name.Add(1) })

	s.Key("u1").Update("profile.name", "Bo", true)
	assert.Equal(t, int32(1), record.Load())
	assert.Equal(t, int32(1), name.Load())

	// replacing the record notifies everything below it
	s.Key("u1").Set(map[string]any{"profile": map[string]any{"name": "Cy"}}, true)
	assert.Equal(t, int32(2), record.Load())
	assert.Equal(t, int32(2), name.Load())

	v, _ := s.Key("u1").Get("profile.name")
	assert.Equal(t, "Cy", v)
}

func TestClearAndNotifyFlag(t *testing.T) {
	s := NewMapStore(&store.MapOptions{
		InitialEntries: store.EntriesFromMap(map[string]any{"b": map[string]any{}, "a": map[string]any{}}),
	})
	assert.Equal(t, []string{"a", "b"}, s.Keys())

	var keys, path atomic.Int32
	s.SubscribeKeys(func() { keys.Add(1) })
	s.Key("a").Subscribe("x", func() { path.Add(1) })

	s.Key("c").Set(map[string]any{}, false)
	s.Key("a").Remove(false)
	assert.Equal(t, int32(0), keys.Load())
	assert.Equal(t, []string{"b", "c"}, s.Keys())

	s.Clear(true)
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, int32(1), keys.Load())
	assert.Equal(t, int32(1), path.Load())

	// clear keeps the initial records
	s.Reset(true)
	assert.Equal(t, []string{"a", "b"}, s.Keys())
	assert.Equal(t, int32(2), keys.Load())
}

func TestInsertionOrder(t *testing.T) {
	s := NewMapStore(nil)
	for _, id := range []string{"c", "a", "b"} {
		s.Key(id).Set(id, true)
	}
	s.Key("a").Set("again", true)
	assert.Equal(t, []string{"c", "a", "b"}, s.Keys())

	s.Key("a").Remove(true)
	s.Key("a").Set("back", true)
	assert.Equal(t, []string{"c", "b", "a"}, s.Keys())

	keys := s.Keys()
	keys[0] = "mutated"
	assert.Equal(t, "c", s.Keys()[0])
}

func TestSnapshot(t *testing.T) {
	s := NewMapStore(nil)
	s.Key("u1").Set(map[string]any{"tags": []any{"a"}}, true)

	snap := s.Snapshot()
	snap["u1"].(map[string]any)["tags"].([]any)[0] = "changed"

	v, _ := s.Key("u1").Get("tags.0")
	assert.Equal(t, "a", v)
}

// --------------------------------------------------------------------------
// Debug Bridge
// --------------------------------------------------------------------------

type recordingConn struct {
	actions []devtools.Action
	handler func(devtools.Message)
	opts    devtools.ConnectOptions
}

func (c *recordingConn) Init(any) error { return nil }
func (c *recordingConn) Send(action devtools.Action, _ any) error {
	c.actions = append(c.actions, action)
	return nil
}
func (c *recordingConn) Subscribe(handler func(devtools.Message)) { c.handler = handler }

type recordingExtension struct{ conn *recordingConn }

func (e *recordingExtension) Connect(_ string, opts devtools.ConnectOptions) (devtools.Connection, error) {
	e.conn.opts = opts
	return e.conn, nil
}

func TestDebugBridge(t *testing.T) {
	conn := &recordingConn{}
	s := NewMapStore(&store.MapOptions{
		DevToolsName: "users",
		DevTools:     &recordingExtension{conn: conn},
	})
	require.NotNil(t, conn.handler)
	assert.Equal(t, devtools.DefaultMaxAge, conn.opts.MaxAge)

	s.Key("u1").Set(map[string]any{"name": "Ana"}, true)
	s.Key("u1").Update("name", func(prev any) any { return prev.(string) + "!" }, true)
	s.Key("u1").Remove(true)
	s.Clear(true)

	require.Len(t, conn.actions, 4)
	assert.Equal(t, "SET u1", conn.actions[0].Type)
	assert.Equal(t, "UPDATE u1.name", conn.actions[1].Type)
	assert.Equal(t, "u1", conn.actions[1].Key)
	assert.Equal(t, "Ana!", conn.actions[1].Value)
	assert.Equal(t, "REMOVE u1", conn.actions[2].Type)
	assert.Equal(t, "CLEAR", conn.actions[3].Type)

	t.Run("jump keeps document order", func(t *testing.T) {
		var keys atomic.Int32
		s.SubscribeKeys(func() { keys.Add(1) })

		conn.handler(devtools.NewJumpMessage(`{"z":{"n":1},"a":{"n":2}}`))
		assert.Equal(t, []string{"z", "a"}, s.Keys())
		assert.Equal(t, int32(1), keys.Load())
		assert.Len(t, conn.actions, 4)

		v, _ := s.Key("a").Get("n")
		assert.Equal(t, float64(2), v)
	})

	t.Run("actions", func(t *testing.T) {
		for _, action := range []devtools.Action{
			devtools.NewAction(devtools.VerbSet, "u5", "u5", map[string]any{"n": 5}),
			devtools.NewAction(devtools.VerbUpdate, "u5.n", "", 6),
			devtools.NewAction(devtools.VerbRemove, "z", "z", nil),
		} {
			msg, err := devtools.NewActionMessage(action)
			require.NoError(t, err)
			conn.handler(msg)
		}
		assert.Equal(t, []string{"a", "u5"}, s.Keys())
		v, _ := s.Key("u5").Get("n")
		assert.Equal(t, float64(6), v)
	})
}

func TestStoreFromStructs(t *testing.T) {
	type user struct {
		Name string `json:"name"`
		Role string `json:"role,omitempty"`
	}

	opts := store.DefaultMapOptions()
	for _, id := range []string{"u2", "u1"} {
		entry, err := store.EntryFromValue(id, user{Name: id})
		require.NoError(t, err)
		opts.InitialEntries = append(opts.InitialEntries, entry)
	}
	require.NoError(t, opts.FallbackFromValue(&user{Role: "guest"}))

	s := NewMapStore(opts)
	assert.Equal(t, []string{"u2", "u1"}, s.Keys())

	v, ok := s.Key("u1").Get("name")
	assert.True(t, ok)
	assert.Equal(t, "u1", v)

	v, ok = s.Key("u1").Get("role")
	assert.True(t, ok)
	assert.Equal(t, "guest", v)

	_, err := store.EntryFromValue("bad", "not a record")
	assert.Error(t, err)
}
