package host

import (
	"encoding/json"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ValentinKolb/rKV/lib/devtools"
	"github.com/ValentinKolb/rKV/lib/store"
	"github.com/ValentinKolb/rKV/lib/store/mstore"
	"github.com/ValentinKolb/rKV/lib/store/ostore"
	"github.com/ValentinKolb/rKV/lib/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireCode(t *testing.T, err error, code RetCode) {
	t.Helper()
	var hostErr *Error
	require.ErrorAs(t, err, &hostErr)
	assert.Equal(t, code, hostErr.Code)
}

func connect(t *testing.T, h IHost, name string, maxAge int) SessionInfo {
	t.Helper()
	opts := devtools.DefaultConnectOptions()
	opts.MaxAge = maxAge
	info, err := h.Connect(name, opts)
	require.NoError(t, err)
	require.NoError(t, h.Init(info.ID, json.RawMessage(`{"n":0}`)))
	return info
}

func TestConnect(t *testing.T) {
	h := NewHost()

	_, err := h.Connect("", devtools.DefaultConnectOptions())
	requireCode(t, err, RetCInvalidOperation)

	a, err := h.Connect("settings", devtools.ConnectOptions{})
	require.NoError(t, err)
	b, err := h.Connect("settings", devtools.ConnectOptions{})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.Instance, b.Instance)
	assert.Equal(t, devtools.DefaultMaxAge, a.MaxAge)

	sessions, err := h.Sessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
	assert.Less(t, sessions[0].ID, sessions[1].ID)

	require.NoError(t, h.Disconnect(a.ID))
	requireCode(t, h.Disconnect(a.ID), RetCSessionNotFound)

	sessions, _ = h.Sessions()
	assert.Len(t, sessions, 1)
}

func TestHistoryIsBounded(t *testing.T) {
	h := NewHost()
	info := connect(t, h, "counter", 3)

	for i := 1; i <= 5; i++ {
		state := json.RawMessage(`{"n":` + strconv.Itoa(i) + `}`)
		require.NoError(t, h.Send(info.ID, devtools.NewAction(devtools.VerbSet, "n", "", i), state))
	}

	entries, err := h.History(info.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []uint64{3, 4, 5}, []uint64{entries[0].Index, entries[1].Index, entries[2].Index})
	assert.JSONEq(t, `{"n":5}`, string(entries[2].State))
	assert.Equal(t, "SET n", entries[2].Action.Type)

	sessions, _ := h.Sessions()
	assert.Equal(t, uint64(5), sessions[0].Actions)

	// init discards the history
	require.NoError(t, h.Init(info.ID, json.RawMessage(`{"n":0}`)))
	entries, _ = h.History(info.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, uint64(6), entries[0].Index)
}

func TestCommandsAreQueued(t *testing.T) {
	h := NewHost()
	info := connect(t, h, "counter", 10)
	require.NoError(t, h.Send(info.ID, devtools.NewAction(devtools.VerbSet, "n", "", 1), json.RawMessage(`{"n":1}`)))

	requireCode(t, h.Jump(info.ID, 99), RetCInvalidIndex)
	requireCode(t, h.Dispatch(info.ID, devtools.Action{Type: "DROP n"}), RetCInvalidOperation)

	require.NoError(t, h.Jump(info.ID, 0))
	require.NoError(t, h.Reset(info.ID))
	require.NoError(t, h.Dispatch(info.ID, devtools.NewAction(devtools.VerbSet, "n", "", 7)))

	sessions, _ := h.Sessions()
	assert.Equal(t, 3, sessions[0].Pending)

	msgs, err := h.Poll(info.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	assert.Equal(t, devtools.MsgDispatch, msgs[0].Type)
	assert.Equal(t, devtools.DispatchJumpToState, msgs[0].DispatchType())
	assert.JSONEq(t, `{"n":0}`, msgs[0].State)

	assert.Equal(t, devtools.DispatchReset, msgs[1].DispatchType())

	assert.Equal(t, devtools.MsgAction, msgs[2].Type)
	action, err := msgs[2].Action()
	require.NoError(t, err)
	assert.Equal(t, "SET n", action.Type)
	assert.Equal(t, "n", action.Path)
	assert.Equal(t, float64(7), action.Value)

	msgs, err = h.Poll(info.ID)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestUnknownSession(t *testing.T) {
	h := NewHost()

	requireCode(t, h.Init(42, json.RawMessage(`{}`)), RetCSessionNotFound)
	requireCode(t, h.Send(42, devtools.Action{Type: "RESET"}, json.RawMessage(`{}`)), RetCSessionNotFound)
	requireCode(t, h.Reset(42), RetCSessionNotFound)
	requireCode(t, h.Jump(42, 0), RetCSessionNotFound)

	_, err := h.Poll(42)
	requireCode(t, err, RetCSessionNotFound)
	_, err = h.History(42)
	requireCode(t, err, RetCSessionNotFound)

	assert.Equal(t, "HostError (code SessionNotFound): no session with id 42", NewError(RetCSessionNotFound, "no session with id 42").Error())
}

func TestGetInfo(t *testing.T) {
	h := NewHost()
	info := connect(t, h, "counter", 10)
	require.NoError(t, h.Send(info.ID, devtools.NewAction(devtools.VerbSet, "n", "", 1), json.RawMessage(`{"n":1}`)))

	stats, err := h.GetInfo()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Sessions)
	assert.Equal(t, uint64(1), stats.Actions)
	assert.Equal(t, int64(2), stats.StateSizes.Count)
	assert.False(t, stats.StartedAt.IsZero())
}

func TestExtensionWithObjectStore(t *testing.T) {
	h := NewHost()
	ext := NewExtension(h, 5*time.Millisecond)
	defer ext.Close()

	s := ostore.NewObjectStore(&store.Options{
		InitialData:     map[string]any{"count": 1},
		DevToolsName:    "counter",
		DevTools:        ext,
		DevToolsOptions: devtools.DefaultConnectOptions(),
	})

	sessions, err := h.Sessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	id := sessions[0].ID
	assert.Equal(t, "counter", sessions[0].Name)

	s.Set("count", 2, true)
	s.Set("count", 3, true)

	entries, err := h.History(id)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "@@INIT", entries[0].Action.Type)
	assert.JSONEq(t, `{"count":2}`, string(entries[1].State))

	// jump back, the replayed state is not reported again
	require.NoError(t, h.Jump(id, entries[1].Index))
	require.Eventually(t, func() bool {
		v, _ := s.Get("count")
		return v == float64(2)
	}, time.Second, 5*time.Millisecond)
	entries, _ = h.History(id)
	assert.Len(t, entries, 3)

	require.NoError(t, h.Dispatch(id, devtools.NewAction(devtools.VerbSet, "count", "", 5)))
	require.Eventually(t, func() bool {
		v, _ := s.Get("count")
		return v == float64(5)
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, h.Reset(id))
	require.Eventually(t, func() bool {
		v, _ := s.Get("count")
		return v == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, ext.Close())
	sessions, _ = h.Sessions()
	assert.Empty(t, sessions)
}

func TestExtensionWithMapStoreKeepsOrder(t *testing.T) {
	h := NewHost()
	ext := NewExtension(h, 5*time.Millisecond)
	defer ext.Close()

	s := mstore.NewMapStore(&store.MapOptions{
		DevToolsName:    "users",
		DevTools:        ext,
		DevToolsOptions: devtools.DefaultConnectOptions(),
	})

	var keyChanges atomic.Int32
	s.SubscribeKeys(func() { keyChanges.Add(1) })

	s.Key("b").Set(map[string]any{"n": 1}, true)
	s.Key("a").Set(map[string]any{"n": 2}, true)
	s.Key("c").Set(map[string]any{"n": 3}, true)
	require.Equal(t, []string{"b", "a", "c"}, s.Keys())

	sessions, err := h.Sessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	id := sessions[0].ID

	entries, err := h.History(id)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	order, _, err := tree.ParseJSONObject(entries[3].State)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, order, "recorded state must follow insertion order")

	jump := func(index uint64) {
		before := keyChanges.Load()
		require.NoError(t, h.Jump(id, index))
		require.Eventually(t, func() bool {
			return keyChanges.Load() > before
		}, time.Second, 5*time.Millisecond)
	}

	// jumping to the current state changes nothing
	jump(entries[3].Index)
	assert.Equal(t, []string{"b", "a", "c"}, s.Keys())

	jump(entries[2].Index)
	assert.Equal(t, []string{"b", "a"}, s.Keys())

	jump(entries[3].Index)
	assert.Equal(t, []string{"b", "a", "c"}, s.Keys())

	// replays are not recorded
	entries, _ = h.History(id)
	assert.Len(t, entries, 4)
}

func TestExtensionStopsWhenSessionIsGone(t *testing.T) {
	h := NewHost()
	ext := NewExtension(h, time.Millisecond)

	conn, err := ext.Connect("gone", devtools.DefaultConnectOptions())
	require.NoError(t, err)
	c := conn.(*Conn)
	c.Subscribe(func(devtools.Message) {})

	require.NoError(t, h.Disconnect(c.Info().ID))
	select {
	case <-c.done:
	case <-time.After(time.Second):
		t.Fatal("poll loop did not stop")
	}

	// the session is already gone on the host
	requireCode(t, c.Close(), RetCSessionNotFound)
}
