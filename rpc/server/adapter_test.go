package server

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ValentinKolb/rKV/lib/devtools"
	"github.com/ValentinKolb/rKV/lib/devtools/host"
	"github.com/ValentinKolb/rKV/rpc/common"
	"github.com/ValentinKolb/rKV/rpc/serializer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAdapterConnectUsesDefaultMaxAge(t *testing.T) {
	h := host.NewHost()
	adapter := NewHostServerAdapter(7)

	resp := adapter.Handle(common.NewConnectRequest("counter", nil), h)
	require.Empty(t, resp.Err)
	assert.True(t, resp.Ok)
	assert.Equal(t, common.MsgTHConnect, resp.MsgType)

	var info host.SessionInfo
	require.NoError(t, json.Unmarshal(resp.Data, &info))
	assert.Equal(t, "counter", info.Name)
	assert.Equal(t, 7, info.MaxAge)

	// an explicit max age wins
	opts, _ := json.Marshal(devtools.ConnectOptions{MaxAge: 3})
	resp = adapter.Handle(common.NewConnectRequest("counter", opts), h)
	require.NoError(t, json.Unmarshal(resp.Data, &info))
	assert.Equal(t, 3, info.MaxAge)
}

func TestAdapterKeepsReturnCodes(t *testing.T) {
	h := host.NewHost()
	adapter := NewHostServerAdapter(0)

	resp := adapter.Handle(common.NewHistoryRequest(42), h)
	assert.False(t, resp.Ok)
	assert.Equal(t, uint64(host.RetCSessionNotFound), resp.Code)
	assert.Equal(t, "no session with id 42", resp.Err)

	resp = adapter.Handle(common.NewDispatchRequest(42, []byte(`not json`)), h)
	assert.Zero(t, resp.Code)
	assert.Contains(t, resp.Err, "malformed action")

	resp = adapter.Handle(&common.Message{MsgType: common.MsgTCustom}, h)
	assert.Equal(t, common.MsgTError, resp.MsgType)

	resp = adapter.Handle(common.NewInfoRequest(), nil)
	assert.Equal(t, "handler: host is nil", resp.Err)
}

func TestAdapterForwardsToHost(t *testing.T) {
	controller := gomock.NewController(t)
	defer controller.Finish()

	h := host.NewMockIHost(controller)
	adapter := NewHostServerAdapter(0)

	h.EXPECT().Jump(uint64(5), uint64(2)).Return(nil).Times(1)
	resp := adapter.Handle(common.NewJumpRequest(5, 2), h)
	assert.True(t, resp.Ok)

	state := []byte(`{"a":1}`)
	h.EXPECT().Send(
		uint64(5),
		devtools.Action{Type: "SET a", Path: "a", Value: float64(1)},
		json.RawMessage(state),
	).Return(nil).Times(1)
	resp = adapter.Handle(common.NewSendRequest(5, []byte(`{"type":"SET a","path":"a","value":1}`), state), h)
	assert.True(t, resp.Ok)

	// the host validates the verb, not the adapter
	h.EXPECT().Dispatch(uint64(5), devtools.Action{Type: "NOPE"}).
		Return(host.NewError(host.RetCInvalidOperation, "unknown action type")).Times(1)
	resp = adapter.Handle(common.NewDispatchRequest(5, []byte(`{"type":"NOPE"}`)), h)
	assert.False(t, resp.Ok)
	assert.Equal(t, uint64(host.RetCInvalidOperation), resp.Code)

	h.EXPECT().Poll(uint64(5)).Return([]devtools.Message{devtools.NewResetMessage()}, nil).Times(1)
	resp = adapter.Handle(common.NewPollRequest(5), h)
	require.True(t, resp.Ok)
	var msgs []devtools.Message
	require.NoError(t, json.Unmarshal(resp.Data, &msgs))
	assert.Equal(t, []devtools.Message{devtools.NewResetMessage()}, msgs)

	// plain errors have no return code
	h.EXPECT().GetInfo().Return(host.Info{}, errors.New("boom")).Times(1)
	resp = adapter.Handle(common.NewInfoRequest(), h)
	assert.False(t, resp.Ok)
	assert.Zero(t, resp.Code)
	assert.Equal(t, "boom", resp.Err)
}

func TestHandleChecksChannel(t *testing.T) {
	s := NewRPCServer(common.ServerConfig{}, nil, serializer.NewJSONSerializer(), nil)
	info, err := s.Host().Connect("counter", devtools.DefaultConnectOptions())
	require.NoError(t, err)

	decode := func(data []byte) common.Message {
		var msg common.Message
		require.NoError(t, serializer.NewJSONSerializer().Deserialize(data, &msg))
		return msg
	}
	encode := func(msg *common.Message) []byte {
		data, err := serializer.NewJSONSerializer().Serialize(*msg)
		require.NoError(t, err)
		return data
	}

	// on the session channel
	resp := decode(s.handle(info.ID, encode(common.NewPollRequest(info.ID))))
	assert.True(t, resp.Ok)

	// on the control channel
	resp = decode(s.handle(0, encode(common.NewPollRequest(info.ID))))
	assert.True(t, resp.Ok)

	// on a foreign channel
	resp = decode(s.handle(info.ID+1, encode(common.NewPollRequest(info.ID))))
	assert.Equal(t, common.MsgTError, resp.MsgType)

	// garbage
	resp = decode(s.handle(0, []byte("{")))
	assert.Equal(t, common.MsgTError, resp.MsgType)
}
