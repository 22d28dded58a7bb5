package client

import (
	"encoding/json"
	"fmt"

	"github.com/ValentinKolb/rKV/lib/devtools"
	"github.com/ValentinKolb/rKV/lib/devtools/host"
	"github.com/ValentinKolb/rKV/rpc/common"
	"github.com/ValentinKolb/rKV/rpc/serializer"
	"github.com/ValentinKolb/rKV/rpc/transport"
)

// NewRPCHost creates a new RPC host client
// The function takes a config, a transport and a serializer as parameters
// It returns a host.IHost and an error
func NewRPCHost(
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (host.IHost, error) {

	// Connect the transport
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	return &rpcHost{
		rpcClientAdapter{
			config:     config,
			transport:  transport,
			serializer: serializer,
		},
	}, nil
}

type rpcHost struct {
	rpcClientAdapter
}

// invoke sends req and decodes the result of the response into out (if out is not nil)
func (c *rpcHost) invoke(req *common.Message, out any) error {
	resp, err := invokeRPCRequest(req, c.transport, c.serializer)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if len(resp.Data) == 0 {
		return fmt.Errorf("RPC HostClient - Error: %s response without data", req.MsgType)
	}
	return json.Unmarshal(resp.Data, out)
}

// Close closes the transport of the client
func (c *rpcHost) Close() error {
	return c.transport.Close()
}

// --------------------------------------------------------------------------
// Interface Methods (docu see the host package in interface.go)
// --------------------------------------------------------------------------

func (c *rpcHost) Connect(name string, opts devtools.ConnectOptions) (info host.SessionInfo, err error) {
	data, err := json.Marshal(opts)
	if err != nil {
		return host.SessionInfo{}, err
	}
	err = c.invoke(common.NewConnectRequest(name, data), &info)
	return info, err
}

func (c *rpcHost) Init(id uint64, state json.RawMessage) (err error) {
	return c.invoke(common.NewInitRequest(id, state), nil)
}

func (c *rpcHost) Send(id uint64, action devtools.Action, state json.RawMessage) (err error) {
	data, err := json.Marshal(action)
	if err != nil {
		return err
	}
	return c.invoke(common.NewSendRequest(id, data, state), nil)
}

func (c *rpcHost) Poll(id uint64) (msgs []devtools.Message, err error) {
	err = c.invoke(common.NewPollRequest(id), &msgs)
	return msgs, err
}

func (c *rpcHost) Disconnect(id uint64) (err error) {
	return c.invoke(common.NewDisconnectRequest(id), nil)
}

func (c *rpcHost) Sessions() (sessions []host.SessionInfo, err error) {
	err = c.invoke(common.NewSessionsRequest(), &sessions)
	return sessions, err
}

func (c *rpcHost) History(id uint64) (entries []host.HistoryEntry, err error) {
	err = c.invoke(common.NewHistoryRequest(id), &entries)
	return entries, err
}

func (c *rpcHost) Jump(id uint64, index uint64) (err error) {
	return c.invoke(common.NewJumpRequest(id, index), nil)
}

func (c *rpcHost) Reset(id uint64) (err error) {
	return c.invoke(common.NewResetRequest(id), nil)
}

func (c *rpcHost) Dispatch(id uint64, action devtools.Action) (err error) {
	data, err := json.Marshal(action)
	if err != nil {
		return err
	}
	return c.invoke(common.NewDispatchRequest(id, data), nil)
}

func (c *rpcHost) GetInfo() (info host.Info, err error) {
	err = c.invoke(common.NewInfoRequest(), &info)
	return info, err
}
