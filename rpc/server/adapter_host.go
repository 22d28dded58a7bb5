package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ValentinKolb/rKV/lib/devtools"
	"github.com/ValentinKolb/rKV/lib/devtools/host"
	"github.com/ValentinKolb/rKV/rpc/common"
)

// NewHostServerAdapter creates an adapter translating messages into host.IHost calls.
// Sessions that connect without a MaxAge get defaultMaxAge (devtools.DefaultMaxAge if <= 0).
func NewHostServerAdapter(defaultMaxAge int) IRPCServerAdapter {
	if defaultMaxAge <= 0 {
		defaultMaxAge = devtools.DefaultMaxAge
	}
	return &hostServerAdapterImpl{defaultMaxAge: defaultMaxAge}
}

type hostServerAdapterImpl struct {
	defaultMaxAge int
}

func (adapter *hostServerAdapterImpl) Handle(req *common.Message, h host.IHost) *common.Message {
	// Check for nil host
	if h == nil {
		return common.NewErrorResponse("handler: host is nil")
	}

	var (
		result any
		err    error
	)

	switch req.MsgType {
	case common.MsgTHConnect:
		opts := devtools.DefaultConnectOptions()
		opts.MaxAge = 0
		if len(req.Data) > 0 {
			if err := json.Unmarshal(req.Data, &opts); err != nil {
				return common.NewResponse(req.MsgType, nil, fmt.Errorf("malformed connect options: %w", err))
			}
		}
		if opts.MaxAge <= 0 {
			opts.MaxAge = adapter.defaultMaxAge
		}
		result, err = h.Connect(req.Name, opts)
	case common.MsgTHInit:
		err = h.Init(req.ID, req.State)
	case common.MsgTHSend:
		var action devtools.Action
		if action, err = decodeAction(req.Action); err == nil {
			err = h.Send(req.ID, action, req.State)
		}
	case common.MsgTHPoll:
		result, err = h.Poll(req.ID)
	case common.MsgTHDisconnect:
		err = h.Disconnect(req.ID)
	case common.MsgTHSessions:
		result, err = h.Sessions()
	case common.MsgTHHistory:
		result, err = h.History(req.ID)
	case common.MsgTHJump:
		err = h.Jump(req.ID, req.Index)
	case common.MsgTHReset:
		err = h.Reset(req.ID)
	case common.MsgTHDispatch:
		var action devtools.Action
		if action, err = decodeAction(req.Action); err == nil {
			err = h.Dispatch(req.ID, action)
		}
	case common.MsgTHInfo:
		result, err = h.GetInfo()
	default:
		return common.NewErrorResponse(
			fmt.Sprintf("RPC HostAdapter - Unsupported message type: %s", req.MsgType),
		)
	}

	// Case host error -> keep the return code
	var hostErr *host.Error
	if errors.As(err, &hostErr) {
		return common.NewFailedResponse(req.MsgType, uint64(hostErr.Code), hostErr.Msg)
	}
	if err != nil {
		return common.NewResponse(req.MsgType, nil, err)
	}

	// Encode the result
	var data []byte
	if result != nil {
		if data, err = json.Marshal(result); err != nil {
			return common.NewResponse(req.MsgType, nil, fmt.Errorf("failed to encode result: %w", err))
		}
	}
	return common.NewResponse(req.MsgType, data, nil)
}

// decodeAction decodes an action without checking its verb, the host decides which actions it accepts
func decodeAction(data []byte) (devtools.Action, error) {
	var action devtools.Action
	if err := json.Unmarshal(data, &action); err != nil {
		return devtools.Action{}, fmt.Errorf("malformed action: %w", err)
	}
	return action, nil
}
