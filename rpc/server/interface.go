package server

import (
	"github.com/ValentinKolb/rKV/lib/devtools/host"
	"github.com/ValentinKolb/rKV/rpc/common"
)

// IRPCServerAdapter turns a request message into a call on the host.
//
// Errors never leave Handle: they are written into the returned message
// (Ok false, Err and Code set) so the client can rebuild them.
type IRPCServerAdapter interface {
	Handle(req *common.Message, h host.IHost) (resp *common.Message)
}
