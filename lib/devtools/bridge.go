package devtools

import (
	"io"
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("devtools")

var (
	actionsSent      = metrics.NewCounter(`rkv_devtools_actions_sent_total`)
	messagesReceived = metrics.NewCounter(`rkv_devtools_messages_received_total`)
	messagesRejected = metrics.NewCounter(`rkv_devtools_messages_rejected_total`)
)

// Target is the store side of a bridge
type Target interface {
	// ReplaceState parses a JSON encoded state and replaces the live data with it
	ReplaceState(state []byte) error
	// ResetState restores the initial snapshot and notifies all observers
	ResetState()
	// ApplyAction performs action like a regular mutation
	ApplyAction(action Action) error
}

// Bridge links a store to a debugging session. A nil *Bridge is valid and inactive.
type Bridge struct {
	name   string
	conn   Connection
	target Target
	paused atomic.Bool
}

// Attach opens a session called name and pushes state as its initial snapshot.
// It returns a nil bridge (and no error) if ext is nil or name is empty.
func Attach(ext Extension, name string, opts ConnectOptions, target Target, state any) (*Bridge, error) {
	if ext == nil || name == "" {
		return nil, nil
	}

	conn, err := ext.Connect(name, opts)
	if err != nil {
		return nil, err
	}

	b := &Bridge{name: name, conn: conn, target: target}
	if err := conn.Init(state); err != nil {
		if closer, ok := conn.(io.Closer); ok {
			if cerr := closer.Close(); cerr != nil {
				Logger.Warningf("failed to close debug session %q: %v", name, cerr)
			}
		}
		return nil, err
	}
	conn.Subscribe(b.Handle)

	Logger.Debugf("attached store to debug session %q", name)
	return b, nil
}

// Name returns the session name
func (b *Bridge) Name() string {
	if b == nil {
		return ""
	}
	return b.name
}

// Active reports whether mutations are currently reported
func (b *Bridge) Active() bool {
	return b != nil && !b.paused.Load()
}

// Paused reports whether a replay is in progress
func (b *Bridge) Paused() bool {
	return b != nil && b.paused.Load()
}

// Send reports action and the resulting state unless the bridge is inactive.
// Failures are logged, they never reach the mutating caller.
func (b *Bridge) Send(action Action, state any) {
	if !b.Active() {
		return
	}
	if err := b.conn.Send(action, state); err != nil {
		Logger.Warningf("failed to send %q to debug session %q: %v", action.Type, b.name, err)
		return
	}
	actionsSent.Inc()
}

// Handle processes an inbound message
func (b *Bridge) Handle(msg Message) {
	if b == nil {
		return
	}
	messagesReceived.Inc()

	switch msg.Type {
	case MsgDispatch:
		switch msg.DispatchType() {
		case DispatchJumpToAction, DispatchJumpToState:
			b.replay(msg.State)
		case DispatchReset:
			b.target.ResetState()
		default:
			Logger.Debugf("ignoring dispatch %s from debug session %q", string(msg.Payload), b.name)
		}
	case MsgAction:
		action, err := msg.Action()
		if err != nil {
			messagesRejected.Inc()
			Logger.Errorf("failed to parse action from debug session %q: %v", b.name, err)
			return
		}
		if err := b.target.ApplyAction(action); err != nil {
			messagesRejected.Inc()
			Logger.Errorf("failed to apply action %q from debug session %q: %v", action.Type, b.name, err)
		}
	default:
		Logger.Debugf("ignoring message %q from debug session %q", msg.Type, b.name)
	}
}

// replay applies a recorded state without echoing it back
func (b *Bridge) replay(state string) {
	b.paused.Store(true)
	defer b.paused.Store(false)

	if err := b.target.ReplaceState([]byte(state)); err != nil {
		messagesRejected.Inc()
		Logger.Errorf("failed to parse jump state from debug session %q: %v", b.name, err)
	}
}
