package host

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ValentinKolb/rKV/lib/devtools"
	"github.com/ValentinKolb/rKV/lib/util"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

//go:generate mockgen -package host -source interface.go -destination interface_mock.go

// IHost is the interface of a debugging host.
// States are JSON encoded. All methods return a *Error on failure.
type IHost interface {
	// Connect opens a new session for a store called name
	Connect(name string, opts devtools.ConnectOptions) (info SessionInfo, err error)
	// Init records the initial state of a session, discarding its history
	Init(id uint64, state json.RawMessage) (err error)
	// Send records an action and the state after it
	Send(id uint64, action devtools.Action, state json.RawMessage) (err error)
	// Poll returns and removes the messages queued for the session
	Poll(id uint64) (msgs []devtools.Message, err error)
	// Disconnect closes a session
	Disconnect(id uint64) (err error)
	// Sessions lists the open sessions ordered by id
	Sessions() (sessions []SessionInfo, err error)
	// History returns the recorded entries of a session, oldest first
	History(id uint64) (entries []HistoryEntry, err error)
	// Jump queues a jump to the state of the history entry with the given index
	Jump(id uint64, index uint64) (err error)
	// Reset queues a reset of the store
	Reset(id uint64) (err error)
	// Dispatch queues an action to be applied by the store
	Dispatch(id uint64, action devtools.Action) (err error)
	// GetInfo returns statistics about the host
	GetInfo() (info Info, err error)
}

// SessionInfo describes an open session
type SessionInfo struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Instance    string            `json:"instance"`
	MaxAge      int               `json:"maxAge"`
	Features    devtools.Features `json:"features"`
	ConnectedAt time.Time         `json:"connectedAt"`
	Actions     uint64            `json:"actions"`
	Pending     int               `json:"pending"`
}

// HistoryEntry is a recorded action and the state after it.
// The entry with the lowest index of a session holds the base state.
type HistoryEntry struct {
	Index  uint64          `json:"index"`
	Action devtools.Action `json:"action"`
	State  json.RawMessage `json:"state"`
	Time   time.Time       `json:"time"`
}

// Info holds statistics about a host
type Info struct {
	StartedAt  time.Time             `json:"startedAt"`
	Sessions   int                   `json:"sessions"`
	Actions    uint64                `json:"actions"`
	StateSizes util.HistogramSummary `json:"stateSizes"`
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error wraps a return code (of type RetCode) and an error message
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("HostError (code %s): %s", e.Code, e.Msg)
}

// NewError creates a new Error with the given code and message
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess          RetCode = iota // 0: Command executed successfully.
	RetCInternalError                   // 1: Command failed due to an internal error.
	RetCSessionNotFound                 // 2: No session with the given id exists.
	RetCInvalidIndex                    // 3: No history entry with the given index exists.
	RetCInvalidOperation                // 4: Invalid operation.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCSessionNotFound:
		return "SessionNotFound"
	case RetCInvalidIndex:
		return "InvalidIndex"
	case RetCInvalidOperation:
		return "InvalidOperation"
	default:
		return "Unknown"
	}
}
