package common

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// Which fields are used depends on the type of message.
// Actions, states and results are carried JSON encoded.
type Message struct {
	// Type of message
	MsgType MessageType `json:"msg_type"`

	// General fields
	ID     uint64 `json:"id,omitempty"`     // Used for: every session bound operation
	Index  uint64 `json:"index,omitempty"`  // Used for: Jump
	Name   string `json:"name,omitempty"`   // Used for: Connect
	Action []byte `json:"action,omitempty"` // Used for: Send, Dispatch
	State  []byte `json:"state,omitempty"`  // Used for: Init, Send
	Data   []byte `json:"data,omitempty"`   // Used for: Connect (request), all responses carrying a result

	// Response only fields
	Ok   bool   `json:"ok,omitempty"`   // Set if the operation succeeded
	Code uint64 `json:"code,omitempty"` // Return code of a failed host operation
	Err  string `json:"err,omitempty"`  // Empty if no error, otherwise contains the error message

	// Meta information
	Meta []byte `json:"meta,omitempty"` // Unused, can be used for additional Adapters
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewConnectRequest creates a new Connect request, opts are the JSON encoded connect options
func NewConnectRequest(name string, opts []byte) *Message {
	return &Message{
		MsgType: MsgTHConnect,
		Name:    name,
		Data:    opts,
	}
}

// NewInitRequest creates a new Init request
func NewInitRequest(id uint64, state []byte) *Message {
	return &Message{
		MsgType: MsgTHInit,
		ID:      id,
		State:   state,
	}
}

// NewSendRequest creates a new Send request
func NewSendRequest(id uint64, action, state []byte) *Message {
	return &Message{
		MsgType: MsgTHSend,
		ID:      id,
		Action:  action,
		State:   state,
	}
}

// NewPollRequest creates a new Poll request
func NewPollRequest(id uint64) *Message {
	return &Message{
		MsgType: MsgTHPoll,
		ID:      id,
	}
}

// NewDisconnectRequest creates a new Disconnect request
func NewDisconnectRequest(id uint64) *Message {
	return &Message{
		MsgType: MsgTHDisconnect,
		ID:      id,
	}
}

// NewSessionsRequest creates a new Sessions request
func NewSessionsRequest() *Message {
	return &Message{
		MsgType: MsgTHSessions,
	}
}

// NewHistoryRequest creates a new History request
func NewHistoryRequest(id uint64) *Message {
	return &Message{
		MsgType: MsgTHHistory,
		ID:      id,
	}
}

// NewJumpRequest creates a new Jump request
func NewJumpRequest(id, index uint64) *Message {
	return &Message{
		MsgType: MsgTHJump,
		ID:      id,
		Index:   index,
	}
}

// NewResetRequest creates a new Reset request
func NewResetRequest(id uint64) *Message {
	return &Message{
		MsgType: MsgTHReset,
		ID:      id,
	}
}

// NewDispatchRequest creates a new Dispatch request
func NewDispatchRequest(id uint64, action []byte) *Message {
	return &Message{
		MsgType: MsgTHDispatch,
		ID:      id,
		Action:  action,
	}
}

// NewInfoRequest creates a new Info request
func NewInfoRequest() *Message {
	return &Message{
		MsgType: MsgTHInfo,
	}
}

// NewResponse creates a response to a request of type msgType.
// data is the JSON encoded result (may be nil).
func NewResponse(msgType MessageType, data []byte, err error) *Message {
	msg := &Message{
		MsgType: msgType,
		Data:    data,
		Ok:      err == nil,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewFailedResponse creates a response to a request of type msgType that failed with a host return code
func NewFailedResponse(msgType MessageType, code uint64, errMsg string) *Message {
	return &Message{
		MsgType: msgType,
		Code:    code,
		Err:     errMsg,
	}
}

// NewCustomRequest creates a new Custom request
func NewCustomRequest(meta []byte) *Message {
	return &Message{
		MsgType: MsgTCustom,
		Meta:    meta,
	}
}

// NewErrorResponse creates a new Error response
func NewErrorResponse(err string) *Message {
	return &Message{
		MsgType: MsgTError,
		Err:     err,
	}
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message used in RPC communication.
type MessageType uint8

var messageTypeNames = map[MessageType]string{
	MsgTUnknown:     "unknown",
	MsgTSuccess:     "success",
	MsgTError:       "error",
	MsgTHConnect:    "connect",
	MsgTHInit:       "init",
	MsgTHSend:       "send",
	MsgTHPoll:       "poll",
	MsgTHDisconnect: "disconnect",
	MsgTHSessions:   "sessions",
	MsgTHHistory:    "history",
	MsgTHJump:       "jump",
	MsgTHReset:      "reset",
	MsgTHDispatch:   "dispatch",
	MsgTHInfo:       "info",
	MsgTCustom:      "custom",
}

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	if name, ok := messageTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
// This allows MessageType to be serialized as a string in JSON.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
// This allows MessageType to be deserialized from a string in JSON.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	for msgType, name := range messageTypeNames {
		if name == s {
			*t = msgType
			return nil
		}
	}
	return fmt.Errorf("unknown message type: %s", s)
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	// General message types

	MsgTUnknown MessageType = iota
	MsgTSuccess             // Indicates a successful operation
	MsgTError               // Indicates an error occurred

	// IHost operations

	MsgTHConnect    // Open a session
	MsgTHInit       // Record the initial state of a session
	MsgTHSend       // Record an action and the resulting state
	MsgTHPoll       // Fetch queued messages of a session
	MsgTHDisconnect // Close a session
	MsgTHSessions   // List the open sessions
	MsgTHHistory    // Get the history of a session
	MsgTHJump       // Queue a jump to a recorded state
	MsgTHReset      // Queue a reset
	MsgTHDispatch   // Queue an action
	MsgTHInfo       // Get host statistics

	// Custom operations

	MsgTCustom // Custom operation type
)
