package devtools

import (
	"encoding/json"
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Inbound Messages
// --------------------------------------------------------------------------

const (
	// MsgDispatch carries a monitor command in its payload (see Dispatch* constants)
	MsgDispatch = "DISPATCH"
	// MsgAction carries an action descriptor to apply to the store
	MsgAction = "ACTION"
)

const (
	DispatchJumpToAction = "JUMP_TO_ACTION"
	DispatchJumpToState  = "JUMP_TO_STATE"
	DispatchReset        = "RESET"
)

// Message is a message sent from the debugging session to the store.
//
// For MsgDispatch the payload is an object {"type": "..."} and State holds the
// JSON encoded state to jump to. For MsgAction the payload is an Action, either
// as an object or as a JSON string containing one.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	State   string          `json:"state,omitempty"`
}

// DispatchType returns the type of a DISPATCH payload, or "" if the payload has none
func (m Message) DispatchType() string {
	var payload struct {
		Type string `json:"type"`
	}
	if len(m.Payload) == 0 || json.Unmarshal(m.Payload, &payload) != nil {
		return ""
	}
	return payload.Type
}

// Action parses the payload of an ACTION message
func (m Message) Action() (Action, error) {
	if len(m.Payload) == 0 {
		return Action{}, fmt.Errorf("devtools: empty action payload")
	}

	raw := []byte(m.Payload)
	var encoded string
	if json.Unmarshal(raw, &encoded) == nil {
		raw = []byte(encoded)
	}
	return ParseAction(raw)
}

// NewJumpMessage creates a DISPATCH message that jumps to state
func NewJumpMessage(state string) Message {
	return Message{
		Type:    MsgDispatch,
		Payload: json.RawMessage(`{"type":"` + DispatchJumpToState + `"}`),
		State:   state,
	}
}

// NewResetMessage creates a DISPATCH message that resets the store
func NewResetMessage() Message {
	return Message{
		Type:    MsgDispatch,
		Payload: json.RawMessage(`{"type":"` + DispatchReset + `"}`),
	}
}

// NewActionMessage creates an ACTION message applying action
func NewActionMessage(action Action) (Message, error) {
	payload, err := json.Marshal(action)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: MsgAction, Payload: payload}, nil
}

// --------------------------------------------------------------------------
// Actions
// --------------------------------------------------------------------------

// Verb is the kind of mutation an action describes
type Verb string

const (
	VerbSet    Verb = "SET"
	VerbUpdate Verb = "UPDATE"
	VerbRemove Verb = "REMOVE"
	VerbReset  Verb = "RESET"
	VerbClear  Verb = "CLEAR"
)

// Valid reports whether v is one of the known verbs
func (v Verb) Valid() bool {
	switch v {
	case VerbSet, VerbUpdate, VerbRemove, VerbReset, VerbClear:
		return true
	default:
		return false
	}
}

// Action describes a mutation. Type is "<VERB> <path>".
// Key is set by collection stores and holds the identifier.
type Action struct {
	Type  string `json:"type"`
	Path  string `json:"path,omitempty"`
	Key   string `json:"key,omitempty"`
	Value any    `json:"value,omitempty"`
}

// NewAction creates an action for verb at path
func NewAction(verb Verb, path, key string, value any) Action {
	return Action{
		Type:  strings.TrimSpace(string(verb) + " " + path),
		Path:  path,
		Key:   key,
		Value: value,
	}
}

// Verb returns the verb of the action
func (a Action) Verb() Verb {
	verb, _, _ := strings.Cut(a.Type, " ")
	return Verb(verb)
}

// ParseAction decodes an action descriptor and checks its verb
func ParseAction(data []byte) (Action, error) {
	var a Action
	if err := json.Unmarshal(data, &a); err != nil {
		return Action{}, fmt.Errorf("devtools: malformed action: %w", err)
	}
	if !a.Verb().Valid() {
		return Action{}, fmt.Errorf("devtools: unknown action type %q", a.Type)
	}
	// the path may only be encoded in the type
	if a.Path == "" {
		_, a.Path, _ = strings.Cut(a.Type, " ")
	}
	return a, nil
}

// --------------------------------------------------------------------------
// Extension
// --------------------------------------------------------------------------

// DefaultMaxAge is the number of actions a session keeps by default
const DefaultMaxAge = 50

// Features advertises the monitor features a session supports
type Features struct {
	Jump     bool `json:"jump"`
	Skip     bool `json:"skip"`
	Reorder  bool `json:"reorder"`
	Dispatch bool `json:"dispatch"`
	Persist  bool `json:"persist"`
}

// ConnectOptions configure a debugging session
type ConnectOptions struct {
	MaxAge   int      `json:"maxAge"`
	Features Features `json:"features"`
}

// DefaultConnectOptions enables all features and keeps DefaultMaxAge actions
func DefaultConnectOptions() ConnectOptions {
	return ConnectOptions{
		MaxAge: DefaultMaxAge,
		Features: Features{
			Jump:     true,
			Skip:     true,
			Reorder:  true,
			Dispatch: true,
			Persist:  true,
		},
	}
}

// Extension opens debugging sessions
type Extension interface {
	// Connect opens a session called name
	Connect(name string, opts ConnectOptions) (Connection, error)
}

// Connection is an open debugging session
type Connection interface {
	// Init records state as the initial state of the session
	Init(state any) error
	// Send records action and the state after it
	Send(action Action, state any) error
	// Subscribe registers the handler for inbound messages. Only one handler is kept.
	Subscribe(handler func(Message))
}
