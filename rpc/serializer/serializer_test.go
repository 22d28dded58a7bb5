package serializer

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/ValentinKolb/rKV/rpc/common"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() IRPCSerializer{
	"JSON":   NewJSONSerializer,
	"GOB":    NewGOBSerializer,
	"Binary": NewBinarySerializer,
}

// testMessages creates a set of test messages with different fields filled
func testMessages() []common.Message {
	return []common.Message{
		// Basic message with just a type
		{MsgType: common.MsgTSuccess},

		// Connect request
		{
			MsgType: common.MsgTHConnect,
			Name:    "settings",
			Data:    []byte(`{"maxAge":50}`),
		},

		// Send request
		{
			MsgType: common.MsgTHSend,
			ID:      17,
			Action:  []byte(`{"type":"SET user.name","path":"user.name","value":"Bo"}`),
			State:   []byte(`{"user":{"name":"Bo"}}`),
		},

		// Jump request
		{
			MsgType: common.MsgTHJump,
			ID:      17,
			Index:   3,
		},

		// Poll response
		{
			MsgType: common.MsgTHPoll,
			Data:    []byte(`[{"type":"DISPATCH","payload":{"type":"RESET"}}]`),
			Ok:      true,
		},

		// Failed host operation
		{
			MsgType: common.MsgTHHistory,
			Code:    2,
			Err:     "no session with id 17",
		},

		// Error response
		{
			MsgType: common.MsgTError,
			Err:     "test error message",
		},

		// Message with all fields filled
		{
			MsgType: common.MsgTHSend,
			ID:      1<<63 + 5,
			Index:   42,
			Name:    "counter",
			Action:  []byte(`{"type":"RESET"}`),
			State:   []byte(`{}`),
			Data:    []byte(`null`),
			Ok:      true,
			Code:    4,
			Err:     "invalid operation",
			Meta:    []byte("test-meta-data"),
		},
	}
}

// TestSerializerRoundTrip tests that messages can be serialized and deserialized correctly
func TestSerializerRoundTrip(t *testing.T) {
	messages := testMessages()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for i, msg := range messages {
				// Serialize
				data, err := serializer.Serialize(msg)
				if err != nil {
					t.Errorf("Failed to serialize message %d: %v", i, err)
					continue
				}

				// Deserialize
				var result common.Message
				err = serializer.Deserialize(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize message %d: %v", i, err)
					continue
				}

				// Compare
				if !reflect.DeepEqual(msg, result) {
					t.Errorf("Message %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
						i, msg, result)
				}
			}
		})
	}
}

// TestMessageTypes tests each message type with each serializer
func TestMessageTypes(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for msgType := common.MsgTSuccess; msgType <= common.MsgTCustom; msgType++ {
				msg := common.Message{MsgType: msgType}

				// Serialize
				data, err := serializer.Serialize(msg)
				if err != nil {
					t.Errorf("Failed to serialize message type %s: %v", msgType.String(), err)
					continue
				}

				// Deserialize
				var result common.Message
				err = serializer.Deserialize(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize message type %s: %v", msgType.String(), err)
					continue
				}

				// Check type
				if result.MsgType != msgType {
					t.Errorf("Message type doesn't match after round trip: Expected %s, got %s",
						msgType.String(), result.MsgType.String())
				}
			}
		})
	}
}

// TestBinarySerializerSpecific tests specific edge cases for the binary serializer
func TestBinarySerializerSpecific(t *testing.T) {
	serializer := NewBinarySerializer()

	testCases := []struct {
		name string
		msg  common.Message
	}{
		{
			name: "Empty message",
			msg:  common.Message{},
		},
		{
			name: "Empty slices are kept non nil",
			msg: common.Message{
				MsgType: common.MsgTHSend,
				Action:  []byte{},
				State:   []byte{},
				Data:    []byte{},
				Meta:    []byte{},
			},
		},
		{
			name: "Ok without data",
			msg: common.Message{
				MsgType: common.MsgTHReset,
				Ok:      true,
			},
		},
		{
			name: "Large state",
			msg: common.Message{
				MsgType: common.MsgTHInit,
				ID:      9,
				State:   bytes.Repeat([]byte("x"), 1<<16),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := serializer.Serialize(tc.msg)
			if err != nil {
				t.Fatalf("Failed to serialize: %v", err)
			}

			// Deserialize into a dirty message, all fields must be overwritten
			result := common.Message{Name: "stale", Index: 99, Err: "stale"}
			if err := serializer.Deserialize(data, &result); err != nil {
				t.Fatalf("Failed to deserialize: %v", err)
			}

			if !reflect.DeepEqual(tc.msg, result) {
				t.Errorf("Message doesn't match after round trip:\nOriginal: %+v\nResult: %+v", tc.msg, result)
			}
		})
	}
}

// TestBinaryDeserializeCopies tests that decoded slices do not alias the input buffer
func TestBinaryDeserializeCopies(t *testing.T) {
	serializer := NewBinarySerializer()

	data, err := serializer.Serialize(common.Message{MsgType: common.MsgTHInit, State: []byte(`{"a":1}`)})
	if err != nil {
		t.Fatalf("Failed to serialize: %v", err)
	}

	var result common.Message
	if err := serializer.Deserialize(data, &result); err != nil {
		t.Fatalf("Failed to deserialize: %v", err)
	}

	// reuse the buffer like the transports do
	for i := range data {
		data[i] = 0
	}
	if string(result.State) != `{"a":1}` {
		t.Errorf("State changed after the buffer was reused: %q", result.State)
	}
}

// TestInvalidBinaryData tests how the binary serializer handles corrupt or invalid data
func TestInvalidBinaryData(t *testing.T) {
	serializer := NewBinarySerializer()

	testCases := []struct {
		name        string
		data        []byte
		expectError bool
	}{
		{
			name:        "Empty data",
			data:        []byte{},
			expectError: true,
		},
		{
			name:        "Too short header",
			data:        []byte{1, 0}, // Message type and one flag byte
			expectError: true,
		},
		{
			name:        "Valid header only",
			data:        []byte{1, 0, 0}, // Message type 1, no flags
			expectError: false,
		},
		{
			name:        "Invalid length for name",
			data:        []byte{1, 0, 4, 0, 0, 0, 5, 'a', 'b', 'c'}, // Claims name length 5 but only 3 bytes provided
			expectError: true,
		},
		{
			name:        "Truncated ID",
			data:        []byte{1, 0, 1, 0, 0, 0}, // ID needs 8 bytes
			expectError: true,
		},
		{
			name:        "Invalid length for state",
			data:        []byte{1, 0, 16, 0, 0, 0, 10}, // Claims state length 10 but no bytes provided
			expectError: true,
		},
		{
			name:        "Invalid length for meta",
			data:        []byte{1, 2, 0, 0, 0, 0, 1}, // Meta flag is in the high byte
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var msg common.Message
			err := serializer.Deserialize(tc.data, &msg)

			if tc.expectError && err == nil {
				t.Errorf("Expected error but got none")
			} else if !tc.expectError && err != nil {
				t.Errorf("Did not expect error but got: %v", err)
			}
		})
	}
}

// TestNew tests that every serializer can be selected by its name
func TestNew(t *testing.T) {
	for _, name := range Names {
		s, err := New(name)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", name, err)
		}
		if s.Name() != name {
			t.Errorf("Expected serializer %q, got %q", name, s.Name())
		}
	}

	if _, err := New("xml"); err == nil {
		t.Error("Expected an error for an unknown serializer")
	}
}

// TestDeserializeReusedMessage tests that decoding into a used message does not keep old fields
func TestDeserializeReusedMessage(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			data, err := serializer.Serialize(common.Message{MsgType: common.MsgTHPoll, ID: 3})
			if err != nil {
				t.Fatalf("Serialize failed: %v", err)
			}

			msg := common.Message{MsgType: common.MsgTHSend, ID: 9, Name: "old", State: []byte(`{}`), Ok: true}
			if err := serializer.Deserialize(data, &msg); err != nil {
				t.Fatalf("Deserialize failed: %v", err)
			}

			expected := common.Message{MsgType: common.MsgTHPoll, ID: 3}
			if !reflect.DeepEqual(expected, msg) {
				t.Errorf("Expected %+v, got %+v", expected, msg)
			}
		})
	}
}
