package serializer

import (
	"fmt"

	"github.com/ValentinKolb/rKV/rpc/common"
)

// IRPCSerializer is the interface for all Message Serializers
type IRPCSerializer interface {
	// Name returns the name the serializer is selected by (json, gob, binary)
	Name() string
	// Serialize serializes a Message into a byte array
	// It returns the serialized byte array and an error if any
	Serialize(msg common.Message) ([]byte, error)
	// Deserialize replaces *msg with the Message decoded from b.
	// Fields absent in b are zero after decoding, msg may be reused.
	Deserialize(b []byte, msg *common.Message) error
}

// Names lists the names accepted by New
var Names = []string{"json", "gob", "binary"}

// New returns the serializer called name
func New(name string) (IRPCSerializer, error) {
	switch name {
	case "json":
		return NewJSONSerializer(), nil
	case "gob":
		return NewGOBSerializer(), nil
	case "binary":
		return NewBinarySerializer(), nil
	default:
		return nil, fmt.Errorf("invalid serializer %s (expected one of %v)", name, Names)
	}
}
