package serializer

import (
	"encoding/json"

	"github.com/ValentinKolb/rKV/rpc/common"
)

// NewJSONSerializer creates a new serializer using json encoding.
// Byte fields (states, actions, results) are base64 encoded by encoding/json.
func NewJSONSerializer() IRPCSerializer {
	return &jsonSerializerImpl{}
}

type jsonSerializerImpl struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (j *jsonSerializerImpl) Name() string {
	return "json"
}

func (j *jsonSerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	return json.Marshal(msg)
}

func (j *jsonSerializerImpl) Deserialize(b []byte, msg *common.Message) error {
	// omitted fields would otherwise keep their old values
	*msg = common.Message{}
	return json.Unmarshal(b, msg)
}
