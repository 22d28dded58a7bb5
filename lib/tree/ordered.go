package tree

import (
	"bytes"
	"encoding/json"
)

// Ordered is a string keyed record that remembers the order of its keys.
// It encodes to a JSON object whose members follow Keys, ParseJSONObject
// reads the order back.
type Ordered struct {
	Keys   []string
	Values map[string]any
}

// MarshalJSON writes the members in key order. Keys without a value are
// written as null.
func (o Ordered) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(o.Values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
