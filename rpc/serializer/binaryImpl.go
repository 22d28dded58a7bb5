package serializer

import (
	"encoding/binary"
	"fmt"

	"github.com/ValentinKolb/rKV/rpc/common"
)

// NewBinarySerializer creates a new serializer using a custom binary format
// optimized for speed and efficiency
func NewBinarySerializer() IRPCSerializer {
	return &binarySerializerImpl{}
}

// binarySerializerImpl implements IRPCSerializer using a custom binary format.
//
// Layout: 1 byte MsgType, 2 bytes flags (big endian), then every present field
// in the order of the flags below. Integers are 8 bytes, Ok is 1 byte, strings
// and byte slices are prefixed with a 4 byte length.
type binarySerializerImpl struct {
}

// Bit flags to indicate which optional fields are present
const (
	hasID     uint16 = 1 << 0
	hasIndex  uint16 = 1 << 1
	hasName   uint16 = 1 << 2
	hasAction uint16 = 1 << 3
	hasState  uint16 = 1 << 4
	hasData   uint16 = 1 << 5
	hasOk     uint16 = 1 << 6
	hasCode   uint16 = 1 << 7
	hasErr    uint16 = 1 << 8
	hasMeta   uint16 = 1 << 9
)

const headerSize = 3

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (b binarySerializerImpl) Name() string {
	return "binary"
}

func (b binarySerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	// Calculate total size needed
	result := make([]byte, b.sizeBytes(msg))

	// Write message type
	result[0] = byte(msg.MsgType)

	var flags uint16
	pos := headerSize

	if msg.ID > 0 {
		flags |= hasID
		binary.BigEndian.PutUint64(result[pos:pos+8], msg.ID)
		pos += 8
	}
	if msg.Index > 0 {
		flags |= hasIndex
		binary.BigEndian.PutUint64(result[pos:pos+8], msg.Index)
		pos += 8
	}
	if msg.Name != "" {
		flags |= hasName
		pos = putBytes(result, pos, []byte(msg.Name))
	}
	if msg.Action != nil {
		flags |= hasAction
		pos = putBytes(result, pos, msg.Action)
	}
	if msg.State != nil {
		flags |= hasState
		pos = putBytes(result, pos, msg.State)
	}
	if msg.Data != nil {
		flags |= hasData
		pos = putBytes(result, pos, msg.Data)
	}
	if msg.Ok {
		flags |= hasOk
		result[pos] = 1
		pos += 1
	}
	if msg.Code > 0 {
		flags |= hasCode
		binary.BigEndian.PutUint64(result[pos:pos+8], msg.Code)
		pos += 8
	}
	if msg.Err != "" {
		flags |= hasErr
		pos = putBytes(result, pos, []byte(msg.Err))
	}
	if msg.Meta != nil {
		flags |= hasMeta
		putBytes(result, pos, msg.Meta)
	}

	// Set flags after knowing which fields are present
	binary.BigEndian.PutUint16(result[1:headerSize], flags)

	return result, nil
}

func (b binarySerializerImpl) Deserialize(data []byte, msg *common.Message) error {
	// Check minimum size (MsgType + flags)
	if len(data) < headerSize {
		return fmt.Errorf("data too short for message header")
	}

	*msg = common.Message{MsgType: common.MessageType(data[0])}
	flags := binary.BigEndian.Uint16(data[1:headerSize])
	pos := headerSize

	var err error
	if flags&hasID != 0 {
		if msg.ID, pos, err = readUint64(data, pos, "ID"); err != nil {
			return err
		}
	}
	if flags&hasIndex != 0 {
		if msg.Index, pos, err = readUint64(data, pos, "Index"); err != nil {
			return err
		}
	}
	if flags&hasName != 0 {
		var name []byte
		if name, pos, err = readBytes(data, pos, "name"); err != nil {
			return err
		}
		msg.Name = string(name)
	}
	if flags&hasAction != 0 {
		if msg.Action, pos, err = readBytes(data, pos, "action"); err != nil {
			return err
		}
	}
	if flags&hasState != 0 {
		if msg.State, pos, err = readBytes(data, pos, "state"); err != nil {
			return err
		}
	}
	if flags&hasData != 0 {
		if msg.Data, pos, err = readBytes(data, pos, "data"); err != nil {
			return err
		}
	}
	if flags&hasOk != 0 {
		if pos+1 > len(data) {
			return fmt.Errorf("data too short for Ok flag")
		}
		msg.Ok = data[pos] != 0
		pos += 1
	}
	if flags&hasCode != 0 {
		if msg.Code, pos, err = readUint64(data, pos, "Code"); err != nil {
			return err
		}
	}
	if flags&hasErr != 0 {
		var errMsg []byte
		if errMsg, pos, err = readBytes(data, pos, "error"); err != nil {
			return err
		}
		msg.Err = string(errMsg)
	}
	if flags&hasMeta != 0 {
		if msg.Meta, _, err = readBytes(data, pos, "meta"); err != nil {
			return err
		}
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// sizeBytes calculates the total size needed for serialization
func (b binarySerializerImpl) sizeBytes(msg common.Message) int {
	// 1 byte for MsgType + 2 bytes for flags
	size := headerSize

	if msg.ID > 0 {
		size += 8
	}
	if msg.Index > 0 {
		size += 8
	}
	if msg.Name != "" {
		size += 4 + len(msg.Name)
	}
	if msg.Action != nil {
		size += 4 + len(msg.Action)
	}
	if msg.State != nil {
		size += 4 + len(msg.State)
	}
	if msg.Data != nil {
		size += 4 + len(msg.Data)
	}
	if msg.Ok {
		size += 1
	}
	if msg.Code > 0 {
		size += 8
	}
	if msg.Err != "" {
		size += 4 + len(msg.Err)
	}
	if msg.Meta != nil {
		size += 4 + len(msg.Meta)
	}

	return size
}

// putBytes writes a length prefixed byte slice at pos and returns the new position
func putBytes(buf []byte, pos int, value []byte) int {
	binary.BigEndian.PutUint32(buf[pos:pos+4], uint32(len(value)))
	pos += 4
	copy(buf[pos:pos+len(value)], value)
	return pos + len(value)
}

// readBytes reads a length prefixed byte slice at pos.
// The result is a copy (an empty, non nil slice for length 0).
func readBytes(data []byte, pos int, field string) ([]byte, int, error) {
	if pos+4 > len(data) {
		return nil, pos, fmt.Errorf("data too short for %s length", field)
	}
	length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
	pos += 4

	if pos+length > len(data) {
		return nil, pos, fmt.Errorf("data too short for %s data", field)
	}
	value := make([]byte, length)
	copy(value, data[pos:pos+length])
	return value, pos + length, nil
}

// readUint64 reads a big endian uint64 at pos
func readUint64(data []byte, pos int, field string) (uint64, int, error) {
	if pos+8 > len(data) {
		return 0, pos, fmt.Errorf("data too short for %s", field)
	}
	return binary.BigEndian.Uint64(data[pos : pos+8]), pos + 8, nil
}
