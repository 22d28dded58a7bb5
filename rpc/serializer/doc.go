// Package serializer provides message serialization for the debug host RPC
// system. It defines a common interface and multiple implementations for
// serializing and deserializing messages between stores, tools and the host.
//
// The format is chosen by name (see Names and New) and must match on both
// ends of a connection. It is never negotiated.
//
// Key Components:
//
//   - IRPCSerializer: Core interface that all serializer implementations must satisfy.
//
//   - binarySerializerImpl: Custom binary format implementation optimized for speed
//     and space efficiency. Uses a flag-based approach (two flag bytes) to encode
//     only present fields, resulting in compact serialized data with minimal
//     overhead. Decoded byte slices never alias the input buffer, so transports
//     may reuse their read buffers.
//
//   - gobSerializerImpl: Implementation using Go's built-in gob encoding, offering
//     good compatibility with Go's type system but with larger serialized sizes.
//
//   - jsonSerializerImpl: Implementation using JSON encoding, useful for debugging
//     or interoperability with other systems, but with lower performance.
//
// Performance Characteristics (see BenchmarkSerialize, BenchmarkDeserialize and BenchmarkSize):
//
//   - Binary: Delivers superior performance with the smallest payload size. Highly optimized
//     for the application's specific message structure and recommended for production use.
//
//   - JSON: Offers acceptable performance with moderate payload sizes. Provides human-readable
//     output beneficial for debugging and system integration scenarios.
//
//   - GOB: Performs significantly worse than other implementations with consistently larger
//     payload sizes. Not recommended for use in this system as it provides no advantages
//     over Binary or JSON serialization.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	Serializers are stateless, create one by name and share it:
//
//	  s, err := serializer.New("binary")
//	  data, err := s.Serialize(msg)
//	  var out common.Message
//	  err = s.Deserialize(data, &out)
//
//	Deserialize always resets the target message, so a Message may be reused
//	across calls.
package serializer
