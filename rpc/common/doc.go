// Package common provides the data structures and utilities shared by the rpc
// packages. It defines the message protocol, configuration structures and the
// logger used by the debug host server and its clients.
//
// The package focuses on:
//   - Message protocol definition for the communication with a debug host
//   - Configuration structures for client and server components
//   - Custom logging implementation integrated with the dragonboat logger
//
// Key Components:
//
//   - Message: Core data structure for all RPC communication, with a flexible
//     structure that adapts to the different host operations. Actions, states and
//     results are carried JSON encoded. Includes factory methods for all requests.
//
//   - MessageType: Enumeration of all supported operation types, one per
//     host.IHost method plus the control messages.
//
//   - ServerConfig / ClientConfig: Configuration of the server and the clients,
//     controlling endpoints, timeouts, retries and socket options.
//
//   - Logger: Custom ILogger implementation with a consistent format across all
//     rKV packages. InitLoggers installs it and sets the log level.
package common
