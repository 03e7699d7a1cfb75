// Package common provides core data structures and utilities shared across
// the bookstore RPC system. It defines the wire protocol, configuration
// structures, and logging helpers used by other packages.
//
// The package focuses on:
//   - Message protocol definition for client/server communication
//   - Configuration structures for client and server components
//   - A shared zap-based logger factory with named sub-loggers
//
// Key Components:
//
//   - Message: Core data structure for all RPC communication, with a flexible
//     structure that adapts to different operation types. Includes factory
//     methods for creating the various request and response messages. Error
//     responses carry both the error text and the numeric error code so
//     clients can rebuild the typed error on their side.
//
//   - MessageType: Enumeration defining all supported operations, categorized
//     into stock-manager operations, bookstore operations, and control
//     messages.
//
//   - ServerConfig / ClientConfig: Configuration for the server and client
//     components, controlling endpoints, timeouts, retry behavior, and
//     socket-level transport tuning.
package common
