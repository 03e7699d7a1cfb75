// Package cmd implements the command-line interface for the bookstore
// server. It provides a hierarchical command structure with operations
// for running the server and interacting with it as a client.
//
// The package is organized into several subpackages:
//
//   - stock: Commands for stock management (add, list, remove, etc.)
//   - shop: Commands for customer operations (buy, rate, top-rated, etc.)
//   - serve: Commands for starting and configuring the bookstore server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See bookstore -help for a list of all commands.
package cmd
