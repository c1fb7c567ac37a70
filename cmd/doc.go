// Package cmd implements the command-line interface for the oReg runtime
// override registry. It provides a hierarchical command structure for
// inspecting and exercising an in-process registry instance.
//
// The package is organized into several subpackages:
//
//   - demo: Walks the full row and message lifecycle against a fresh registry
//   - bench: Concurrency benchmarks for the eight override operations
//   - util: Shared utilities for command-line processing, configuration, and logging (internal use)
//
// See oreg -help for a list of all commands.
package cmd
