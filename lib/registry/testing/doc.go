// Package testing provides standardised tests and benchmarks for registry
// implementations that satisfy the registry.IRegistry interface.
//
// The package contains:
//   - testing: A test suite validating conformance to the IRegistry contract,
//     including lazy creation, sentinel semantics, id allocation laws, and
//     concurrent access
//   - benchmark: Performance tests for measuring the throughput of the eight
//     override operations
//
// Example usage:
//
//	// Creating a factory function for your implementation
//	factory := func() registry.IRegistry {
//		return NewMyRegistry()
//	}
//
//	// Running the standard test suite
//	regtesting.RunRegistryTests(t, "MyRegistry", factory)
//
//	// Running performance benchmarks
//	regtesting.RunRegistryBenchmarks(b, "MyRegistry", factory)
package testing
