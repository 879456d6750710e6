// Package kernel provides the shared value objects of the production domain.
//
// The package includes:
//   - UUID: identifier of work orders, with validation and comparison
//
// Kernel types are immutable and safe for concurrent use.
package kernel
