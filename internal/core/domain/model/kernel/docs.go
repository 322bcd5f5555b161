// Package kernel provides the shared value objects of the fulfillment domain.
//
// The package includes:
//   - UUID: identifier of orders, catalog services and execution items
//   - Money: a non-negative monetary amount backed by decimal arithmetic
//
// Both are immutable and safe for concurrent use. Their zero values are invalid;
// construct them with the provided functions and check them with Validate.
package kernel
