// Package kernel provides the domain primitives shared by every aggregate of
// the order-processing core.
//
// The package includes:
//   - ID: a store-assigned surrogate key with validation
//   - Optional ID helpers for nullable references such as catalogue dimensions
package kernel
