// Package services provides domain services of the order-processing core:
// business rules that need more than one aggregate or catalogue object.
//
// The package includes:
//   - EligibilityResolver: splits the catalogue into the services attached to
//     an order and the services that may still be attached to it
package services
