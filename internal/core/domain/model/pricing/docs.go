// Package pricing implements the price snapshot: the immutable set of money
// figures derived from a base price and a tax rate.
//
// A Snapshot is computed in exactly one place (NewSnapshot) so the relation
//
//	tax_amount = round(price × tax, 2)
//	total      = price + tax_amount
//
// holds for every catalogue price and every frozen copy attached to an order.
package pricing
