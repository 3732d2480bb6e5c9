// Package catalogue models the read-only service catalogue: the billable
// services, their prices under each tariff and the dimension tags that decide
// which orders a service may be attached to.
//
// Dimension matching is a three-state comparison. A service tagged with NULL
// on a dimension is a wildcard for that dimension and matches every order,
// including orders whose own value is NULL. A tagged service matches only
// orders carrying exactly the same value.
package catalogue
