// Package courier models the identity of couriers who accept, deliver and
// cancel orders.
package courier
