// Package services holds domain services that span more than one aggregate.
//
// DispatchBalancer decides whether a courier may accept a large order given
// the week's large-order counts, and performs the acceptance when it may.
package services
