// Package order implements the Order aggregate and its lifecycle.
//
// An order is created pending, then an admin denies it or a courier accepts it;
// the accepting courier later delivers or cancels it. Events arriving in any
// other state fail with errs.InvalidTransitionError, which callers treat as
// "already processed" because chat buttons are routinely pressed twice.
//
// Orders are numbered per workday (04:00 to 04:00 local time) and carry a
// random customer-facing delivery number that is not unique.
package order
