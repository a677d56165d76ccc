// Package kernel holds the value objects shared by the order and dispatch models:
// order identifiers, the 04:00 workday bucket and the ISO week bucket used for
// large-order counts.
package kernel
