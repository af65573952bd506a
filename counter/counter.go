// Package counter provides a monotonic per-name sequence number, used
// by smtctx.SolverContext to generate deterministic, collision-free
// variable and constraint names: one Counter per name prefix, bumped
// on every allocation under that prefix.
package counter

import (
	"fmt"
)

// Counter is a 64 bit monotonic sequence.
type Counter struct {
	count uint64
}

// New creates a new zero-valued Counter.
func New() *Counter {
	return new(Counter)
}

// Reset sets the counter back to zero.
func (c *Counter) Reset() {
	c.count = 0
}

// Increment bumps the counter by one.
func (c *Counter) Increment() {
	c.count++
}

// Value returns the current count.
func (c *Counter) Value() uint64 {
	return uint64(c.count)
}

// String implements strings.Stringer
func (c *Counter) String() string {
	return fmt.Sprintf("%d", c.count)
}
