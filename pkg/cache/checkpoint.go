package cache

// Checkpoint counts writes and tells when a table should be flushed.
type Checkpoint struct {
	every int
	count int
}

// NewCheckpoint creates a counter that fires every n writes.
// Values below 1 are treated as 1.
func NewCheckpoint(n int) *Checkpoint {
	return &Checkpoint{every: max(n, 1)}
}

// Tick registers one write and returns true when a flush is due.
func (c *Checkpoint) Tick() bool {
	c.count++
	return c.count%c.every == 0
}

// Count returns the number of registered writes.
func (c *Checkpoint) Count() int {
	return c.count
}
