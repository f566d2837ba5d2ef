package granary

// Config holds global configuration for table storage
var Config config = config{minCapacity: 4}

type config struct {
	minCapacity      int
	maxTableCapacity int
}

// SetMinCapacity sets the starting row capacity a table grows to on its
// first append. Values below 1 are ignored.
func (c *config) SetMinCapacity(n int) {
	if n > 0 {
		c.minCapacity = n
	}
}

// SetMaxTableCapacity caps per-table row capacity; growth past the cap
// fails with AllocationError. 0 removes the cap.
func (c *config) SetMaxTableCapacity(n int) {
	c.maxTableCapacity = n
}

func (c *config) MinCapacity() int {
	return c.minCapacity
}

func (c *config) MaxTableCapacity() int {
	return c.maxTableCapacity
}
