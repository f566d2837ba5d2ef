package granary

// column is one contiguous per-type buffer of a table. Only the occupied
// rows exist in the slice; spare capacity never holds constructed values.
type column interface {
	grow(capacity int)
	appendZero()
	swapRemove(row int)
	truncate()
	len() int
}

var _ column = &colBuf[int]{}

type colBuf[T any] struct {
	data []T
}

// grow moves the occupied rows into a fresh buffer of the given capacity.
// The old buffer is abandoned only after the copy completes.
func (c *colBuf[T]) grow(capacity int) {
	next := make([]T, len(c.data), capacity)
	copy(next, c.data)
	c.data = next
}

func (c *colBuf[T]) appendZero() {
	var zero T
	c.data = append(c.data, zero)
}

// swapRemove moves the last row into row and shrinks by one. The vacated
// last slot is zeroed so released rows hold no references.
func (c *colBuf[T]) swapRemove(row int) {
	last := len(c.data) - 1
	c.data[row] = c.data[last]
	var zero T
	c.data[last] = zero
	c.data = c.data[:last]
}

func (c *colBuf[T]) truncate() {
	clear(c.data)
	c.data = c.data[:0]
}

func (c *colBuf[T]) len() int {
	return len(c.data)
}
