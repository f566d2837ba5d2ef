package granary

import "fmt"

// Accessor resolves one component type to its typed column within a table.
type Accessor[T any] struct {
	elementType ElementType
}

func FactoryNewAccessor[T any](et ElementType) Accessor[T] {
	return Accessor[T]{elementType: et}
}

// Get returns a pointer to the row's T value. The table must contain the
// accessor's element type and row must be below Length; violations panic.
// The pointer stays valid until the next structural mutation of the table.
func (a Accessor[T]) Get(row int, tbl *Table) *T {
	col, ok := tbl.columnFor(a.elementType)
	if !ok {
		panic(fmt.Sprintf("table does not contain element type %v", a.elementType.Type()))
	}
	return &col.(*colBuf[T]).data[row]
}

// Check reports whether the table carries the accessor's element type.
func (a Accessor[T]) Check(tbl *Table) bool {
	return tbl.Contains(a.elementType)
}
