package granary

import (
	"iter"
	"reflect"

	"github.com/TheBitDrifter/mask"
)

var _ mask.Maskable = &Table{}

// Table is the columnar store for exactly one archetype: one typed buffer
// per declared component type plus an identity column of handles. All
// buffers share the same row count and the same capacity.
//
// Row access is always validated: exported row-indexed methods return
// OutOfRangeError, and the typed accessor paths operate on buffers sliced
// to the row count, so an out-of-range index panics rather than touching
// unoccupied capacity.
type Table struct {
	schema    Schema
	tableMask mask.Mask
	types     []ElementType
	columns   []column
	positions map[reflect.Type]int
	handles   colBuf[EntityHandle]
	capacity  int
}

func newTable(schema Schema, components ...Component) (*Table, error) {
	tbl := &Table{
		schema:    schema,
		positions: make(map[reflect.Type]int, len(components)),
	}
	for _, component := range components {
		if _, exists := tbl.positions[component.Type()]; exists {
			return nil, DuplicateElementTypeError{ElementType: component}
		}
		bit := schema.Register(component)
		tbl.tableMask.Mark(bit)
		tbl.positions[component.Type()] = len(tbl.columns)
		tbl.types = append(tbl.types, component)
		tbl.columns = append(tbl.columns, component.newColumn())
	}
	return tbl, nil
}

// Length returns the number of occupied rows.
func (t *Table) Length() int {
	return t.handles.len()
}

// Capacity returns the row capacity currently allocated across columns.
func (t *Table) Capacity() int {
	return t.capacity
}

// Mask reports the component set as schema bits.
func (t *Table) Mask() mask.Mask {
	return t.tableMask
}

// Contains reports whether the element type is one of the table's declared
// columns.
func (t *Table) Contains(et ElementType) bool {
	_, ok := t.positions[et.Type()]
	return ok
}

func (t *Table) ElementTypes() iter.Seq[ElementType] {
	return func(yield func(ElementType) bool) {
		for _, et := range t.types {
			if !yield(et) {
				return
			}
		}
	}
}

// HandleAt returns the identity stored at row.
func (t *Table) HandleAt(row int) (EntityHandle, error) {
	if row < 0 || row >= t.handles.len() {
		return EntityHandle{}, OutOfRangeError{Index: row, Count: t.handles.len()}
	}
	return t.handles.data[row], nil
}

func (t *Table) handleAt(row int) EntityHandle {
	return t.handles.data[row]
}

func (t *Table) setHandle(row int, h EntityHandle) {
	t.handles.data[row] = h
}

func (t *Table) columnFor(et ElementType) (column, bool) {
	pos, ok := t.positions[et.Type()]
	if !ok {
		return nil, false
	}
	return t.columns[pos], true
}

// newRow appends a zero-valued row to every column and returns its index,
// doubling capacity first when full.
func (t *Table) newRow() (int, error) {
	count := t.handles.len()
	if count == t.capacity {
		next := t.capacity * 2
		if next < Config.minCapacity {
			next = Config.minCapacity
		}
		if err := t.setMinCapacity(next); err != nil {
			return 0, err
		}
	}
	for _, col := range t.columns {
		col.appendZero()
	}
	t.handles.appendZero()
	return count, nil
}

// setMinCapacity grows every column to at least capacity. The limit check
// runs before any buffer is allocated, so a refused growth leaves the
// table exactly as it was.
func (t *Table) setMinCapacity(capacity int) error {
	if t.capacity >= capacity {
		return nil
	}
	if limit := Config.maxTableCapacity; limit > 0 && capacity > limit {
		return AllocationError{Requested: capacity, Limit: limit}
	}
	for _, col := range t.columns {
		col.grow(capacity)
	}
	t.handles.grow(capacity)
	t.capacity = capacity
	return nil
}

// swapRemove deletes row in O(1) by moving the last row into its place.
// When a move happened, the returned handle names the relocated entity so
// the caller can rewrite its slot entry.
func (t *Table) swapRemove(row int) (moved EntityHandle, swapped bool, err error) {
	count := t.handles.len()
	if row < 0 || row >= count {
		return EntityHandle{}, false, OutOfRangeError{Index: row, Count: count}
	}
	last := count - 1
	if row != last {
		moved = t.handles.data[last]
		swapped = true
	}
	for _, col := range t.columns {
		col.swapRemove(row)
	}
	t.handles.swapRemove(row)
	return moved, swapped, nil
}

// clearRows drops every row. Capacity is retained.
func (t *Table) clearRows() {
	for _, col := range t.columns {
		col.truncate()
	}
	t.handles.truncate()
}
