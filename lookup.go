package granary

// locate resolves a handle to its table and row. Every component lookup,
// single- or multi-type, funnels through here and tryGet so the two paths
// cannot diverge.
func locate(sc Scene, h EntityHandle) (*Table, int, bool) {
	s, ok := sc.(*scene)
	if !ok {
		return nil, 0, false
	}
	return s.locate(h)
}

func tryGet[T any](acc Accessor[T], tbl *Table, row int) *T {
	if !acc.Check(tbl) {
		return nil
	}
	return acc.Get(row, tbl)
}

// GetComponents2 resolves the handle once and returns pointers into its
// row for both component types. Stale handles yield all nils; a type the
// entity's archetype does not declare yields nil for that type only.
func GetComponents2[A, B any](
	sc Scene, h EntityHandle,
	a AccessibleComponent[A], b AccessibleComponent[B],
) (*A, *B) {
	tbl, row, ok := locate(sc, h)
	if !ok {
		return nil, nil
	}
	return tryGet(a.Accessor, tbl, row), tryGet(b.Accessor, tbl, row)
}

// GetComponents3 is GetComponents2 for three component types.
func GetComponents3[A, B, C any](
	sc Scene, h EntityHandle,
	a AccessibleComponent[A], b AccessibleComponent[B], c AccessibleComponent[C],
) (*A, *B, *C) {
	tbl, row, ok := locate(sc, h)
	if !ok {
		return nil, nil, nil
	}
	return tryGet(a.Accessor, tbl, row), tryGet(b.Accessor, tbl, row), tryGet(c.Accessor, tbl, row)
}

// GetComponents4 is GetComponents2 for four component types.
func GetComponents4[A, B, C, D any](
	sc Scene, h EntityHandle,
	a AccessibleComponent[A], b AccessibleComponent[B], c AccessibleComponent[C], d AccessibleComponent[D],
) (*A, *B, *C, *D) {
	tbl, row, ok := locate(sc, h)
	if !ok {
		return nil, nil, nil, nil
	}
	return tryGet(a.Accessor, tbl, row), tryGet(b.Accessor, tbl, row),
		tryGet(c.Accessor, tbl, row), tryGet(d.Accessor, tbl, row)
}
