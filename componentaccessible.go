package granary

// GetFromCursor retrieves the component value for the entity at the cursor
// position.
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *T {
	return c.Get(
		cursor.entityIndex-1,
		cursor.currentArchetype.Table(),
	)
}

// GetFromCursorSafe safely retrieves a component value, checking that the
// component exists in the cursor's archetype first.
func (c AccessibleComponent[T]) GetFromCursorSafe(cursor *Cursor) (bool, *T) {
	ok := c.Accessor.Check(cursor.currentArchetype.Table())
	if ok {
		return true, c.GetFromCursor(cursor)
	}
	return false, nil
}

// CheckCursor determines if the component exists in the archetype at the
// cursor position.
func (c AccessibleComponent[T]) CheckCursor(cursor *Cursor) bool {
	return c.Accessor.Check(cursor.currentArchetype.Table())
}

// GetFromHandle retrieves the component value for the given handle. It
// returns nil when the handle is stale or the entity's archetype does not
// declare T; it never returns an error. The pointer is a borrowed view
// into the live row, valid until the next structural mutation of that
// archetype's table.
func (c AccessibleComponent[T]) GetFromHandle(sc Scene, h EntityHandle) *T {
	tbl, row, ok := locate(sc, h)
	if !ok {
		return nil
	}
	return tryGet(c.Accessor, tbl, row)
}
