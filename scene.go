package granary

import (
	"iter"

	iter_util "github.com/TheBitDrifter/util/iter"
	"github.com/rotisserie/eris"
)

// scene owns one table per declared archetype, the slot lookup table and
// the recycled-id stack. It is the sole entry point for entity lifecycle
// and queries; callers needing concurrent access provide their own
// exclusion.
type scene struct {
	locked     bool
	schema     Schema
	archetypes []*archetype
	names      Cache[uint32]
	slots      []slot
	recycled   []uint64
	opQueue    opQueue
}

func newScene(schema Schema, specs ...ArchetypeSpec) (Scene, error) {
	sc := &scene{
		schema:  schema,
		names:   FactoryNewCache[uint32](len(specs)),
		opQueue: newOpQueue(),
	}
	for i, spec := range specs {
		arch, err := newArchetype(schema, archetypeID(i), spec)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to declare archetype %q", spec.Name)
		}
		sc.archetypes = append(sc.archetypes, arch)
		if spec.Name == "" {
			continue
		}
		if _, taken := sc.names.GetIndex(spec.Name); taken {
			return nil, eris.Errorf("archetype name %q declared twice", spec.Name)
		}
		if _, err := sc.names.Register(spec.Name, uint32(i)); err != nil {
			return nil, eris.Wrapf(err, "failed to register archetype name %q", spec.Name)
		}
	}
	return sc, nil
}

// CreateEntity appends a zero-valued row to the archetype's table and
// assigns identity. Recycled ids are reused LIFO, already carrying their
// bumped generation; otherwise a fresh slot is minted at generation 0.
func (sc *scene) CreateEntity(archetype uint32) (EntityHandle, error) {
	if sc.locked {
		return EntityHandle{}, LockedSceneError{}
	}
	if int(archetype) >= len(sc.archetypes) {
		return EntityHandle{}, UnknownArchetypeError{Index: archetype}
	}
	tbl := sc.archetypes[archetype].table
	row, err := tbl.newRow()
	if err != nil {
		return EntityHandle{}, eris.Wrap(err, "failed to append row")
	}

	var id uint64
	if n := len(sc.recycled); n > 0 {
		id = sc.recycled[n-1]
		sc.recycled = sc.recycled[:n-1]
		sc.slots[uint32(id&slotLow)-1] = slot{id: id, row: uint32(row)}
	} else {
		id = uint64(len(sc.slots) + 1)
		sc.slots = append(sc.slots, slot{id: id, row: uint32(row)})
	}

	h := EntityHandle{ArchetypeIndex: archetype, ID: id}
	tbl.setHandle(row, h)
	return h, nil
}

func (sc *scene) CreateEntityNamed(name string) (EntityHandle, error) {
	arch, ok := sc.ArchetypeByName(name)
	if !ok {
		return EntityHandle{}, UnknownArchetypeError{Name: name}
	}
	return sc.CreateEntity(arch.Index())
}

func (sc *scene) EnqueueCreateEntities(archetype uint32, n int) error {
	if !sc.locked {
		for i := 0; i < n; i++ {
			if _, err := sc.CreateEntity(archetype); err != nil {
				return eris.Wrap(err, "failed to create entities directly")
			}
		}
		return nil
	}
	sc.opQueue.createOps = append(sc.opQueue.createOps, operation{
		typ:       opCreate,
		archetype: archetype,
		amount:    n,
	})
	return nil
}

// DestroyEntity removes the entity in O(1). A stale or already-destroyed
// handle is a silent no-op; the only error is a locked scene.
func (sc *scene) DestroyEntity(h EntityHandle) error {
	if sc.locked {
		return LockedSceneError{}
	}
	sc.destroyResolved(h)
	return nil
}

func (sc *scene) destroyResolved(h EntityHandle) {
	tbl, row, ok := sc.locate(h)
	if !ok {
		return
	}
	sc.destroyAt(tbl, row, h)
}

// destroyAt assumes h is live at row within tbl. The last row moves into
// the vacated position and the moved entity's slot entry is rewritten
// before the slot is freed and its bumped id pushed for reuse.
func (sc *scene) destroyAt(tbl *Table, row int, h EntityHandle) {
	moved, swapped, _ := tbl.swapRemove(row)
	if swapped {
		sc.slots[uint32(moved.ID&slotLow)-1].row = uint32(row)
	}
	slotIdx, _ := h.Slot()
	sc.slots[slotIdx] = slot{}
	sc.recycled = append(sc.recycled, h.ID+generationBump)
}

func (sc *scene) EnqueueDestroyEntities(handles ...EntityHandle) error {
	if !sc.locked {
		for _, h := range handles {
			sc.destroyResolved(h)
		}
		return nil
	}
	sc.opQueue.EnqueueDestroy(handles)
	return nil
}

// DestroyEntities clears every archetype's rows and recycles every
// occupied slot's id in one pass. Capacity is retained.
func (sc *scene) DestroyEntities() error {
	if sc.locked {
		return LockedSceneError{}
	}
	for i := range sc.slots {
		if sc.slots[i].id == 0 {
			continue
		}
		sc.recycled = append(sc.recycled, sc.slots[i].id+generationBump)
		sc.slots[i] = slot{}
	}
	for _, arch := range sc.archetypes {
		arch.table.clearRows()
	}
	return nil
}

// DestroyEntitiesWhere swap-removes every row the predicate matches,
// sweeping each qualifying archetype from the last row down to the first:
// a row moved in by swap-remove comes from an index already examined, so
// nothing is skipped.
func (sc *scene) DestroyEntitiesWhere(node QueryNode, pred func(*Cursor) bool) error {
	if sc.locked {
		return LockedSceneError{}
	}
	for _, arch := range sc.archetypes {
		if !node.Evaluate(arch, sc) {
			continue
		}
		tbl := arch.table
		cursor := rowCursor(sc, arch)
		for row := tbl.Length() - 1; row >= 0; row-- {
			cursor.entityIndex = row + 1
			if !pred(cursor) {
				continue
			}
			sc.destroyAt(tbl, row, tbl.handleAt(row))
		}
	}
	return nil
}

// ForEach visits every row of every archetype whose component set
// satisfies the query, archetypes in declared order, rows ascending. The
// match is resolved once per archetype. The scene is locked for the
// duration; mutations must go through the enqueue operations.
func (sc *scene) ForEach(node QueryNode, visit func(*Cursor)) {
	cursor := newCursor(node, sc)
	sc.Lock()
	for cursor.Next() {
		visit(cursor)
	}
}

// FindEntityIf returns the handle of the first row matching the
// predicate, scanning archetypes in declared order, rows ascending.
func (sc *scene) FindEntityIf(node QueryNode, pred func(*Cursor) bool) (EntityHandle, bool) {
	cursor := newCursor(node, sc)
	sc.Lock()
	for cursor.Next() {
		if pred(cursor) {
			h := cursor.CurrentHandle()
			cursor.Reset()
			return h, true
		}
	}
	return EntityHandle{}, false
}

// FindEntitiesWhere collects the handle of every matching row, in the
// same traversal order as FindEntityIf.
func (sc *scene) FindEntitiesWhere(node QueryNode, pred func(*Cursor) bool) []EntityHandle {
	return iter_util.Collect(sc.matches(node, pred))
}

func (sc *scene) matches(node QueryNode, pred func(*Cursor) bool) iter.Seq[EntityHandle] {
	return func(yield func(EntityHandle) bool) {
		cursor := newCursor(node, sc)
		sc.Lock()
		for cursor.Next() {
			if !pred(cursor) {
				continue
			}
			if !yield(cursor.CurrentHandle()) {
				cursor.Reset()
				return
			}
		}
	}
}

// Contains reports whether the handle currently names a live entity.
func (sc *scene) Contains(h EntityHandle) bool {
	_, _, ok := sc.locate(h)
	return ok
}

// locate resolves a handle against the slot table. The slot must store
// exactly the handle's id; anything else is stale.
func (sc *scene) locate(h EntityHandle) (*Table, int, bool) {
	slotIdx, ok := h.Slot()
	if !ok || int(slotIdx) >= len(sc.slots) || sc.slots[slotIdx].id != h.ID {
		return nil, 0, false
	}
	if int(h.ArchetypeIndex) >= len(sc.archetypes) {
		return nil, 0, false
	}
	return sc.archetypes[h.ArchetypeIndex].table, int(sc.slots[slotIdx].row), true
}

func (sc *scene) Archetype(index uint32) (Archetype, error) {
	if int(index) >= len(sc.archetypes) {
		return nil, UnknownArchetypeError{Index: index}
	}
	return sc.archetypes[index], nil
}

func (sc *scene) ArchetypeByName(name string) (Archetype, bool) {
	idx, ok := sc.names.GetIndex(name)
	if !ok {
		return nil, false
	}
	return sc.archetypes[*sc.names.GetItem(idx)], true
}

func (sc *scene) ArchetypeCount() int {
	return len(sc.archetypes)
}

func (sc *scene) RowIndexFor(c Component) uint32 {
	return sc.schema.RowIndexFor(c)
}

func (sc *scene) Locked() bool {
	return sc.locked
}

func (sc *scene) Lock() {
	sc.locked = true
}

func (sc *scene) Unlock() {
	sc.locked = false
	err := sc.processOperationQueue()
	if err != nil {
		panic(err)
	}
}
