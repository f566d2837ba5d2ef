package granary

const (
	slotBits = 32
	slotLow  = uint64(1)<<slotBits - 1

	// generationBump added to a packed id when its slot is recycled.
	generationBump = uint64(1) << slotBits
)

// EntityHandle is the opaque identity of an entity. ArchetypeIndex selects
// the owning archetype within its scene; ID packs the recycle generation in
// the high 32 bits and the one-based slot index in the low 32 bits.
//
// A handle is live iff the scene's slot table still stores exactly ID at
// the packed slot; once the entity is destroyed, every lookup through the
// handle resolves to nothing.
type EntityHandle struct {
	ArchetypeIndex uint32
	ID             uint64
}

// Generation returns how many times the handle's slot had been recycled
// when the handle was issued.
func (h EntityHandle) Generation() uint32 {
	return uint32(h.ID >> slotBits)
}

// Slot returns the zero-based slot index packed into the id. ok is false
// for the zero handle, which never names an entity.
func (h EntityHandle) Slot() (uint32, bool) {
	low := h.ID & slotLow
	if low == 0 {
		return 0, false
	}
	return uint32(low) - 1, true
}

// slot is one entry of the scene's slot table. id 0 marks a free slot;
// otherwise row is the entity's position in its archetype's table.
type slot struct {
	id  uint64
	row uint32
}
