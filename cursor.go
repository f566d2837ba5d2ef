package granary

import (
	"iter"
)

var _ iCursor = &Cursor{}

func newCursor(query QueryNode, scene Scene) *Cursor {
	return &Cursor{
		query: query,
		scene: scene,
	}
}

// rowCursor is a positioned cursor over a single archetype, used by the
// predicate-driven destruction sweep. It must not be advanced or reset.
func rowCursor(sc *scene, arch Archetype) *Cursor {
	return &Cursor{
		scene:            sc,
		currentArchetype: arch,
		initialized:      true,
	}
}

func (c *Cursor) Next() bool {
	if c.entityIndex < c.remaining {
		c.entityIndex++
		return true
	}
	return c.advance()
}

func (c *Cursor) advance() bool {
	if !c.initialized {
		c.initialize()
	}
	for c.archetypeIndex < len(c.matched) {
		c.currentArchetype = c.matched[c.archetypeIndex]
		c.remaining = c.currentArchetype.Table().Length()

		if c.entityIndex < c.remaining {
			c.entityIndex++
			return true
		}
		c.archetypeIndex++
		c.entityIndex = 0
	}
	c.Reset()
	return false
}

func (c *Cursor) Entities() iter.Seq2[int, *Table] {
	return func(yield func(int, *Table) bool) {
		c.initialize()

		for c.archetypeIndex < len(c.matched) {
			c.currentArchetype = c.matched[c.archetypeIndex]
			c.remaining = c.currentArchetype.Table().Length()

			for c.entityIndex < c.remaining {
				if !yield(c.entityIndex, c.currentArchetype.Table()) {
					c.Reset()
					return
				}
				c.entityIndex++
			}
			c.entityIndex = 0
			c.archetypeIndex++
		}
		c.Reset()
	}
}

func (c *Cursor) initialize() {
	if c.initialized {
		return
	}
	c.matched = make([]Archetype, 0)

	// Find all matching archetypes, preserving declared order
	for _, arch := range c.scene.(*scene).archetypes {
		if c.query.Evaluate(arch, c.scene) {
			c.matched = append(c.matched, arch)
		}
	}
	if len(c.matched) > 0 {
		c.archetypeIndex = 0
		c.currentArchetype = c.matched[0]
		c.remaining = c.currentArchetype.Table().Length()
	}
	c.initialized = true
}

func (c *Cursor) Reset() {
	c.archetypeIndex = 0
	c.entityIndex = 0
	c.remaining = 0
	c.matched = nil
	c.initialized = false
	c.scene.Unlock()
}

func (c *Cursor) CurrentEntity() (int, *Table) {
	return c.entityIndex, c.currentArchetype.Table()
}

// CurrentHandle returns the identity of the row the cursor points at.
func (c *Cursor) CurrentHandle() EntityHandle {
	return c.currentArchetype.Table().handleAt(c.entityIndex - 1)
}

func (c *Cursor) RemainingInArchetype() int {
	return c.remaining - c.entityIndex
}

func (c *Cursor) TotalMatched() int {
	if !c.initialized {
		c.initialize()
	}
	total := 0
	for _, arch := range c.matched {
		total += arch.Table().Length()
	}
	return total
}
