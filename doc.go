/*
Package granary provides archetype-based columnar storage for entities.

Granary stores each declared archetype's entities as parallel, densely
packed component columns plus an identity column. Creation and destruction
are O(1) (destruction swap-removes the row), and handles carry a recycle
generation so that a stale handle can never reach another entity's data.

Core Concepts:

  - EntityHandle: An opaque {archetype, id} pair; the id packs a slot index
    and a recycle generation.
  - Component: A data container that defines entity attributes.
  - Archetype: A fixed component set declared up front; all entities of an
    archetype share one columnar table.
  - Scene: The registry owning every archetype's table, the slot lookup
    table and the recycled-id stack.
  - Query: A way to select archetypes by component combinations.

Basic Usage:

	// Declare a scene with a closed set of archetypes
	schema := granary.Factory.NewSchema()
	position := granary.FactoryNewComponent[Position]()
	velocity := granary.FactoryNewComponent[Velocity]()

	scene, _ := granary.Factory.NewScene(schema,
		granary.Arch("mover", position, velocity),
		granary.Arch("prop", position),
	)

	// Create entities
	handle, _ := scene.CreateEntity(0)
	pos := position.GetFromHandle(scene, handle)
	pos.X = 10

	// Iterate every archetype containing position and velocity
	query := granary.Factory.NewQuery()
	scene.ForEach(query.And(position, velocity), func(cur *granary.Cursor) {
		pos := position.GetFromCursor(cur)
		vel := velocity.GetFromCursor(cur)
		pos.X += vel.X
		pos.Y += vel.Y
	})

Archetypes are closed: an entity never migrates between tables, and a
component type outside an archetype's declared set is rejected when the
scene is declared, not at call time. Granary is the storage core of its
ecosystem but works as a standalone library.
*/
package granary
