package granary

type factory struct{}

var Factory factory

func (f factory) NewSchema() Schema {
	return newSchema()
}

// NewScene builds a scene from a fixed ordered set of archetype
// declarations. The set is closed once built.
func (f factory) NewScene(schema Schema, archetypes ...ArchetypeSpec) (Scene, error) {
	return newScene(schema, archetypes...)
}

func (f factory) NewQuery() Query {
	return newQuery()
}

func (f factory) NewCursor(query QueryNode, scene Scene) *Cursor {
	return newCursor(query, scene)
}

func FactoryNewComponent[T any]() AccessibleComponent[T] {
	iden := elementType[T]{}
	return AccessibleComponent[T]{
		Component: iden,
		Accessor:  FactoryNewAccessor[T](iden),
	}
}

func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
