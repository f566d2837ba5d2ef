package granary

import (
	"iter"
	"reflect"
)

var _ Scene = &scene{}

type Scene interface {
	CreateEntity(archetype uint32) (EntityHandle, error)
	CreateEntityNamed(name string) (EntityHandle, error)
	EnqueueCreateEntities(archetype uint32, n int) error
	DestroyEntity(EntityHandle) error
	DestroyEntities() error
	EnqueueDestroyEntities(...EntityHandle) error
	DestroyEntitiesWhere(QueryNode, func(*Cursor) bool) error
	ForEach(QueryNode, func(*Cursor))
	FindEntityIf(QueryNode, func(*Cursor) bool) (EntityHandle, bool)
	FindEntitiesWhere(QueryNode, func(*Cursor) bool) []EntityHandle
	Contains(EntityHandle) bool
	Archetype(index uint32) (Archetype, error)
	ArchetypeByName(name string) (Archetype, bool)
	ArchetypeCount() int
	RowIndexFor(Component) uint32
	Locked() bool
	Lock()
	Unlock()
}

type Archetype interface {
	Index() uint32
	Name() string
	Table() *Table
}

// ArchetypeSpec declares one archetype: a name plus a fixed ordered set of
// component types, closed once the scene is built.
type ArchetypeSpec struct {
	Name       string
	Components []Component
}

type Schema interface {
	Register(ElementType) uint32
	RowIndexFor(ElementType) uint32
	Registered(ElementType) bool
	Count() int
}

type ElementType interface {
	Type() reflect.Type
	newColumn() column
}

type Component interface {
	ElementType
}

type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

type QueryNode interface {
	Evaluate(archetype Archetype, scene Scene) bool
}

type iCursor interface {
	Entities() iter.Seq2[int, *Table]
	Next() bool
}

type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	Register(string, T) (int, error)
}

// Warning: internal Dependencies abound!
type Cursor struct {
	// The query to filter archetypes
	query QueryNode

	// The scene to iterate over
	scene Scene

	// Current iteration state
	currentArchetype Archetype
	archetypeIndex   int
	entityIndex      int
	remaining        int

	// Initialization state
	initialized bool
	matched     []Archetype
}

type AccessibleComponent[T any] struct {
	Component
	Accessor[T] // concrete.
}

type SimpleCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}
