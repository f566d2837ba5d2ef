package granary

import "fmt"

type LockedSceneError struct{}

func (e LockedSceneError) Error() string {
	return "scene is currently locked"
}

// AllocationError reports a refused table growth. The table keeps its
// prior rows and capacity.
type AllocationError struct {
	Requested, Limit int
}

func (e AllocationError) Error() string {
	return fmt.Sprintf("cannot grow table to capacity %d: configured limit is %d", e.Requested, e.Limit)
}

type OutOfRangeError struct {
	Index, Count int
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("row index %d is out of range for table of %d rows", e.Index, e.Count)
}

type UnknownArchetypeError struct {
	Index uint32
	Name  string
}

func (e UnknownArchetypeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("no archetype named %q is declared in this scene", e.Name)
	}
	return fmt.Sprintf("archetype index %d is not declared in this scene", e.Index)
}

// DuplicateElementTypeError rejects an archetype declaring the same
// component type twice.
type DuplicateElementTypeError struct {
	ElementType ElementType
}

func (e DuplicateElementTypeError) Error() string {
	return fmt.Sprintf("element type declared twice in one archetype: %v", e.ElementType.Type())
}

type CacheCapacityError struct {
	Capacity int
}

func (e CacheCapacityError) Error() string {
	return fmt.Sprintf("cache at maximum capacity (%d)", e.Capacity)
}
