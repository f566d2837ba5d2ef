package granary

import "reflect"

// elementType is the identity of one component type. The zero-sized struct
// compares equal for equal T, so identities created independently for the
// same component type are interchangeable.
type elementType[T any] struct{}

func (elementType[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

func (elementType[T]) newColumn() column {
	return &colBuf[T]{}
}
