package granary

import "reflect"

var _ Schema = &schema{}

// schema assigns each component type a stable row index, shared by every
// table in a scene. Row indices double as mask bit positions.
type schema struct {
	rowIndices map[reflect.Type]uint32
}

func newSchema() Schema {
	return &schema{
		rowIndices: make(map[reflect.Type]uint32),
	}
}

func (s *schema) Register(et ElementType) uint32 {
	if idx, ok := s.rowIndices[et.Type()]; ok {
		return idx
	}
	idx := uint32(len(s.rowIndices))
	s.rowIndices[et.Type()] = idx
	return idx
}

// RowIndexFor registers the element type if needed and returns its index.
func (s *schema) RowIndexFor(et ElementType) uint32 {
	return s.Register(et)
}

func (s *schema) Registered(et ElementType) bool {
	_, ok := s.rowIndices[et.Type()]
	return ok
}

func (s *schema) Count() int {
	return len(s.rowIndices)
}
