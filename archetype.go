package granary

type archetypeID uint32

// Arch declares a named archetype as a fixed ordered set of component
// types. The declaration is instantiated per scene.
func Arch(name string, components ...Component) ArchetypeSpec {
	return ArchetypeSpec{
		Name:       name,
		Components: components,
	}
}

var _ Archetype = &archetype{}

type archetype struct {
	index archetypeID
	name  string
	table *Table
}

func newArchetype(schema Schema, index archetypeID, spec ArchetypeSpec) (*archetype, error) {
	tbl, err := newTable(schema, spec.Components...)
	if err != nil {
		return nil, err
	}
	return &archetype{
		index: index,
		name:  spec.Name,
		table: tbl,
	}, nil
}

func (a *archetype) Index() uint32 {
	return uint32(a.index)
}

func (a *archetype) Name() string {
	return a.name
}

func (a *archetype) Table() *Table {
	return a.table
}
