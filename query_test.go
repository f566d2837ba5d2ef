package granary

import (
	"errors"
	"testing"
)

// battlefieldScene declares soldier {Position, Velocity, Health},
// tree {Position} and ghost {Position, Velocity} archetypes.
func battlefieldScene(t *testing.T) (Scene, AccessibleComponent[Position], AccessibleComponent[Velocity], AccessibleComponent[Health]) {
	t.Helper()
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()
	healthComp := FactoryNewComponent[Health]()
	scene := newTestScene(t,
		Arch("soldier", posComp, velComp, healthComp),
		Arch("tree", posComp),
		Arch("ghost", posComp, velComp),
	)
	return scene, posComp, velComp, healthComp
}

func TestQueryMatching(t *testing.T) {
	scene, posComp, velComp, healthComp := battlefieldScene(t)
	for i := 0; i < 2; i++ {
		if _, err := scene.CreateEntity(0); err != nil {
			t.Fatalf("CreateEntity() error = %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		if _, err := scene.CreateEntity(1); err != nil {
			t.Fatalf("CreateEntity() error = %v", err)
		}
	}
	for i := 0; i < 4; i++ {
		if _, err := scene.CreateEntity(2); err != nil {
			t.Fatalf("CreateEntity() error = %v", err)
		}
	}

	tests := []struct {
		name string
		node func(Query) QueryNode
		want int
	}{
		{"And single", func(q Query) QueryNode { return q.And(posComp) }, 9},
		{"And pair", func(q Query) QueryNode { return q.And(posComp, velComp) }, 6},
		{"And full", func(q Query) QueryNode { return q.And(posComp, velComp, healthComp) }, 2},
		{"Or", func(q Query) QueryNode { return q.Or(healthComp, velComp) }, 6},
		{"Not", func(q Query) QueryNode { return q.Not(velComp) }, 3},
		{"And with nested Not", func(q Query) QueryNode { return q.And(velComp, q.Not(healthComp)) }, 4},
		{"No match", func(q Query) QueryNode { return q.And(velComp, healthComp, q.Not(posComp)) }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := 0
			scene.ForEach(tt.node(Factory.NewQuery()), func(*Cursor) {
				got++
			})
			if got != tt.want {
				t.Errorf("Visited %d entities, want %d", got, tt.want)
			}
			if scene.Locked() {
				t.Error("Scene still locked after ForEach")
			}
		})
	}
}

func TestForEachTraversalOrder(t *testing.T) {
	scene, posComp, velComp, _ := battlefieldScene(t)

	// Interleave creation across archetypes; traversal follows declared
	// archetype order, rows ascending, not creation order.
	s1, _ := scene.CreateEntity(0)
	scene.CreateEntity(1)
	s2, _ := scene.CreateEntity(0)
	g1, _ := scene.CreateEntity(2)
	scene.CreateEntity(1)
	g2, _ := scene.CreateEntity(2)

	query := Factory.NewQuery()
	var visited []EntityHandle
	scene.ForEach(query.And(posComp, velComp), func(cursor *Cursor) {
		visited = append(visited, cursor.CurrentHandle())
	})

	want := []EntityHandle{s1, s2, g1, g2}
	if len(visited) != len(want) {
		t.Fatalf("Visited %d entities, want %d", len(visited), len(want))
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("Visit %d = %+v, want %+v", i, visited[i], want[i])
		}
	}
}

func TestCursorAccessDuringIteration(t *testing.T) {
	scene, posComp, velComp, _ := battlefieldScene(t)
	for i := 0; i < 3; i++ {
		h, err := scene.CreateEntity(2)
		if err != nil {
			t.Fatalf("CreateEntity() error = %v", err)
		}
		velComp.GetFromHandle(scene, h).X = float64(i + 1)
	}

	query := Factory.NewQuery()
	scene.ForEach(query.And(posComp, velComp), func(cursor *Cursor) {
		pos := posComp.GetFromCursor(cursor)
		vel := velComp.GetFromCursor(cursor)
		pos.X += vel.X
	})

	var xs []float64
	scene.ForEach(query.And(posComp), func(cursor *Cursor) {
		xs = append(xs, posComp.GetFromCursor(cursor).X)
	})
	want := []float64{1, 2, 3}
	for i := range want {
		if xs[i] != want[i] {
			t.Errorf("Position %d X = %v, want %v", i, xs[i], want[i])
		}
	}
}

func TestMutationsLockedDuringIteration(t *testing.T) {
	scene, posComp, _, _ := battlefieldScene(t)
	soldier, err := scene.CreateEntity(0)
	if err != nil {
		t.Fatalf("CreateEntity() error = %v", err)
	}
	if _, err := scene.CreateEntity(1); err != nil {
		t.Fatalf("CreateEntity() error = %v", err)
	}

	query := Factory.NewQuery()
	checked := false
	scene.ForEach(query.And(posComp), func(cursor *Cursor) {
		if checked {
			return
		}
		checked = true

		if !scene.Locked() {
			t.Error("Scene not locked during iteration")
		}
		if _, err := scene.CreateEntity(1); !errors.Is(err, LockedSceneError{}) {
			t.Errorf("CreateEntity() during iteration error = %v, want LockedSceneError", err)
		}
		if err := scene.DestroyEntity(soldier); !errors.Is(err, LockedSceneError{}) {
			t.Errorf("DestroyEntity() during iteration error = %v, want LockedSceneError", err)
		}
		if err := scene.DestroyEntities(); !errors.Is(err, LockedSceneError{}) {
			t.Errorf("DestroyEntities() during iteration error = %v, want LockedSceneError", err)
		}

		// Deferred mutations queue up instead
		if err := scene.EnqueueCreateEntities(1, 2); err != nil {
			t.Errorf("EnqueueCreateEntities() error = %v", err)
		}
		if err := scene.EnqueueDestroyEntities(soldier, soldier); err != nil {
			t.Errorf("EnqueueDestroyEntities() error = %v", err)
		}
	})

	// Queue drains on unlock: creations first, then the deduplicated destroy
	trees, _ := scene.Archetype(1)
	if got := trees.Table().Length(); got != 3 {
		t.Errorf("Tree count after unlock = %d, want 3", got)
	}
	if scene.Contains(soldier) {
		t.Error("Enqueued destroy was not applied on unlock")
	}
	soldiers, _ := scene.Archetype(0)
	if got := soldiers.Table().Length(); got != 0 {
		t.Errorf("Soldier count after unlock = %d, want 0", got)
	}
}

func TestFindEntityIf(t *testing.T) {
	scene, _, _, healthComp := battlefieldScene(t)
	handles := make([]EntityHandle, 3)
	for i, hp := range []int{5, 80, 90} {
		h, err := scene.CreateEntity(0)
		if err != nil {
			t.Fatalf("CreateEntity() error = %v", err)
		}
		handles[i] = h
		healthComp.GetFromHandle(scene, h).Current = hp
	}

	query := Factory.NewQuery()
	found, ok := scene.FindEntityIf(query.And(healthComp), func(cursor *Cursor) bool {
		return healthComp.GetFromCursor(cursor).Current > 50
	})
	if !ok {
		t.Fatal("FindEntityIf() found nothing")
	}
	if found != handles[1] {
		t.Errorf("FindEntityIf() = %+v, want first match %+v", found, handles[1])
	}
	if scene.Locked() {
		t.Error("Scene still locked after early exit")
	}

	_, ok = scene.FindEntityIf(query.And(healthComp), func(cursor *Cursor) bool {
		return healthComp.GetFromCursor(cursor).Current > 1000
	})
	if ok {
		t.Error("FindEntityIf() matched an impossible predicate")
	}
	if scene.Locked() {
		t.Error("Scene still locked after exhausted search")
	}
}

func TestFindEntitiesWhere(t *testing.T) {
	scene, posComp, _, _ := battlefieldScene(t)
	want := make(map[uint64]bool)
	for i := 0; i < 6; i++ {
		h, err := scene.CreateEntity(uint32(i % 3))
		if err != nil {
			t.Fatalf("CreateEntity() error = %v", err)
		}
		if i%2 == 0 {
			posComp.GetFromHandle(scene, h).X = 1
			want[h.ID] = true
		}
	}

	query := Factory.NewQuery()
	got := scene.FindEntitiesWhere(query.And(posComp), func(cursor *Cursor) bool {
		return posComp.GetFromCursor(cursor).X > 0
	})
	if len(got) != len(want) {
		t.Fatalf("FindEntitiesWhere() returned %d handles, want %d", len(got), len(want))
	}
	for _, h := range got {
		if !want[h.ID] {
			t.Errorf("Unexpected handle %d in result", h.ID)
		}
	}
	if scene.Locked() {
		t.Error("Scene still locked after collection")
	}
}

func TestDestroyEntitiesWhere(t *testing.T) {
	scene, _, _, healthComp := battlefieldScene(t)
	byHealth := make(map[int]EntityHandle)
	for _, hp := range []int{10, 20, 30, 40, 50, 60} {
		h, err := scene.CreateEntity(0)
		if err != nil {
			t.Fatalf("CreateEntity() error = %v", err)
		}
		healthComp.GetFromHandle(scene, h).Current = hp
		byHealth[hp] = h
	}

	query := Factory.NewQuery()
	err := scene.DestroyEntitiesWhere(query.And(healthComp), func(cursor *Cursor) bool {
		return healthComp.GetFromCursor(cursor).Current%20 == 0
	})
	if err != nil {
		t.Fatalf("DestroyEntitiesWhere() error = %v", err)
	}

	soldiers, _ := scene.Archetype(0)
	if got := soldiers.Table().Length(); got != 3 {
		t.Errorf("Remaining soldiers = %d, want 3", got)
	}
	for hp, h := range byHealth {
		wantAlive := hp%20 != 0
		if scene.Contains(h) != wantAlive {
			t.Errorf("Soldier with health %d alive = %v, want %v", hp, !wantAlive, wantAlive)
		}
		if !wantAlive {
			continue
		}
		if got := healthComp.GetFromHandle(scene, h).Current; got != hp {
			t.Errorf("Survivor health = %d, want %d", got, hp)
		}
	}
}

func TestDestroyEntitiesWhereAll(t *testing.T) {
	scene, posComp, _, _ := battlefieldScene(t)
	for i := 0; i < 10; i++ {
		if _, err := scene.CreateEntity(1); err != nil {
			t.Fatalf("CreateEntity() error = %v", err)
		}
	}

	query := Factory.NewQuery()
	err := scene.DestroyEntitiesWhere(query.And(posComp), func(*Cursor) bool {
		return true
	})
	if err != nil {
		t.Fatalf("DestroyEntitiesWhere() error = %v", err)
	}
	trees, _ := scene.Archetype(1)
	if got := trees.Table().Length(); got != 0 {
		t.Errorf("Remaining trees = %d, want 0", got)
	}
}

func TestDestroyEntitiesWhereLocked(t *testing.T) {
	scene, posComp, _, _ := battlefieldScene(t)
	if _, err := scene.CreateEntity(1); err != nil {
		t.Fatalf("CreateEntity() error = %v", err)
	}

	query := Factory.NewQuery()
	node := query.And(posComp)
	scene.ForEach(node, func(*Cursor) {
		err := scene.DestroyEntitiesWhere(node, func(*Cursor) bool { return true })
		if !errors.Is(err, LockedSceneError{}) {
			t.Errorf("DestroyEntitiesWhere() during iteration error = %v, want LockedSceneError", err)
		}
	})
}

func TestCursorTotalMatched(t *testing.T) {
	scene, posComp, velComp, _ := battlefieldScene(t)
	for i := 0; i < 3; i++ {
		scene.CreateEntity(0)
	}
	for i := 0; i < 2; i++ {
		scene.CreateEntity(1)
	}

	query := Factory.NewQuery()
	cursor := Factory.NewCursor(query.And(posComp, velComp), scene)
	if got := cursor.TotalMatched(); got != 3 {
		t.Errorf("TotalMatched() = %d, want 3", got)
	}
}

func BenchmarkSceneCreateDestroy(b *testing.B) {
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()
	schema := Factory.NewSchema()
	scene, err := Factory.NewScene(schema, Arch("mover", posComp, velComp))
	if err != nil {
		b.Fatalf("Failed to build scene: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h, err := scene.CreateEntity(0)
		if err != nil {
			b.Fatal(err)
		}
		if err := scene.DestroyEntity(h); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCursorIteration(b *testing.B) {
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()
	schema := Factory.NewSchema()
	scene, err := Factory.NewScene(schema, Arch("mover", posComp, velComp))
	if err != nil {
		b.Fatalf("Failed to build scene: %v", err)
	}
	for i := 0; i < 10000; i++ {
		if _, err := scene.CreateEntity(0); err != nil {
			b.Fatal(err)
		}
	}
	query := Factory.NewQuery()
	node := query.And(posComp, velComp)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scene.ForEach(node, func(cursor *Cursor) {
			pos := posComp.GetFromCursor(cursor)
			vel := velComp.GetFromCursor(cursor)
			pos.X += vel.X
		})
	}
}
