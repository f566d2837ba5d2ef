// CPU profile for the hot iteration path: one big scene, many ForEach
// sweeps over several archetypes.
//
//	go build -o sweep ./profile/query
//	./sweep
//	go tool pprof -http=":8000" ./sweep cpu.pprof
package main

import (
	"github.com/TheBitDrifter/granary"
	"github.com/pkg/profile"
)

type position struct {
	X, Y float64
}

type velocity struct {
	X, Y float64
}

type health struct {
	Current, Max int
}

func main() {
	schema := granary.Factory.NewSchema()
	pos := granary.FactoryNewComponent[position]()
	vel := granary.FactoryNewComponent[velocity]()
	hp := granary.FactoryNewComponent[health]()
	scene, err := granary.Factory.NewScene(schema,
		granary.Arch("mover", pos, vel),
		granary.Arch("soldier", pos, vel, hp),
		granary.Arch("prop", pos),
	)
	if err != nil {
		panic(err)
	}

	for idx := uint32(0); idx < 3; idx++ {
		for i := 0; i < 100_000; i++ {
			if _, err := scene.CreateEntity(idx); err != nil {
				panic(err)
			}
		}
	}

	query := granary.Factory.NewQuery()
	node := query.And(pos, vel)

	prof := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	defer prof.Stop()

	for i := 0; i < 500; i++ {
		scene.ForEach(node, func(cursor *granary.Cursor) {
			p := pos.GetFromCursor(cursor)
			v := vel.GetFromCursor(cursor)
			p.X += v.X
			p.Y += v.Y
		})
	}
}
